package gsheets

import (
	"fmt"
	"os"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Credential environment variables. Exactly one must be set.
const (
	// EnvCredentialsJSON holds a service account key as an inline JSON document.
	EnvCredentialsJSON = "GOOGLE_CREDENTIALS_JSON"
	// EnvCredentialsFile points at a service account key file on disk.
	EnvCredentialsFile = "GOOGLE_APPLICATION_CREDENTIALS"
)

// scopes grants full read/write on spreadsheets and read-only access to the
// Drive file listing that contains them.
var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// CheckCredentialConfig verifies at startup that a credential source is
// configured. It does not authenticate; the client handle is built lazily on
// first use.
func CheckCredentialConfig() error {
	if os.Getenv(EnvCredentialsJSON) != "" {
		return nil
	}
	path := os.Getenv(EnvCredentialsFile)
	if path == "" {
		return fmt.Errorf("no credentials configured: set %s (inline JSON) or %s (key file path)",
			EnvCredentialsJSON, EnvCredentialsFile)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("credential file %s: %w", path, err)
	}
	return nil
}

// credentialOptions resolves the configured credential source into client
// options for the Sheets service.
func credentialOptions() ([]option.ClientOption, error) {
	if inline := os.Getenv(EnvCredentialsJSON); inline != "" {
		return []option.ClientOption{
			option.WithCredentialsJSON([]byte(inline)),
			option.WithScopes(scopes...),
		}, nil
	}

	path := os.Getenv(EnvCredentialsFile)
	if path == "" {
		return nil, fmt.Errorf("no credentials configured: set %s or %s",
			EnvCredentialsJSON, EnvCredentialsFile)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("credential file %s: %w", path, err)
	}
	return []option.ClientOption{
		option.WithCredentialsFile(path),
		option.WithScopes(scopes...),
	}, nil
}
