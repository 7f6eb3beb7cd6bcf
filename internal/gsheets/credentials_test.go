package gsheets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCredentialConfig(t *testing.T) {
	t.Run("inline json configured", func(t *testing.T) {
		t.Setenv(EnvCredentialsJSON, `{"type":"service_account"}`)
		t.Setenv(EnvCredentialsFile, "")
		assert.NoError(t, CheckCredentialConfig())
	})

	t.Run("key file configured and present", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "key.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))
		t.Setenv(EnvCredentialsJSON, "")
		t.Setenv(EnvCredentialsFile, path)
		assert.NoError(t, CheckCredentialConfig())
	})

	t.Run("key file missing", func(t *testing.T) {
		t.Setenv(EnvCredentialsJSON, "")
		t.Setenv(EnvCredentialsFile, filepath.Join(t.TempDir(), "nope.json"))
		err := CheckCredentialConfig()
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(EnvCredentialsJSON, "")
		t.Setenv(EnvCredentialsFile, "")
		err := CheckCredentialConfig()
		require.Error(t, err)
		// The message names both knobs so the operator knows what to set.
		assert.Contains(t, err.Error(), EnvCredentialsJSON)
		assert.Contains(t, err.Error(), EnvCredentialsFile)
	})

	t.Run("inline json wins over file", func(t *testing.T) {
		t.Setenv(EnvCredentialsJSON, `{"type":"service_account"}`)
		t.Setenv(EnvCredentialsFile, filepath.Join(t.TempDir(), "nope.json"))
		assert.NoError(t, CheckCredentialConfig())
	})
}

func TestCredentialOptions(t *testing.T) {
	t.Run("inline json", func(t *testing.T) {
		t.Setenv(EnvCredentialsJSON, `{"type":"service_account"}`)
		t.Setenv(EnvCredentialsFile, "")
		opts, err := credentialOptions()
		require.NoError(t, err)
		assert.Len(t, opts, 2)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(EnvCredentialsJSON, "")
		t.Setenv(EnvCredentialsFile, "")
		_, err := credentialOptions()
		assert.Error(t, err)
	})
}
