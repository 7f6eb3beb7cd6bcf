package gsheets

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		code int
		kind Kind
	}{
		{"not found", 404, KindNotFound},
		{"permission denied", 403, KindPermissionDenied},
		{"invalid request", 400, KindInvalidRequest},
		{"server error", 500, KindUnknown},
		{"rate limited", 429, KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cause := &googleapi.Error{Code: tc.code, Message: "remote says no"}
			err := classify("read values", cause)

			var aerr *APIError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, tc.kind, aerr.Kind)
			assert.Equal(t, "read values", aerr.Operation)
			// The original service message survives in the chain.
			assert.ErrorIs(t, err, cause)
			assert.Contains(t, err.Error(), "remote says no")
		})
	}
}

func TestClassify_WrappedCause(t *testing.T) {
	cause := fmt.Errorf("transport: %w", &googleapi.Error{Code: 404})
	err := classify("get spreadsheet info", cause)
	assert.True(t, IsNotFound(err))
}

func TestClassify_NonGoogleError(t *testing.T) {
	err := classify("read values", errors.New("connection refused"))

	var aerr *APIError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindUnknown, aerr.Kind)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNotFoundf(t *testing.T) {
	err := notFoundf("resolve sheet", "sheet %q not found", "Data")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `sheet "Data" not found`)
	assert.Nil(t, errors.Unwrap(err))
}

func TestKindPredicates(t *testing.T) {
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))

	denied := classify("x", &googleapi.Error{Code: 403})
	assert.True(t, IsPermissionDenied(denied))
	assert.False(t, IsNotFound(denied))

	invalid := classify("x", &googleapi.Error{Code: 400})
	assert.True(t, IsInvalidRequest(invalid))
	assert.False(t, IsPermissionDenied(invalid))
}
