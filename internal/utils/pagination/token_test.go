package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456000, time.UTC)

	token := EncodeToken(createdAt, "entry-42")
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "=", "token must be safe in a query string")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, "entry-42", decodedID)
}

func TestEncodeToken_NormalisesToUTC(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	local := time.Date(2026, 1, 2, 3, 4, 5, 0, riyadh)

	decodedAt, _, err := DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, decodedAt.Location())
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"missing separator", base64.RawURLEncoding.EncodeToString([]byte("2026-01-01T00:00:00Z"))},
		{"empty id", base64.RawURLEncoding.EncodeToString([]byte("2026-01-01T00:00:00Z|"))},
		{"bad time", base64.RawURLEncoding.EncodeToString([]byte("yesterday|entry-1"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
