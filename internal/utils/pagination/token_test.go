package pagination_test

import (
	"testing"
	"time"

	"github.com/dahira-app/dahira_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	submittedAt := time.Date(2025, 7, 14, 10, 30, 0, 123456789, time.UTC)
	token := pagination.EncodeToken(submittedAt, "req-42")

	decodedAt, recordID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, submittedAt.Equal(decodedAt))
	assert.Equal(t, "req-42", recordID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y")
	assert.Error(t, err)
}
