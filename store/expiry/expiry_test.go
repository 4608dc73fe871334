package expiry

import (
	"testing"

	"solo/core"

	"github.com/stretchr/testify/assert"
)

func TestExpiryColumnsKeepZeroExpiresAt(t *testing.T) {
	expiry := &core.Expiry{
		ExpiresAt: 0,
		Version:   2,
	}

	cols := expiryColumns(expiry)

	// zero means unset; losing the clear leaves a stale expiration
	// for the next borrow in the same market
	expiresAt, ok := cols["expires_at"]
	assert.True(t, ok)
	assert.Equal(t, uint32(0), expiresAt)
	assert.Equal(t, int64(2), cols["version"])
}
