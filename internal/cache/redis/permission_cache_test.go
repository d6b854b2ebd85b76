package redis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	userID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t, "perm:11111111-1111-1111-1111-111111111111:gen", generationKey(tenantID))
	assert.Equal(t,
		"perm:11111111-1111-1111-1111-111111111111:3:22222222-2222-2222-2222-222222222222",
		userKey(tenantID, userID, 3))
	assert.NotEqual(t, userKey(tenantID, userID, 3), userKey(tenantID, userID, 4))
}
