package firebase

import (
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
)

func TestClaimsFromToken(t *testing.T) {
	token := &auth.Token{
		UID: "uid-1",
		Claims: map[string]interface{}{
			"email":          "guard@hejazi.sa",
			"email_verified": true,
			"name":           "Salem",
		},
	}

	c := claimsFromToken(token)

	assert.Equal(t, "uid-1", c.UID)
	assert.Equal(t, "guard@hejazi.sa", c.Email)
	assert.True(t, c.EmailVerified)
	assert.Equal(t, "Salem", c.Name)
}

func TestClaimsFromToken_MissingClaims(t *testing.T) {
	c := claimsFromToken(&auth.Token{UID: "uid-2", Claims: map[string]interface{}{"email": 42}})

	assert.Equal(t, "uid-2", c.UID)
	assert.Empty(t, c.Email)
	assert.False(t, c.EmailVerified)
}
