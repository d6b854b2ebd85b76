package port

import "context"

// IdentityClaims holds the verified claims of an external identity token.
type IdentityClaims struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
}

// IdentityVerifier validates an ID token issued by an external identity provider.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error)
	Provider() string
}
