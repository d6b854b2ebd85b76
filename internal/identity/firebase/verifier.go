package firebase

import (
	"context"
	"fmt"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"hejazi/internal/config"
	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// Verifier validates Firebase ID tokens with the Admin SDK.
type Verifier struct {
	client *auth.Client
}

// NewVerifier initializes a Firebase app from a service account file.
func NewVerifier(ctx context.Context, cfg *config.FirebaseConfig) (*Verifier, error) {
	var appCfg *fb.Config
	if cfg.ProjectID != "" {
		appCfg = &fb.Config{ProjectID: cfg.ProjectID}
	}
	app, err := fb.NewApp(ctx, appCfg, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth: %w", err)
	}
	return &Verifier{client: client}, nil
}

func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*port.IdentityClaims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, domain.ErrProviderTokenInvalid
	}
	return claimsFromToken(token), nil
}

func (v *Verifier) Provider() string {
	return "firebase"
}

func claimsFromToken(token *auth.Token) *port.IdentityClaims {
	c := &port.IdentityClaims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		c.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		c.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		c.Name = name
	}
	return c
}

var _ port.IdentityVerifier = (*Verifier)(nil)
