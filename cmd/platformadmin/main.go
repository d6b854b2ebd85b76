// Command platformadmin grants or revokes the deployment operator flag that
// unlocks tenant management under /api/v1/admin/tenants. The flag takes
// effect on the user's next sign-in.
//
//	platformadmin --tenant hejazi --email ops@hejazi.sa [--revoke]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hejazi/internal/config"
	"hejazi/internal/logger"
	"hejazi/internal/port"
	"hejazi/internal/repository/postgres"
)

type options struct {
	tenant string
	email  string
	revoke bool
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:          "platformadmin",
		Short:        "Grant or revoke platform operator access for a user",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.tenant, "tenant", "", "Tenant slug the user belongs to")
	cmd.Flags().StringVar(&opts.email, "email", "", "User email")
	cmd.Flags().BoolVar(&opts.revoke, "revoke", false, "Remove the flag instead of granting it")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("email")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return apply(ctx, postgres.NewTenantRepo(db), postgres.NewUserRepo(db), opts)
}

func apply(ctx context.Context, tenants port.TenantRepository, users port.UserRepository, opts options) error {
	tenant, err := tenants.GetBySlug(ctx, opts.tenant)
	if err != nil {
		return fmt.Errorf("finding tenant %q: %w", opts.tenant, err)
	}
	user, err := users.GetByEmail(ctx, tenant.ID, opts.email)
	if err != nil {
		return fmt.Errorf("finding user %q: %w", opts.email, err)
	}
	if !opts.revoke && !user.IsActive {
		return fmt.Errorf("user %q is inactive", opts.email)
	}

	if err := users.SetPlatformAdmin(ctx, tenant.ID, user.ID, !opts.revoke); err != nil {
		return err
	}
	log.Warn().
		Str("tenant", tenant.Slug).
		Str("user_id", user.ID.String()).
		Bool("platform_admin", !opts.revoke).
		Msg("platformadmin: flag updated")
	return nil
}
