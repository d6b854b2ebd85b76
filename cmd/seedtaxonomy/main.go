// Command seedtaxonomy imports a tenant's service taxonomy from an Excel
// sheet. Columns: service code, name (ar), name (en), then the same three
// for sub-service and sub-sub-service.
//
//	seedtaxonomy --tenant hejazi --file taxonomy.xlsx [--sheet Services] [--dry-run]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hejazi/internal/cache/noop"
	"hejazi/internal/config"
	"hejazi/internal/logger"
	"hejazi/internal/repository/postgres"
	"hejazi/internal/service"
)

type options struct {
	tenant string
	file   string
	sheet  string
	dryRun bool
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:          "seedtaxonomy",
		Short:        "Import the service taxonomy of a tenant from Excel",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.tenant, "tenant", "", "Tenant slug")
	cmd.Flags().StringVar(&opts.file, "file", "taxonomy.xlsx", "Path to the Excel file")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and report without writing")
	_ = cmd.MarkFlagRequired("tenant")

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

	nodes, err := readSheet(opts.file, opts.sheet)
	if err != nil {
		return err
	}
	log.Info().Int("nodes", len(nodes)).Str("file", opts.file).Msg("seedtaxonomy: sheet parsed")

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	tenant, err := postgres.NewTenantRepo(db).GetBySlug(ctx, opts.tenant)
	if err != nil {
		return fmt.Errorf("finding tenant %q: %w", opts.tenant, err)
	}

	// Cached permission sets are not invalidated here; they expire on their TTL.
	taxonomy := service.NewTaxonomyService(postgres.NewTaxonomyRepo(db), noop.NewPermissionCache())

	res, err := importNodes(ctx, taxonomy, tenant.ID, nodes, opts.dryRun)
	if err != nil {
		return err
	}
	log.Info().
		Str("tenant", tenant.Slug).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Bool("dry_run", opts.dryRun).
		Msg("seedtaxonomy: done")
	return nil
}
