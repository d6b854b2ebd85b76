package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const tenantStatsQuery = `SELECT
	(SELECT COUNT(*) FROM companies WHERE tenant_id = $1 AND is_active) AS active_companies,
	(SELECT COALESCE(ROUND(AVG(score)::numeric, 2), 0) FROM companies WHERE tenant_id = $1 AND is_active) AS average_company_score,
	(SELECT COUNT(*) FROM security_evaluations WHERE tenant_id = $1 AND status = 'pending') AS pending_evaluations,
	(SELECT COUNT(*) FROM violations WHERE tenant_id = $1 AND status = 'open') AS open_violations,
	(SELECT COUNT(*) FROM risks WHERE tenant_id = $1 AND status = 'open') AS open_risks,
	(SELECT COUNT(*) FROM inspections WHERE tenant_id = $1 AND inspected_at >= $2) AS inspections_this_month,
	(SELECT COUNT(*) FROM inspections WHERE tenant_id = $1 AND inspected_at >= $2 AND status = 'non_compliant') AS non_compliant_this_month`

func (r *statsRepo) GetTenantStats(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, tenantStatsQuery, tenantID, monthStart); err != nil {
		return nil, fmt.Errorf("statsRepo.GetTenantStats: %w", err)
	}
	return &stats, nil
}
