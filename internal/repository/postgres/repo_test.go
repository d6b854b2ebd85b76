package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPermissionRepo_ReplaceJobPermissions_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPermissionRepo(db)

	tenantID, jobID, svcID := uuid.New(), uuid.New(), uuid.New()
	rows := []domain.PermissionRow{{ServiceID: &svcID, IsAllowed: true}}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM job_permissions").
		WithArgs(tenantID, jobID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO job_permissions").
		WithArgs(sqlmock.AnyArg(), tenantID, jobID, svcID, nil, nil, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.ReplaceJobPermissions(context.Background(), tenantID, jobID, rows)

	require.NoError(t, err)
	assert.Equal(t, jobID, rows[0].SubjectID)
	assert.NotEqual(t, uuid.Nil, rows[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepo_ReplaceUserPermissions_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPermissionRepo(db)

	tenantID, userID, leafID := uuid.New(), uuid.New(), uuid.New()
	rows := []domain.PermissionRow{{SubSubServiceID: &leafID, IsAllowed: false}}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_permissions").
		WithArgs(tenantID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_permissions").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.ReplaceUserPermissions(context.Background(), tenantID, userID, rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepo_DeleteUserPermission(t *testing.T) {
	tenantID, userID, subID := uuid.New(), uuid.New(), uuid.New()

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM user_permissions WHERE tenant_id = \\$1 AND user_id = \\$2 AND sub_service_id = \\$3").
			WithArgs(tenantID, userID, subID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := postgres.NewPermissionRepo(db).DeleteUserPermission(context.Background(), tenantID, userID, domain.LevelSubService, subID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM user_permissions").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := postgres.NewPermissionRepo(db).DeleteUserPermission(context.Background(), tenantID, userID, domain.LevelSubService, subID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("bad level", func(t *testing.T) {
		db, _ := newMockDB(t)
		err := postgres.NewPermissionRepo(db).DeleteUserPermission(context.Background(), tenantID, userID, "division", subID)
		assert.ErrorIs(t, err, domain.ErrInvalidLevel)
	})
}

func TestEvaluationRepo_Create_InsertsDetailsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEvaluationRepo(db)

	q1, q2 := uuid.New(), uuid.New()
	eval := &domain.SecurityEvaluation{
		TenantID:    uuid.New(),
		CompanyID:   uuid.New(),
		EvaluatorID: uuid.New(),
		PeriodMonth: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.EvaluationPending,
	}
	details := []domain.SecurityEvaluationDetail{{QuestionID: q1, Score: 4}, {QuestionID: q2, Score: 2}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO security_evaluations").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO security_evaluation_details").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), eval.TenantID, q1, 4, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO security_evaluation_details").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), eval.TenantID, q2, 2, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), eval, details)

	require.NoError(t, err)
	assert.Equal(t, eval.ID, details[0].EvaluationID)
	assert.Equal(t, eval.ID, details[1].EvaluationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepo_Create_DuplicatePeriod(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEvaluationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO security_evaluations").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_evaluations_company_period"`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.SecurityEvaluation{TenantID: uuid.New()}, nil)

	assert.ErrorIs(t, err, domain.ErrDuplicateEvaluation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepo_Decide_AlreadyDecided(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEvaluationRepo(db)

	eval := &domain.SecurityEvaluation{ID: uuid.New(), TenantID: uuid.New(), Status: domain.EvaluationApproved}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE security_evaluations SET status").
		WithArgs(domain.EvaluationApproved, sqlmock.AnyArg(), eval.ID, eval.TenantID, domain.EvaluationPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Decide(context.Background(), eval, &domain.EvaluationApproval{Decision: domain.DecisionApproved})

	assert.ErrorIs(t, err, domain.ErrEvaluationFinalized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepo_Decide_AppendsApproval(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewEvaluationRepo(db)

	eval := &domain.SecurityEvaluation{ID: uuid.New(), TenantID: uuid.New(), Status: domain.EvaluationReturned}
	approval := &domain.EvaluationApproval{ApproverID: uuid.New(), Decision: domain.DecisionReturned, SignatureKey: "sig/key.png"}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE security_evaluations SET status").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO evaluation_approvals").
		WithArgs(sqlmock.AnyArg(), eval.ID, eval.TenantID, approval.ApproverID, domain.DecisionReturned, "", "sig/key.png", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Decide(context.Background(), eval, approval))
	assert.Equal(t, eval.ID, approval.EvaluationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViolationRepo_Close(t *testing.T) {
	tenantID, violationID := uuid.New(), uuid.New()
	at := time.Now().UTC()

	t.Run("already closed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE violations SET status").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT \\* FROM violations").
			WithArgs(violationID, tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "status"}).
				AddRow(violationID.String(), tenantID.String(), "closed"))

		err := postgres.NewViolationRepo(db).Close(context.Background(), tenantID, violationID, at)
		assert.ErrorIs(t, err, domain.ErrViolationClosed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE violations SET status").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT \\* FROM violations").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := postgres.NewViolationRepo(db).Close(context.Background(), tenantID, violationID, at)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAppSecurityRepo_Get_DefaultsToUnlocked(t *testing.T) {
	db, mock := newMockDB(t)
	tenantID := uuid.New()

	mock.ExpectQuery("FROM app_settings").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id", "is_locked"}))

	s, err := postgres.NewAppSecurityRepo(db).Get(context.Background(), tenantID)

	require.NoError(t, err)
	assert.False(t, s.IsLocked)
	assert.Equal(t, tenantID, s.TenantID)
}

func TestDistributionRepo_IsAssigned(t *testing.T) {
	db, mock := newMockDB(t)
	tenantID, inspectorID, buildingID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(tenantID, inspectorID, buildingID, nil).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := postgres.NewDistributionRepo(db).IsAssigned(context.Background(), tenantID, inspectorID, buildingID, nil)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)
	tenantID, jobID := uuid.New(), uuid.New()
	role := domain.RoleMember

	where := `WHERE tenant_id = \$1 AND job_id = \$2 AND role = \$3 AND is_active = \$4 AND \(full_name ILIKE \$5 OR email ILIKE \$5\)`
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users ` + where).
		WithArgs(tenantID, jobID, role, true, "%sara%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM users ` + where + ` ORDER BY full_name, created_at LIMIT \$6 OFFSET \$7`).
		WithArgs(tenantID, jobID, role, true, "%sara%", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "email", "full_name", "role", "is_active"}).
			AddRow(uuid.New(), tenantID, "sara@hejazi.sa", "Sara", "member", true))

	users, total, err := repo.List(context.Background(), tenantID, port.UserFilter{
		JobID: &jobID, Role: &role, ActiveOnly: true, Search: " sara ",
	}, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Sara", users[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetPlatformAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)
	tenantID, userID := uuid.New(), uuid.New()

	mock.ExpectExec(`UPDATE users SET is_platform_admin = \$1`).
		WithArgs(true, userID, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET is_platform_admin = \$1`).
		WithArgs(false, userID, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetPlatformAdmin(context.Background(), tenantID, userID, true))
	assert.ErrorIs(t, repo.SetPlatformAdmin(context.Background(), tenantID, userID, false), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
