package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

func newPlanRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPlanRepositoryFetchPlanGroupsPlacements(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	now := time.Now()
	semesterRows := sqlmock.NewRows([]string{"id", "user_id", "remote_semester_id", "start_date", "created_at"}).
		AddRow("ps1", "u1", "sem-1", now, now).
		AddRow("ps2", "u1", "sem-2", now.AddDate(0, 6, 0), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, remote_semester_id, start_date, created_at FROM plan_semesters WHERE user_id = $1 ORDER BY start_date ASC")).
		WithArgs("u1").
		WillReturnRows(semesterRows)

	placementRows := sqlmock.NewRows([]string{"id", "semester_id", "module_id", "category", "position", "created_at"}).
		AddRow("pl1", "ps1", "m1", "STANDARD", 0, now).
		AddRow("pl2", "ps1", "m2", "EARLY", 0, now).
		AddRow("pl3", "ps2", "m3", "STANDARD", 0, now)
	mock.ExpectQuery("SELECT p.id, p.semester_id, p.module_id, p.category, p.position, p.created_at FROM semester_placements").
		WithArgs("u1").
		WillReturnRows(placementRows)

	plan, err := repo.FetchPlan(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, plan.Semesters, 2)
	assert.Len(t, plan.Semesters[0].Placements.Standard, 1)
	assert.Len(t, plan.Semesters[0].Placements.Early, 1)
	assert.Len(t, plan.Semesters[1].Placements.Standard, 1)
	assert.Empty(t, plan.Semesters[1].Placements.Alternative)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryFetchPlanEmpty(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectQuery("SELECT id, user_id, remote_semester_id, start_date, created_at FROM plan_semesters").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "remote_semester_id", "start_date", "created_at"}))

	plan, err := repo.FetchPlan(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, plan.Semesters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryUpsertPlacementRecreatesRow(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM semester_placements WHERE semester_id = $1 AND module_id = $2")).
		WithArgs("ps1", "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO semester_placements").
		WithArgs(sqlmock.AnyArg(), "ps1", "m1", "STANDARD", 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	placement := &models.SemesterPlacement{SemesterID: "ps1", ModuleID: "m1", Category: models.CategoryStandard, Position: 2}
	require.NoError(t, repo.UpsertPlacement(context.Background(), placement))
	assert.NotEmpty(t, placement.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryUpsertPlacementRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM semester_placements WHERE semester_id = $1 AND module_id = $2")).
		WithArgs("ps1", "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO semester_placements").
		WithArgs(sqlmock.AnyArg(), "ps1", "m1", "EARLY", 0, sqlmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	placement := &models.SemesterPlacement{SemesterID: "ps1", ModuleID: "m1", Category: models.CategoryEarly}
	require.Error(t, repo.UpsertPlacement(context.Background(), placement))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryRemovePlacement(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectExec("DELETE FROM semester_placements WHERE semester_id = ").
		WithArgs("ps1", "m1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.RemovePlacement(context.Background(), "u1", "ps1", "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryExistsSemesterForRemote(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM plan_semesters WHERE user_id = $1 AND remote_semester_id = $2 LIMIT 1")).
		WithArgs("u1", "sem-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsSemesterForRemote(context.Background(), "u1", "sem-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryNextPosition(t *testing.T) {
	db, mock, cleanup := newPlanRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(position) + 1, 0) FROM semester_placements WHERE semester_id = $1 AND category = $2")).
		WithArgs("ps1", models.CategoryEarly).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))

	position, err := repo.NextPosition(context.Background(), "ps1", models.CategoryEarly)
	require.NoError(t, err)
	assert.Equal(t, 3, position)
	assert.NoError(t, mock.ExpectationsWereMet())
}
