package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

// PlanRepository handles persistence for study plans and their placements.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository instantiates a plan repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// FetchPlan loads the full plan of a user: every semester with its placements
// grouped by category in stable position order.
func (r *PlanRepository) FetchPlan(ctx context.Context, userID string) (*models.StudyPlan, error) {
	const semestersQuery = `SELECT id, user_id, remote_semester_id, start_date, created_at FROM plan_semesters WHERE user_id = $1 ORDER BY start_date ASC`
	var semesters []models.PlanSemester
	if err := r.db.SelectContext(ctx, &semesters, semestersQuery, userID); err != nil {
		return nil, fmt.Errorf("fetch plan semesters: %w", err)
	}

	plan := &models.StudyPlan{UserID: userID, Semesters: semesters}
	if len(semesters) == 0 {
		return plan, nil
	}

	const placementsQuery = `SELECT p.id, p.semester_id, p.module_id, p.category, p.position, p.created_at FROM semester_placements p JOIN plan_semesters s ON s.id = p.semester_id WHERE s.user_id = $1 ORDER BY p.position ASC, p.created_at ASC`
	var placements []models.SemesterPlacement
	if err := r.db.SelectContext(ctx, &placements, placementsQuery, userID); err != nil {
		return nil, fmt.Errorf("fetch plan placements: %w", err)
	}

	bySemester := make(map[string]*models.PlanSemester, len(plan.Semesters))
	for i := range plan.Semesters {
		bySemester[plan.Semesters[i].ID] = &plan.Semesters[i]
	}
	for _, placement := range placements {
		if semester, ok := bySemester[placement.SemesterID]; ok {
			semester.Placements.Append(placement)
		}
	}
	return plan, nil
}

// CreateSemester appends a new semester to the user's plan. The remote
// semester id is unique per user; re-adding an existing one is a conflict.
func (r *PlanRepository) CreateSemester(ctx context.Context, semester *models.PlanSemester) error {
	if semester.ID == "" {
		semester.ID = uuid.NewString()
	}
	if semester.CreatedAt.IsZero() {
		semester.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO plan_semesters (id, user_id, remote_semester_id, start_date, created_at) VALUES (:id, :user_id, :remote_semester_id, :start_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, semester); err != nil {
		return fmt.Errorf("create plan semester: %w", err)
	}
	return nil
}

// ExistsSemesterForRemote checks whether the user already planned the remote semester.
func (r *PlanRepository) ExistsSemesterForRemote(ctx context.Context, userID, remoteSemesterID string) (bool, error) {
	const query = `SELECT 1 FROM plan_semesters WHERE user_id = $1 AND remote_semester_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, userID, remoteSemesterID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check planned semester: %w", err)
	}
	return true, nil
}

// UpsertPlacement stores a placement. A semester holds at most one placement
// per module; an existing row for the same (semester, module) is deleted and
// a fresh row inserted within one transaction, so a move recreates the
// placement instead of mutating it in place.
func (r *PlanRepository) UpsertPlacement(ctx context.Context, placement *models.SemesterPlacement) error {
	if placement.ID == "" {
		placement.ID = uuid.NewString()
	}
	if placement.CreatedAt.IsZero() {
		placement.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert placement begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const deleteQuery = `DELETE FROM semester_placements WHERE semester_id = $1 AND module_id = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, placement.SemesterID, placement.ModuleID); err != nil {
		return fmt.Errorf("upsert placement delete: %w", err)
	}
	const insertQuery = `INSERT INTO semester_placements (id, semester_id, module_id, category, position, created_at) VALUES (:id, :semester_id, :module_id, :category, :position, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, placement); err != nil {
		return fmt.Errorf("upsert placement insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert placement commit: %w", err)
	}
	return nil
}

// RemovePlacement deletes the placement of a module in a semester, scoped to
// the owning user. Returns the number of rows removed so callers can
// distinguish a stale target.
func (r *PlanRepository) RemovePlacement(ctx context.Context, userID, semesterID, moduleID string) (int64, error) {
	const query = `DELETE FROM semester_placements WHERE semester_id = $1 AND module_id = $2 AND semester_id IN (SELECT id FROM plan_semesters WHERE user_id = $3)`
	result, err := r.db.ExecContext(ctx, query, semesterID, moduleID, userID)
	if err != nil {
		return 0, fmt.Errorf("remove placement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove placement rows: %w", err)
	}
	return affected, nil
}

// NextPosition returns the next free position within a semester category.
func (r *PlanRepository) NextPosition(ctx context.Context, semesterID string, category models.AssessmentCategory) (int, error) {
	const query = `SELECT COALESCE(MAX(position) + 1, 0) FROM semester_placements WHERE semester_id = $1 AND category = $2`
	var position int
	if err := r.db.GetContext(ctx, &position, query, semesterID, category); err != nil {
		return 0, fmt.Errorf("next placement position: %w", err)
	}
	return position, nil
}
