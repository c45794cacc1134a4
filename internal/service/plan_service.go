package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
	"github.com/studyplan-dev/study-planner-api/pkg/jobs"
)

type planStore interface {
	CreateSemester(ctx context.Context, semester *models.PlanSemester) error
	ExistsSemesterForRemote(ctx context.Context, userID, remoteSemesterID string) (bool, error)
	UpsertPlacement(ctx context.Context, placement *models.SemesterPlacement) error
	RemovePlacement(ctx context.Context, userID, semesterID, moduleID string) (int64, error)
	NextPosition(ctx context.Context, semesterID string, category models.AssessmentCategory) (int, error)
}

type mergedPlanSource interface {
	MergedPlan(ctx context.Context, userID, token string) ([]models.Semester, error)
}

// JobTypePlanCacheInvalidate asks the background queue to drop cached merged
// views matching the payload pattern.
const JobTypePlanCacheInvalidate = "plan-cache-invalidate"

// AddSemesterRequest appends a semester to the local plan.
type AddSemesterRequest struct {
	RemoteSemesterID string    `json:"remote_semester_id" validate:"required"`
	StartDate        time.Time `json:"start_date" validate:"required"`
}

// PlacementRequest places one module into one semester category.
type PlacementRequest struct {
	SemesterID string `json:"semester_id" validate:"required"`
	ModuleID   string `json:"module_id" validate:"required"`
	Category   string `json:"category" validate:"required"`
}

// RemovePlacementRequest removes a module from a semester.
type RemovePlacementRequest struct {
	SemesterID string `json:"semester_id" validate:"required"`
	ModuleID   string `json:"module_id" validate:"required"`
}

// DropTarget is one (semester, category) candidate with its verdict for the
// module under evaluation.
type DropTarget struct {
	SemesterID string                    `json:"semester_id"`
	Category   models.AssessmentCategory `json:"category"`
	Verdict    DropVerdict               `json:"verdict"`
}

// PlanService owns plan mutations. Every placement write passes the drop
// evaluator against the freshly merged view before it reaches the store.
type PlanService struct {
	repo      planStore
	planner   mergedPlanSource
	scope     moduleScopeSource
	validator *validator.Validate
	queue     *jobs.Queue
	logger    *zap.Logger
}

// NewPlanService creates a new plan service instance.
func NewPlanService(repo planStore, planner mergedPlanSource, scope moduleScopeSource, validate *validator.Validate, queue *jobs.Queue, logger *zap.Logger) *PlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{repo: repo, planner: planner, scope: scope, validator: validate, queue: queue, logger: logger}
}

// AddSemester appends a new semester to the user's plan.
func (s *PlanService) AddSemester(ctx context.Context, userID string, req AddSemesterRequest) (*models.PlanSemester, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid semester payload")
	}

	exists, err := s.repo.ExistsSemesterForRemote(ctx, userID, req.RemoteSemesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check planned semesters")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "semester already planned")
	}

	semester := &models.PlanSemester{
		UserID:           userID,
		RemoteSemesterID: req.RemoteSemesterID,
		StartDate:        req.StartDate,
	}
	if err := s.repo.CreateSemester(ctx, semester); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create semester")
	}

	s.invalidatePlanCache(userID)
	return semester, nil
}

// PlaceModule upserts one placement after the drop evaluator accepts the
// target. Rejected drops never reach the store.
func (s *PlanService) PlaceModule(ctx context.Context, userID, token string, req PlacementRequest) (*models.SemesterPlacement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement payload")
	}
	category, err := models.ParseAssessmentCategory(req.Category)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assessment category")
	}

	semester, module, err := s.resolveTarget(ctx, userID, token, req.SemesterID, req.ModuleID)
	if err != nil {
		return nil, err
	}

	verdict := EvaluateDrop(Dragging(*module), semester, category)
	if !verdict.Accepts {
		if verdict.Reason == ReasonDuplicateModule {
			return nil, appErrors.Clone(appErrors.ErrDropRejected, "module already placed in this category")
		}
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "target does not accept this module")
	}

	position, err := s.repo.NextPosition(ctx, req.SemesterID, category)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to determine placement position")
	}
	placement := &models.SemesterPlacement{
		SemesterID: req.SemesterID,
		ModuleID:   req.ModuleID,
		Category:   category,
		Position:   position,
	}
	if err := s.repo.UpsertPlacement(ctx, placement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store placement")
	}

	s.invalidatePlanCache(userID)
	return placement, nil
}

// RemoveModule deletes the module's placement from a semester.
func (s *PlanService) RemoveModule(ctx context.Context, userID string, req RemovePlacementRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid removal payload")
	}
	affected, err := s.repo.RemovePlacement(ctx, userID, req.SemesterID, req.ModuleID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove placement")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "placement not found")
	}
	s.invalidatePlanCache(userID)
	return nil
}

// DropTargets evaluates every (semester, category) pair of the merged plan
// against the module being dragged.
func (s *PlanService) DropTargets(ctx context.Context, userID, token, moduleID string) ([]DropTarget, error) {
	modules, err := s.scope.ModulesInScope(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	module, ok := BuildModuleIndex(modules).Resolve(moduleID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "module not in scope")
	}

	semesters, err := s.planner.MergedPlan(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	state := Dragging(module)
	targets := make([]DropTarget, 0, len(semesters)*len(models.Categories()))
	for i := range semesters {
		for _, category := range models.Categories() {
			targets = append(targets, DropTarget{
				SemesterID: semesters[i].ID,
				Category:   category,
				Verdict:    EvaluateDrop(state, &semesters[i], category),
			})
		}
	}
	return targets, nil
}

func (s *PlanService) resolveTarget(ctx context.Context, userID, token, semesterID, moduleID string) (*models.Semester, *models.Module, error) {
	semesters, err := s.planner.MergedPlan(ctx, userID, token)
	if err != nil {
		return nil, nil, err
	}
	var semester *models.Semester
	for i := range semesters {
		if semesters[i].ID == semesterID {
			semester = &semesters[i]
			break
		}
	}
	if semester == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "semester not in plan")
	}

	modules, err := s.scope.ModulesInScope(ctx, userID, token)
	if err != nil {
		return nil, nil, err
	}
	module, ok := BuildModuleIndex(modules).Resolve(moduleID)
	if !ok {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "module not in scope")
	}
	return semester, &module, nil
}

func (s *PlanService) invalidatePlanCache(userID string) {
	if s.queue == nil {
		return
	}
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    JobTypePlanCacheInvalidate,
		Payload: PlanCachePattern(userID),
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue plan cache invalidation", zap.String("user_id", userID), zap.Error(err))
	}
}
