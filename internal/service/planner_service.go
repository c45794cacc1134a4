package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

type planSource interface {
	FetchPlan(ctx context.Context, userID string) (*models.StudyPlan, error)
}

type platformSource interface {
	FetchSemesters(ctx context.Context, token string) ([]models.PlatformSemester, error)
	FetchAssessmentHistory(ctx context.Context, token string) ([]models.AssessmentRecord, error)
}

type moduleScopeSource interface {
	ModulesInScope(ctx context.Context, userID, token string) ([]models.Module, error)
}

// PlannerService builds the merged per-semester view model from the local
// plan, the remote semester calendar, the module scope and the assessment
// history. The merged view is rebuilt from scratch on every pass.
type PlannerService struct {
	plan     planSource
	platform platformSource
	scope    moduleScopeSource
	cache    *CacheService
	metrics  *MetricsService
	planTTL  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewPlannerService constructs a planner service.
func NewPlannerService(plan planSource, platform platformSource, scope moduleScopeSource, cache *CacheService, metrics *MetricsService, planTTL time.Duration, logger *zap.Logger) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		plan:     plan,
		platform: platform,
		scope:    scope,
		cache:    cache,
		metrics:  metrics,
		planTTL:  planTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func planCacheKey(userID string) string {
	return fmt.Sprintf("plan:view:%s", userID)
}

// PlanCachePattern matches every cached merged view of a user.
func PlanCachePattern(userID string) string {
	return fmt.Sprintf("plan:view:%s*", userID)
}

// MergedPlan returns the full merged semester list for the user. The four
// inputs are fetched concurrently; the merge runs only once all have
// settled. Any upstream failure aborts the whole pass, a partially merged
// plan is never produced.
func (s *PlannerService) MergedPlan(ctx context.Context, userID, token string) ([]models.Semester, error) {
	key := planCacheKey(userID)
	var cached []models.Semester
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	var (
		wg        sync.WaitGroup
		plan      *models.StudyPlan
		remote    []models.PlatformSemester
		modules   []models.Module
		history   []models.AssessmentRecord
		fetchErrs [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		p, err := s.plan.FetchPlan(ctx, userID)
		if err != nil {
			fetchErrs[0] = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load study plan")
			return
		}
		plan = p
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		sems, err := s.platform.FetchSemesters(ctx, token)
		s.metrics.ObservePlatformCall("semesters", time.Since(start))
		remote, fetchErrs[1] = sems, err
	}()
	go func() {
		defer wg.Done()
		modules, fetchErrs[2] = s.scope.ModulesInScope(ctx, userID, token)
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		records, err := s.platform.FetchAssessmentHistory(ctx, token)
		s.metrics.ObservePlatformCall("assessments", time.Since(start))
		history, fetchErrs[3] = records, err
	}()
	wg.Wait()

	for _, err := range fetchErrs {
		if err != nil {
			return nil, err
		}
	}

	mergeStart := time.Now()
	semesters, err := s.merge(plan, remote, BuildModuleIndex(modules), history)
	s.metrics.ObserveMerge(time.Since(mergeStart))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, semesters, s.planTTL); err != nil {
		s.logger.Warn("plan cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return semesters, nil
}

// merge performs the synchronous aggregation pass over settled inputs.
func (s *PlannerService) merge(plan *models.StudyPlan, remote []models.PlatformSemester, index ModuleIndex, history []models.AssessmentRecord) ([]models.Semester, error) {
	now := s.now()

	remoteByID := make(map[string]models.PlatformSemester, len(remote))
	for _, r := range remote {
		remoteByID[r.RemoteID] = r
	}
	currentStart := currentSemesterStart(now, remote)

	local := make([]models.PlanSemester, len(plan.Semesters))
	copy(local, plan.Semesters)
	sort.SliceStable(local, func(i, j int) bool {
		return local[i].StartDate.Before(local[j].StartDate)
	})

	semesters := make([]models.Semester, 0, len(local))
	byRemoteID := make(map[string]int, len(local))

	for _, planSemester := range local {
		startDate := planSemester.StartDate
		merged := models.Semester{
			ID:       planSemester.ID,
			RemoteID: planSemester.RemoteSemesterID,
		}

		if remoteSemester, ok := remoteByID[planSemester.RemoteSemesterID]; ok {
			startDate = remoteSemester.StartDate
			merged.IsActive = remoteSemester.IsActive
			windows := remoteSemester.RegistrationWindows
			merged.CanRegisterEarly = windows.Early.OpenAt(now)
			merged.CanRegisterStandard = windows.Standard.OpenAt(now)
			merged.CanRegisterAlternative = windows.Alternative.OpenAt(now)
			merged.CanRegisterReassessment = windows.Reassessment.OpenAt(now)
		}

		merged.Title = SemesterTitle(startDate)
		merged.OffsetToCurrentSemester = HalfYearOffset(startDate, currentStart)
		merged.OffsetLabel = OffsetLabel(merged.OffsetToCurrentSemester)

		for _, category := range models.Categories() {
			placements := planSemester.Placements.ForCategory(category)
			entries := make([]models.SemesterModule, 0, len(placements))
			for _, placement := range placements {
				module, ok := index.Resolve(placement.ModuleID)
				if !ok {
					s.logger.Warn("dropping placement with unresolved module",
						zap.String("placement_id", placement.ID), zap.String("module_id", placement.ModuleID))
					continue
				}
				entries = append(entries, models.NewPlannedModule(placement, module))
			}
			merged.Modules.SetCategory(category, entries)
		}

		semesters = append(semesters, merged)
		if planSemester.RemoteSemesterID != "" {
			byRemoteID[planSemester.RemoteSemesterID] = len(semesters) - 1
		}
	}

	for _, record := range history {
		idx, ok := byRemoteID[record.SemesterRemoteID]
		if !ok {
			s.logger.Warn("skipping history record for unknown semester",
				zap.String("record_id", record.ID), zap.String("semester_remote_id", record.SemesterRemoteID))
			continue
		}
		module, ok := index.Resolve(record.ModuleID)
		if !ok {
			s.logger.Warn("skipping history record with unresolved module",
				zap.String("record_id", record.ID), zap.String("module_id", record.ModuleID))
			continue
		}

		outcome, err := models.ResolveGrade(record.Grade)
		if err != nil {
			return nil, err
		}
		entry := models.NewPastModule(record.ID, module, models.Assessment{
			ID:           record.ID,
			Grade:        record.Grade,
			Published:    record.Published,
			Passed:       outcome.Passed,
			Level:        outcome.Level,
			SubmittedOn:  record.SubmittedOn,
			ProposedDate: record.ProposedDate,
			AssessorID:   record.AssessorID,
			AssessorName: record.AssessorName,
		})
		foldPastEntry(&semesters[idx].Modules, record.Category(), entry)
	}

	for i := range semesters {
		semesters[i].TotalCredits = TotalCredits(semesters[i].Modules)
	}
	return semesters, nil
}

// foldPastEntry places a realized assessment into the destination category.
// A planned entry for the same module anywhere in the semester is superseded:
// in the destination category the past entry takes its slot, elsewhere the
// planned entry is removed and the past entry appended.
func foldPastEntry(modules *models.CategoryModules, destination models.AssessmentCategory, entry models.SemesterModule) {
	placed := false
	for _, category := range models.Categories() {
		list := modules.ForCategory(category)
		for i, existing := range list {
			if existing.Kind != models.ModulePlanned || existing.Module.ID != entry.Module.ID {
				continue
			}
			if category == destination {
				list[i] = entry
				placed = true
			} else {
				list = append(list[:i], list[i+1:]...)
				modules.SetCategory(category, list)
			}
			break
		}
	}
	if !placed {
		modules.SetCategory(destination, append(modules.ForCategory(destination), entry))
	}
}

// currentSemesterStart anchors offset computation on the active remote
// semester. Without one, the semester period containing the given instant is
// derived from the calendar.
func currentSemesterStart(now time.Time, remote []models.PlatformSemester) time.Time {
	for _, r := range remote {
		if r.IsActive {
			return r.StartDate
		}
	}
	year := now.Year()
	if now.Month() >= time.February && now.Month() <= time.July {
		return time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC)
	}
	if now.Month() == time.January {
		return time.Date(year-1, time.August, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.August, 1, 0, 0, 0, 0, time.UTC)
}
