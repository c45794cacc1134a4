package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

// SearchService filters the module catalog with an explicit filter context.
// Outcome filters (passed, failed, not taken, my semester) are answered from
// the merged plan, capability filters from the catalog itself.
type SearchService struct {
	scope   moduleScopeSource
	planner mergedPlanSource
	logger  *zap.Logger
}

// NewSearchService constructs a search service.
func NewSearchService(scope moduleScopeSource, planner mergedPlanSource, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{scope: scope, planner: planner, logger: logger}
}

// Search returns the catalog modules matching the filter.
func (s *SearchService) Search(ctx context.Context, userID, token string, filter models.ModuleFilter) ([]models.Module, error) {
	modules, err := s.scope.ModulesInScope(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	var outcomes *planOutcomes
	if filter.OnlyPassed || filter.OnlyFailed || filter.OnlyNotTaken || filter.OnlyMySemester {
		semesters, err := s.planner.MergedPlan(ctx, userID, token)
		if err != nil {
			return nil, err
		}
		outcomes = collectPlanOutcomes(semesters)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]models.Module, 0, len(modules))
	for _, module := range modules {
		if query != "" &&
			!strings.Contains(strings.ToLower(module.Title), query) &&
			!strings.Contains(strings.ToLower(module.Identifier), query) {
			continue
		}
		if filter.OnlyEarly && !module.AllowsEarlyAssessment {
			continue
		}
		if filter.OnlyAlternative && !module.AllowsAlternativeAssessment {
			continue
		}
		if outcomes != nil {
			if filter.OnlyPassed && !outcomes.passed[module.ID] {
				continue
			}
			if filter.OnlyFailed && !outcomes.failed[module.ID] {
				continue
			}
			if filter.OnlyNotTaken && outcomes.taken[module.ID] {
				continue
			}
			if filter.OnlyMySemester && !outcomes.mySemester[module.ID] {
				continue
			}
		}
		matched = append(matched, module)
	}
	return matched, nil
}

type planOutcomes struct {
	passed     map[string]bool
	failed     map[string]bool
	taken      map[string]bool
	mySemester map[string]bool
}

func collectPlanOutcomes(semesters []models.Semester) *planOutcomes {
	outcomes := &planOutcomes{
		passed:     map[string]bool{},
		failed:     map[string]bool{},
		taken:      map[string]bool{},
		mySemester: map[string]bool{},
	}
	for i := range semesters {
		for _, entry := range semesters[i].Modules.All() {
			id := entry.Module.ID
			if semesters[i].IsActive {
				outcomes.mySemester[id] = true
			}
			if entry.Kind != models.ModulePast || entry.Past == nil {
				continue
			}
			outcomes.taken[id] = true
			assessment := entry.Past.Assessment
			if !assessment.Published {
				continue
			}
			if assessment.Passed {
				outcomes.passed[id] = true
			} else {
				outcomes.failed[id] = true
			}
		}
	}
	return outcomes
}
