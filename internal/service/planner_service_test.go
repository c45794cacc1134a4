package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

type stubPlanSource struct {
	plan *models.StudyPlan
	err  error
}

func (s *stubPlanSource) FetchPlan(ctx context.Context, userID string) (*models.StudyPlan, error) {
	return s.plan, s.err
}

type stubPlatformSource struct {
	semesters    []models.PlatformSemester
	history      []models.AssessmentRecord
	semestersErr error
	historyErr   error
}

func (s *stubPlatformSource) FetchSemesters(ctx context.Context, token string) ([]models.PlatformSemester, error) {
	return s.semesters, s.semestersErr
}

func (s *stubPlatformSource) FetchAssessmentHistory(ctx context.Context, token string) ([]models.AssessmentRecord, error) {
	return s.history, s.historyErr
}

type stubScopeSource struct {
	modules []models.Module
	err     error
}

func (s *stubScopeSource) ModulesInScope(ctx context.Context, userID, token string) ([]models.Module, error) {
	return s.modules, s.err
}

var (
	springStart = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fallStart   = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	mergeNow    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newTestPlanner(plan *stubPlanSource, platform *stubPlatformSource, scope *stubScopeSource) *PlannerService {
	planner := NewPlannerService(plan, platform, scope, nil, nil, 0, zap.NewNop())
	planner.now = func() time.Time { return mergeNow }
	return planner
}

func openWindow() models.RegistrationWindow {
	start := mergeNow.Add(-time.Hour)
	end := mergeNow.Add(time.Hour)
	return models.RegistrationWindow{Start: &start, End: &end}
}

func TestMergedPlanPublishedAssessmentSupersedesPlacement(t *testing.T) {
	grade := 2.0
	plan := &stubPlanSource{plan: &models.StudyPlan{
		UserID: "u1",
		Semesters: []models.PlanSemester{{
			ID:               "ps1",
			UserID:           "u1",
			RemoteSemesterID: "sem-1",
			StartDate:        springStart,
			Placements: models.PlacementsByCategory{
				Standard: []models.SemesterPlacement{{ID: "pl1", SemesterID: "ps1", ModuleID: "m1", Category: models.CategoryStandard}},
			},
		}},
	}}
	platform := &stubPlatformSource{
		semesters: []models.PlatformSemester{{
			RemoteID:  "sem-1",
			IsActive:  true,
			StartDate: springStart,
			RegistrationWindows: models.RegistrationWindows{
				Standard: openWindow(),
			},
		}},
		history: []models.AssessmentRecord{{
			ID:               "a1",
			SemesterRemoteID: "sem-1",
			ModuleID:         "m1",
			Style:            models.StyleStandard,
			Type:             models.TypeRegular,
			Grade:            &grade,
			Published:        true,
		}},
	}
	scope := &stubScopeSource{modules: []models.Module{{ID: "m1", Identifier: "CS101", Credits: 5}}}

	semesters, err := newTestPlanner(plan, platform, scope).MergedPlan(context.Background(), "u1", "tok")
	require.NoError(t, err)
	require.Len(t, semesters, 1)

	merged := semesters[0]
	assert.True(t, merged.IsActive)
	assert.True(t, merged.CanRegisterStandard)
	assert.False(t, merged.CanRegisterEarly)
	assert.Equal(t, 0, merged.OffsetToCurrentSemester)
	assert.Equal(t, "Current semester", merged.OffsetLabel)
	assert.Equal(t, "Spring 2026", merged.Title)

	require.Len(t, merged.Modules.Standard, 1)
	entry := merged.Modules.Standard[0]
	assert.Equal(t, models.ModulePast, entry.Kind)
	require.NotNil(t, entry.Past)
	assert.True(t, entry.Past.Assessment.Passed)
	assert.Equal(t, models.LevelGood, entry.Past.Assessment.Level)
	assert.Equal(t, 5, merged.TotalCredits)
}

func TestMergedPlanSupersedesAcrossCategories(t *testing.T) {
	grade := 3.0
	plan := &stubPlanSource{plan: &models.StudyPlan{
		UserID: "u1",
		Semesters: []models.PlanSemester{{
			ID:               "ps1",
			RemoteSemesterID: "sem-1",
			StartDate:        springStart,
			Placements: models.PlacementsByCategory{
				Standard: []models.SemesterPlacement{{ID: "pl1", SemesterID: "ps1", ModuleID: "m1", Category: models.CategoryStandard}},
			},
		}},
	}}
	platform := &stubPlatformSource{
		semesters: []models.PlatformSemester{{RemoteID: "sem-1", IsActive: true, StartDate: springStart}},
		history: []models.AssessmentRecord{{
			ID:               "a1",
			SemesterRemoteID: "sem-1",
			ModuleID:         "m1",
			Style:            models.StyleAlternative,
			Type:             models.TypeRegular,
			Grade:            &grade,
			Published:        true,
		}},
	}
	scope := &stubScopeSource{modules: []models.Module{{ID: "m1", Credits: 5}}}

	semesters, err := newTestPlanner(plan, platform, scope).MergedPlan(context.Background(), "u1", "tok")
	require.NoError(t, err)
	require.Len(t, semesters, 1)

	// Exactly one entry for the module, the past one, in the alternative list.
	assert.Empty(t, semesters[0].Modules.Standard)
	require.Len(t, semesters[0].Modules.Alternative, 1)
	assert.Equal(t, models.ModulePast, semesters[0].Modules.Alternative[0].Kind)
}

func TestMergedPlanDropsUnresolvedAndUnknown(t *testing.T) {
	plan := &stubPlanSource{plan: &models.StudyPlan{
		UserID: "u1",
		Semesters: []models.PlanSemester{{
			ID:               "ps1",
			RemoteSemesterID: "sem-1",
			StartDate:        springStart,
			Placements: models.PlacementsByCategory{
				Standard: []models.SemesterPlacement{
					{ID: "pl1", SemesterID: "ps1", ModuleID: "m1", Category: models.CategoryStandard},
					{ID: "pl2", SemesterID: "ps1", ModuleID: "ghost", Category: models.CategoryStandard},
				},
			},
		}},
	}}
	platform := &stubPlatformSource{
		semesters: []models.PlatformSemester{{RemoteID: "sem-1", IsActive: true, StartDate: springStart}},
		history: []models.AssessmentRecord{
			{ID: "a1", SemesterRemoteID: "other-sem", ModuleID: "m1", Style: models.StyleStandard, Type: models.TypeRegular},
			{ID: "a2", SemesterRemoteID: "sem-1", ModuleID: "ghost", Style: models.StyleStandard, Type: models.TypeRegular},
		},
	}
	scope := &stubScopeSource{modules: []models.Module{{ID: "m1", Credits: 5}}}

	semesters, err := newTestPlanner(plan, platform, scope).MergedPlan(context.Background(), "u1", "tok")
	require.NoError(t, err)
	require.Len(t, semesters, 1)
	require.Len(t, semesters[0].Modules.Standard, 1)
	assert.Equal(t, models.ModulePlanned, semesters[0].Modules.Standard[0].Kind)
	assert.Equal(t, "m1", semesters[0].Modules.Standard[0].Module.ID)
}

func TestMergedPlanSemesterWithoutRemoteMetadata(t *testing.T) {
	plan := &stubPlanSource{plan: &models.StudyPlan{
		UserID: "u1",
		Semesters: []models.PlanSemester{
			{ID: "ps1", RemoteSemesterID: "sem-1", StartDate: springStart},
			{ID: "ps2", RemoteSemesterID: "sem-future", StartDate: springStart.AddDate(0, 6, 0)},
		},
	}}
	platform := &stubPlatformSource{
		semesters: []models.PlatformSemester{{
			RemoteID: "sem-1", IsActive: true, StartDate: springStart,
			RegistrationWindows: models.RegistrationWindows{Early: openWindow()},
		}},
	}
	scope := &stubScopeSource{}

	semesters, err := newTestPlanner(plan, platform, scope).MergedPlan(context.Background(), "u1", "tok")
	require.NoError(t, err)
	require.Len(t, semesters, 2)

	future := semesters[1]
	assert.False(t, future.IsActive)
	assert.False(t, future.CanRegisterEarly)
	assert.False(t, future.CanRegisterStandard)
	assert.Equal(t, 1, future.OffsetToCurrentSemester)
	assert.Equal(t, "Next semester", future.OffsetLabel)
	assert.Equal(t, "Fall 2026", future.Title)
}

func TestMergedPlanUpstreamFailureProducesNoPartialMerge(t *testing.T) {
	plan := &stubPlanSource{plan: &models.StudyPlan{UserID: "u1"}}
	platform := &stubPlatformSource{historyErr: errors.New("boom")}
	scope := &stubScopeSource{}

	semesters, err := newTestPlanner(plan, platform, scope).MergedPlan(context.Background(), "u1", "tok")
	require.Error(t, err)
	assert.Nil(t, semesters)
}

func TestMergedPlanOrderingIsDeterministic(t *testing.T) {
	plan := &stubPlanSource{plan: &models.StudyPlan{
		UserID: "u1",
		Semesters: []models.PlanSemester{{
			ID:               "ps1",
			RemoteSemesterID: "sem-1",
			StartDate:        springStart,
			Placements: models.PlacementsByCategory{
				Standard: []models.SemesterPlacement{
					{ID: "pl1", SemesterID: "ps1", ModuleID: "m1", Category: models.CategoryStandard, Position: 0},
					{ID: "pl2", SemesterID: "ps1", ModuleID: "m2", Category: models.CategoryStandard, Position: 1},
				},
			},
		}},
	}}
	platform := &stubPlatformSource{
		semesters: []models.PlatformSemester{{RemoteID: "sem-1", IsActive: true, StartDate: springStart}},
	}
	scope := &stubScopeSource{modules: []models.Module{{ID: "m1"}, {ID: "m2"}}}
	planner := newTestPlanner(plan, platform, scope)

	first, err := planner.MergedPlan(context.Background(), "u1", "tok")
	require.NoError(t, err)
	second, err := planner.MergedPlan(context.Background(), "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first[0].Modules.Standard, 2)
	assert.Equal(t, "m1", first[0].Modules.Standard[0].Module.ID)
	assert.Equal(t, "m2", first[0].Modules.Standard[1].Module.ID)
}

func TestMergedPlanUnmappedGradeAborts(t *testing.T) {
	badGrade := 9.5
	plan := &stubPlanSource{plan: &models.StudyPlan{
		UserID: "u1",
		Semesters: []models.PlanSemester{{
			ID: "ps1", RemoteSemesterID: "sem-1", StartDate: springStart,
		}},
	}}
	platform := &stubPlatformSource{
		semesters: []models.PlatformSemester{{RemoteID: "sem-1", IsActive: true, StartDate: springStart}},
		history: []models.AssessmentRecord{{
			ID: "a1", SemesterRemoteID: "sem-1", ModuleID: "m1",
			Style: models.StyleStandard, Type: models.TypeRegular,
			Grade: &badGrade, Published: true,
		}},
	}
	scope := &stubScopeSource{modules: []models.Module{{ID: "m1", Credits: 5}}}

	_, err := newTestPlanner(plan, platform, scope).MergedPlan(context.Background(), "u1", "tok")
	require.Error(t, err)
}
