package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

func TestOffsetLabelEnumeratedCases(t *testing.T) {
	cases := map[int]string{
		0:  "Current semester",
		1:  "Next semester",
		-1: "6 months ago",
		2:  "In 1 year",
		-2: "1 year ago",
		4:  "In 2 years",
		-4: "2 years ago",
		3:  "In 1.5 years",
		-3: "1.5 years ago",
		5:  "In 2.5 years",
		10: "In 5 years",
	}
	for offset, expected := range cases {
		assert.Equal(t, expected, OffsetLabel(offset), "offset %d", offset)
	}
}

func TestOffsetLabelTotalOverIntegers(t *testing.T) {
	for offset := -50; offset <= 50; offset++ {
		assert.NotEmpty(t, OffsetLabel(offset), "offset %d", offset)
	}
}

func TestHalfYearOffset(t *testing.T) {
	current := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		start    time.Time
		expected int
	}{
		{time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), -1},
		{time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), -4},
		{time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, HalfYearOffset(tc.start, current), "start %s", tc.start)
	}
}

func TestSemesterTitle(t *testing.T) {
	assert.Equal(t, "Spring 2026", SemesterTitle(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Fall 2025", SemesterTitle(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Spring 2027", SemesterTitle(time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTotalCreditsExcludesPublishedFailures(t *testing.T) {
	grade := 5.0
	modules := models.CategoryModules{
		Standard: []models.SemesterModule{
			plannedEntry("m1", 5),
			pastEntry("m2", 10, true, true),
			pastEntry("m3", 8, true, false),
		},
		Early: []models.SemesterModule{
			pastEntry("m4", 6, false, false),
		},
	}
	modules.Standard[2].Past.Assessment.Grade = &grade

	// m3 is published and failed, everything else counts.
	assert.Equal(t, 21, TotalCredits(modules))
}

func TestTotalCreditsMatchesSumRule(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 100; run++ {
		var modules models.CategoryModules
		expected := 0
		for i := 0; i < rng.Intn(20); i++ {
			credits := rng.Intn(15)
			category := models.Categories()[rng.Intn(4)]
			published := rng.Intn(2) == 0
			passed := rng.Intn(2) == 0

			var entry models.SemesterModule
			if rng.Intn(2) == 0 {
				entry = plannedEntry("m", credits)
				expected += credits
			} else {
				entry = pastEntry("m", credits, published, passed)
				if !(published && !passed) {
					expected += credits
				}
			}
			modules.SetCategory(category, append(modules.ForCategory(category), entry))
		}
		total := TotalCredits(modules)
		assert.GreaterOrEqual(t, total, 0)
		assert.Equal(t, expected, total)
	}
}

func plannedEntry(moduleID string, credits int) models.SemesterModule {
	return models.NewPlannedModule(
		models.SemesterPlacement{ID: "p-" + moduleID},
		models.Module{ID: moduleID, Credits: credits},
	)
}

func pastEntry(moduleID string, credits int, published, passed bool) models.SemesterModule {
	return models.NewPastModule("a-"+moduleID,
		models.Module{ID: moduleID, Credits: credits},
		models.Assessment{ID: "a-" + moduleID, Published: published, Passed: passed},
	)
}
