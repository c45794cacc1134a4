package service

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

// OffsetLabel renders a half-year offset from the current semester as a
// human-readable phrase. Total over all integers: the even cases collapse to
// whole years, odd magnitudes beyond one become fractional years.
func OffsetLabel(offset int) string {
	switch offset {
	case 0:
		return "Current semester"
	case 1:
		return "Next semester"
	case -1:
		return "6 months ago"
	}

	years := float64(offset) / 2
	rendered := strconv.FormatFloat(math.Abs(years), 'f', -1, 64)
	unit := "years"
	if math.Abs(years) == 1 {
		unit = "year"
	}
	if offset > 0 {
		return fmt.Sprintf("In %s %s", rendered, unit)
	}
	return fmt.Sprintf("%s %s ago", rendered, unit)
}

// HalfYearOffset computes the signed number of half-year steps between a
// semester start and the current semester start. Calendar drift of a few days
// is absorbed by rounding.
func HalfYearOffset(semesterStart, currentStart time.Time) int {
	months := (semesterStart.Year()-currentStart.Year())*12 + int(semesterStart.Month()) - int(currentStart.Month())
	return int(math.Round(float64(months) / 6))
}

// SemesterTitle derives the display title from the start date. Semesters
// starting in the first half of the year are spring terms.
func SemesterTitle(start time.Time) string {
	season := "Fall"
	if start.Month() >= time.February && start.Month() <= time.July {
		season = "Spring"
	}
	return fmt.Sprintf("%s %d", season, start.Year())
}

// TotalCredits sums module credits over every entry of a merged semester,
// excluding entries whose assessment is published and failed. Planned entries
// always count toward the total.
func TotalCredits(modules models.CategoryModules) int {
	total := 0
	for _, entry := range modules.All() {
		if entry.Kind == models.ModulePast && entry.Past != nil {
			assessment := entry.Past.Assessment
			if assessment.Published && !assessment.Passed {
				continue
			}
		}
		total += entry.Module.Credits
	}
	return total
}
