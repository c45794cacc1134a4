package models

import (
	"fmt"

	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

// GradeLevel is the discrete performance band a raw grade maps onto.
type GradeLevel string

const (
	LevelNone         GradeLevel = "NONE"
	LevelExcellent    GradeLevel = "EXCELLENT"
	LevelGood         GradeLevel = "GOOD"
	LevelSatisfactory GradeLevel = "SATISFACTORY"
	LevelSufficient   GradeLevel = "SUFFICIENT"
	LevelFailed       GradeLevel = "FAILED"
)

// GradeOutcome is the resolved pass/fail verdict and level for a raw grade.
type GradeOutcome struct {
	Grade  *float64   `json:"grade"`
	Passed bool       `json:"passed"`
	Level  GradeLevel `json:"level"`
}

// Grades run on the 1.0 (best) to 5.0 (failed) scale; 4.0 is the pass bound.
const (
	gradeBest     = 1.0
	gradeWorst    = 5.0
	gradePassline = 4.0
)

// ResolveGrade maps a raw grade onto its outcome. A missing grade resolves to
// not-passed with no level. Values outside the grading scale are rejected:
// they signal a platform schema mismatch that must not be defaulted.
func ResolveGrade(grade *float64) (GradeOutcome, error) {
	if grade == nil {
		return GradeOutcome{Passed: false, Level: LevelNone}, nil
	}

	g := *grade
	if g < gradeBest || g > gradeWorst {
		return GradeOutcome{}, appErrors.Wrap(
			fmt.Errorf("grade %.2f outside scale [%.1f, %.1f]", g, gradeBest, gradeWorst),
			appErrors.ErrUnmappedValue.Code, appErrors.ErrUnmappedValue.Status, "unmapped grade value")
	}

	outcome := GradeOutcome{Grade: grade, Passed: g <= gradePassline}
	switch {
	case g <= 1.5:
		outcome.Level = LevelExcellent
	case g <= 2.5:
		outcome.Level = LevelGood
	case g <= 3.5:
		outcome.Level = LevelSatisfactory
	case g <= gradePassline:
		outcome.Level = LevelSufficient
	default:
		outcome.Level = LevelFailed
	}
	return outcome, nil
}
