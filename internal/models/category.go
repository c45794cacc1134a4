package models

import (
	"fmt"

	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

// AssessmentCategory identifies one of the four mutually exclusive tracks a
// module's evaluation can be placed in within a semester.
type AssessmentCategory string

const (
	CategoryEarly        AssessmentCategory = "EARLY"
	CategoryStandard     AssessmentCategory = "STANDARD"
	CategoryAlternative  AssessmentCategory = "ALTERNATIVE"
	CategoryReassessment AssessmentCategory = "REASSESSMENT"
)

// Categories returns all assessment categories in display order.
func Categories() []AssessmentCategory {
	return []AssessmentCategory{CategoryEarly, CategoryStandard, CategoryAlternative, CategoryReassessment}
}

// ParseAssessmentCategory maps a raw string onto a known category. Unknown
// values indicate a schema mismatch and are rejected rather than defaulted.
func ParseAssessmentCategory(raw string) (AssessmentCategory, error) {
	switch AssessmentCategory(raw) {
	case CategoryEarly, CategoryStandard, CategoryAlternative, CategoryReassessment:
		return AssessmentCategory(raw), nil
	}
	return "", appErrors.Wrap(fmt.Errorf("unknown assessment category %q", raw), appErrors.ErrUnmappedValue.Code, appErrors.ErrUnmappedValue.Status, "unknown assessment category")
}
