package models

import (
	"fmt"
	"time"

	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

// RegistrationWindow is one category's registration interval on a remote
// semester. Either bound may be absent.
type RegistrationWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// OpenAt reports whether the window is open at the given instant. The window
// is half-open: open on [start, end), closed exactly at end. Missing bounds
// fail closed.
func (w RegistrationWindow) OpenAt(now time.Time) bool {
	if w.Start == nil || w.End == nil {
		return false
	}
	return !now.Before(*w.Start) && now.Before(*w.End)
}

// RegistrationWindows groups the four category-specific windows of a
// semester. The windows are independent; they may overlap or all be closed.
type RegistrationWindows struct {
	Early        RegistrationWindow `json:"early"`
	Standard     RegistrationWindow `json:"standard"`
	Alternative  RegistrationWindow `json:"alternative"`
	Reassessment RegistrationWindow `json:"reassessment"`
}

// PlatformSemester is the remote calendar record for one semester. Read-only,
// fetched fresh per aggregation, never persisted locally.
type PlatformSemester struct {
	RemoteID            string              `json:"id"`
	IsActive            bool                `json:"is_active"`
	StartDate           time.Time           `json:"start_date"`
	RegistrationWindows RegistrationWindows `json:"registration_windows"`
}

// AssessmentStyle distinguishes how an assessment was conducted.
type AssessmentStyle string

const (
	StyleStandard    AssessmentStyle = "STANDARD"
	StyleAlternative AssessmentStyle = "ALTERNATIVE"
)

// ParseAssessmentStyle validates a raw style value. Unknown values are a
// catalog mismatch and abort the boundary that observes them.
func ParseAssessmentStyle(raw string) (AssessmentStyle, error) {
	switch AssessmentStyle(raw) {
	case StyleStandard, StyleAlternative:
		return AssessmentStyle(raw), nil
	}
	return "", appErrors.Wrap(fmt.Errorf("unknown assessment style %q", raw), appErrors.ErrUnmappedValue.Code, appErrors.ErrUnmappedValue.Status, "unknown assessment style")
}

// AssessmentType distinguishes when in the semester the assessment happened.
type AssessmentType string

const (
	TypeRegular      AssessmentType = "REGULAR"
	TypeEarly        AssessmentType = "EARLY"
	TypeReassessment AssessmentType = "REASSESSMENT"
)

// ParseAssessmentType validates a raw type value.
func ParseAssessmentType(raw string) (AssessmentType, error) {
	switch AssessmentType(raw) {
	case TypeRegular, TypeEarly, TypeReassessment:
		return AssessmentType(raw), nil
	}
	return "", appErrors.Wrap(fmt.Errorf("unknown assessment type %q", raw), appErrors.ErrUnmappedValue.Code, appErrors.ErrUnmappedValue.Status, "unknown assessment type")
}

// AssessmentRecord is one historical assessment of one module in one
// semester, as reported by the learning platform. Immutable once published.
type AssessmentRecord struct {
	ID               string          `json:"id"`
	SemesterRemoteID string          `json:"semester_id"`
	ModuleID         string          `json:"module_id"`
	Style            AssessmentStyle `json:"style"`
	Type             AssessmentType  `json:"type"`
	Grade            *float64        `json:"grade"`
	Published        bool            `json:"published"`
	SubmittedOn      *time.Time      `json:"submitted_on"`
	ProposedDate     *time.Time      `json:"proposed_date"`
	AssessorID       string          `json:"assessor_id"`
	AssessorName     string          `json:"assessor_name"`
}

// Category selects the plan category a history record folds into. Precedence
// is fixed: alternative style over reassessment type over early type over the
// standard default, so an alternative-style reassessment lands in alternative.
func (r AssessmentRecord) Category() AssessmentCategory {
	if r.Style == StyleAlternative {
		return CategoryAlternative
	}
	if r.Type == TypeReassessment {
		return CategoryReassessment
	}
	if r.Type == TypeEarly {
		return CategoryEarly
	}
	return CategoryStandard
}
