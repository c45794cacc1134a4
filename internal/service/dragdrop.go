package service

import (
	"github.com/studyplan-dev/study-planner-api/internal/models"
)

// DragState is the explicit finite state of a drag gesture: either idle or
// carrying exactly one module. Passed into the evaluator so the rules stay
// pure and independently testable.
type DragState struct {
	module *models.Module
}

// IdleDrag is the resting state with nothing lifted.
func IdleDrag() DragState {
	return DragState{}
}

// Dragging lifts the given module.
func Dragging(module models.Module) DragState {
	return DragState{module: &module}
}

// Active reports whether a module is currently lifted.
func (s DragState) Active() bool {
	return s.module != nil
}

// Module returns the lifted module. Only meaningful when Active.
func (s DragState) Module() models.Module {
	if s.module == nil {
		return models.Module{}
	}
	return *s.module
}

// DropReason explains a drop verdict.
type DropReason string

const (
	ReasonIdle                  DropReason = "NO_ACTIVE_DRAG"
	ReasonPastSemester          DropReason = "PAST_SEMESTER"
	ReasonDuplicateModule       DropReason = "MODULE_ALREADY_PLACED"
	ReasonEarlyNotAllowed       DropReason = "EARLY_ASSESSMENT_NOT_ALLOWED"
	ReasonAlternativeNotAllowed DropReason = "ALTERNATIVE_ASSESSMENT_NOT_ALLOWED"
)

// DropVerdict is the evaluator's answer for one candidate target.
type DropVerdict struct {
	Accepts bool       `json:"accepts"`
	Inert   bool       `json:"inert"`
	Reason  DropReason `json:"reason,omitempty"`
}

// EvaluateDrop decides whether the candidate (semester, category) target
// accepts the current drag. Rules run in order, first match wins:
// an idle drag makes every target inert; a past semester rejects; a module
// already present in the target category rejects; the early and alternative
// categories reject modules lacking the matching capability flag.
func EvaluateDrop(state DragState, semester *models.Semester, category models.AssessmentCategory) DropVerdict {
	if !state.Active() {
		return DropVerdict{Inert: true, Reason: ReasonIdle}
	}
	module := state.Module()

	if semester.IsPast() {
		return DropVerdict{Reason: ReasonPastSemester}
	}
	if semester.Modules.ContainsModule(category, module.ID) {
		return DropVerdict{Reason: ReasonDuplicateModule}
	}
	if category == models.CategoryEarly && !module.AllowsEarlyAssessment {
		return DropVerdict{Reason: ReasonEarlyNotAllowed}
	}
	if category == models.CategoryAlternative && !module.AllowsAlternativeAssessment {
		return DropVerdict{Reason: ReasonAlternativeNotAllowed}
	}
	return DropVerdict{Accepts: true}
}
