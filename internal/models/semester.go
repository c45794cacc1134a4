package models

import "time"

// SemesterModuleKind tags the variants of a merged semester entry.
type SemesterModuleKind string

const (
	// ModulePlanned is a placement with no settled outcome yet.
	ModulePlanned SemesterModuleKind = "planned"
	// ModulePast is a realized assessment carried over from platform history.
	ModulePast SemesterModuleKind = "past"
)

// Assessment is the resolved outcome attached to a past semester entry.
type Assessment struct {
	ID           string     `json:"id"`
	Grade        *float64   `json:"grade"`
	Published    bool       `json:"published"`
	Passed       bool       `json:"passed"`
	Level        GradeLevel `json:"level"`
	SubmittedOn  *time.Time `json:"submitted_on"`
	ProposedDate *time.Time `json:"proposed_date"`
	AssessorID   string     `json:"assessor_id"`
	AssessorName string     `json:"assessor_name"`
}

// SemesterModule is a tagged union: exactly one of Planned or Past is set,
// matching Kind. Consumers must switch on Kind exhaustively; a nil check on
// the assessment is not the discriminator.
type SemesterModule struct {
	Kind    SemesterModuleKind `json:"kind"`
	ID      string             `json:"id"`
	Module  Module             `json:"module"`
	Planned *PlannedDetails    `json:"planned,omitempty"`
	Past    *PastDetails       `json:"past,omitempty"`
}

// PlannedDetails carries the local placement backing a planned entry.
type PlannedDetails struct {
	PlacementID string `json:"placement_id"`
}

// PastDetails carries the realized assessment backing a past entry.
type PastDetails struct {
	Assessment Assessment `json:"assessment"`
}

// NewPlannedModule builds the planned variant of a merged entry.
func NewPlannedModule(placement SemesterPlacement, module Module) SemesterModule {
	return SemesterModule{
		Kind:    ModulePlanned,
		ID:      module.ID,
		Module:  module,
		Planned: &PlannedDetails{PlacementID: placement.ID},
	}
}

// NewPastModule builds the past variant of a merged entry.
func NewPastModule(recordID string, module Module, assessment Assessment) SemesterModule {
	return SemesterModule{
		Kind:   ModulePast,
		ID:     recordID,
		Module: module,
		Past:   &PastDetails{Assessment: assessment},
	}
}

// CategoryModules holds the four ordered entry lists of a merged semester.
type CategoryModules struct {
	Early        []SemesterModule `json:"early"`
	Standard     []SemesterModule `json:"standard"`
	Alternative  []SemesterModule `json:"alternative"`
	Reassessment []SemesterModule `json:"reassessment"`
}

// ForCategory returns the entry list of the given category.
func (m *CategoryModules) ForCategory(category AssessmentCategory) []SemesterModule {
	switch category {
	case CategoryEarly:
		return m.Early
	case CategoryStandard:
		return m.Standard
	case CategoryAlternative:
		return m.Alternative
	case CategoryReassessment:
		return m.Reassessment
	}
	return nil
}

// SetCategory replaces the entry list of the given category.
func (m *CategoryModules) SetCategory(category AssessmentCategory, entries []SemesterModule) {
	switch category {
	case CategoryEarly:
		m.Early = entries
	case CategoryStandard:
		m.Standard = entries
	case CategoryAlternative:
		m.Alternative = entries
	case CategoryReassessment:
		m.Reassessment = entries
	}
}

// All returns every entry across the four categories.
func (m *CategoryModules) All() []SemesterModule {
	all := make([]SemesterModule, 0, len(m.Early)+len(m.Standard)+len(m.Alternative)+len(m.Reassessment))
	all = append(all, m.Early...)
	all = append(all, m.Standard...)
	all = append(all, m.Alternative...)
	all = append(all, m.Reassessment...)
	return all
}

// ContainsModule reports whether an entry for the given module id is present
// in the category list.
func (m *CategoryModules) ContainsModule(category AssessmentCategory, moduleID string) bool {
	for _, entry := range m.ForCategory(category) {
		if entry.Module.ID == moduleID {
			return true
		}
	}
	return false
}

// Semester is the merged per-semester view: local plan intent joined with
// remote calendar state and assessment history. Rebuilt in full on every
// aggregation pass, never patched incrementally.
type Semester struct {
	ID       string `json:"id"`
	RemoteID string `json:"remote_id"`
	Title    string `json:"title"`
	IsActive bool   `json:"is_active"`

	OffsetToCurrentSemester int    `json:"offset_to_current_semester"`
	OffsetLabel             string `json:"offset_label"`
	TotalCredits            int    `json:"total_credits"`

	CanRegisterEarly        bool `json:"can_register_early"`
	CanRegisterStandard     bool `json:"can_register_standard"`
	CanRegisterAlternative  bool `json:"can_register_alternative"`
	CanRegisterReassessment bool `json:"can_register_reassessment"`

	Modules CategoryModules `json:"modules"`
}

// IsPast reports whether the semester lies before the current one. Past
// semesters never accept new placements.
func (s *Semester) IsPast() bool {
	return s.OffsetToCurrentSemester < 0
}
