package models

import "time"

// SemesterPlacement assigns one module to one semester and one assessment
// category in the locally persisted plan. A move between categories is a
// delete plus a recreate, never a partial update.
type SemesterPlacement struct {
	ID         string             `db:"id" json:"id"`
	SemesterID string             `db:"semester_id" json:"semester_id"`
	ModuleID   string             `db:"module_id" json:"module_id"`
	Category   AssessmentCategory `db:"category" json:"category"`
	Position   int                `db:"position" json:"position"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// PlanSemester is one locally known semester with its placements grouped by
// category, each group in stable position order.
type PlanSemester struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"-"`
	RemoteSemesterID string    `db:"remote_semester_id" json:"remote_semester_id"`
	StartDate        time.Time `db:"start_date" json:"start_date"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`

	Placements PlacementsByCategory `db:"-" json:"placements"`
}

// PlacementsByCategory holds the four ordered placement lists of a semester.
type PlacementsByCategory struct {
	Early        []SemesterPlacement `json:"early"`
	Standard     []SemesterPlacement `json:"standard"`
	Alternative  []SemesterPlacement `json:"alternative"`
	Reassessment []SemesterPlacement `json:"reassessment"`
}

// ForCategory returns the placement list of the given category.
func (p *PlacementsByCategory) ForCategory(category AssessmentCategory) []SemesterPlacement {
	switch category {
	case CategoryEarly:
		return p.Early
	case CategoryStandard:
		return p.Standard
	case CategoryAlternative:
		return p.Alternative
	case CategoryReassessment:
		return p.Reassessment
	}
	return nil
}

// Append adds a placement to its category list preserving insertion order.
func (p *PlacementsByCategory) Append(placement SemesterPlacement) {
	switch placement.Category {
	case CategoryEarly:
		p.Early = append(p.Early, placement)
	case CategoryStandard:
		p.Standard = append(p.Standard, placement)
	case CategoryAlternative:
		p.Alternative = append(p.Alternative, placement)
	case CategoryReassessment:
		p.Reassessment = append(p.Reassessment, placement)
	}
}

// StudyPlan is the full locally persisted plan of one user.
type StudyPlan struct {
	UserID    string         `json:"user_id"`
	Semesters []PlanSemester `json:"semesters"`
}
