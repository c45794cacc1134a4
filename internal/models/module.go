package models

// Module is a catalog entry from the learning platform's module scope.
// Immutable once fetched for a scope; the scope cache is rebuilt per session.
type Module struct {
	ID                          string `json:"id"`
	Identifier                  string `json:"identifier"`
	Title                       string `json:"title"`
	Credits                     int    `json:"credits"`
	AllowsEarlyAssessment       bool   `json:"allows_early_assessment"`
	AllowsAlternativeAssessment bool   `json:"allows_alternative_assessment"`
}

// ModuleFilter is the explicit search context for catalog queries. It is
// parsed from URL parameters at the application boundary and passed by value;
// there is no ambient filter state.
type ModuleFilter struct {
	Query           string `json:"q,omitempty"`
	OnlyEarly       bool   `json:"early,omitempty"`
	OnlyAlternative bool   `json:"alternative,omitempty"`
	OnlyPassed      bool   `json:"passed,omitempty"`
	OnlyFailed      bool   `json:"failed,omitempty"`
	OnlyNotTaken    bool   `json:"not_taken,omitempty"`
	OnlyMySemester  bool   `json:"my_semester,omitempty"`
}
