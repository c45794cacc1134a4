package models

import (
	"net/url"
	"strconv"
)

// ParseModuleFilter deserializes a catalog filter from URL query parameters.
// Absent or malformed flags default to off; filtering state lives entirely in
// this value object, never in ambient process state.
func ParseModuleFilter(values url.Values) ModuleFilter {
	flag := func(key string) bool {
		v, err := strconv.ParseBool(values.Get(key))
		return err == nil && v
	}
	return ModuleFilter{
		Query:           values.Get("q"),
		OnlyEarly:       flag("early"),
		OnlyAlternative: flag("alternative"),
		OnlyPassed:      flag("passed"),
		OnlyFailed:      flag("failed"),
		OnlyNotTaken:    flag("notTaken"),
		OnlyMySemester:  flag("mySemester"),
	}
}

// QueryValues serializes the filter back to URL query parameters. Only active
// flags are emitted, so round-tripping yields a canonical form.
func (f ModuleFilter) QueryValues() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	set := func(key string, on bool) {
		if on {
			values.Set(key, "true")
		}
	}
	set("early", f.OnlyEarly)
	set("alternative", f.OnlyAlternative)
	set("passed", f.OnlyPassed)
	set("failed", f.OnlyFailed)
	set("notTaken", f.OnlyNotTaken)
	set("mySemester", f.OnlyMySemester)
	return values
}
