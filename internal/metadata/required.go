package metadata

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"bibmap/internal/record"
)

// Requirement is one required-field slot. A single name must be present; a
// group of alternatives ("author/editor") is satisfied by any of them.
type Requirement []string

// UnmarshalJSON accepts either "field" or ["field", "alternative"].
func (r *Requirement) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Requirement{single}
		return nil
	}

	var group []string
	if err := json.Unmarshal(data, &group); err != nil {
		return fmt.Errorf("requirement must be a string or list of strings: %w", err)
	}

	*r = group

	return nil
}

// IsGroup reports whether the slot has alternatives.
func (r Requirement) IsGroup() bool {
	return len(r) > 1
}

// SatisfiedBy reports whether the record has at least one of the fields.
func (r Requirement) SatisfiedBy(rec *record.Record) bool {
	for _, f := range r {
		if rec.Has(f) {
			return true
		}
	}

	return false
}

// String renders the slot the way the documentation does: "author/editor".
func (r Requirement) String() string {
	return strings.Join(r, "/")
}

// RequiredTable holds the required-field sets per source kind.
type RequiredTable struct {
	byKind map[string][]Requirement
}

// Required returns the required-field set of a source kind.
func (t *RequiredTable) Required(kind string) ([]Requirement, bool) {
	if t == nil {
		return nil, false
	}

	reqs, ok := t.byKind[kind]

	return reqs, ok
}

// Missing lists the requirements the record does not satisfy for its kind.
func (t *RequiredTable) Missing(rec *record.Record) []Requirement {
	reqs, _ := t.Required(rec.Type)

	var missing []Requirement

	for _, r := range reqs {
		if !r.SatisfiedBy(rec) {
			missing = append(missing, r)
		}
	}

	return missing
}

// The BibLaTeX table shares identical sets between kinds through an index;
// the BibTeX table lists them per kind.
type indexedRequired struct {
	Values [][]Requirement `json:"values"`
	Types  map[string]int  `json:"types"`
}

func loadRequired(d Dialect) (*RequiredTable, error) {
	t := &RequiredTable{byKind: map[string][]Requirement{}}

	if d == BibLaTeX {
		var raw indexedRequired
		if err := readJSON(d, "required.json", &raw); err != nil {
			return nil, err
		}

		for kind, idx := range raw.Types {
			if idx < 0 || idx >= len(raw.Values) {
				return nil, fmt.Errorf("required fields of %q: index %d out of range", kind, idx)
			}

			t.byKind[kind] = raw.Values[idx]
		}

		return t, nil
	}

	if err := readJSON(d, "required.json", &t.byKind); err != nil {
		return nil, err
	}

	return t, nil
}
