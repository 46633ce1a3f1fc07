package convert

import (
	"strings"

	"bibmap/internal/metadata"
)

// Generic kinds used when a kind has no mapping.
const (
	GenericTargetKind = "document"
	GenericSourceKind = "misc"
)

// Thesis sub-kinds carried as a genre on the target side.
const (
	GenreMastersThesis = "Master's thesis"
	GenrePhDThesis     = "PhD thesis"
)

// genreKeywords maps the keyword values of the BibLaTeX type field to genre
// phrases.
var genreKeywords = map[string]string{
	"mathesis":   GenreMastersThesis,
	"phdthesis":  GenrePhDThesis,
	"candthesis": "Candidate thesis",
	"techreport": "technical report",
	"resreport":  "research report",
	"software":   "computer software",
	"datacd":     "CD-ROM",
	"audiocd":    "audio CD",
}

// kindGenres gives the genre implied by legacy thesis and report kinds.
var kindGenres = map[string]string{
	"mastersthesis": GenreMastersThesis,
	"phdthesis":     GenrePhDThesis,
	"techreport":    "technical report",
}

// EntryType maps the entry kind through the type table. Unmapped kinds fall
// back to the generic kind of the other side.
func EntryType(types *metadata.TypeTable) *Converter {
	return &Converter{
		Name:        "ENTRY_TYPE",
		Description: "entry kind <-> canonical kind",
		SourceArity: 1,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			kind := strings.ToLower(stringArg(values, 0))
			if kind == "" {
				return nil, false
			}

			if mapped, ok := types.ToTarget(kind); ok {
				return one(mapped)
			}

			return one(GenericTargetKind)
		},
		ToSource: func(values []any) ([]any, bool) {
			kind := stringArg(values, 0)
			if kind == "" {
				return nil, false
			}

			if mapped, ok := types.ToSource(kind); ok {
				return one(mapped)
			}

			return one(GenericSourceKind)
		},
	}
}

// Type maps a BibTeX kind to a target kind plus, for thesis kinds, a genre.
// In reverse the genre selects the thesis sub-kind.
func Type(types *metadata.TypeTable) *Converter {
	return &Converter{
		Name:        "TYPE",
		Description: "kind <-> (type, genre)",
		SourceArity: 1,
		TargetArity: 2,
		ToTarget: func(values []any) ([]any, bool) {
			kind := strings.ToLower(stringArg(values, 0))
			if kind == "" {
				return nil, false
			}

			mapped, ok := types.ToTarget(kind)
			if !ok {
				mapped = GenericTargetKind
			}

			switch kind {
			case "mastersthesis":
				return []any{mapped, GenreMastersThesis}, true
			case "phdthesis":
				return []any{mapped, GenrePhDThesis}, true
			default:
				return []any{mapped, nil}, true
			}
		},
		ToSource: func(values []any) ([]any, bool) {
			kind := stringArg(values, 0)
			genre := stringArg(values, 1)

			switch {
			case strings.EqualFold(genre, GenreMastersThesis):
				return one("mastersthesis")
			case strings.EqualFold(genre, GenrePhDThesis):
				return one("phdthesis")
			case kind == "":
				return nil, false
			}

			if mapped, ok := types.ToSource(kind); ok {
				return one(mapped)
			}

			return one(GenericSourceKind)
		},
	}
}

// Genre derives the target genre from the BibLaTeX type field, the entry
// subtype, or the legacy kind, in that order. Known keywords become phrases;
// other type values pass through as free text.
func Genre() *Converter {
	return &Converter{
		Name:        "GENRE",
		Description: "(kind, entrysubtype, type) <-> genre",
		SourceArity: 3,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			if t := stringArg(values, 2); t != "" {
				if g, ok := genreKeywords[strings.ToLower(t)]; ok {
					return one(g)
				}

				return one(t)
			}

			if sub := stringArg(values, 1); sub != "" {
				return one(sub)
			}

			if g, ok := kindGenres[strings.ToLower(stringArg(values, 0))]; ok {
				return one(g)
			}

			return nil, false
		},
		ToSource: func(values []any) ([]any, bool) {
			genre := stringArg(values, 0)
			if genre == "" {
				return nil, false
			}

			for key, phrase := range genreKeywords {
				if strings.EqualFold(phrase, genre) {
					return []any{nil, nil, key}, true
				}
			}

			return []any{nil, nil, genre}, true
		},
	}
}
