package convert

import "bibmap/internal/metadata"

// NewBibLaTeXRegistry returns the converters used by the BibLaTeX table.
func NewBibLaTeXRegistry(types *metadata.TypeTable) *Registry {
	return NewRegistry().MustRegister(
		Pick(),
		Label(),
		Date(),
		YearMonth(),
		Names(),
		Pages(),
		StandardNumbers(),
		Eprint(),
		EntryType(types),
		Genre(),
		RichText(),
		Status(),
		URL(),
		HowPublished(),
	)
}

// NewBibTeXRegistry returns the converters used by the BibTeX table.
func NewBibTeXRegistry(types *metadata.TypeTable) *Registry {
	return NewRegistry().MustRegister(
		Pick(),
		Label(),
		YearMonth(),
		Names(),
		Pages(),
		Type(types),
		HowPublished(),
		RichText(),
	)
}

// NewRegistryFor returns the registry of a dialect.
func NewRegistryFor(t *metadata.Tables) *Registry {
	if t.Dialect == metadata.BibTeX {
		return NewBibTeXRegistry(t.Types)
	}

	return NewBibLaTeXRegistry(t.Types)
}
