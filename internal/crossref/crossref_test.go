package crossref

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibmap/internal/engine"
	"bibmap/internal/metadata"
	"bibmap/internal/record"
)

func entry(kind, label string, fields map[string]any) *record.Record {
	r := record.FromMap(fields)
	r.Type, r.Label = kind, label

	return r
}

func TestResolveChildWins(t *testing.T) {
	parent := entry("collection", "coll", map[string]any{
		"title":     "Parent Title",
		"booktitle": "Collected Reports",
		"publisher": "ACM",
	})
	child := entry("incollection", "ch1", map[string]any{
		"title":    "Child Title",
		"crossref": "coll",
	})

	got := Resolve(child, NewRegistry([]*record.Record{parent, child}))

	assert.Equal(t, "incollection", got.Type, "pseudo-fields are not inherited")
	assert.Equal(t, "ch1", got.Label)

	want := map[string]any{
		"title":     "Child Title",
		"crossref":  "coll",
		"booktitle": "Collected Reports",
		"publisher": "ACM",
	}
	if diff := cmp.Diff(want, got.Map()); diff != "" {
		t.Errorf("merged fields mismatch (-want +got):\n%s", diff)
	}

	// own fields first, then inherited ones
	assert.Equal(t, []string{"crossref", "title", "booktitle", "publisher"}, got.Keys())

	// inputs untouched
	assert.Equal(t, 2, child.Len())
	assert.Equal(t, 3, parent.Len())
}

func TestResolveTransitive(t *testing.T) {
	grand := entry("mvbook", "mv", map[string]any{"publisher": "Springer", "date": "2001"})
	parent := entry("book", "vol", map[string]any{"crossref": "mv", "date": "2002"})
	child := entry("inbook", "ch", map[string]any{"crossref": "vol"})

	got := Resolve(child, NewRegistry([]*record.Record{grand, parent, child}))

	v, _ := got.Get("publisher")
	assert.Equal(t, "Springer", v)

	v, _ = got.Get("date")
	assert.Equal(t, "2002", v, "the nearer ancestor wins")

	v, _ = got.Get("crossref")
	assert.Equal(t, "vol", v)
}

func TestResolveIdempotent(t *testing.T) {
	parent := entry("collection", "coll", map[string]any{"editor": "Doe, J."})
	child := entry("incollection", "ch", map[string]any{"crossref": "coll", "title": "T"})
	reg := NewRegistry([]*record.Record{parent, child})

	once := Resolve(child, reg)
	twice := Resolve(once, reg)

	assert.Equal(t, once.Map(), twice.Map())
	assert.Equal(t, once.Keys(), twice.Keys())

	plain := entry("book", "b", map[string]any{"title": "No Parent"})
	assert.Equal(t, plain.Map(), Resolve(plain, reg).Map())
}

func TestResolveGuards(t *testing.T) {
	self := entry("book", "self", map[string]any{"crossref": "self", "title": "Me"})
	a := entry("book", "a", map[string]any{"crossref": "b", "title": "A"})
	b := entry("book", "b", map[string]any{"crossref": "a", "note": "from b"})
	orphan := entry("book", "o", map[string]any{"crossref": "missing"})

	reg := NewRegistry([]*record.Record{self, a, b, orphan})

	assert.Equal(t, self.Map(), Resolve(self, reg).Map(), "self reference")
	assert.Equal(t, orphan.Map(), Resolve(orphan, reg).Map(), "missing parent")

	got := Resolve(a, reg)
	assert.Equal(t, map[string]any{"crossref": "b", "title": "A", "note": "from b"}, got.Map(), "cycle")

	assert.NotPanics(t, func() { Resolve(nil, reg) })
}

func TestResolveAllUsesUnmergedParents(t *testing.T) {
	parent := entry("book", "p", map[string]any{"crossref": "g", "title": "P"})
	grand := entry("book", "g", map[string]any{"publisher": "G"})
	c1 := entry("inbook", "c1", map[string]any{"crossref": "p"})
	c2 := entry("inbook", "c2", map[string]any{"crossref": "p", "title": "C2"})

	got := ResolveAll([]*record.Record{parent, grand, c1, c2})
	require.Len(t, got, 4)

	assert.Equal(t, []string{"p", "g", "c1", "c2"}, []string{got[0].Label, got[1].Label, got[2].Label, got[3].Label})

	v, _ := got[2].Get("title")
	assert.Equal(t, "P", v)

	v, _ = got[3].Get("title")
	assert.Equal(t, "C2", v)

	v, _ = got[3].Get("publisher")
	assert.Equal(t, "G", v)

	assert.False(t, parent.Has("publisher"), "inputs are not merged in place")
}

func TestTechReportInheritsContainerTitle(t *testing.T) {
	meta := metadata.MustLoad(metadata.BibLaTeX)

	parent := entry("collection", "reports", map[string]any{
		"editor":    "Roe, Richard",
		"title":     "Annual Reports",
		"booktitle": "Annual Reports of the Lab",
		"date":      "2019",
	})
	report := entry("techreport", "tr42", map[string]any{
		"author":      "Doe, Jane",
		"title":       "Measuring Things",
		"institution": "The Lab",
		"crossref":    "reports",
	})

	missing := meta.Required.Missing(report)
	require.Len(t, missing, 1)
	assert.Equal(t, "year/date", missing[0].String())

	merged := ResolveAll([]*record.Record{parent, report})[1]
	assert.Empty(t, meta.Required.Missing(merged))

	tr, err := engine.ForDialect(metadata.BibLaTeX)
	require.NoError(t, err)

	csl := tr.ConvertToTarget(merged)

	want, _ := meta.Types.ToTarget("techreport")
	got, _ := csl.Get("type")
	assert.Equal(t, want, got)
	assert.Equal(t, "report", got)

	ct, _ := csl.Get("container-title")
	assert.Equal(t, "Annual Reports of the Lab", ct)

	title, _ := csl.Get("title")
	assert.Equal(t, "Measuring Things", title)

	publisher, _ := csl.Get("publisher")
	assert.Equal(t, "The Lab", publisher)

	genre, _ := csl.Get("genre")
	assert.Equal(t, "technical report", genre)

	issued, _ := csl.Get("issued")
	assert.Equal(t, record.Date{Parts: []record.DateParts{{2019}}}, issued)
}
