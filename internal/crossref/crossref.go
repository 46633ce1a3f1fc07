package crossref

import "bibmap/internal/record"

// Field is the field holding the label of the parent record.
const Field = "crossref"

// Registry indexes records by label.
type Registry map[string]*record.Record

// NewRegistry indexes records by label. Records without a label are left
// out; for duplicate labels the last record wins.
func NewRegistry(recs []*record.Record) Registry {
	reg := make(Registry, len(recs))

	for _, r := range recs {
		if r != nil && r.Label != "" {
			reg[r.Label] = r
		}
	}

	return reg
}

// Resolve returns rec with the unset fields of its crossref parent filled
// in. The parent is resolved first, so inheritance is transitive. Fields of
// rec win over inherited ones, and pseudo-fields are never inherited.
// Missing parents, self references and cycles leave rec as it is. The
// result is a new record; neither rec nor the registry is modified.
func Resolve(rec *record.Record, reg Registry) *record.Record {
	return resolve(rec, reg, map[*record.Record]bool{})
}

func resolve(rec *record.Record, reg Registry, visiting map[*record.Record]bool) *record.Record {
	out := rec.Clone()

	parent := reg.parentOf(rec)
	if parent == nil || parent == rec || visiting[parent] {
		return out
	}

	visiting[rec] = true
	defer delete(visiting, rec)

	for k, v := range resolve(parent, reg, visiting).All() {
		if !out.Has(k) {
			out.Set(k, v)
		}
	}

	return out
}

func (reg Registry) parentOf(rec *record.Record) *record.Record {
	if rec == nil {
		return nil
	}

	ref, ok := rec.GetString(Field)
	if !ok || ref == "" {
		return nil
	}

	return reg[ref]
}

// ResolveAll resolves every record against a registry of the unmerged
// inputs, so siblings never see each other's merged state. The output keeps
// the input order.
func ResolveAll(recs []*record.Record) []*record.Record {
	reg := NewRegistry(recs)

	out := make([]*record.Record, len(recs))
	for i, r := range recs {
		out[i] = Resolve(r, reg)
	}

	return out
}
