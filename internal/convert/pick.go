package convert

// Pick passes through the first defined value. In reverse it writes the
// value back to the first key.
func Pick() *Converter {
	return &Converter{
		Name:        "PICK",
		Description: "first defined value",
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			v, ok := firstDefined(values)
			if !ok {
				return nil, false
			}

			return one(v)
		},
		ToSource: func(values []any) ([]any, bool) {
			v, ok := firstDefined(values)
			if !ok {
				return nil, false
			}

			return one(v)
		},
	}
}

// Label copies the record label into both the id and the citation label.
func Label() *Converter {
	return &Converter{
		Name:        "LABEL",
		Description: "label <-> (id, citation-label)",
		SourceArity: 1,
		TargetArity: 2,
		ToTarget: func(values []any) ([]any, bool) {
			label := stringArg(values, 0)
			if label == "" {
				return nil, false
			}

			return []any{label, label}, true
		},
		ToSource: func(values []any) ([]any, bool) {
			v, ok := firstDefined(values)
			if !ok {
				return nil, false
			}

			return one(v)
		},
	}
}
