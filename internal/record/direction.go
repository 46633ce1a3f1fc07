package record

// Side names one of the two schemas.
type Side int

const (
	SourceSide Side = iota
	TargetSide
)

// String returns "source" or "target".
func (s Side) String() string {
	if s == TargetSide {
		return "target"
	}

	return "source"
}

// Direction is the way a translation runs.
type Direction int

const (
	// ToTarget reads source records and assembles target records.
	ToTarget Direction = iota
	// ToSource reads target records and assembles source records.
	ToSource
)

// Input returns the side that is read in this direction.
func (d Direction) Input() Side {
	if d == ToSource {
		return TargetSide
	}

	return SourceSide
}

// Output returns the side that is assembled in this direction.
func (d Direction) Output() Side {
	if d == ToSource {
		return SourceSide
	}

	return TargetSide
}

// String returns "to-target" or "to-source".
func (d Direction) String() string {
	if d == ToSource {
		return "to-source"
	}

	return "to-target"
}
