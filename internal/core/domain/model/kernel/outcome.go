package kernel

// Outcome tells the caller whether a guarded operation mutated anything.
// Illegal transitions are reported as Unchanged rather than as errors.
type Outcome int

const (
	Unchanged Outcome = iota
	Changed
)

func (o Outcome) IsChanged() bool {
	return o == Changed
}

func (o Outcome) String() string {
	if o == Changed {
		return "changed"
	}
	return "unchanged"
}
