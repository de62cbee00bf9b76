package order

// DesignationSummary aggregates the ledger entries of one order by entry state.
type DesignationSummary struct {
	Requested  int
	Designated int
	Received   int
	Dispatched int
	Cancelled  int
}

// Active counts entries that still hold units for the order.
func (s DesignationSummary) Active() int {
	return s.Requested + s.Designated + s.Received + s.Dispatched
}

// IsFullyDesignated is true when at least one entry is active and none is merely requested.
func (s DesignationSummary) IsFullyDesignated() bool {
	return s.Active() > 0 && s.Requested == 0
}

// IsFullyDispatched is true when every active entry has been dispatched.
func (s DesignationSummary) IsFullyDispatched() bool {
	return s.Active() > 0 && s.Dispatched == s.Active()
}
