package reveal

// Snapshot is a read-only view of the machine counters for HUDs and tests.
type Snapshot struct {
	SplitCount int
	UserSplits int
	TotalCells int
	Splittable int
	Active     int
	Progress   float64
	Reached    Milestone
}

// Snapshot captures the current counters.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		SplitCount: m.splitCount,
		UserSplits: m.userSplits,
		TotalCells: m.TotalCells(),
		Splittable: m.Splittable(),
		Active:     m.active,
		Progress:   m.Progress(),
		Reached:    m.reached,
	}
}
