package sim

// Snapshot is a deep copy of the observable line state at one instant.
// Renderers and live-state feeds consume it; mutating a Snapshot never
// touches the running simulation.
type Snapshot struct {
	Tick     int              `json:"tick"`
	Belts    []BeltSnapshot   `json:"belts"`
	Workers  []WorkerSnapshot `json:"workers"`
	Stations []Station        `json:"stations"`
	Results  Results          `json:"results"`
}

// BeltSnapshot copies one belt's slots and missed counters.
type BeltSnapshot struct {
	Slots   []Item `json:"slots"`
	MissedA int    `json:"missed_a"`
	MissedB int    `json:"missed_b"`
}

// WorkerSnapshot copies one worker's hands and progress.
type WorkerSnapshot struct {
	ID                 int  `json:"id"`
	HandLeft           Item `json:"hand_left"`
	HandRight          Item `json:"hand_right"`
	AssemblingTimeLeft int  `json:"assembling_time_left"`
	ProductsMade       int  `json:"products_made"`
}

// Snapshot captures the current line state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.Clock,
		Belts:    make([]BeltSnapshot, len(s.Belts)),
		Workers:  make([]WorkerSnapshot, len(s.Workers)),
		Stations: append([]Station(nil), s.Stations...),
		Results:  s.Results(),
	}
	for i, b := range s.Belts {
		snap.Belts[i] = BeltSnapshot{
			Slots:   append([]Item(nil), b.Slots...),
			MissedA: b.MissedA,
			MissedB: b.MissedB,
		}
	}
	for i, w := range s.Workers {
		snap.Workers[i] = WorkerSnapshot{
			ID:                 w.ID,
			HandLeft:           w.HandLeft,
			HandRight:          w.HandRight,
			AssemblingTimeLeft: w.AssemblingTimeLeft,
			ProductsMade:       w.ProductsMade,
		}
	}
	return snap
}
