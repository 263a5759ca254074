package sim

import "fmt"

// Results is the end-of-run harvest. The JSON shape is the run command's
// quiet-mode output contract.
type Results struct {
	ProductsCreated ProductCount `json:"products_created"`
	MissedA         int          `json:"missed_a"`
	MissedB         int          `json:"missed_b"`
	HeldA           int          `json:"held_a"`
	HeldB           int          `json:"held_b"`
}

// ProductCount counts finished products by kind. C is the only product this
// line assembles.
type ProductCount struct {
	C int `json:"C"`
}

// Results tallies the current state: products summed over workers, missed
// components summed over belts, held components counted across all hands
// (assembling workers' hands included).
func (s *Simulation) Results() Results {
	var r Results
	for _, w := range s.Workers {
		r.ProductsCreated.C += w.ProductsMade
		for _, hand := range [2]Item{w.HandLeft, w.HandRight} {
			switch hand {
			case ItemA:
				r.HeldA++
			case ItemB:
				r.HeldB++
			}
		}
	}
	for _, b := range s.Belts {
		r.MissedA += b.MissedA
		r.MissedB += b.MissedB
	}
	return r
}

// WastePercent reports missed components relative to ticks run, as a
// percentage. The report command ranks configurations by it.
func (r Results) WastePercent(ticks int) float64 {
	if ticks <= 0 {
		return 0
	}
	return float64(r.MissedA+r.MissedB) / float64(ticks) * 100
}

// EfficiencyPerWorker reports finished products per worker, zero for a
// workerless run.
func (r Results) EfficiencyPerWorker(workers int) float64 {
	if workers <= 0 {
		return 0
	}
	return float64(r.ProductsCreated.C) / float64(workers)
}

// Print displays the results block at the end of a run.
func (r Results) Print(ticks int) {
	fmt.Println("=== Simulation Results ===")
	fmt.Printf("Finished Products   : %d\n", r.ProductsCreated.C)
	fmt.Printf("Missed Component A  : %d\n", r.MissedA)
	fmt.Printf("Missed Component B  : %d\n", r.MissedB)
	fmt.Printf("In Hand Component A : %d\n", r.HeldA)
	fmt.Printf("In Hand Component B : %d\n", r.HeldB)
	if ticks > 0 {
		fmt.Printf("Waste               : %.1f%%\n", r.WastePercent(ticks))
	}
}
