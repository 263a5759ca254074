// Package render draws the factory line as a terminal board. Everything
// here is a pure function over a sim.Snapshot; the engine never renders.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	sim "github.com/factory-sim/factory-sim/sim"
)

const cardWidth = 18

var (
	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Width(cardWidth).
			Align(lipgloss.Center)
	slotItemStyle  = lipgloss.NewStyle().Bold(true)
	slotEmptyStyle = lipgloss.NewStyle().Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(cardWidth).
			Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true)

	// Spacer matching a card's footprint for slots without a worker pair.
	blankCardStyle = lipgloss.NewStyle().Width(cardWidth + 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	resultsStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)
)

// Board renders one snapshot: each pair's first worker above its station
// slot, the belt row in the middle, the second worker below. Slots beyond
// the stationed prefix get blank columns so the belt row stays aligned.
func Board(snap sim.Snapshot) string {
	if len(snap.Belts) == 0 {
		return ""
	}
	belt := snap.Belts[0]

	var topCards, beltCells, bottomCards []string
	for slot, item := range belt.Slots {
		beltCells = append(beltCells, slotCell(item))

		pair := pairAtSlot(snap, slot)
		if pair < 0 {
			topCards = append(topCards, blankCardStyle.Render(""))
			bottomCards = append(bottomCards, blankCardStyle.Render(""))
			continue
		}
		topCards = append(topCards, workerCard(snap.Workers[2*pair]))
		bottomCards = append(bottomCards, workerCard(snap.Workers[2*pair+1]))
	}

	rows := []string{
		headerStyle.Render(fmt.Sprintf("tick %d", snap.Tick)),
		lipgloss.JoinHorizontal(lipgloss.Bottom, topCards...),
		lipgloss.JoinHorizontal(lipgloss.Top, beltCells...),
		lipgloss.JoinHorizontal(lipgloss.Top, bottomCards...),
		fmt.Sprintf("missed A: %d   missed B: %d", belt.MissedA, belt.MissedB),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// ResultsBlock renders the end-of-run results as a bordered block.
func ResultsBlock(r sim.Results, ticks int) string {
	lines := []string{
		cardTitleStyle.Render("Simulation Results"),
		fmt.Sprintf("finished products  %d", r.ProductsCreated.C),
		fmt.Sprintf("missed A           %d", r.MissedA),
		fmt.Sprintf("missed B           %d", r.MissedB),
		fmt.Sprintf("held A             %d", r.HeldA),
		fmt.Sprintf("held B             %d", r.HeldB),
	}
	if ticks > 0 {
		lines = append(lines, fmt.Sprintf("waste              %.1f%%", r.WastePercent(ticks)))
	}
	return resultsStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// pairAtSlot returns the pair index stationed at slot of belt 0, or -1.
func pairAtSlot(snap sim.Snapshot, slot int) int {
	for pair, station := range snap.Stations {
		if station.Belt == 0 && station.Slot == slot {
			return pair
		}
	}
	return -1
}

func slotCell(item sim.Item) string {
	if item == sim.ItemNone {
		return slotStyle.Render(slotEmptyStyle.Render("·"))
	}
	return slotStyle.Render(slotItemStyle.Render(item.String()))
}

func workerCard(w sim.WorkerSnapshot) string {
	lines := []string{
		cardTitleStyle.Render(fmt.Sprintf("worker %d", w.ID)),
		"L: " + hand(w.HandLeft),
		"R: " + hand(w.HandRight),
		fmt.Sprintf("timer: %d", w.AssemblingTimeLeft),
		fmt.Sprintf("made:  %d", w.ProductsMade),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func hand(item sim.Item) string {
	if item == sim.ItemNone {
		return "_"
	}
	return item.String()
}
