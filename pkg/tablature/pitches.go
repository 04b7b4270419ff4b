package tablature

import (
	"golang.org/x/exp/slices"
)

// Fret returns the fret written at column on display line str (0-based)
func (g Group) Fret(str, column int) (int, bool) {
	if str < 0 || str >= len(g.Strings) {
		return 0, false
	}
	events := g.Strings[str]
	i, ok := slices.BinarySearchFunc(events, column, func(ev FretEvent, col int) int {
		return ev.Column - col
	})
	if !ok {
		return 0, false
	}
	return events[i].Fret, true
}

// Chords builds one chord per distinct column, ascending. Display line 1
// maps to the highest string of tuning, which is given low to high.
// Strings without a fret at a column contribute nothing.
func (g Group) Chords(tuning Tuning) []Chord {
	open := tuning.Reversed()
	chords := make([]Chord, 0, len(g.Columns))
	for _, col := range g.Columns {
		var chord Chord
		for str := range g.Strings {
			if fret, ok := g.Fret(str, col); ok && str < len(open) {
				chord = append(chord, open[str]+fret)
			}
		}
		chords = append(chords, chord)
	}
	return chords
}

// Pitches converts every group into chord clusters, in document order.
// Pitches are not range checked here.
func (t *Tablature) Pitches() [][]Chord {
	out := make([][]Chord, 0, len(t.Groups))
	for _, g := range t.Groups {
		out = append(out, g.Chords(t.tuning))
	}
	return out
}

// NoteCount returns how many pitches the tablature holds
func (t *Tablature) NoteCount() int {
	n := 0
	for _, g := range t.Groups {
		for _, events := range g.Strings {
			n += len(events)
		}
	}
	return n
}
