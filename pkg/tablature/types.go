// Package tablature recovers string groups and fret positions from plain
// text guitar and bass tablature and maps them to MIDI pitches.
//
// There is no standard tablature format: line detection is guesswork and
// will misread creatively formatted files.
package tablature

// Tuning holds open-string MIDI pitches, lowest string first
type Tuning []int

// Built-in tunings (low to high)
var (
	TuningBass4   = Tuning{28, 33, 38, 43}
	TuningGuitar6 = Tuning{40, 45, 50, 55, 59, 64}
)

// Reversed returns the tuning in tablature display order (highest string first)
func (t Tuning) Reversed() Tuning {
	r := make(Tuning, len(t))
	for i, p := range t {
		r[len(t)-1-i] = p
	}
	return r
}

// FretEvent is a fret number written at a text column of one line
type FretEvent struct {
	Column int // 0-based offset of the first digit in the trimmed line
	Fret   int
}

// Group is a block of consecutive tablature lines, one line per string
type Group struct {
	Start   int           // line index (0-based) of the first line
	Strings [][]FretEvent // per display line, ascending by column
	Columns []int         // distinct columns over all lines, ascending
}

// Chord is the list of pitches struck at the same column, in display line order
type Chord []int

// Tablature is the parsed, read-only structure of a tablature text
type Tablature struct {
	Lines       []string
	StringCount int
	Groups      []Group
	tuning      Tuning
}

// Tuning returns the tuning the tablature was parsed against
func (t *Tablature) Tuning() Tuning {
	return append(Tuning(nil), t.tuning...)
}
