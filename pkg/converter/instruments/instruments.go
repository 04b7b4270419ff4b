// Package instruments provides the built-in instrument tunings
package instruments

import (
	"errors"
	"fmt"
	"strings"

	"github.com/james-see/tabs2notes/pkg/converter"
	"github.com/james-see/tabs2notes/pkg/tablature"
	"golang.org/x/text/cases"
)

// Instrument IDs
const (
	Bass4ID   = "bass4"
	Guitar6ID = "guitar6"
)

// ErrUnknownInstrument is returned by Lookup for undefined IDs
var ErrUnknownInstrument = errors.New("unknown instrument")

// Bass4 implements the Instrument interface for a 4-string bass (E A D G)
type Bass4 struct{}

// NewBass4 creates a new 4-string bass
func NewBass4() *Bass4 {
	return &Bass4{}
}

// Name returns the instrument name
func (b *Bass4) Name() string {
	return "4-string bass"
}

// ID returns the instrument selector
func (b *Bass4) ID() string {
	return Bass4ID
}

// Tuning returns open-string pitches, low to high
func (b *Bass4) Tuning() tablature.Tuning {
	return append(tablature.Tuning(nil), tablature.TuningBass4...)
}

// Guitar6 implements the Instrument interface for a 6-string guitar (E A D G B E)
type Guitar6 struct{}

// NewGuitar6 creates a new 6-string guitar
func NewGuitar6() *Guitar6 {
	return &Guitar6{}
}

// Name returns the instrument name
func (g *Guitar6) Name() string {
	return "6-string guitar"
}

// ID returns the instrument selector
func (g *Guitar6) ID() string {
	return Guitar6ID
}

// Tuning returns open-string pitches, low to high
func (g *Guitar6) Tuning() tablature.Tuning {
	return append(tablature.Tuning(nil), tablature.TuningGuitar6...)
}

var (
	_ converter.Instrument = (*Bass4)(nil)
	_ converter.Instrument = (*Guitar6)(nil)
)

var aliases = map[string]string{
	"bass":   Bass4ID,
	"guitar": Guitar6ID,
}

var folder = cases.Fold()

// All returns every built-in instrument
func All() []converter.Instrument {
	return []converter.Instrument{NewBass4(), NewGuitar6()}
}

// IDs returns the selectors of All, in order
func IDs() []string {
	var ids []string
	for _, inst := range All() {
		ids = append(ids, inst.ID())
	}
	return ids
}

// Lookup resolves an instrument selector, case-insensitively
func Lookup(id string) (converter.Instrument, error) {
	key := folder.String(strings.TrimSpace(id))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for _, inst := range All() {
		if inst.ID() == key {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (choose from %s)", ErrUnknownInstrument, id, strings.Join(IDs(), ", "))
}
