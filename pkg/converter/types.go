// Package converter turns plain text tablature into note names and MIDI
package converter

import (
	"io"
	"strings"

	"github.com/james-see/tabs2notes/pkg/notes"
	"github.com/james-see/tabs2notes/pkg/tablature"
)

// Rendering delimiters
const (
	ChordSeparator = "+" // joins notes struck together
	NoteSeparator  = " " // joins chords of a group
)

// DefaultNaming is the naming language used when none is configured
const DefaultNaming = notes.Latin

// Instrument interface for instrument-specific tunings
type Instrument interface {
	Name() string
	ID() string
	Tuning() tablature.Tuning
}

// Result holds rendered note names: one entry per group, per chord
type Result struct {
	Instrument  string
	Naming      notes.Language
	Transpose   int
	StringCount int
	Groups      [][][]string
}

// Lines renders one line per group, chords separated by spaces and
// simultaneous notes joined with "+"
func (r *Result) Lines() []string {
	lines := make([]string, 0, len(r.Groups))
	for _, group := range r.Groups {
		chords := make([]string, 0, len(group))
		for _, chord := range group {
			chords = append(chords, strings.Join(chord, ChordSeparator))
		}
		lines = append(lines, strings.Join(chords, NoteSeparator))
	}
	return lines
}

// String returns Lines joined by newlines
func (r *Result) String() string {
	return strings.Join(r.Lines(), "\n")
}

// NoteCount returns the number of rendered notes
func (r *Result) NoteCount() int {
	n := 0
	for _, group := range r.Groups {
		for _, chord := range group {
			n += len(chord)
		}
	}
	return n
}

// Option configures a Converter
type Option func(*Converter)

// WithNaming sets the naming language of rendered notes
func WithNaming(lang notes.Language) Option {
	return func(c *Converter) { c.naming = lang }
}

// WithTranspose sets the half-tone offset added to every pitch
func WithTranspose(semitones int) Option {
	return func(c *Converter) { c.transpose = semitones }
}

// WithDebug traces tablature parsing to w
func WithDebug(w io.Writer, level tablature.DebugLevel) Option {
	return func(c *Converter) {
		c.debugOut = w
		c.debugLevel = level
	}
}

// WithClassifier replaces the tablature line classifier
func WithClassifier(fn tablature.LineClassifier) Option {
	return func(c *Converter) { c.classifier = fn }
}

// Converter handles tablature conversions
type Converter struct {
	instrument Instrument
	naming     notes.Language
	transpose  int
	debugOut   io.Writer
	debugLevel tablature.DebugLevel
	classifier tablature.LineClassifier
}

// New creates a new Converter for the specified instrument
func New(instrument Instrument, opts ...Option) *Converter {
	c := &Converter{instrument: instrument, naming: DefaultNaming}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetInstrument returns the current instrument
func (c *Converter) GetInstrument() Instrument {
	return c.instrument
}

// SetInstrument sets the instrument for conversion
func (c *Converter) SetInstrument(instrument Instrument) {
	c.instrument = instrument
}

// Naming returns the configured naming language
func (c *Converter) Naming() notes.Language {
	return c.naming
}

// Transpose returns the configured half-tone offset
func (c *Converter) Transpose() int {
	return c.transpose
}

func (c *Converter) parseOptions() []tablature.Option {
	opts := []tablature.Option{tablature.WithClassifier(c.classifier)}
	if c.debugOut != nil {
		opts = append(opts, tablature.WithDebug(c.debugOut, c.debugLevel))
	}
	return opts
}
