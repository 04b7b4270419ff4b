package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/tabs2notes/pkg/notes"
	"github.com/james-see/tabs2notes/pkg/tablature"
)

// Format represents a file format
type Format string

const (
	FormatTab     Format = "tab"
	FormatNotes   Format = "notes"
	FormatMIDI    Format = "midi"
	FormatUnknown Format = "unknown"
)

// ErrNoInstrument is returned when converting without an instrument
var ErrNoInstrument = errors.New("no instrument configured")

// DetectFormat detects the format of a file based on its extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".tab", ".txt":
		return FormatTab
	case ".notes":
		return FormatNotes
	case ".mid", ".midi":
		return FormatMIDI
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) >= 4 && string(data[:4]) == "MThd" {
		return FormatMIDI
	}
	// Anything else is read as text
	return FormatTab
}

// ConvertFile converts a file from one format to another
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	inputFormat := DetectFormat(inputPath)
	if inputFormat == FormatUnknown {
		inputFormat = DetectFormatFromContent(data)
	}
	outputFormat := DetectFormat(outputPath)
	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	var outputData []byte

	switch {
	case inputFormat == FormatTab && outputFormat == FormatNotes:
		outputData, err = c.TabToText(data)
	case inputFormat == FormatTab && outputFormat == FormatMIDI:
		outputData, err = c.TabToMIDI(data)
	case inputFormat == FormatMIDI && outputFormat == FormatNotes:
		outputData, err = c.MIDIToText(data)
	default:
		return fmt.Errorf("unsupported conversion: %s to %s", inputFormat, outputFormat)
	}

	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// Parse parses tablature text against the instrument tuning
func (c *Converter) Parse(data []byte) (*tablature.Tablature, error) {
	if c.instrument == nil {
		return nil, ErrNoInstrument
	}
	return tablature.ParseText(string(data), c.instrument.Tuning(), c.parseOptions()...)
}

// Notes parses tablature text and renders every pitch, transposed, in the
// configured naming. Any failure aborts the whole conversion.
func (c *Converter) Notes(data []byte) (*Result, error) {
	tab, err := c.Parse(data)
	if err != nil {
		return nil, err
	}
	res, err := c.render(tab.Pitches())
	if err != nil {
		return nil, err
	}
	res.StringCount = tab.StringCount
	return res, nil
}

// TabToText converts tablature text to note name lines
func (c *Converter) TabToText(data []byte) ([]byte, error) {
	res, err := c.Notes(data)
	if err != nil {
		return nil, err
	}
	return []byte(res.String() + "\n"), nil
}

// TabToMIDI converts tablature text to a standard MIDI file
func (c *Converter) TabToMIDI(data []byte) ([]byte, error) {
	tab, err := c.Parse(data)
	if err != nil {
		return nil, err
	}
	groups, err := c.transposed(tab.Pitches())
	if err != nil {
		return nil, err
	}
	midiConv := NewMIDIConverter()
	if c.instrument != nil {
		midiConv.trackName = c.instrument.Name()
	}
	return midiConv.GenerateMIDI(groups)
}

// MIDIToNotes reads chords from a MIDI file, one group per track
func (c *Converter) MIDIToNotes(data []byte) (*Result, error) {
	midiConv := NewMIDIConverter()
	groups, err := midiConv.ParseMIDI(data)
	if err != nil {
		return nil, err
	}
	return c.render(groups)
}

// MIDIToText converts a MIDI file to note name lines
func (c *Converter) MIDIToText(data []byte) ([]byte, error) {
	res, err := c.MIDIToNotes(data)
	if err != nil {
		return nil, err
	}
	return []byte(res.String() + "\n"), nil
}

func (c *Converter) transposed(groups [][]tablature.Chord) ([][]tablature.Chord, error) {
	out := make([][]tablature.Chord, len(groups))
	for i, group := range groups {
		out[i] = make([]tablature.Chord, len(group))
		for j, chord := range group {
			moved := make(tablature.Chord, len(chord))
			for k, pitch := range chord {
				p := pitch + c.transpose
				if err := notes.ValidatePitch(p); err != nil {
					return nil, err
				}
				moved[k] = p
			}
			out[i][j] = moved
		}
	}
	return out, nil
}

func (c *Converter) render(groups [][]tablature.Chord) (*Result, error) {
	if err := notes.ValidateLanguage(c.naming); err != nil {
		return nil, err
	}
	moved, err := c.transposed(groups)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Naming:    c.naming,
		Transpose: c.transpose,
		Groups:    make([][][]string, len(moved)),
	}
	if c.instrument != nil {
		res.Instrument = c.instrument.ID()
	}

	for i, group := range moved {
		res.Groups[i] = make([][]string, len(group))
		for j, chord := range group {
			names := make([]string, len(chord))
			for k, pitch := range chord {
				names[k], err = notes.PitchToName(pitch, c.naming)
				if err != nil {
					return nil, err
				}
			}
			res.Groups[i][j] = names
		}
	}
	return res, nil
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	return []string{
		"tab -> notes",
		"tab -> midi",
		"midi -> notes",
	}
}
