// Package notes converts between MIDI pitch indexes and note names in
// English, German and Latin naming.
package notes

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// MIDI range and scale size
const (
	MIDINotesCount = 128
	ScaleSize      = 12
	MinPitch       = 0
	MaxPitch       = MIDINotesCount - 1
)

// Errors returned by the namer
var (
	ErrInvalidInputType = errors.New("invalid input type")
	ErrInvalidName      = errors.New("invalid note name")
	ErrPitchOutOfRange  = errors.New("pitch out of range")
	ErrUnknownLanguage  = errors.New("unknown naming language")
)

// Language selects a naming convention
type Language int

const (
	English Language = iota
	German
	Latin
)

// Languages lists every defined naming language in table column order
var Languages = []Language{English, German, Latin}

// String returns the selector name of the language
func (l Language) String() string {
	switch l {
	case English:
		return "english"
	case German:
		return "german"
	case Latin:
		return "latin"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// Pitch 0 is C0, middle C (60) is C5.
var sequence = [ScaleSize][3]string{
	{"C", "C", "Do"},
	{"C#", "Cis", "Do#"},
	{"D", "D", "Re"},
	{"D#", "Dis", "Re#"},
	{"E", "E", "Mi"},
	{"F", "F", "Fa"},
	{"F#", "Fis", "Fa#"},
	{"G", "G", "Sol"},
	{"G#", "Gis", "Sol#"},
	{"A", "A", "La"},
	{"A#", "Ais", "La#"},
	{"B", "H", "Si"},
}

// Patterns are tried in Languages order. Groups: natural, accidental, octave.
var patterns = [...]*regexp.Regexp{
	English: regexp.MustCompile(`^([A-G])([b#]?)(10|[0-9])$`),
	German:  regexp.MustCompile(`^(A|H|[C-G])(is|es)?(10|[0-9])$`),
	Latin:   regexp.MustCompile(`^(Do|Re|Mi|Fa|Sol|La|Si)([b#]?)(10|[0-9])$`),
}

var folder = cases.Fold()

// Spelling returns the table spelling of a semitone (0-11) in the given language
func Spelling(semitone int, lang Language) (string, error) {
	if err := ValidateLanguage(lang); err != nil {
		return "", err
	}
	if semitone < 0 || semitone >= ScaleSize {
		return "", fmt.Errorf("%w: semitone %d", ErrPitchOutOfRange, semitone)
	}
	return sequence[semitone][lang], nil
}

// PitchToName renders a pitch as spelling followed by octave, e.g. 60 -> "C5"
func PitchToName(pitch int, lang Language) (string, error) {
	if err := ValidatePitch(pitch); err != nil {
		return "", err
	}
	if err := ValidateLanguage(lang); err != nil {
		return "", err
	}
	return sequence[pitch%ScaleSize][lang] + strconv.Itoa(pitch/ScaleSize), nil
}

// NameToPitch resolves a note name in any of the three languages.
// Flat spellings and sharps outside the table (E#, His, Si#...) are
// canonicalized from the natural's row, so "Db3" resolves to the "C#" row.
func NameToPitch(name string) (int, error) {
	lang, err := DetectLanguage(name)
	if err != nil {
		return 0, err
	}
	m := patterns[lang].FindStringSubmatch(name)
	natural, accidental, octaveText := m[1], m[2], m[3]

	octave, err := strconv.Atoi(octaveText)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	row := naturalRow(natural, lang)
	if row < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	switch accidental {
	case "#", "is":
		row++
	case "b", "es":
		row--
	}

	pitch := octave*ScaleSize + row
	if err := ValidatePitch(pitch); err != nil {
		return 0, fmt.Errorf("%w: %s is not in MIDI range", ErrPitchOutOfRange, name)
	}
	return pitch, nil
}

// DetectLanguage returns the first language whose pattern matches name
func DetectLanguage(name string) (Language, error) {
	for _, lang := range Languages {
		if patterns[lang].MatchString(name) {
			return lang, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
}

func naturalRow(natural string, lang Language) int {
	for i, entry := range sequence {
		if entry[lang] == natural {
			return i
		}
	}
	return -1
}

// ValidateName fails with ErrInvalidName unless name matches a language pattern
func ValidateName(name string) error {
	_, err := DetectLanguage(name)
	return err
}

// ValidatePitch fails with ErrPitchOutOfRange outside [0, 127]
func ValidatePitch(pitch int) error {
	if pitch < MinPitch || pitch > MaxPitch {
		return fmt.Errorf("%w: %d (must be from %d to %d)", ErrPitchOutOfRange, pitch, MinPitch, MaxPitch)
	}
	return nil
}

// ValidateLanguage fails with ErrUnknownLanguage for undefined selectors
func ValidateLanguage(lang Language) error {
	for _, l := range Languages {
		if l == lang {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownLanguage, int(lang))
}

// ParseLanguage resolves a selector such as "english" or "German"
func ParseLanguage(s string) (Language, error) {
	key := folder.String(strings.TrimSpace(s))
	for _, lang := range Languages {
		if key == lang.String() {
			return lang, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// ParsePitch reads a pitch from text. Non-integer input is an
// ErrInvalidInputType, integers outside the MIDI range ErrPitchOutOfRange.
func ParsePitch(s string) (int, error) {
	pitch, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: pitch must be an integer, got %q", ErrInvalidInputType, s)
	}
	if err := ValidatePitch(pitch); err != nil {
		return 0, err
	}
	return pitch, nil
}
