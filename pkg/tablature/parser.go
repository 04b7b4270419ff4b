package tablature

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// Line detection defaults
const (
	FillerChar          = '-'
	FillerMinOccurrence = 5
)

// LineClassifier decides whether a line is a tablature (string) line
type LineClassifier func(line string) bool

// IsTablatureLine is the default classifier: more than FillerMinOccurrence
// filler characters. It is approximate on purpose.
func IsTablatureLine(line string) bool {
	return strings.Count(line, string(FillerChar)) > FillerMinOccurrence
}

// FillerClassifier builds a classifier for dialects using another filler
// character or threshold
func FillerClassifier(filler rune, minOccurrence int) LineClassifier {
	return func(line string) bool {
		return strings.Count(line, string(filler)) > minOccurrence
	}
}

// Option configures a parse
type Option func(*config)

type config struct {
	classifier LineClassifier
	tracer     tracer
}

// WithClassifier replaces the default line classifier
func WithClassifier(fn LineClassifier) Option {
	return func(c *config) {
		if fn != nil {
			c.classifier = fn
		}
	}
}

// WithDebug traces parsing to w up to the given level
func WithDebug(w io.Writer, level DebugLevel) Option {
	return func(c *config) {
		c.tracer = tracer{w: w, level: level}
	}
}

// ValidateDebugLevel fails for levels outside DebugOff..MaxDebugLevel
func ValidateDebugLevel(level DebugLevel) error {
	if level < DebugOff || level > MaxDebugLevel {
		return fmt.Errorf("invalid debug level %d (must be from %d to %d)", level, DebugOff, MaxDebugLevel)
	}
	return nil
}

// Load reads a tablature file and parses it
func Load(filename string, tuning Tuning, opts ...Option) (*Tablature, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tablature file: %w", err)
	}
	return ParseText(string(data), tuning, opts...)
}

// ParseText splits text into lines and parses it
func ParseText(text string, tuning Tuning, opts ...Option) (*Tablature, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Parse(nil, tuning, opts...)
	}
	return Parse(strings.Split(text, "\n"), tuning, opts...)
}

// Parse runs structure analysis and fret extraction over lines. Lines are
// trimmed of surrounding whitespace first, columns refer to trimmed lines.
func Parse(lines []string, tuning Tuning, opts ...Option) (*Tablature, error) {
	cfg := config{classifier: IsTablatureLine}
	for _, opt := range opts {
		opt(&cfg)
	}
	tr := cfg.tracer
	tr.debugf(DebugHardcore, "Parse(%d lines, %v)", len(lines), tuning)

	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimSpace(line)
	}

	spans, err := scanStructure(trimmed, cfg.classifier, tr)
	if err != nil {
		return nil, err
	}

	count := 0
	if len(spans) > 0 {
		count = spans[0].count
	}
	if len(tuning) != count {
		return nil, &InstrumentError{Tuning: len(tuning), Tablature: count}
	}

	tab := &Tablature{
		Lines:       trimmed,
		StringCount: count,
		Groups:      make([]Group, 0, len(spans)),
		tuning:      append(Tuning(nil), tuning...),
	}
	for _, s := range spans {
		tab.Groups = append(tab.Groups, extractGroup(trimmed, s, tr))
	}
	tr.debugf(DebugDetailed, "%d frets in %d groups of %d strings", tab.NoteCount(), len(tab.Groups), count)
	return tab, nil
}

type scanState int

const (
	outsideGroup scanState = iota
	insideGroup
)

type span struct {
	start int
	count int
}

// scanStructure finds maximal runs of tablature lines and checks they all
// have the same size
func scanStructure(lines []string, isTab LineClassifier, tr tracer) ([]span, error) {
	tr.debugf(DebugDetailed, "scanStructure()")

	var spans []span
	var cur span
	state := outsideGroup

	closeGroup := func() error {
		if n := len(spans); n > 0 && spans[n-1].count != cur.count {
			return &StructureError{Line: cur.start + 1, Want: spans[n-1].count, Got: cur.count}
		}
		spans = append(spans, cur)
		tr.debugf(DebugDetailed, "-> group start added for line index %d (%d strings)", cur.start, cur.count)
		return nil
	}

	for i, line := range lines {
		tr.debugf(DebugStructure, "Line %d '%s'", i+1, line)
		tab := isTab(line)

		switch {
		case state == outsideGroup && tab:
			tr.debugf(DebugStructure, "-> tablature line, new group")
			cur = span{start: i, count: 1}
			state = insideGroup
		case state == insideGroup && tab:
			tr.debugf(DebugStructure, "-> tablature line")
			cur.count++
		case state == insideGroup:
			tr.debugf(DebugStructure, "-> line after tablature block")
			if err := closeGroup(); err != nil {
				return nil, err
			}
			state = outsideGroup
		default:
			tr.debugf(DebugStructure, "-> other line")
		}
	}
	if state == insideGroup {
		if err := closeGroup(); err != nil {
			return nil, err
		}
	}

	tr.debugf(DebugStructure, "Discovered strings blocks: %v", spans)
	return spans, nil
}

func extractGroup(lines []string, s span, tr tracer) Group {
	g := Group{
		Start:   s.start,
		Strings: make([][]FretEvent, s.count),
	}
	for i, line := range lines[s.start : s.start+s.count] {
		tr.debugf(DebugNotes, "String %d '%s'", i+1, line)
		events := ExtractFrets(line)
		tr.debugf(DebugNotes, "-> frets: %v", events)
		g.Strings[i] = events
		for _, ev := range events {
			g.Columns = append(g.Columns, ev.Column)
		}
	}
	slices.Sort(g.Columns)
	g.Columns = slices.Compact(g.Columns)
	tr.debugf(DebugNotes, "Block %d columns: %v", s.start, g.Columns)
	return g
}
