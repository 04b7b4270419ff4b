package tablature

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTablatureLine(t *testing.T) {
	tablatureLines := []string{
		"g-------------------------------------------------------------------------------------",
		"a------4-5-7----7-5-4-5-4-2-0-----7-4---4-5-7-4-----------2-4-5-4---4---4-5-7---------",
		`A|-----------------------------------------------------8\-|`,
	}
	for _, line := range tablatureLines {
		assert.True(t, IsTablatureLine(line), line)
	}

	randomLines := []string{"", "bla bla bla", "add-some-dashes", "-----"}
	for _, line := range randomLines {
		assert.False(t, IsTablatureLine(line), line)
	}
}

func TestFillerClassifier(t *testing.T) {
	isTab := FillerClassifier('=', 3)
	assert.True(t, isTab("e|==3==|"))
	assert.False(t, isTab("e|------3------|"))
}

func TestExtractFrets(t *testing.T) {
	frets := ExtractFrets("g---6-7-9-16--14-13--777777--")
	want := []FretEvent{
		{Column: 4, Fret: 6},
		{Column: 6, Fret: 7},
		{Column: 8, Fret: 9},
		{Column: 10, Fret: 16},
		{Column: 14, Fret: 14},
		{Column: 17, Fret: 13},
		{Column: 21, Fret: 7}, // 777777
	}
	assert.Equal(t, want, frets)
}

func TestExtractFretsCollapsesRepeatedDigit(t *testing.T) {
	frets := ExtractFrets("e--7777777--")
	require.Len(t, frets, 1)
	assert.Equal(t, FretEvent{Column: 3, Fret: 7}, frets[0])

	// ambiguous by construction: "11" collapses too
	frets = ExtractFrets("e--11--")
	require.Len(t, frets, 1)
	assert.Equal(t, 1, frets[0].Fret)
}

func TestExtractFretsEmpty(t *testing.T) {
	assert.Empty(t, ExtractFrets("e|------------|"))
	assert.Empty(t, ExtractFrets(""))
}

func TestExtractFretsRuneColumns(t *testing.T) {
	frets := ExtractFrets("é--3")
	require.Len(t, frets, 1)
	assert.Equal(t, 3, frets[0].Column)
}

func TestParseStructure(t *testing.T) {
	tab, err := Load("testdata/guitar_empty.tab", TuningGuitar6)
	require.NoError(t, err)
	assert.Equal(t, 6, tab.StringCount)
	require.Len(t, tab.Groups, 3)
	assert.Equal(t, 0, tab.Groups[0].Start)
	assert.Equal(t, 7, tab.Groups[1].Start)
	assert.Equal(t, 14, tab.Groups[2].Start)
	for _, g := range tab.Groups {
		assert.Empty(t, g.Columns)
	}
}

func TestParseInconsistent(t *testing.T) {
	_, err := Load("testdata/inconsistent.tab", TuningGuitar6)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentStructure)
	assert.False(t, errors.Is(err, ErrInstrumentMismatch))

	var serr *StructureError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 15, serr.Line)
	assert.Equal(t, 6, serr.Want)
	assert.Equal(t, 5, serr.Got)
}

func TestParseInstrumentMismatch(t *testing.T) {
	_, err := Load("testdata/guitar_empty.tab", TuningBass4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInstrumentMismatch)

	var ierr *InstrumentError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 4, ierr.Tuning)
	assert.Equal(t, 6, ierr.Tablature)
}

func TestParseUniformFiveAgainstBass(t *testing.T) {
	line := "------------"
	text := strings.Repeat(line+"\n", 5) + "\n" + strings.Repeat(line+"\n", 5)
	_, err := ParseText(text, TuningBass4)
	assert.ErrorIs(t, err, ErrInstrumentMismatch)
}

func TestParseNoGroups(t *testing.T) {
	_, err := ParseText("just some lyrics\n", TuningBass4)
	var ierr *InstrumentError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 0, ierr.Tablature)
}

func TestParseLastGroupWithoutTrailingLine(t *testing.T) {
	line := "|----------|"
	text := strings.Repeat(line+"\n", 4) + "\n" + strings.Repeat(line+"\n", 3) + line
	tab, err := ParseText(text, TuningBass4)
	require.NoError(t, err)
	assert.Len(t, tab.Groups, 2)

	// the last group is checked too
	text = strings.Repeat(line+"\n", 4) + "\n" + strings.Repeat(line+"\n", 2) + line
	_, err = ParseText(text, TuningBass4)
	var serr *StructureError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 6, serr.Line)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/nope.tab", TuningBass4)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInstrumentMismatch))
}

func TestChordAlignment(t *testing.T) {
	tuning := Tuning{40, 45} // low, high
	tab, err := Parse([]string{"a--3--", "e--5--"}, tuning, WithClassifier(FillerClassifier('-', 3)))
	require.NoError(t, err)

	pitches := tab.Pitches()
	require.Len(t, pitches, 1)
	require.Len(t, pitches[0], 1)
	assert.Equal(t, Chord{45 + 3, 40 + 5}, pitches[0][0])
}

func TestAbsentStringContributesNothing(t *testing.T) {
	tab, err := Parse([]string{
		"G|--------5-|",
		"D|--0-------|",
		"A|--------3-|",
		"E|----------|",
	}, TuningBass4)
	require.NoError(t, err)

	pitches := tab.Pitches()
	require.Len(t, pitches, 1)
	assert.Equal(t, []Chord{{38}, {48, 36}}, pitches[0])
}

func TestPitchesBassFile(t *testing.T) {
	tab, err := Load("testdata/bass_style1.tab", TuningBass4)
	require.NoError(t, err)
	assert.Equal(t, 4, tab.StringCount)
	require.Len(t, tab.Groups, 3)

	pitches := tab.Pitches()
	single := func(ps ...int) []Chord {
		out := make([]Chord, len(ps))
		for i, p := range ps {
			out[i] = Chord{p}
		}
		return out
	}
	assert.Equal(t, single(28, 28, 31, 28, 36, 35, 33, 28, 28, 31), pitches[0])
	assert.Equal(t, single(28, 28, 31, 28, 36, 35, 33, 35), pitches[1])
	assert.Equal(t, []Chord{{33}, {33}, {36}, {40, 35}, {31}, {30}, {28}}, pitches[2])
	assert.Equal(t, 26, tab.NoteCount())
}

func TestGroupFret(t *testing.T) {
	g := Group{Strings: [][]FretEvent{{{Column: 2, Fret: 3}, {Column: 6, Fret: 12}}}}
	fret, ok := g.Fret(0, 6)
	assert.True(t, ok)
	assert.Equal(t, 12, fret)

	_, ok = g.Fret(0, 4)
	assert.False(t, ok)
	_, ok = g.Fret(3, 2)
	assert.False(t, ok)
}

func TestTuningReversed(t *testing.T) {
	assert.Equal(t, Tuning{43, 38, 33, 28}, TuningBass4.Reversed())
	assert.Equal(t, Tuning{28, 33, 38, 43}, TuningBass4)
}

func TestDebugTrace(t *testing.T) {
	var buf bytes.Buffer
	_, err := Load("testdata/bass_style1.tab", TuningBass4, WithDebug(&buf, DebugStructure))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "DEBUG: Line 1 'Seven Nation Army - bass'")
	assert.NotContains(t, buf.String(), "Parse(")

	buf.Reset()
	_, err = Load("testdata/bass_style1.tab", TuningBass4, WithDebug(&buf, DebugOff))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestValidateDebugLevel(t *testing.T) {
	assert.NoError(t, ValidateDebugLevel(DebugOff))
	assert.NoError(t, ValidateDebugLevel(DebugHardcore))
	assert.Error(t, ValidateDebugLevel(5))
	assert.Error(t, ValidateDebugLevel(-1))
}
