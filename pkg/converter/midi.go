package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/james-see/tabs2notes/pkg/tablature"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

// MIDI export defaults
const (
	DefaultTicksPerQuarter = 480
	DefaultTempo           = 120.0
	DefaultVelocity        = 100
)

// MIDIConverter handles MIDI file parsing and generation
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
	velocity        uint8
	channel         uint8
	trackName       string
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: DefaultTicksPerQuarter,
		tempo:           DefaultTempo,
		velocity:        DefaultVelocity,
	}
}

// GenerateMIDI writes one track per group. Every chord lasts a quarter
// note and each group starts one 4/4 bar after the previous one ends.
func (m *MIDIConverter) GenerateMIDI(groups [][]tablature.Chord) ([]byte, error) {
	if m.tempo <= 0 {
		m.tempo = DefaultTempo
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	chordTicks := uint32(m.ticksPerQuarter)
	barTicks := chordTicks * 4

	// pending carries the silence owed before the next note-on
	var pending uint32

	for i, group := range groups {
		var track smf.Track
		if i == 0 {
			if m.trackName != "" {
				track.Add(0, smf.MetaTrackSequenceName(m.trackName))
			}
			track.Add(0, smf.MetaTempo(m.tempo))
			track.Add(0, smf.MetaMeter(4, 4))
		}

		delta := pending
		for _, chord := range group {
			if len(chord) == 0 {
				delta += chordTicks
				continue
			}
			for _, pitch := range chord {
				if pitch < 0 || pitch > 127 {
					return nil, fmt.Errorf("pitch %d out of MIDI range", pitch)
				}
				track.Add(delta, midi.NoteOn(m.channel, uint8(pitch), m.velocity))
				delta = 0
			}
			delta = chordTicks
			for _, pitch := range chord {
				track.Add(delta, midi.NoteOff(m.channel, uint8(pitch)))
				delta = 0
			}
		}
		track.Close(0)

		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
		pending += uint32(len(group))*chordTicks + barTicks
	}

	if len(groups) == 0 {
		var track smf.Track
		track.Add(0, smf.MetaTempo(m.tempo))
		track.Close(0)
		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseMIDI reads note-on events and groups the ones starting on the same
// tick into chords. Each track holding notes becomes a group.
func (m *MIDIConverter) ParseMIDI(data []byte) ([][]tablature.Chord, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		m.ticksPerQuarter = mt.Resolution()
	}

	var groups [][]tablature.Chord
	for _, track := range s.Tracks {
		byTick := map[int64]tablature.Chord{}
		var ticks []int64
		var absTicks int64

		for _, ev := range track {
			absTicks += int64(ev.Delta)
			var channel, key, velocity uint8
			if !ev.Message.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
				continue
			}
			if _, seen := byTick[absTicks]; !seen {
				ticks = append(ticks, absTicks)
			}
			byTick[absTicks] = append(byTick[absTicks], int(key))
		}

		if len(ticks) == 0 {
			continue
		}
		slices.Sort(ticks)

		group := make([]tablature.Chord, 0, len(ticks))
		for _, tick := range ticks {
			group = append(group, byTick[tick])
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil, errors.New("no notes found in MIDI data")
	}
	return groups, nil
}

// WriteMIDIFile writes chord groups to a MIDI file
func (m *MIDIConverter) WriteMIDIFile(groups [][]tablature.Chord, filename string) error {
	data, err := m.GenerateMIDI(groups)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
