package tablature

import (
	"strconv"
	"strings"
)

// ExtractFrets returns the fret numbers of a line keyed by the character
// column of their first digit, ascending.
//
// A run made of a single repeated digit is read as that digit: held notes
// are sometimes drawn as "7777777". This also reads a fret "11" written as
// "11" as fret 1.
func ExtractFrets(line string) []FretEvent {
	var events []FretEvent
	runes := []rune(line)

	for i := 0; i < len(runes); {
		if !isDigit(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isDigit(runes[i]) {
			i++
		}
		run := string(runes[start:i])

		if strings.Count(run, run[:1]) == len(run) {
			run = run[:1]
		}
		fret, err := strconv.Atoi(run)
		if err != nil {
			// overflowing run, not a fret
			continue
		}
		events = append(events, FretEvent{Column: start, Fret: fret})
	}
	return events
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
