package tablature

import (
	"fmt"
	"io"
)

// DebugLevel controls how much parsing detail is traced
type DebugLevel int

const (
	DebugOff       DebugLevel = iota
	DebugNotes                // fret extraction
	DebugStructure            // line classification and groups
	DebugDetailed             // parse steps
	DebugHardcore             // everything
)

// MaxDebugLevel is the most verbose level
const MaxDebugLevel = DebugHardcore

type tracer struct {
	w     io.Writer
	level DebugLevel
}

func (t tracer) debugf(level DebugLevel, format string, args ...any) {
	if t.w == nil || t.level < level {
		return
	}
	fmt.Fprintf(t.w, "DEBUG: "+format+"\n", args...)
}
