package trace

import (
	"fmt"
	"strings"
)

// Level selects which span scopes reach the tracer.
type Level uint8

const (
	LevelOff    Level = iota
	LevelPhase        // driver + unit boundaries
	LevelDetail       // module / package lowering
	LevelDebug        // every dispatched node
)

var levelNames = [...]string{"off", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value; case is ignored.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeUnit
	case LevelDetail:
		return scope <= ScopeModule
	case LevelDebug:
		return true
	}
	return false
}
