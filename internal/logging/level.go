package logging

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is a logging level. Higher values indicate more verbosity.
type Level int

const (
	Error Level = iota - 2
	Warn
	Info
	Debug

	// Allow numeric logging levels up to 9.
	MaxLevel Level = 9
)

// defaultLevel is the level new loggers start at before LOGLEVEL directives
// are applied.
var defaultLevel = Info

// ParseLevel parses a level name ("error", "warn", "info", "debug", "trace",
// single-letter abbreviations, or a numeric trace level up to MaxLevel) the
// same way the LOGLEVEL environment variable is parsed. It is exported for
// callers that want to apply an override from somewhere other than the
// environment, e.g. a command-line flag.
func ParseLevel(s string) (Level, error) {
	return parseLevel(s)
}

func parseLevel(s string) (level Level, err error) {
	// First check for well-known level names or abbreviations.
	switch strings.ToUpper(s) {
	case "E", "ERROR":
		return Error, nil
	case "W", "WARN":
		return Warn, nil
	case "I", "INFO":
		return Info, nil
	case "D", "DEBUG":
		return Debug, nil
	case "T", "TRACE":
		return MaxLevel, nil
	}

	// Otherwise expect an explicit numeric level.
	if n, ierr := strconv.Atoi(s); ierr != nil {
		err = errors.New("invalid logging level: " + s)
	} else {
		level = Level(n)
		if level < Error || level > MaxLevel {
			err = errors.New("numeric level out of range: " + s)
		}
	}
	return
}

var levelToName = map[Level]string{
	Error: "Error",
	Warn:  "Warn",
	Info:  "Info",
	Debug: "Debug",
}

func (l Level) String() string {
	if name, ok := levelToName[l]; ok {
		return name
	} else {
		return fmt.Sprintf("Trace(%d)", l)
	}
}

func (l Level) letter() byte {
	if l <= Debug {
		return "EWID"[l-Error]
	} else {
		// Allow numeric values up to 9
		return byte('0' + l)
	}
}

// color picks the ANSI sequence used to highlight the level tag in a log
// line.
func (l Level) color() []byte {
	switch {
	case l <= Error:
		return ansiBoldRed
	case l == Warn:
		return ansiBoldYellow
	case l == Info:
		return ansiBoldCyan
	default:
		return ansiBoldWhite
	}
}
