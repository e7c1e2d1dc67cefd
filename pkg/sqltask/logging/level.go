package logging

import (
	"bytes"
	"strings"
)

// Level represents different logging levels.
type Level int

const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL
)

// String constants for logging levels.
const (
	levelDEBUG  = "DEBUG"
	levelINFO   = "INFO"
	levelNOTICE = "NOTICE"
	levelWARN   = "WARN"
	levelERROR  = "ERROR"
	levelFATAL  = "FATAL"
)

//nolint:gochecknoglobals // lookup table for level names
var levelNames = map[Level]string{
	DEBUG:  levelDEBUG,
	INFO:   levelINFO,
	NOTICE: levelNOTICE,
	WARN:   levelWARN,
	ERROR:  levelERROR,
	FATAL:  levelFATAL,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return ""
}

func (l Level) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(l.String())
	buffer.WriteString(`"`)

	return buffer.Bytes(), nil
}

func (l Level) color() uint {
	switch l {
	case ERROR, FATAL:
		return redColor
	case WARN, NOTICE:
		return yellowColor
	case INFO:
		return normalColor
	case DEBUG:
		return grayColor
	default:
		return 0
	}
}

// GetLevelFromString converts a level name to a Level. Unknown names map to INFO.
func GetLevelFromString(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case levelDEBUG:
		return DEBUG
	case levelNOTICE:
		return NOTICE
	case levelWARN:
		return WARN
	case levelERROR:
		return ERROR
	case levelFATAL:
		return FATAL
	default:
		return INFO
	}
}
