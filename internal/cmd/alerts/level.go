package alerts

import (
	"fmt"

	"github.com/agentstation/rostermerge/internal/cmd/emoji"
)

// Level represents the severity of an alert.
type Level int

// Alert levels, most severe first.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

type levelStyle struct {
	name  string
	icon  string
	color string // ANSI
}

var levelStyles = [...]levelStyle{
	LevelError:   {"error", emoji.Error, "\033[31m"},
	LevelWarning: {"warning", emoji.Warning, "\033[33m"},
	LevelInfo:    {"info", emoji.Info, "\033[36m"},
	LevelSuccess: {"success", emoji.Success, "\033[32m"},
}

const resetColor = "\033[0m"

func (l Level) style() (levelStyle, bool) {
	if l < 0 || int(l) >= len(levelStyles) {
		return levelStyle{}, false
	}
	return levelStyles[l], true
}

// String returns the string representation of the alert level.
func (l Level) String() string {
	if s, ok := l.style(); ok {
		return s.name
	}
	return fmt.Sprintf("unknown(%d)", l)
}

// Icon returns the symbol printed before the alert message.
func (l Level) Icon() string {
	if s, ok := l.style(); ok {
		return s.icon
	}
	return emoji.Unknown
}

// Color returns the ANSI color code for terminal output.
func (l Level) Color() string {
	if s, ok := l.style(); ok {
		return s.color
	}
	return resetColor
}
