package loader

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

type Level int

const (
	LevelWarn Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "warn"
}

/**
 * @brief A problem found while reading a scene document. Diagnostics never
 * stop the load; the affected element is skipped or partially applied.
 */
type Diagnostic struct {
	Level Level
	/** @brief The element being processed. */
	Tag string
	/** @brief The parser state the element was seen in. */
	State State
	/** @brief Line in the document, 1-based. */
	Line    int
	Message string
	/** @brief The sentinel from core the problem maps to, when there is one. */
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: <%s> in %s: %s", d.Line, d.Tag, d.State, d.Message)
}

func (d Diagnostic) log() {
	if d.Level == LevelError {
		core.LogError(d.String())
		return
	}
	core.LogWarn(d.String())
}
