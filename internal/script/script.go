// Package script models shell scripts as composable values.
//
// Guards and fallbacks are expressed with combinators (And, Or) instead of
// string concatenation, so the intended control flow can be inspected and
// tested before it is serialized. The final shell text is produced only at
// the execution boundary.
package script

import (
	"fmt"
	"strings"
)

// Script is an immutable piece of shell code.
type Script struct {
	text string
}

// New builds a script from a format string.
func New(format string, args ...any) Script {
	return Script{text: fmt.Sprintf(format, args...)}
}

// Lines builds a multi-line script, one command per line.
func Lines(lines ...string) Script {
	return Script{text: strings.Join(lines, "\n")}
}

// True is the unconditional-success fallback used by backends that have no
// native "tolerate missing" flag.
var True = Script{text: "/bin/true"}

// Or chains t after s with shell-OR semantics: t runs only if s fails.
func (s Script) Or(t Script) Script {
	if s.IsEmpty() {
		return t
	}
	if t.IsEmpty() {
		return s
	}
	return Script{text: s.text + " || " + t.text}
}

// And chains t after s with shell-AND semantics: t runs only if s succeeds.
func (s Script) And(t Script) Script {
	if s.IsEmpty() {
		return t
	}
	if t.IsEmpty() {
		return s
	}
	return Script{text: s.text + " && " + t.text}
}

// IsEmpty reports whether the script contains no code.
func (s Script) IsEmpty() bool {
	return s.text == ""
}

// String returns the shell text of the script.
func (s Script) String() string {
	return s.text
}
