// Package relativetime parses natural-language relative time expressions
// ("3 days ago", "last Tuesday") via the teacher's olebedev/when dependency,
// for the CLI query command's --since flag. It does not format time back
// into English; when has no reverse direction. The crash journal prints
// absolute timestamps and the briefing reports staleness as a day count.
package relativetime

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// Parse resolves a relative or absolute natural-language time expression
// against base (normally time.Now()). Returns ok=false when the
// expression could not be recognized at all.
func Parse(expr string, base time.Time) (t time.Time, ok bool, err error) {
	r, err := parser.Parse(expr, base)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse relative time %q: %w", expr, err)
	}
	if r == nil {
		return time.Time{}, false, nil
	}
	return r.Time, true, nil
}
