// Package parse implements the embed-to-record parsing core. It turns the
// loosely formatted rich-message panels posted by mission scripting bots
// into typed server status and leaderboard records.
//
// Everything in this package is pure computation: no I/O, no logging, no
// clock. Missing panels and unmatched patterns degrade to documented
// defaults instead of errors.
package parse

// Field is one name/value pair of a panel. Both sides are free text.
type Field struct {
	Name  string
	Value string
}

// Panel is one rich-message attachment: title, free-form description,
// ordered fields, and footer text. Panels are read-only inputs.
type Panel struct {
	Title       string
	Description string
	Footer      string
	Fields      []Field
}
