// Package diag implements the leveled diagnostic sink consumed by the XML
// parser and schema compiler.
//
// Diagnostics accumulate rather than failing fast, and are sorted and
// deduplicated on read-out. The sink is owned by one Context rather than
// kept as process-wide state, so verbosity and the last-error indicator
// never leak between independent compilations.
package diag

import (
	"fmt"
	"sort"
)

// Level is a diagnostic severity.
type Level int

// The four diagnostic severities, ordered least to most verbose.
const (
	LevelError Level = iota
	LevelWarning
	LevelVerbose
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	default:
		return fmt.Sprintf("level-%d", int(l))
	}
}

// ParseLevel maps the LEVEL argument of the CLI's verb command to a Level, accepting
// either the word form ("warning") or the numeric form ("1").
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "error", "0":
		return LevelError, true
	case "warning", "1":
		return LevelWarning, true
	case "verbose", "2":
		return LevelVerbose, true
	case "debug", "3":
		return LevelDebug, true
	}
	return 0, false
}

// Code is a validation error code.
type Code int

// The schema validation codes, plus the additional error/IO/fatal
// categories used for non-validation failures.
const (
	CodeNone Code = iota
	CodeMissingRequiredArgument
	CodeUnknownStatement
	CodeTooManyOccurrences
	CodeInvalidArgumentValue
	CodeUnresolvablePrefix
	CodeDuplicateKey
	CodeKeyNotLeaf
	CodeKeyTypeEmpty
	CodeKeyConfigMismatch
	CodeMissingKey
	CodeDuplicateEnumName
	CodeDuplicateEnumValue
	CodeWhitespaceInEnumName
	CodeDuplicateModule
	CodeUnknownTypedef
	CodeUnknownIdentityBase
	CodeInvalidUses
	CodeMalformedXML
	CodeIO
	CodeFatal
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeMissingRequiredArgument:
		return "missing-required-argument"
	case CodeUnknownStatement:
		return "unknown-statement"
	case CodeTooManyOccurrences:
		return "too-many-occurrences"
	case CodeInvalidArgumentValue:
		return "invalid-argument-value"
	case CodeUnresolvablePrefix:
		return "unresolvable-prefix"
	case CodeDuplicateKey:
		return "duplicate-key"
	case CodeKeyNotLeaf:
		return "key-not-leaf"
	case CodeKeyTypeEmpty:
		return "key-type-empty"
	case CodeKeyConfigMismatch:
		return "key-config-mismatch"
	case CodeMissingKey:
		return "missing-key"
	case CodeDuplicateEnumName:
		return "duplicate-enum-name"
	case CodeDuplicateEnumValue:
		return "duplicate-enum-value"
	case CodeWhitespaceInEnumName:
		return "whitespace-in-enum-name"
	case CodeDuplicateModule:
		return "duplicate-module"
	case CodeUnknownTypedef:
		return "unknown-typedef"
	case CodeUnknownIdentityBase:
		return "unknown-identity-base"
	case CodeInvalidUses:
		return "invalid-uses"
	case CodeMalformedXML:
		return "malformed-xml"
	case CodeIO:
		return "io"
	case CodeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("code-%d", int(c))
	}
}

// A Diagnostic is one reported condition: a severity, a validation code,
// a formatted message, and the source-line it was attributed to.
type Diagnostic struct {
	Level    Level
	Code     Code
	Message  string
	Location string // e.g. "foo.yin:12", or "" if unknown
}

func (d *Diagnostic) Error() string {
	if d.Location == "" {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Level, d.Message)
}

// A Sink accumulates diagnostics for a single Context. It is not safe for
// concurrent use from multiple goroutines without external
// synchronization.
type Sink struct {
	threshold Level
	diags     []*Diagnostic
	last      *Diagnostic
}

// NewSink returns a Sink with the default threshold (LevelWarning).
func NewSink() *Sink {
	return &Sink{threshold: LevelWarning}
}

// SetLevel sets the verbosity threshold below which diagnostics are
// discarded rather than recorded. Errors are always recorded regardless of
// threshold.
func (s *Sink) SetLevel(l Level) { s.threshold = l }

// Level returns the current verbosity threshold.
func (s *Sink) Level() Level { return s.threshold }

// Report records a diagnostic, subject to the verbosity threshold. It
// returns the diagnostic as an error only when level is LevelError; for
// any other level it returns nil, whether or not the diagnostic was
// recorded.
func (s *Sink) Report(level Level, code Code, location, format string, args ...interface{}) error {
	if level != LevelError && level > s.threshold {
		return nil
	}
	d := &Diagnostic{
		Level:    level,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
	s.diags = append(s.diags, d)
	s.last = d
	if level == LevelError {
		return d
	}
	return nil
}

// Errorf reports an error-level diagnostic and always returns it as an
// error, for use at call sites that need to propagate failure.
func (s *Sink) Errorf(code Code, location, format string, args ...interface{}) error {
	d := &Diagnostic{Level: LevelError, Code: code, Message: fmt.Sprintf(format, args...), Location: location}
	s.diags = append(s.diags, d)
	s.last = d
	return d
}

// Warningf reports a warning-level diagnostic.
func (s *Sink) Warningf(location, format string, args ...interface{}) {
	s.Report(LevelWarning, CodeNone, location, format, args...)
}

// LastError returns the most recently reported error-level diagnostic, or
// nil if none has been reported.
func (s *Sink) LastError() *Diagnostic {
	for i := len(s.diags) - 1; i >= 0; i-- {
		if s.diags[i].Level == LevelError {
			return s.diags[i]
		}
	}
	return nil
}

// Errors returns the sorted, deduplicated list of error-level diagnostics
// recorded so far, sorted by location with duplicate messages removed.
func (s *Sink) Errors() []*Diagnostic {
	var errs []*Diagnostic
	for _, d := range s.diags {
		if d.Level == LevelError {
			errs = append(errs, d)
		}
	}
	return sortDedup(errs)
}

// All returns every diagnostic recorded so far, in report order.
func (s *Sink) All() []*Diagnostic {
	out := make([]*Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// Reset clears all recorded diagnostics without changing the threshold.
func (s *Sink) Reset() {
	s.diags = nil
	s.last = nil
}

func sortDedup(diags []*Diagnostic) []*Diagnostic {
	if len(diags) < 2 {
		return diags
	}
	sorted := make([]*Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Location != sorted[j].Location {
			return sorted[i].Location < sorted[j].Location
		}
		return sorted[i].Message < sorted[j].Message
	})
	out := sorted[:0:0]
	for i, d := range sorted {
		if i > 0 && d.Message == sorted[i-1].Message && d.Location == sorted[i-1].Location {
			continue
		}
		out = append(out, d)
	}
	return out
}
