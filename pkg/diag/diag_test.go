package diag

import "testing"

func TestReportDiscardsBelowThreshold(t *testing.T) {
	s := NewSink()
	s.SetLevel(LevelWarning)
	if err := s.Report(LevelDebug, CodeNone, "", "noise"); err != nil {
		t.Fatalf("Report at debug with warning threshold returned %v, want nil", err)
	}
	if got := len(s.All()); got != 0 {
		t.Fatalf("All() len = %d, want 0", got)
	}
}

func TestReportErrorAlwaysRecorded(t *testing.T) {
	s := NewSink()
	s.SetLevel(LevelError)
	err := s.Report(LevelError, CodeMissingRequiredArgument, "m.yin:3", "missing %s", "key")
	if err == nil {
		t.Fatalf("Report at error level returned nil error")
	}
	if got, want := len(s.Errors()), 1; got != want {
		t.Fatalf("Errors() len = %d, want %d", got, want)
	}
}

func TestErrorsSortedAndDeduped(t *testing.T) {
	s := NewSink()
	s.Errorf(CodeDuplicateKey, "b.yin:5", "dup")
	s.Errorf(CodeDuplicateKey, "a.yin:1", "dup")
	s.Errorf(CodeDuplicateKey, "a.yin:1", "dup")
	errs := s.Errors()
	if got, want := len(errs), 2; got != want {
		t.Fatalf("Errors() len = %d, want %d (after dedup)", got, want)
	}
	if errs[0].Location != "a.yin:1" || errs[1].Location != "b.yin:5" {
		t.Fatalf("Errors() not sorted by location: %+v", errs)
	}
}

func TestLastError(t *testing.T) {
	s := NewSink()
	if s.LastError() != nil {
		t.Fatalf("LastError on empty sink = %v, want nil", s.LastError())
	}
	s.Warningf("", "just a warning")
	if s.LastError() != nil {
		t.Fatalf("LastError after warning-only = %v, want nil", s.LastError())
	}
	s.Errorf(CodeFatal, "x.yin:1", "boom")
	if s.LastError() == nil || s.LastError().Message != "boom" {
		t.Fatalf("LastError = %+v, want message %q", s.LastError(), "boom")
	}
}

func TestReset(t *testing.T) {
	s := NewSink()
	s.Errorf(CodeIO, "", "fail")
	s.Reset()
	if got := len(s.All()); got != 0 {
		t.Fatalf("All() after Reset len = %d, want 0", got)
	}
	if s.LastError() != nil {
		t.Fatalf("LastError after Reset = %v, want nil", s.LastError())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"error":   LevelError,
		"warning": LevelWarning,
		"verbose": LevelVerbose,
		"debug":   LevelDebug,
		"2":       LevelVerbose,
	}
	for s, want := range cases {
		got, ok := ParseLevel(s)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, true)", s, got, ok, want)
		}
	}
	if _, ok := ParseLevel("bogus"); ok {
		t.Errorf("ParseLevel(bogus) ok = true, want false")
	}
}
