package search

import (
	"errors"
	"testing"
)

func TestCompilePattern_RejectsNestedRepetition(t *testing.T) {
	for _, pattern := range []string{`(a+)+`, `(a*)*`, `(?:a{2,5})+`, `((ab)*c)+`} {
		if _, err := CompilePattern(pattern, false, true); !errors.Is(err, ErrUnsafePattern) {
			t.Fatalf("expected %q to be rejected as unsafe, got %v", pattern, err)
		}
	}
}

func TestCompilePattern_AcceptsFlatRepetition(t *testing.T) {
	re, err := CompilePattern(`a+b*`, false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.MatchString("aaab") {
		t.Fatal("expected pattern to match aaab")
	}
}

func TestCompilePattern_LiteralIsEscaped(t *testing.T) {
	re, err := CompilePattern("a.b(", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if re.MatchString("axb(") {
		t.Fatal("expected literal dot to not match any character")
	}
	if !re.MatchString("xa.b(y") {
		t.Fatal("expected literal text to match verbatim")
	}
}

func TestCompilePattern_CaseSensitivity(t *testing.T) {
	insensitive, err := CompilePattern("Alice", false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !insensitive.MatchString("alice#0001") {
		t.Fatal("expected case-insensitive match")
	}
	sensitive, err := CompilePattern("Alice", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sensitive.MatchString("alice#0001") {
		t.Fatal("expected case-sensitive pattern to reject different case")
	}
}

func TestCompilePattern_TrimsLeadingWhitespace(t *testing.T) {
	re, err := CompilePattern("   ^bob", true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.MatchString("bob#1234") {
		t.Fatal("expected leading whitespace to be trimmed before compiling")
	}
}

func TestCompilePattern_BlankPatternMeansNoFilter(t *testing.T) {
	re, err := CompilePattern("  ", false, true)
	if err != nil || re != nil {
		t.Fatalf("expected nil matcher and nil error, got %v, %v", re, err)
	}
}

func TestCompilePattern_InvalidSyntax(t *testing.T) {
	if _, err := CompilePattern("(abc", false, true); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
}
