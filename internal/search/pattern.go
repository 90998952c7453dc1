package search

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"
)

const maxStarDepth = 1

// CompilePattern turns user input into a matcher. A blank pattern returns a nil matcher, which
// callers treat as "no text filter". Patterns with nested repetition are rejected before use.
func CompilePattern(pattern string, caseSensitive, isRegex bool) (*regexp.Regexp, error) {
	pattern = strings.TrimLeftFunc(pattern, unicode.IsSpace)
	if pattern == "" {
		return nil, nil
	}
	if !isRegex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}

	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, describeSyntaxError(err))
	}
	if starDepth(parsed) > maxStarDepth {
		return nil, ErrUnsafePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, describeSyntaxError(err))
	}
	return re, nil
}

func describeSyntaxError(err error) string {
	var se *syntax.Error
	if errors.As(err, &se) {
		return se.Code.String()
	}
	return err.Error()
}

// starDepth is the deepest nesting of *, + and {n,m} in the tree.
func starDepth(re *syntax.Regexp) int {
	deepest := 0
	for _, sub := range re.Sub {
		if d := starDepth(sub); d > deepest {
			deepest = d
		}
	}
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus, syntax.OpRepeat:
		return deepest + 1
	default:
		return deepest
	}
}
