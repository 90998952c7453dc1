package search

import (
	"cmp"
	"math/big"
	"slices"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

const sortKeyID = "id"

type SortSpec struct {
	Key       string
	Direction Direction
}

// ParseSortSpec reads "[-]key". A leading "-" sorts descending.
func ParseSortSpec(raw string) SortSpec {
	raw = strings.TrimSpace(raw)
	spec := SortSpec{Direction: Ascending}
	if strings.HasPrefix(raw, "-") {
		spec.Direction = Descending
		raw = raw[1:]
	} else {
		raw = strings.TrimPrefix(raw, "+")
	}
	spec.Key = strings.ToLower(strings.TrimSpace(raw))
	return spec
}

type Comparator[T any] func(a, b T) int

func (d Direction) apply(c int) int {
	if d == Descending {
		return -c
	}
	return c
}

func SortKey[T any, K cmp.Ordered](extract func(T) K, dir Direction) Comparator[T] {
	return func(a, b T) int {
		return dir.apply(cmp.Compare(extract(a), extract(b)))
	}
}

// SnowflakeKey orders decimal ids by numeric value rather than by text.
func SnowflakeKey[T any](extract func(T) string, dir Direction) Comparator[T] {
	return func(a, b T) int {
		return dir.apply(CompareSnowflakes(extract(a), extract(b)))
	}
}

func MultiKey[T any](keys ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, key := range keys {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

func SortStable[T any](items []T, c Comparator[T]) {
	slices.SortStableFunc(items, c)
}

// CompareSnowflakes compares two decimal ids as integers. Ids that do not fit a snowflake fall
// back to arbitrary precision, and non-numeric ids sort after numeric ones.
func CompareSnowflakes(a, b string) int {
	sa, errA := snowflake.Parse(a)
	sb, errB := snowflake.Parse(b)
	if errA == nil && errB == nil {
		return cmp.Compare(uint64(sa), uint64(sb))
	}
	ba, okA := new(big.Int).SetString(a, 10)
	bb, okB := new(big.Int).SetString(b, 10)
	switch {
	case okA && okB:
		return ba.Cmp(bb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func candidateComparator(spec SortSpec) Comparator[Candidate] {
	if spec.Key == sortKeyID {
		return SnowflakeKey(func(c Candidate) string { return c.Identity().ID }, spec.Direction)
	}
	return MultiKey(
		SortKey(func(c Candidate) string { return strings.ToLower(c.Identity().Username) }, spec.Direction),
		SortKey(func(c Candidate) string { return c.Identity().Discriminator }, spec.Direction),
	)
}
