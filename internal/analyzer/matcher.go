package analyzer

import "time"

// Pair holds two records matched across streams.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// present reports whether a record carries a usable timestamp.
func present[T Timestamped](r T) bool {
	return !r.At().IsZero()
}

// Nearest returns the record whose timestamp is closest to ts. Ties go to the
// earliest position in series. Records without a timestamp are ignored. The
// boolean is false when nothing could be matched.
func Nearest[T Timestamped](ts time.Time, series []T) (T, bool) {
	var best T
	found := false
	var bestDiff time.Duration

	for _, r := range series {
		if !present(r) {
			continue
		}
		diff := absDuration(r.At().Sub(ts))
		if !found || diff < bestDiff {
			best = r
			bestDiff = diff
			found = true
		}
	}
	return best, found
}

// PositionalPair pairs a[i] with b[i] for i < min(len(a), len(b)), skipping
// indices where either record is absent. No timestamp alignment is done; the
// two histories are assumed to have been recorded together.
func PositionalPair[A, B Timestamped](a []A, b []B) []Pair[A, B] {
	n := min(len(a), len(b))
	pairs := make([]Pair[A, B], 0, n)
	for i := 0; i < n; i++ {
		if !present(a[i]) || !present(b[i]) {
			continue
		}
		pairs = append(pairs, Pair[A, B]{Left: a[i], Right: b[i]})
	}
	return pairs
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
