package morality

// Totals is a cumulative good/bad choice count with its derived alignment
type Totals struct {
	Good      int
	Bad       int
	Alignment float64
}

// Alignment turns good/bad counts into a bounded alignment score in
// [-1, 1]. Zero totals yield the neutral 0.0 rather than dividing by zero.
func Alignment(good, bad int) float64 {
	total := good + bad
	if total == 0 {
		return 0.0
	}
	return float64(good-bad) / float64(total)
}

// Merge adds a session's counts onto cumulative totals and recomputes the
// alignment over the new cumulative counts. Alignment is always a lifetime
// figure, never a per-game one.
func Merge(totals Totals, sessionGood, sessionBad int) Totals {
	merged := Totals{
		Good: totals.Good + sessionGood,
		Bad:  totals.Bad + sessionBad,
	}
	merged.Alignment = Alignment(merged.Good, merged.Bad)
	return merged
}
