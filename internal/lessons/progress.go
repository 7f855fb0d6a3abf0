package lessons

import "math"

// Progress summarizes how far the learner is through the catalog.
type Progress struct {
	Completed int
	Total     int
	Remaining int
	Percent   int
}

// Summarize builds a Progress from a completed count. Percent is rounded
// half up; completed is clamped to [0, total].
func Summarize(completed, total int) Progress {
	if total <= 0 {
		return Progress{}
	}
	completed = max(0, min(completed, total))
	pct := float64(completed) / float64(total) * 100
	return Progress{
		Completed: completed,
		Total:     total,
		Remaining: total - completed,
		Percent:   int(math.Floor(pct + 0.5)),
	}
}

// Done reports whether every lesson is complete.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// Fraction returns progress in [0, 1] for progress bars.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}
