package grading

// Verdict is the result of grading one submission. It is built fresh per
// evaluation and owned by the caller.
type Verdict struct {
	RuleSetID   string   `json:"rule_set_id"`
	TierID      string   `json:"tier_id"`
	Level       Level    `json:"level"`
	Message     string   `json:"message"`
	Score       int      `json:"score"`
	MaxScore    int      `json:"max_score"`
	Satisfied   []string `json:"satisfied"`
	Unsatisfied []string `json:"unsatisfied"`
}

// Passed reports whether the verdict counts as a successful answer
// (excellent or good).
func (v Verdict) Passed() bool {
	return v.Level.Rank() >= LevelGood.Rank()
}
