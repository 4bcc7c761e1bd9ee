package scorer

// Rule is one predicate/output pair of a Rules set.
type Rule[In any, T any] struct {
	Name   string
	When   func(In) bool
	Output T
}

// Rules evaluates predicates in declared order; the first match wins.
type Rules[In any, T any] struct {
	rules    []Rule[In, T]
	fallback T
}

// NewRules creates a rule set with a default output for when nothing matches.
func NewRules[In any, T any](fallback T, rules ...Rule[In, T]) *Rules[In, T] {
	cp := make([]Rule[In, T], len(rules))
	copy(cp, rules)
	return &Rules[In, T]{rules: cp, fallback: fallback}
}

// Classify returns the output of the first rule whose predicate holds for in.
func (r *Rules[In, T]) Classify(in In) T {
	out, _ := r.Match(in)
	return out
}

// Match is like Classify but also returns the matched rule name,
// or "" when the default was used.
func (r *Rules[In, T]) Match(in In) (T, string) {
	for _, rule := range r.rules {
		if rule.When != nil && rule.When(in) {
			return rule.Output, rule.Name
		}
	}
	return r.fallback, ""
}
