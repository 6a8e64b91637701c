package report

import tt "github.com/gnoswap-labs/rulecat/internal/types"

// Reviewer decides whether a normalized violation is kept in a report.
//
// ReviewAndDecide may modify *v before returning; the builder keeps the
// modified violation when the result is true. The pointer is only valid for
// the duration of the call and must not be retained.
type Reviewer interface {
	ReviewAndDecide(fileName string, v *tt.Violation) bool
}

// ReviewerFunc adapts an ordinary function to the Reviewer interface.
type ReviewerFunc func(fileName string, v *tt.Violation) bool

func (f ReviewerFunc) ReviewAndDecide(fileName string, v *tt.Violation) bool {
	return f(fileName, v)
}

// AcceptAll keeps every violation unchanged.
var AcceptAll Reviewer = ReviewerFunc(func(string, *tt.Violation) bool { return true })

// Chain runs reviewers in order and discards a violation as soon as one of
// them does. Modifications made by earlier reviewers are visible to later ones.
func Chain(reviewers ...Reviewer) Reviewer {
	return chain(reviewers)
}

type chain []Reviewer

func (c chain) ReviewAndDecide(fileName string, v *tt.Violation) bool {
	for _, r := range c {
		if r == nil {
			continue
		}
		if !r.ReviewAndDecide(fileName, v) {
			return false
		}
	}
	return true
}
