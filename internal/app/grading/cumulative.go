package grading

// OverallAggregate is the reduction of a student's term aggregates.
type OverallAggregate struct {
	CGPA    float64 `json:"cgpa"`
	Credits int     `json:"credits"`
}

// AggregateOverall reduces a sequence of term aggregates to the cumulative
// GPA and lifetime credit total.
//
// The CGPA is a credit-weighted average of the already-rounded term SGPAs,
// not a re-aggregation over the pooled subjects; re-deriving from raw
// subjects would diverge from the dashboard and rankboard figures in the
// second decimal. Terms with zero credits are excluded from numerator and
// denominator so they cannot perturb rounding as spurious zero-weight
// points.
func AggregateOverall(terms []TermAggregate) OverallAggregate {
	var weighted float64
	var credits int
	for _, t := range terms {
		if t.Credits <= 0 {
			continue
		}
		weighted += t.SGPA * float64(t.Credits)
		credits += t.Credits
	}
	if credits == 0 {
		return OverallAggregate{}
	}
	return OverallAggregate{
		CGPA:    Round2(weighted / float64(credits)),
		Credits: credits,
	}
}
