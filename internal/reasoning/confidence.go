package reasoning

// Confidence banding is presentation only; the solver never consults it.

type confidenceBand struct {
	threshold float64
	label     string
	sentence  string
	colorCls  string
}

var confidenceBands = []confidenceBand{
	{0.85, "excellent", "an excellent match across all constraints", "text-green-600"},
	{0.65, "good", "a good match with minor trade-offs", "text-emerald-600"},
	{0.50, "fair", "a fair match; review the flagged considerations", "text-yellow-600"},
	{0.35, "weak", "a weak match with notable constraint pressure", "text-orange-600"},
	{0.0, "poor", "a poor match; consider an alternative candidate", "text-red-600"},
}

func bandFor(score float64) confidenceBand {
	for _, b := range confidenceBands {
		if score >= b.threshold {
			return b
		}
	}
	return confidenceBands[len(confidenceBands)-1]
}

func ConfidenceLabel(score float64) string {
	return bandFor(score).label
}

// GenerateConfidenceExplanation renders the qualitative sentence for a
// confidence score.
func GenerateConfidenceExplanation(score float64) string {
	return bandFor(score).sentence
}

// ConfidenceColorClass returns the presentation class for a score.
func ConfidenceColorClass(score float64) string {
	return bandFor(score).colorCls
}
