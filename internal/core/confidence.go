package core

// falsePositiveLikelihood buckets a 0-100 confidence score. Confidence itself
// is computed per evaluator, since each content type has its own base and
// indicator weighting.
func falsePositiveLikelihood(confidence int) FPLikelihood {
	switch {
	case confidence >= 85:
		return FPLow
	case confidence >= 65:
		return FPMedium
	default:
		return FPHigh
	}
}
