package core

// outcome is the common result every evaluator produces. totalRisk is the
// unclamped sum of its rule-group additions; the clamped riskScore is derived
// later by the orchestrator.
type outcome struct {
	indicators    []ThreatIndicator
	contributions []RiskContribution
	explanations  []ExplanationSection
	totalRisk     int
	threatType    ThreatType
	severity      SeverityLevel
	confidence    int

	// safeExplanation is emitted when no rule fired.
	safeExplanation ExplanationSection
}

// evaluator runs one content type's rule groups against a request. content is
// the original-case input, lower its lower-cased form. Evaluation is total
// over arbitrary strings and never fails.
type evaluator interface {
	evaluate(content, lower string) outcome
}
