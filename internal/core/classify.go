package core

// Classification maps accumulated risk to a verdict. Thresholds are checked
// top-down against the unclamped total risk, not the clamped riskScore; the
// first matching band wins.

// classifyEmail derives the email verdict. Which rule groups fired breaks
// ties between phishing and the neighbouring categories.
func classifyEmail(totalRisk int, keywordsMatched, urlsFlagged bool) (ThreatType, SeverityLevel) {
	switch {
	case totalRisk >= 70:
		if keywordsMatched || urlsFlagged {
			return ThreatPhishing, SeverityCritical
		}
		return ThreatSocialEngineering, SeverityCritical
	case totalRisk >= 50:
		if urlsFlagged {
			return ThreatPhishing, SeverityHigh
		}
		return ThreatSpam, SeverityHigh
	case totalRisk >= 30:
		return ThreatSpam, SeverityMedium
	case totalRisk >= 15:
		return ThreatUnknown, SeverityLow
	default:
		return ThreatSafe, SeveritySafe
	}
}

// classifyURL derives the URL verdict.
func classifyURL(totalRisk int) (ThreatType, SeverityLevel) {
	switch {
	case totalRisk >= 60:
		return ThreatURL, SeverityCritical
	case totalRisk >= 40:
		return ThreatURL, SeverityHigh
	case totalRisk >= 20:
		return ThreatURL, SeverityMedium
	case totalRisk >= 10:
		return ThreatUnknown, SeverityLow
	default:
		return ThreatSafe, SeveritySafe
	}
}

// classifyMessage derives the short-message verdict.
func classifyMessage(totalRisk int) (ThreatType, SeverityLevel) {
	switch {
	case totalRisk >= 60:
		return ThreatSocialEngineering, SeverityCritical
	case totalRisk >= 40:
		return ThreatPhishing, SeverityHigh
	case totalRisk >= 25:
		return ThreatSpam, SeverityMedium
	case totalRisk >= 10:
		return ThreatUnknown, SeverityLow
	default:
		return ThreatSafe, SeveritySafe
	}
}
