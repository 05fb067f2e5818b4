package core

import (
	"fmt"
	"strings"
)

var severityPhrases = map[SeverityLevel]string{
	SeverityCritical: "extremely high-risk",
	SeverityHigh:     "high-risk",
	SeverityMedium:   "potentially suspicious",
	SeverityLow:      "low-risk",
}

var threatPhrases = map[ThreatType]string{
	ThreatPhishing:          "phishing attack attempting to steal credentials or sensitive information",
	ThreatMalware:           "potential malware distribution",
	ThreatSpam:              "unsolicited spam or promotional content",
	ThreatSocialEngineering: "social engineering manipulation tactics",
	ThreatCredentialTheft:   "active credential harvesting attempt",
	ThreatURL:               "malicious or deceptive URL",
	ThreatDataExfiltration:  "possible data theft attempt",
}

// generateSummary renders the one-line human verdict.
func generateSummary(threatType ThreatType, severity SeverityLevel, riskScore, indicatorCount int) string {
	if threatType == ThreatSafe {
		return "No significant threats detected. This content appears to be safe, " +
			"but always exercise caution with unsolicited communications."
	}

	severityText, ok := severityPhrases[severity]
	if !ok {
		severityText = "unknown risk"
	}
	threatText, ok := threatPhrases[threatType]
	if !ok {
		threatText = "suspicious activity"
	}

	return fmt.Sprintf("Analysis detected a %s %s. Found %d threat indicator(s) with a "+
		"combined risk score of %d%%. Immediate caution is advised.",
		severityText, threatText, indicatorCount, riskScore)
}

// generateRecommendations builds the action list additively, then truncates
// to 5 entries. Low-risk and safe verdicts replace everything accumulated
// with the generic caution directives.
func generateRecommendations(threatType ThreatType, severity SeverityLevel) []string {
	var recs []string

	if severity == SeverityCritical || severity == SeverityHigh {
		recs = append(recs,
			"Do NOT click any links in this content",
			"Do NOT reply or provide any personal information",
			"Report this to your IT security team immediately",
		)
	}

	if threatType == ThreatPhishing || threatType == ThreatCredentialTheft {
		recs = append(recs,
			"If you entered credentials, change your password immediately",
			"Enable two-factor authentication on affected accounts",
			"Monitor your accounts for unauthorized activity",
		)
	}

	if strings.Contains(string(threatType), "url") || severity == SeverityCritical || severity == SeverityHigh {
		recs = append(recs, "Block the sender or source of this content")
	}

	if len(recs) == 0 || severity == SeverityLow || severity == SeveritySafe {
		recs = []string{
			"Always verify sender identity before responding",
			"Be cautious of unsolicited requests for information",
			"When in doubt, contact the organization directly using official channels",
		}
	}

	return recs[:min(len(recs), 5)]
}
