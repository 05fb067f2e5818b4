package core

import (
	"regexp"
	"strings"
)

// matcherKind tags how a rule tests content.
type matcherKind int

const (
	matchSubstring matcherKind = iota
	matchRegex
)

// matcher is one immutable detection rule: a case-insensitive substring or a
// regex test over the full content. Regex matchers are compiled once at
// library construction and never mutated afterwards.
type matcher struct {
	kind    matcherKind
	pattern string
	re      *regexp.Regexp
}

func substr(p string) matcher {
	return matcher{kind: matchSubstring, pattern: p}
}

func rx(p string) matcher {
	return matcher{kind: matchRegex, pattern: p, re: regexp.MustCompile(p)}
}

// matches tests the rule against content. Substring rules expect the caller
// to pass lower-cased content.
func (m matcher) matches(content string) bool {
	if m.kind == matchSubstring {
		return strings.Contains(content, m.pattern)
	}
	return m.re.MatchString(content)
}

// PatternLibrary holds the static, versioned rule tables for all three
// content types. Initialize once with NewPatternLibrary and share freely;
// evaluation never mutates it.
type PatternLibrary struct {
	// Email rule groups.
	urgencyKeywords    []matcher
	credentialPatterns []matcher
	suspiciousURLRules []matcher
	socialPhrases      []matcher

	// URL rule groups.
	urlShorteners []string
	suspiciousTLD []string
	urlKeywords   []string

	// Message rule groups.
	messageTriggers   []matcher
	financialPatterns []matcher

	// URL extraction.
	emailURLPattern   *regexp.Regexp
	messageURLPattern *regexp.Regexp
	ipv4Pattern       *regexp.Regexp
}

// NewPatternLibrary builds the full rule set. Weights and caps live with the
// evaluators; the library carries only matchers.
func NewPatternLibrary() *PatternLibrary {
	return &PatternLibrary{
		urgencyKeywords: []matcher{
			substr("urgent"), substr("immediately"), substr("verify"),
			substr("suspended"), substr("unusual activity"), substr("click here"),
			substr("confirm your"), substr("update your"), substr("expires"),
			substr("limited time"), substr("act now"), substr("don't delay"),
			substr("final notice"), substr("account will be"), substr("security alert"),
			substr("unauthorized"), substr("compromised"), substr("locked"),
		},
		credentialPatterns: []matcher{
			rx(`password`), rx(`login`), rx(`username`), rx(`ssn`),
			rx(`social security`), rx(`credit card`), rx(`bank account`),
			rx(`routing number`), rx(`pin`), rx(`cvv`), rx(`expir(e|ation|y)`),
			rx(`billing`),
		},
		// Ordered: shorteners, IPv4 literal, random-looking subdomain, free
		// TLDs, path keywords, query-string markers. First hit flags a URL.
		suspiciousURLRules: []matcher{
			rx(`bit\.ly|tinyurl|goo\.gl|t\.co`),
			rx(`\d+\.\d+\.\d+\.\d+`),
			rx(`[a-z0-9]+-[a-z0-9]+-[a-z0-9]+\.`),
			rx(`\.tk$|\.ml$|\.ga$|\.cf$`),
			rx(`login|signin|verify|secure|account|update`),
			rx(`\.php\?|\.asp\?`),
		},
		socialPhrases: []matcher{
			substr("you have won"), substr("congratulations"), substr("selected"),
			substr("lucky winner"), substr("million dollars"), substr("lottery"),
			substr("inheritance"), substr("prince"), substr("wire transfer"),
			substr("western union"), substr("money gram"), substr("bitcoin"),
			substr("gift card"), substr("itunes"), substr("amazon card"),
		},
		urlShorteners: []string{"bit.ly", "tinyurl", "goo.gl", "t.co", "ow.ly", "is.gd"},
		suspiciousTLD: []string{".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".work"},
		urlKeywords: []string{
			"login", "signin", "verify", "secure", "account",
			"update", "confirm", "bank", "paypal",
		},
		messageTriggers: []matcher{
			substr("urgent"), substr("verify"), substr("click"), substr("prize"),
			substr("winner"), substr("claim"), substr("expires"), substr("suspended"),
		},
		financialPatterns: []matcher{
			rx(`\$\d+`), rx(`£\d+`), rx(`€\d+`),
			substr("money"), substr("cash"), substr("transfer"),
			substr("payment"), substr("bitcoin"), substr("crypto"),
		},
		emailURLPattern:   regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`),
		messageURLPattern: regexp.MustCompile(`https?://\S+`),
		ipv4Pattern:       regexp.MustCompile(`\d+\.\d+\.\d+\.\d+`),
	}
}
