package main

import (
	"regexp"
	"strings"

	"github.com/finsight-ai/finsight/core"
)

var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// tickerStopwords are upper-case words that look like tickers but are not.
var tickerStopwords = map[string]bool{
	"A": true, "I": true, "AND": true, "OR": true, "THE": true, "FOR": true,
	"VS": true, "EPS": true, "PE": true, "ROE": true, "YOY": true, "Q": true,
	"USD": true, "ETF": true, "IPO": true, "CEO": true, "AI": true,
}

// extractFacts pulls the typed hints the selector cares about out of a raw
// question: upper-case ticker symbols and reporting-period keywords.
func extractFacts(question string) core.Facts {
	var facts core.Facts

	seen := map[string]bool{}
	for _, match := range tickerPattern.FindAllString(question, -1) {
		if tickerStopwords[match] || seen[match] {
			continue
		}
		seen[match] = true
		facts = append(facts, core.Fact{Type: "ticker", Value: match})
	}

	lower := strings.ToLower(question)
	switch {
	case strings.Contains(lower, "quarter"):
		facts = append(facts, core.Fact{Type: "period", Value: "quarterly"})
	case strings.Contains(lower, "annual"), strings.Contains(lower, "year"):
		facts = append(facts, core.Fact{Type: "period", Value: "annual"})
	}

	return facts
}
