package persona

import (
	"fmt"

	"github.com/finsight-ai/finsight/core"
)

// MomentumAnalyzer scores price action: day change and distance from the
// 52-week range midpoint, read from quote entries. It stays neutral when the
// batch carries no quote data.
type MomentumAnalyzer struct{}

// NewMomentumAnalyzer constructs a MomentumAnalyzer.
func NewMomentumAnalyzer() *MomentumAnalyzer { return &MomentumAnalyzer{} }

// Name returns the persona name.
func (a *MomentumAnalyzer) Name() string { return "momentum" }

// Analyze implements Analyzer.
func (a *MomentumAnalyzer) Analyze(entries []core.Entry) Verdict {
	v := Verdict{Persona: a.Name(), Signal: SignalNeutral}

	score := 0
	checks := 0

	for _, result := range entriesFor(entries, "get_stock_quote") {
		for _, quote := range records(result) {
			if change, ok := number(quote, "changesPercentage"); ok {
				checks++
				if change > 0 {
					score++
					v.Reasons = append(v.Reasons, fmt.Sprintf("up %.2f%% on the day", change))
				} else if change < 0 {
					score--
					v.Reasons = append(v.Reasons, fmt.Sprintf("down %.2f%% on the day", -change))
				}
			}

			price, okP := number(quote, "price")
			low, okL := number(quote, "yearLow")
			high, okH := number(quote, "yearHigh")
			if okP && okL && okH && high > low {
				checks++
				position := (price - low) / (high - low)
				if position >= 0.5 {
					score++
					v.Reasons = append(v.Reasons, fmt.Sprintf("trading in the upper half of its 52-week range (%.0f%%)", position*100))
				} else {
					score--
					v.Reasons = append(v.Reasons, fmt.Sprintf("trading in the lower half of its 52-week range (%.0f%%)", position*100))
				}
			}
		}
	}

	if checks == 0 {
		v.Reasons = append(v.Reasons, "no quote data available")
		return v
	}

	v.Confidence = float64(checks) / 2
	if v.Confidence > 1 {
		v.Confidence = 1
	}
	switch {
	case score > 0:
		v.Signal = SignalBullish
	case score < 0:
		v.Signal = SignalBearish
	}
	return v
}
