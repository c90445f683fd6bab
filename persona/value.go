package persona

import (
	"fmt"

	"github.com/finsight-ai/finsight/core"
)

// ValueAnalyzer scores fundamentals: revenue trajectory and net margin from
// income statements, leverage from balance sheets. It stays neutral when the
// batch carries no fundamental data.
type ValueAnalyzer struct{}

// NewValueAnalyzer constructs a ValueAnalyzer.
func NewValueAnalyzer() *ValueAnalyzer { return &ValueAnalyzer{} }

// Name returns the persona name.
func (a *ValueAnalyzer) Name() string { return "value" }

// Analyze implements Analyzer.
func (a *ValueAnalyzer) Analyze(entries []core.Entry) Verdict {
	v := Verdict{Persona: a.Name(), Signal: SignalNeutral}

	score := 0
	checks := 0

	for _, result := range entriesFor(entries, "get_income_statement") {
		stmts := records(result)
		if len(stmts) >= 2 {
			// Statements arrive newest first.
			latest, _ := number(stmts[0], "revenue")
			prior, _ := number(stmts[1], "revenue")
			if prior > 0 {
				checks++
				growth := (latest - prior) / prior
				if growth > 0 {
					score++
					v.Reasons = append(v.Reasons, fmt.Sprintf("revenue growing %.1f%% year over year", growth*100))
				} else {
					score--
					v.Reasons = append(v.Reasons, fmt.Sprintf("revenue shrinking %.1f%% year over year", -growth*100))
				}
			}
		}
		if len(stmts) >= 1 {
			revenue, okR := number(stmts[0], "revenue")
			netIncome, okN := number(stmts[0], "netIncome")
			if okR && okN && revenue > 0 {
				checks++
				margin := netIncome / revenue
				if margin >= 0.10 {
					score++
					v.Reasons = append(v.Reasons, fmt.Sprintf("net margin %.1f%%", margin*100))
				} else if margin < 0 {
					score--
					v.Reasons = append(v.Reasons, "negative net margin")
				}
			}
		}
	}

	for _, result := range entriesFor(entries, "get_balance_sheet") {
		sheets := records(result)
		if len(sheets) == 0 {
			continue
		}
		debt, okD := number(sheets[0], "totalDebt")
		equity, okE := number(sheets[0], "totalStockholdersEquity")
		if okD && okE && equity > 0 {
			checks++
			ratio := debt / equity
			if ratio < 1 {
				score++
				v.Reasons = append(v.Reasons, fmt.Sprintf("conservative leverage, debt/equity %.2f", ratio))
			} else if ratio > 2 {
				score--
				v.Reasons = append(v.Reasons, fmt.Sprintf("high leverage, debt/equity %.2f", ratio))
			}
		}
	}

	if checks == 0 {
		v.Reasons = append(v.Reasons, "no fundamental data available")
		return v
	}

	v.Confidence = float64(checks) / 3
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
