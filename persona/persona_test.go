package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-ai/finsight/core"
)

func incomeEntry(latest, prior, netIncome float64) core.Entry {
	return core.Entry{
		Capability: "get_income_statement",
		Result: []any{
			map[string]any{"revenue": latest, "netIncome": netIncome},
			map[string]any{"revenue": prior},
		},
	}
}

func quoteEntry(price, change, low, high float64) core.Entry {
	return core.Entry{
		Capability: "get_stock_quote",
		Result: map[string]any{
			"price":             price,
			"changesPercentage": change,
			"yearLow":           low,
			"yearHigh":          high,
		},
	}
}

func TestValueAnalyzerBullish(t *testing.T) {
	v := NewValueAnalyzer().Analyze([]core.Entry{
		incomeEntry(1200, 1000, 240), // +20% growth, 20% margin
	})

	assert.Equal(t, SignalBullish, v.Signal)
	assert.Equal(t, "value", v.Persona)
	assert.Greater(t, v.Confidence, 0.0)
	assert.NotEmpty(t, v.Reasons)
}

func TestValueAnalyzerBearish(t *testing.T) {
	v := NewValueAnalyzer().Analyze([]core.Entry{
		incomeEntry(800, 1000, -50), // shrinking, loss-making
		{
			Capability: "get_balance_sheet",
			Result: []any{map[string]any{
				"totalDebt":               3000.0,
				"totalStockholdersEquity": 1000.0,
			}},
		},
	})

	assert.Equal(t, SignalBearish, v.Signal)
}

func TestValueAnalyzerNeutralWithoutData(t *testing.T) {
	v := NewValueAnalyzer().Analyze([]core.Entry{
		{Capability: "search_news", Result: []any{}},
	})

	assert.Equal(t, SignalNeutral, v.Signal)
	assert.Zero(t, v.Confidence)
	assert.Contains(t, v.Reasons, "no fundamental data available")
}

func TestMomentumAnalyzerBullish(t *testing.T) {
	v := NewMomentumAnalyzer().Analyze([]core.Entry{
		quoteEntry(250, 1.5, 170, 260),
	})

	assert.Equal(t, SignalBullish, v.Signal)
	assert.Equal(t, "momentum", v.Persona)
	assert.Equal(t, 1.0, v.Confidence)
}

func TestMomentumAnalyzerBearish(t *testing.T) {
	v := NewMomentumAnalyzer().Analyze([]core.Entry{
		quoteEntry(175, -2.3, 170, 260),
	})

	assert.Equal(t, SignalBearish, v.Signal)
}

func TestMomentumAnalyzerNeutralWithoutQuotes(t *testing.T) {
	v := NewMomentumAnalyzer().Analyze(nil)

	assert.Equal(t, SignalNeutral, v.Signal)
	assert.Contains(t, v.Reasons, "no quote data available")
}

func TestRecordsFlattening(t *testing.T) {
	assert.Len(t, records([]map[string]any{{"a": 1}}), 1)
	assert.Len(t, records([]any{map[string]any{"a": 1}, "junk"}), 1)
	assert.Len(t, records(map[string]any{"a": 1}), 1)
	assert.Empty(t, records("junk"))
}
