package feed

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/finsight-ai/finsight/capability"
)

// StatementArgs are the arguments shared by the fundamental statement
// capabilities.
type StatementArgs struct {
	Ticker string `json:"ticker" description:"Stock ticker symbol, e.g. AAPL"`
	Period string `json:"period,omitempty" description:"Reporting period: annual or quarterly (default annual)"`
	Limit  int    `json:"limit,omitempty" description:"Number of past statements to fetch (default 4)"`
}

// QuoteArgs are the arguments for the stock quote capability.
type QuoteArgs struct {
	Ticker string `json:"ticker" description:"Stock ticker symbol, e.g. AAPL"`
}

// NewsArgs are the arguments for the news search capability.
type NewsArgs struct {
	Query string `json:"query" description:"Search query, e.g. a company name or ticker"`
	Limit int    `json:"limit,omitempty" description:"Maximum number of articles (default 10)"`
}

// NewIncomeStatement returns the get_income_statement capability.
func NewIncomeStatement(c *Client) capability.Capability {
	return capability.NewFunctionCapabilityFromStruct(
		"get_income_statement",
		"Fetch historical income statements (revenue, margins, earnings) for a ticker",
		StatementArgs{},
		statementFetcher(c, "/income-statement"),
	)
}

// NewBalanceSheet returns the get_balance_sheet capability.
func NewBalanceSheet(c *Client) capability.Capability {
	return capability.NewFunctionCapabilityFromStruct(
		"get_balance_sheet",
		"Fetch historical balance sheets (assets, liabilities, equity) for a ticker",
		StatementArgs{},
		statementFetcher(c, "/balance-sheet-statement"),
	)
}

// NewStockQuote returns the get_stock_quote capability.
func NewStockQuote(c *Client) capability.Capability {
	return capability.NewFunctionCapabilityFromStruct(
		"get_stock_quote",
		"Fetch the latest price, volume and day range for a ticker",
		QuoteArgs{},
		func(ctx context.Context, args map[string]any) (any, error) {
			params := url.Values{}
			params.Set("symbol", stringArg(args, "ticker"))

			var quote map[string]any
			if err := c.get(ctx, "/quote", params, &quote); err != nil {
				return nil, classify("get_stock_quote", err)
			}
			return quote, nil
		},
	)
}

// NewNewsSearch returns the search_news capability.
func NewNewsSearch(c *Client) capability.Capability {
	return capability.NewFunctionCapabilityFromStruct(
		"search_news",
		"Search recent financial news articles for a query",
		NewsArgs{},
		func(ctx context.Context, args map[string]any) (any, error) {
			params := url.Values{}
			params.Set("q", stringArg(args, "query"))
			params.Set("limit", strconv.Itoa(intArg(args, "limit", 10)))

			var articles []map[string]any
			if err := c.get(ctx, "/news", params, &articles); err != nil {
				return nil, classify("search_news", err)
			}
			return articles, nil
		},
	)
}

// statementFetcher builds the shared fetch function for statement endpoints.
func statementFetcher(c *Client, path string) func(ctx context.Context, args map[string]any) (any, error) {
	name := "get_income_statement"
	if path == "/balance-sheet-statement" {
		name = "get_balance_sheet"
	}
	return func(ctx context.Context, args map[string]any) (any, error) {
		params := url.Values{}
		params.Set("symbol", stringArg(args, "ticker"))
		params.Set("limit", strconv.Itoa(intArg(args, "limit", 4)))
		if period := stringArg(args, "period"); period != "" {
			params.Set("period", period)
		}

		var statements []map[string]any
		if err := c.get(ctx, path, params, &statements); err != nil {
			return nil, classify(name, err)
		}
		return statements, nil
	}
}

// classify maps throttle-shaped provider failures to a throttled invocation
// error; everything else passes through and is wrapped as a permanent
// execution failure by the capability adapter.
func classify(capName string, err error) error {
	var se *statusError
	if errors.As(err, &se) && se.throttled() {
		return capability.NewInvocationError(capName, se.Error(), capability.KindThrottled)
	}
	return err
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64: // JSON numbers decode as float64
		if v > 0 {
			return int(v)
		}
	}
	return fallback
}
