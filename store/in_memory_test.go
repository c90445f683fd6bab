package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-ai/finsight/core"
)

func TestInMemorySaveAndFilter(t *testing.T) {
	s := NewInMemory()

	for i := 0; i < 3; i++ {
		err := s.Save(context.Background(), core.Entry{
			Capability:    "get_stock_quote",
			Args:          map[string]any{"ticker": "AAPL"},
			Result:        i,
			CorrelationID: "batch-1",
			CreatedAt:     time.Now().UTC(),
		})
		assert.NoError(t, err)
	}
	assert.NoError(t, s.Save(context.Background(), core.Entry{
		Capability:    "search_news",
		CorrelationID: "batch-2",
	}))

	assert.Equal(t, 4, s.Len())
	assert.Len(t, s.ByCorrelation("batch-1"), 3)
	assert.Len(t, s.ByCorrelation("batch-2"), 1)
	assert.Empty(t, s.ByCorrelation("unknown"))

	// Insertion order is preserved within a correlation.
	entries := s.ByCorrelation("batch-1")
	for i, e := range entries {
		assert.Equal(t, i, e.Result)
	}
}

func TestInMemoryConcurrentSaves(t *testing.T) {
	s := NewInMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(context.Background(), core.Entry{
				Capability:    fmt.Sprintf("cap-%d", i),
				CorrelationID: "batch",
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Len(t, s.ByCorrelation("batch"), 50)
}
