package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/krobus00/rapidwire-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsertHistoryEntryQuery(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	record := &entity.HistoryRecord{
		ID:            "6c3f4f7e-0000-5000-8000-000000000000",
		Type:          "currency",
		OperationType: "transfer",
		Timestamp:     1700000000,
		Source:        1,
		Dest:          2,
		Symbol:        null.StringFrom("USD"),
		Amount:        25,
		CreatedAt:     createdAt,
	}

	query, args, err := buildInsertHistoryEntryQuery(record)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO history_entries (id,type,operation_type,timestamp,source,dest,symbol,amount,created_at) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT (id) DO NOTHING",
		query,
	)
	assert.Equal(t, []any{
		record.ID,
		"currency",
		"transfer",
		int64(1700000000),
		int64(1),
		int64(2),
		null.StringFrom("USD"),
		int64(25),
		createdAt,
	}, args)
}

func TestBuildSelectHistoryEntriesQuery(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		query, args, err := buildSelectHistoryEntriesQuery(HistoryFilter{})
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT id, type, operation_type, timestamp, source, dest, symbol, amount, created_at "+
				"FROM history_entries ORDER BY timestamp desc, id asc LIMIT 50 OFFSET 0",
			query,
		)
		assert.Empty(t, args)
	})

	t.Run("filters", func(t *testing.T) {
		query, args, err := buildSelectHistoryEntriesQuery(HistoryFilter{
			OperationType: "transfer",
			Symbol:        "USD",
			Limit:         10,
			Offset:        20,
		})
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE operation_type = $1 AND symbol = $2")
		assert.Contains(t, query, "LIMIT 10 OFFSET 20")
		assert.Equal(t, []any{"transfer", "USD"}, args)
	})
}

func TestNewHistoryPageFilter(t *testing.T) {
	tests := []struct {
		name       string
		page       uint64
		limit      uint64
		wantLimit  uint64
		wantOffset uint64
	}{
		{name: "first page", page: 1, limit: 10, wantLimit: 10, wantOffset: 0},
		{name: "third page", page: 3, limit: 10, wantLimit: 10, wantOffset: 20},
		{name: "zero page is the first page", page: 0, limit: 10, wantLimit: 10, wantOffset: 0},
		{name: "zero limit pages with the default size", page: 2, limit: 0, wantLimit: defaultHistoryPageSize, wantOffset: defaultHistoryPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewHistoryPageFilter(tt.page, tt.limit)
			assert.Equal(t, tt.wantLimit, filter.Limit)
			assert.Equal(t, tt.wantOffset, filter.Offset)

			query, _, err := buildSelectHistoryEntriesQuery(filter)
			require.NoError(t, err)
			assert.Contains(t, query, fmt.Sprintf("LIMIT %d OFFSET %d", tt.wantLimit, tt.wantOffset))
		})
	}
}
