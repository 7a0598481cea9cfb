package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/krobus00/rapidwire-bot/internal/entity"
)

const defaultHistoryPageSize = 50

var historyEntryColumns = []string{
	"id",
	"type",
	"operation_type",
	"timestamp",
	"source",
	"dest",
	"symbol",
	"amount",
	"created_at",
}

type HistoryFilter struct {
	OperationType string
	Symbol        string
	Limit         uint64
	Offset        uint64
}

// NewHistoryPageFilter resolves a 1-based page into an offset. A zero limit uses the default page size.
func NewHistoryPageFilter(page, limit uint64) HistoryFilter {
	if limit == 0 {
		limit = defaultHistoryPageSize
	}
	if page == 0 {
		page = 1
	}

	return HistoryFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

type HistoryEntryRepository struct {
	db *sqlx.DB
}

func NewHistoryEntryRepository(db *sqlx.DB) *HistoryEntryRepository {
	return &HistoryEntryRepository{db: db}
}

// Create reports false when the journal id was already stored.
func (r *HistoryEntryRepository) Create(ctx context.Context, record *entity.HistoryRecord) (bool, error) {
	query, args, err := buildInsertHistoryEntryQuery(record)
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *HistoryEntryRepository) Find(ctx context.Context, filter HistoryFilter) ([]entity.HistoryRecord, error) {
	query, args, err := buildSelectHistoryEntriesQuery(filter)
	if err != nil {
		return nil, err
	}

	records := make([]entity.HistoryRecord, 0)
	err = r.db.SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *HistoryEntryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func buildInsertHistoryEntryQuery(record *entity.HistoryRecord) (string, []any, error) {
	return sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert(record.TableName()).
		Columns(historyEntryColumns...).
		Values(
			record.ID,
			record.Type,
			record.OperationType,
			record.Timestamp,
			record.Source,
			record.Dest,
			record.Symbol,
			record.Amount,
			record.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
}

func buildSelectHistoryEntriesQuery(filter HistoryFilter) (string, []any, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = defaultHistoryPageSize
	}

	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(historyEntryColumns...).
		From(entity.HistoryRecord{}.TableName()).
		OrderBy("timestamp desc", "id asc").
		Limit(limit).
		Offset(filter.Offset)

	if filter.OperationType != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"operation_type": filter.OperationType})
	}
	if filter.Symbol != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"symbol": filter.Symbol})
	}

	return queryBuilder.ToSql()
}
