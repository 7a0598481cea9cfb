package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v6"
	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
)

var historyJournalNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("rapidwire.history_entries"))

type HistoryEntryEvent struct {
	RetryCount int                    `json:"retry"`
	JournalID  string                 `json:"journal_id"`
	Data       rapidwire.HistoryEntry `json:"data"`
}

// HistoryCursor marks the newest history entry already handed to the journal.
type HistoryCursor struct {
	JournalID string `json:"journal_id"`
	Timestamp int64  `json:"timestamp"`
	SyncedAt  int64  `json:"synced_at"`
}

type HistoryRecord struct {
	ID            string      `db:"id" json:"id"`
	Type          string      `db:"type" json:"type"`
	OperationType string      `db:"operation_type" json:"operation_type"`
	Timestamp     int64       `db:"timestamp" json:"timestamp"`
	Source        int64       `db:"source" json:"source"`
	Dest          int64       `db:"dest" json:"dest"`
	Symbol        null.String `db:"symbol" json:"symbol"`
	Amount        int64       `db:"amount" json:"amount"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

func (h HistoryRecord) TableName() string {
	return "history_entries"
}

// HistoryJournalID is stable for a given entry so replays insert nothing new.
func HistoryJournalID(entry rapidwire.HistoryEntry) string {
	key := fmt.Sprintf("%s|%s|%d|%d|%d|%s|%d",
		entry.Type,
		entry.OperationType,
		entry.Timestamp,
		entry.Source,
		entry.Dest,
		entry.Symbol,
		entry.Amount,
	)

	return uuid.NewSHA1(historyJournalNamespace, []byte(key)).String()
}

func NewHistoryRecord(journalID string, entry rapidwire.HistoryEntry, createdAt time.Time) *HistoryRecord {
	return &HistoryRecord{
		ID:            journalID,
		Type:          entry.Type,
		OperationType: entry.OperationType,
		Timestamp:     entry.Timestamp,
		Source:        entry.Source,
		Dest:          entry.Dest,
		Symbol:        null.NewString(entry.Symbol, entry.Symbol != ""),
		Amount:        entry.Amount,
		CreatedAt:     createdAt,
	}
}

func (h HistoryRecord) Entry() rapidwire.HistoryEntry {
	return rapidwire.HistoryEntry{
		Type:          h.Type,
		OperationType: h.OperationType,
		Timestamp:     h.Timestamp,
		Source:        h.Source,
		Dest:          h.Dest,
		Symbol:        h.Symbol.String,
		Amount:        h.Amount,
	}
}
