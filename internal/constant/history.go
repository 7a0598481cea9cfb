package constant

const (
	HistoryQueueNameJournal = "rapidwire_history_queue_journal"
	HistoryQueueGroup       = "rapidwire_history_group"

	HistoryStreamName       = "rapidwire_history"
	HistoryStreamSubjectAll = "rapidwire_history.*"

	// followed by the entry operation type
	HistoryStreamSubjectPrefix = "rapidwire_history."

	HistoryJournalTimeoutKey = "history_journal"
)
