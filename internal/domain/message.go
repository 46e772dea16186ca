package domain

import "time"

type Sender string

const (
	SenderYou Sender = "You"
	SenderAI  Sender = "AI"
)

const TimestampLayout = "15:04"

type HistoryEntry struct {
	Sender    Sender
	Message   string
	Timestamp string
}

func NewEntry(sender Sender, message string, at time.Time) HistoryEntry {
	return HistoryEntry{
		Sender:    sender,
		Message:   message,
		Timestamp: at.Format(TimestampLayout),
	}
}

// Newest возвращает копию истории от новых сообщений к старым.
func Newest(history []HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(history))
	for i, e := range history {
		out[len(history)-1-i] = e
	}
	return out
}
