package models

import "time"

// QAExchange is one question/answer pair in a session's history. The wire
// keys "q" and "a" are part of the public /api/ask contract.
type QAExchange struct {
	Question string    `json:"q"`
	Answer   string    `json:"a"`
	AskedAt  time.Time `json:"asked_at"`
}

// Session ties an uploaded spreadsheet to its question history. Sessions
// live in memory for the process lifetime (or until idle eviction when a
// TTL is configured) and are addressed by an opaque ID the caller retains.
type Session struct {
	ID         string
	Filename   string
	Table      *Table
	History    []QAExchange
	CreatedAt  time.Time
	LastAccess time.Time
}
