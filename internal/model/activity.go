package model

import "time"

// The types below back the data-logging endpoints (reports, votes,
// study timer).  They carry no business logic; each row is written
// once and read back at most for simple listings or tallies.

// Report is a free-text report submitted by a user.
type Report struct {
	ID        uint64    // reports.id
	UserID    uint64    // reports.user_id
	Content   string    // reports.content
	CreatedAt time.Time // reports.created_at
}

// Vote is a single up/down ledger entry on a subject.  Value is
// +1 or -1; tallies are computed by summing.
type Vote struct {
	ID        uint64    // votes.id
	UserID    uint64    // votes.user_id
	Subject   string    // votes.subject
	Value     int32     // votes.value
	CreatedAt time.Time // votes.created_at
}

// StudySession logs a study-timer action (start, stop or get).
// The endpoint echoes the request; no timing arithmetic happens
// server-side.
type StudySession struct {
	ID        string    // study_sessions.id (uuid)
	UserID    uint64    // study_sessions.user_id
	Action    string    // study_sessions.action
	CreatedAt time.Time // study_sessions.created_at
}
