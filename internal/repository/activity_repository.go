package repository

import (
	"context"
	"database/sql"

	"github.com/jihwan-dev/studyroom-reservation/internal/model"
)

// The repositories in this file back the data-logging endpoints (reports,
// votes, study timer).  Each is a thin insert-or-aggregate wrapper; the
// endpoints carry no business logic beyond persisting what they receive.

// ReportRepo stores free-text reports.
type ReportRepo struct{ db *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// Create inserts a report row and returns its id.
func (r *ReportRepo) Create(ctx context.Context, userID uint64, content string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (user_id, content) VALUES (?, ?)`,
		userID, content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the user's reports, newest first.
func (r *ReportRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content, created_at FROM reports WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Report, 0)
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Content, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// VoteRepo stores the up/down vote ledger.
type VoteRepo struct{ db *sql.DB }

func NewVoteRepo(db *sql.DB) *VoteRepo { return &VoteRepo{db: db} }

// Create appends a ledger entry.  Value must be +1 or -1; the handler
// validates before calling.
func (r *VoteRepo) Create(ctx context.Context, userID uint64, subject string, value int32) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO votes (user_id, subject, value) VALUES (?, ?, ?)`,
		userID, subject, value)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Tally sums the ledger for a subject.  A subject nobody voted on
// tallies to zero rather than an error.
func (r *VoteRepo) Tally(ctx context.Context, subject string) (int64, error) {
	var sum sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(value) FROM votes WHERE subject = ?`, subject).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum.Int64, nil
}

// StudySessionRepo logs study-timer actions.
type StudySessionRepo struct{ db *sql.DB }

func NewStudySessionRepo(db *sql.DB) *StudySessionRepo { return &StudySessionRepo{db: db} }

// Log records a timer action under a caller-supplied uuid.
func (r *StudySessionRepo) Log(ctx context.Context, id string, userID uint64, action string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_sessions (id, user_id, action) VALUES (?, ?, ?)`,
		id, userID, action)
	return err
}

// LastByUser returns the user's most recent logged action, or
// sql.ErrNoRows when the user never touched the timer.
func (r *StudySessionRepo) LastByUser(ctx context.Context, userID uint64) (model.StudySession, error) {
	var s model.StudySession
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, action, created_at FROM study_sessions WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
		userID).Scan(&s.ID, &s.UserID, &s.Action, &s.CreatedAt)
	return s, err
}
