package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jihwan-dev/studyroom-reservation/internal/model"
	"github.com/jihwan-dev/studyroom-reservation/internal/utils"
)

// UserRepo provides access to the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// MySQL duplicate-key errors (1062) on student_id map to ErrStudentIDExists.
func (r *UserRepo) Create(ctx context.Context, studentID, password, role string, cost int) (uint64, error) {
	studentID = strings.TrimSpace(studentID)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (student_id, password_hash, role) VALUES (?,?,?)",
		studentID, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrStudentIDExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByStudentID fetches a user by student id.
func (r *UserRepo) GetByStudentID(ctx context.Context, studentID string) (model.User, error) {
	studentID = strings.TrimSpace(studentID)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,student_id,password_hash,role,created_at FROM users WHERE student_id=? LIMIT 1",
		studentID).Scan(&u.ID, &u.StudentID, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,student_id,password_hash,role,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.StudentID, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}
