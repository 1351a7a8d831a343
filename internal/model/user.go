package model

import "time"

// User represents an application user record as stored in the
// `users` table.  Users sign up with their student id; passwords
// are stored only as bcrypt hashes.  The json tags are omitted
// because these structs are used internally by the repository
// layer; handlers define separate response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  StudentID    – unique student identifier used to log in.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (STUDENT or ADMIN).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	StudentID    string    // users.student_id
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// Role names stored in users.role.  Authorization checks compare
// against these values; no user id is special-cased anywhere.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)
