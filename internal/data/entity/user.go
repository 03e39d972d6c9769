package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleDriver  UserRole = "driver"
	RoleStudent UserRole = "student"
)

type User struct {
	Base
	Email         string     `db:"email"`
	FullName      string     `db:"full_name"`
	PasswordHash  string     `db:"password"`
	Phone         *string    `db:"phone"`
	Role          UserRole   `db:"role"`
	StudentNumber *string    `db:"student_number"`
	UniversityID  *uuid.UUID `db:"university_id"`
	IsActive      bool       `db:"is_active"`
}
