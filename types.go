package studio

import "time"

// Role is the platform role carried in a session token and on every user.
// It is immutable after registration.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

// Valid reports whether r is one of the roles the platform knows about.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User is a platform account, student or teacher.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Role     Role   `json:"role"`
}

// Portfolio is owned by exactly one student. Deleting it cascades to its
// projects, achievements, and feedback on the server side.
type Portfolio struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	StudentID       int64         `json:"studentId"`
	StudentUsername string        `json:"studentUsername"`
	StudentName     string        `json:"studentName,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	Projects        []Project     `json:"projects,omitempty"`
	Achievements    []Achievement `json:"achievements,omitempty"`
	Feedbacks       []Feedback    `json:"feedbacks,omitempty"`
}

// Project belongs to exactly one portfolio and inherits its ownership.
type Project struct {
	ID          int64     `json:"id"`
	PortfolioID int64     `json:"portfolioId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ProjectLink string    `json:"projectLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Achievement belongs to exactly one portfolio and inherits its ownership.
type Achievement struct {
	ID           int64     `json:"id"`
	PortfolioID  int64     `json:"portfolioId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DateAchieved string    `json:"dateAchieved,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Feedback is authored by a teacher on a student's portfolio. It is not
// owned by the portfolio's student; only the authoring teacher may delete it.
type Feedback struct {
	ID          int64     `json:"id"`
	PortfolioID int64     `json:"portfolioId"`
	TeacherID   int64     `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup payload. Role is fixed for the account lifetime.
type Registration struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=STUDENT TEACHER"`
}

// AuthResponse carries the opaque session token issued on login or register.
type AuthResponse struct {
	Token string `json:"token"`
}

// PortfolioInput is the create/update payload for portfolios.
type PortfolioInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ProjectInput is the create/update payload for projects.
type ProjectInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ProjectLink string `json:"projectLink,omitempty" validate:"omitempty,url"`
}

// AchievementInput is the create/update payload for achievements.
type AchievementInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	DateAchieved string `json:"dateAchieved,omitempty"`
}

// FeedbackInput is the create/update payload for feedback comments.
type FeedbackInput struct {
	Comment string `json:"comment" validate:"required"`
}

// ProfileInput is the update payload for the caller's own profile.
type ProfileInput struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	FullName string `json:"fullName,omitempty"`
}
