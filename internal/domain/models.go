package domain

import "errors"

var (
	ErrNotFound   = errors.New("course not found")
	ErrValidation = errors.New("invalid input")
	ErrInternal   = errors.New("internal error")
)

type Course struct {
	ID          string  `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Instructor  string  `json:"instructor" db:"instructor"`
	Price       float64 `json:"price" db:"price"`
	Rating      float64 `json:"rating" db:"rating"`
	Students    int     `json:"students" db:"students"`
	Image       string  `json:"image" db:"image"`
}

type Banner struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Subtitle string `json:"subtitle" db:"subtitle"`
	ImageURL string `json:"imageUrl" db:"image_url"`
}

// EnrollmentRequest is consumed by the enrollment stub and never stored.
type EnrollmentRequest struct {
	CourseID  string `json:"courseId" mapstructure:"courseId"`
	UserEmail string `json:"userEmail" mapstructure:"userEmail" validate:"email"`
}

type EnrollmentAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
