package contract

import "github.com/azizikri/edulearn/internal/domain"

type Kind int

const (
	Query Kind = iota
	Mutation
)

func (k Kind) String() string {
	if k == Mutation {
		return "mutation"
	}
	return "query"
}

// Procedure names an operation together with its input and output types.
// Server registration and client invocation both take a Procedure, so the two
// sides cannot disagree on shapes.
type Procedure[In, Out any] struct {
	Name string
	Kind Kind
}

// NoInput marks procedures that take no input. Any input sent is ignored.
type NoInput struct{}

type CourseByIDInput struct {
	ID string `json:"id" mapstructure:"id"`
}

var (
	GetCourses     = Procedure[NoInput, []domain.Course]{Name: "getCourses", Kind: Query}
	GetCourseByID  = Procedure[CourseByIDInput, domain.Course]{Name: "getCourseById", Kind: Query}
	GetBanners     = Procedure[NoInput, []domain.Banner]{Name: "getBanners", Kind: Query}
	EnrollInCourse = Procedure[domain.EnrollmentRequest, domain.EnrollmentAck]{Name: "enrollInCourse", Kind: Mutation}
)
