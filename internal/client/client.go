package client

import (
	"context"

	"github.com/azizikri/edulearn/internal/contract"
	"github.com/azizikri/edulearn/internal/domain"
)

// Invoke runs p through c. The procedure fixes both the input and the output
// type, so a call that does not match the contract does not compile.
func Invoke[In, Out any](ctx context.Context, c Caller, p contract.Procedure[In, Out], in In) (Out, error) {
	var out Out
	if err := c.Call(ctx, p.Kind, p.Name, in, &out); err != nil {
		var zero Out
		return zero, err
	}
	return out, nil
}

// Client exposes one method per catalog operation. Errors returned by the
// server are *contract.Error values and match the domain sentinels with errors.Is.
type Client struct {
	caller Caller
}

func New(caller Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) GetCourses(ctx context.Context) ([]domain.Course, error) {
	return Invoke(ctx, c.caller, contract.GetCourses, contract.NoInput{})
}

func (c *Client) GetCourseByID(ctx context.Context, id string) (domain.Course, error) {
	return Invoke(ctx, c.caller, contract.GetCourseByID, contract.CourseByIDInput{ID: id})
}

func (c *Client) GetBanners(ctx context.Context) ([]domain.Banner, error) {
	return Invoke(ctx, c.caller, contract.GetBanners, contract.NoInput{})
}

func (c *Client) EnrollInCourse(ctx context.Context, req domain.EnrollmentRequest) (domain.EnrollmentAck, error) {
	return Invoke(ctx, c.caller, contract.EnrollInCourse, req)
}
