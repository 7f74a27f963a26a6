package usecase

import (
	"context"

	"github.com/azizikri/edulearn/internal/domain"
)

type CatalogGateway interface {
	GetCourses(ctx context.Context) ([]domain.Course, error)
	GetCourseByID(ctx context.Context, id string) (domain.Course, error)
	GetBanners(ctx context.Context) ([]domain.Banner, error)
	EnrollInCourse(ctx context.Context, req domain.EnrollmentRequest) (domain.EnrollmentAck, error)
}
