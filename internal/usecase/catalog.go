package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/azizikri/edulearn/internal/domain"
	"github.com/azizikri/edulearn/internal/repository"
	"github.com/golang/glog"
)

const EnrollSuccessMessage = "Successfully enrolled!"

type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) GetCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *CatalogService) GetCourseByID(ctx context.Context, id string) (domain.Course, error) {
	course, err := s.store.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Course{}, domain.ErrNotFound
		}
		return domain.Course{}, fmt.Errorf("get course %s: %w", id, err)
	}
	return course, nil
}

func (s *CatalogService) GetBanners(ctx context.Context) ([]domain.Banner, error) {
	banners, err := s.store.ListBanners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// EnrollInCourse acknowledges the request without recording it. The course id
// is not checked against the catalog.
func (s *CatalogService) EnrollInCourse(ctx context.Context, req domain.EnrollmentRequest) (domain.EnrollmentAck, error) {
	glog.Infof("Enrolling %s in course %s", req.UserEmail, req.CourseID)
	return domain.EnrollmentAck{
		Success: true,
		Message: EnrollSuccessMessage,
	}, nil
}

var _ CatalogGateway = (*CatalogService)(nil)
