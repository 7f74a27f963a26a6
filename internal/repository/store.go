package repository

import (
	"context"
	"fmt"

	"github.com/azizikri/edulearn/internal/domain"
)

type Store interface {
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, id string) (domain.Course, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}

// Snapshot is the read-only catalog built once at process start. Callers
// always receive copies, so nothing handed out can alter it.
type Snapshot struct {
	courses     []domain.Course
	banners     []domain.Banner
	courseIndex map[string]int
}

func NewSnapshot(courses []domain.Course, banners []domain.Banner) (*Snapshot, error) {
	s := &Snapshot{
		courses:     append([]domain.Course(nil), courses...),
		banners:     append([]domain.Banner(nil), banners...),
		courseIndex: make(map[string]int, len(courses)),
	}

	for i, c := range s.courses {
		if _, dup := s.courseIndex[c.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %q", c.ID)
		}
		s.courseIndex[c.ID] = i
	}

	seen := make(map[string]struct{}, len(s.banners))
	for _, b := range s.banners {
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("duplicate banner id %q", b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	return s, nil
}

func (s *Snapshot) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return append([]domain.Course{}, s.courses...), nil
}

func (s *Snapshot) GetCourse(ctx context.Context, id string) (domain.Course, error) {
	i, ok := s.courseIndex[id]
	if !ok {
		return domain.Course{}, domain.ErrNotFound
	}
	return s.courses[i], nil
}

func (s *Snapshot) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return append([]domain.Banner{}, s.banners...), nil
}

var _ Store = (*Snapshot)(nil)
