package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/azizikri/edulearn/internal/domain"
)

func TestSnapshot_ListCoursesStableOrder(t *testing.T) {
	s := DefaultSnapshot()

	first, err := s.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, _ := s.ListCourses(context.Background())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected consecutive calls to be equal")
	}
	for i, want := range []string{"1", "2", "3", "4"} {
		if first[i].ID != want {
			t.Fatalf("expected course %d to have id %s, got %s", i, want, first[i].ID)
		}
	}
}

func TestSnapshot_ListCoursesReturnsCopy(t *testing.T) {
	s := DefaultSnapshot()

	courses, _ := s.ListCourses(context.Background())
	courses[0].Title = "changed"

	again, _ := s.ListCourses(context.Background())
	if again[0].Title != "Machine Learning Specialization" {
		t.Fatalf("snapshot was mutated through a returned slice: %q", again[0].Title)
	}
}

func TestSnapshot_GetCourse(t *testing.T) {
	s := DefaultSnapshot()

	c, err := s.GetCourse(context.Background(), "1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Title != "Machine Learning Specialization" {
		t.Fatalf("unexpected title %q", c.Title)
	}

	_, err = s.GetCourse(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshot_Banners(t *testing.T) {
	banners, _ := DefaultSnapshot().ListBanners(context.Background())
	if len(banners) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(banners))
	}
	for _, b := range banners {
		if b.Title == "" || b.Subtitle == "" {
			t.Errorf("banner %s has empty title or subtitle", b.ID)
		}
	}
}

func TestNewSnapshot_RejectsDuplicateIDs(t *testing.T) {
	courses := []domain.Course{{ID: "1"}, {ID: "1"}}
	if _, err := NewSnapshot(courses, nil); err == nil {
		t.Fatal("expected duplicate course id error")
	}

	banners := []domain.Banner{{ID: "a"}, {ID: "a"}}
	if _, err := NewSnapshot(nil, banners); err == nil {
		t.Fatal("expected duplicate banner id error")
	}
}

func TestNewSnapshot_CopiesInput(t *testing.T) {
	courses := DefaultCourses()
	s, err := NewSnapshot(courses, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	courses[0].Title = "changed"

	c, _ := s.GetCourse(context.Background(), "1")
	if c.Title == "changed" {
		t.Fatal("snapshot shares backing array with caller")
	}
}
