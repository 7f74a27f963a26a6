package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/azizikri/edulearn/internal/client"
	"github.com/azizikri/edulearn/internal/contract"
	"github.com/azizikri/edulearn/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

const (
	brand         = "EduLearn AI"
	copyrightYear = 2024

	courseNotFoundText = "Course not found."
	courseErrorText    = "Error loading course. Please try again later."
	enrollErrorText    = "Enrollment failed. Please try again later."
)

// Server renders the storefront. Every page view mounts its own banner and
// course queries; only the auto-advancing carousel position is shared.
type Server struct {
	client     *client.Client
	templates  *template.Template
	renderWait time.Duration

	carousel *Carousel
	rotator  *Rotator
}

func NewServer(c *client.Client, carouselPeriod, renderWait time.Duration) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	carousel := &Carousel{}
	return &Server{
		client:     c,
		templates:  tmpl,
		renderWait: renderWait,
		carousel:   carousel,
		rotator:    NewRotator(carousel, carouselPeriod),
	}, nil
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/courses/{id}", s.handleCourse)
	r.Post("/enroll", s.handleEnroll)
}

// Start begins carousel auto-advance and sizes the carousel from a first
// banner fetch, waiting at most the render wait for it.
func (s *Server) Start(ctx context.Context) {
	s.rotator.Start(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, s.renderWait)
	defer cancel()

	banners, courses := s.mount()
	defer banners.Close()
	defer courses.Close()

	bannerState, courseState := s.load(waitCtx, context.WithoutCancel(ctx), banners, courses)
	if bannerState.Status == client.StatusError {
		glog.Warningf("warm banners: %v", bannerState.Err)
	}
	if courseState.Status == client.StatusError {
		glog.Warningf("warm courses: %v", courseState.Err)
	}
}

func (s *Server) Stop() {
	s.rotator.Stop()
}

// mount creates the queries backing one page view. Callers close them once
// the page is rendered so late results are dropped.
func (s *Server) mount() (*client.Query[[]domain.Banner], *client.Query[[]domain.Course]) {
	return client.NewQuery(s.client.GetBanners), client.NewQuery(s.client.GetCourses)
}

// load fetches both queries under fetchCtx and waits on waitCtx for them to
// resolve. A query still pending when waitCtx ends is returned as pending.
func (s *Server) load(
	waitCtx, fetchCtx context.Context,
	banners *client.Query[[]domain.Banner],
	courses *client.Query[[]domain.Course],
) (client.State[[]domain.Banner], client.State[[]domain.Course]) {
	bannersDone := banners.Start(fetchCtx)
	coursesDone := courses.Start(fetchCtx)

	var (
		bannerState client.State[[]domain.Banner]
		courseState client.State[[]domain.Course]
	)
	g, ctx := errgroup.WithContext(waitCtx)
	g.Go(func() error {
		select {
		case bannerState = <-bannersDone:
			return nil
		case <-ctx.Done():
			bannerState = banners.State()
			return fmt.Errorf("banners: %w", ctx.Err())
		}
	})
	g.Go(func() error {
		select {
		case courseState = <-coursesDone:
			return nil
		case <-ctx.Done():
			courseState = courses.State()
			return fmt.Errorf("courses: %w", ctx.Err())
		}
	})
	if err := g.Wait(); err != nil {
		glog.V(1).Infof("rendering before all queries resolved: %v", err)
	}

	if bannerState.Status == client.StatusSuccess {
		s.carousel.SetLength(len(bannerState.Data))
	}
	return bannerState, courseState
}

func (s *Server) chrome() Chrome {
	return Chrome{
		Brand:   brand,
		Nav:     navLinks,
		Columns: footerColumns,
		Contact: footerContact,
		Year:    copyrightYear,
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	waitCtx, cancel := context.WithTimeout(r.Context(), s.renderWait)
	defer cancel()

	banners, courses := s.mount()
	defer banners.Close()
	defer courses.Close()

	bannerState, courseState := s.load(waitCtx, context.WithoutCancel(r.Context()), banners, courses)

	slide := s.carousel.Current()
	if raw := r.URL.Query().Get("slide"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			slide = i
		}
	}

	s.render(w, http.StatusOK, "home", homePage{
		Title:    "Learn AI Online",
		Chrome:   s.chrome(),
		Carousel: newCarouselView(bannerState, slide),
		Grid:     newGridView(courseState),
	})
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.renderWait)
	defer cancel()

	course, err := s.client.GetCourseByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		status, text := http.StatusInternalServerError, courseErrorText
		if errors.Is(err, domain.ErrNotFound) {
			status, text = http.StatusNotFound, courseNotFoundText
		} else {
			glog.Warningf("load course %q: %v", chi.URLParam(r, "id"), err)
		}
		s.render(w, status, "course", coursePage{Title: "Course", Chrome: s.chrome(), Error: text})
		return
	}

	card := newCardView(course)
	s.render(w, http.StatusOK, "course", coursePage{Title: course.Title, Chrome: s.chrome(), Card: &card})
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "notice", noticePage{
			Title: "Enrollment", Chrome: s.chrome(), Message: "Invalid form submission.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.renderWait)
	defer cancel()

	ack, err := s.client.EnrollInCourse(ctx, domain.EnrollmentRequest{
		CourseID:  strings.TrimSpace(r.PostForm.Get("courseId")),
		UserEmail: strings.TrimSpace(r.PostForm.Get("email")),
	})
	if err != nil {
		status, text := http.StatusInternalServerError, enrollErrorText
		var wireErr *contract.Error
		if errors.Is(err, domain.ErrValidation) && errors.As(err, &wireErr) {
			status, text = http.StatusBadRequest, "Please check your details: "+wireErr.Message
		} else {
			glog.Warningf("enroll: %v", err)
		}
		s.render(w, status, "notice", noticePage{Title: "Enrollment", Chrome: s.chrome(), Message: text})
		return
	}

	s.render(w, http.StatusOK, "notice", noticePage{
		Title: "Enrollment", Chrome: s.chrome(), Message: ack.Message, Success: ack.Success,
	})
}
