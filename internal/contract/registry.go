package contract

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/azizikri/edulearn/internal/domain"
	"github.com/azizikri/edulearn/internal/usecase"
	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"
)

type Operation struct {
	Name string
	Kind Kind

	takesInput bool
	newInput   func() any
	invoke     func(ctx context.Context, in any) (any, error)
}

// Registry maps operation names to their definitions. It is filled before
// serving and only read afterwards.
type Registry struct {
	ops      map[string]*Operation
	validate *validator.Validate
}

func NewRegistry() *Registry {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Registry{
		ops:      make(map[string]*Operation),
		validate: v,
	}
}

// Handle registers fn as the body of p.
func Handle[In, Out any](r *Registry, p Procedure[In, Out], fn func(ctx context.Context, in In) (Out, error)) {
	if _, dup := r.ops[p.Name]; dup {
		panic(fmt.Sprintf("contract: operation %q registered twice", p.Name))
	}

	_, noInput := any(*new(In)).(NoInput)
	r.ops[p.Name] = &Operation{
		Name:       p.Name,
		Kind:       p.Kind,
		takesInput: !noInput,
		newInput:   func() any { return new(In) },
		invoke: func(ctx context.Context, in any) (any, error) {
			return fn(ctx, *in.(*In))
		},
	}
}

func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Call decodes and validates in, then runs the named operation. Every failure,
// including a panic in the operation body, comes back as *Error.
func (r *Registry) Call(ctx context.Context, name string, in Input) (any, *Error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, NewError(CodeUnknownOperation, fmt.Sprintf("no operation named %q", name))
	}

	target := op.newInput()
	if op.takesInput {
		if err := in.decode(target); err != nil {
			return nil, NewError(CodeValidation, err.Error())
		}
		if err := r.validate.StructCtx(ctx, target); err != nil {
			return nil, NewError(CodeValidation, describeValidation(err))
		}
	}

	return r.run(ctx, op, target)
}

func (r *Registry) run(ctx context.Context, op *Operation, in any) (result any, wireErr *Error) {
	defer func() {
		if p := recover(); p != nil {
			glog.Errorf("operation %s panicked: %v", op.Name, p)
			result = nil
			wireErr = NewError(CodeInternal, internalMessage)
		}
	}()

	out, err := op.invoke(ctx, in)
	if err != nil {
		return nil, FromError(err)
	}
	return out, nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s: invalid email", fe.Field()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// NewCatalogRegistry declares the catalog API on top of svc.
func NewCatalogRegistry(svc usecase.CatalogGateway) *Registry {
	r := NewRegistry()

	Handle(r, GetCourses, func(ctx context.Context, _ NoInput) ([]domain.Course, error) {
		return svc.GetCourses(ctx)
	})
	Handle(r, GetCourseByID, func(ctx context.Context, in CourseByIDInput) (domain.Course, error) {
		return svc.GetCourseByID(ctx, in.ID)
	})
	Handle(r, GetBanners, func(ctx context.Context, _ NoInput) ([]domain.Banner, error) {
		return svc.GetBanners(ctx)
	})
	Handle(r, EnrollInCourse, svc.EnrollInCourse)

	return r
}

