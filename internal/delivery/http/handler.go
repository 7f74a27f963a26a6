package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/azizikri/edulearn/internal/contract"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	registry *contract.Registry
}

func NewHandler(registry *contract.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/rpc", func(r chi.Router) {
		r.Get("/", h.QueryEnvelope)
		r.Post("/", h.MutateEnvelope)
		r.Get("/{operation}", h.Query)
		r.Post("/{operation}", h.Mutate)
	})
}

// GET /api/rpc/{operation}?input=<json>
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, contract.Query, chi.URLParam(r, "operation"), queryInput(r.URL.Query()))
}

// POST /api/rpc/{operation}
func (h *Handler) Mutate(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeBody(w, r, &raw); err != nil {
		writeError(w, r, contract.NewError(contract.CodeInvalidRequest, "invalid request body"))
		return
	}
	h.dispatch(w, r, contract.Mutation, chi.URLParam(r, "operation"), contract.JSONInput(raw))
}

// GET /api/rpc?operation=<name>&input=<json>
func (h *Handler) QueryEnvelope(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("operation")
	if name == "" {
		writeError(w, r, contract.NewError(contract.CodeInvalidRequest, "operation is required"))
		return
	}
	q.Del("operation")
	h.dispatch(w, r, contract.Query, name, queryInput(q))
}

// POST /api/rpc with {"operation": ..., "input": ...}
func (h *Handler) MutateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req contract.Request
	if err := decodeBody(w, r, &req); err != nil || req.Operation == "" {
		writeError(w, r, contract.NewError(contract.CodeInvalidRequest, "invalid request envelope"))
		return
	}
	h.dispatch(w, r, contract.Mutation, req.Operation, contract.JSONInput(req.Input))
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, kind contract.Kind, name string, in contract.Input) {
	op, ok := h.registry.Lookup(name)
	if !ok {
		writeError(w, r, contract.NewError(contract.CodeUnknownOperation, "no operation named "+name))
		return
	}
	if op.Kind != kind {
		writeError(w, r, contract.NewError(contract.CodeMethodNotSupported,
			name+" is a "+op.Kind.String()+" and cannot be called as a "+kind.String()))
		return
	}

	result, wireErr := h.registry.Call(r.Context(), name, in)
	if wireErr != nil {
		writeError(w, r, wireErr)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, contract.Response{Result: result})
}

func queryInput(q url.Values) contract.Input {
	if raw := q.Get("input"); raw != "" {
		return contract.JSONInput(json.RawMessage(raw))
	}
	return contract.ParamsInput(q)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeError(w http.ResponseWriter, r *http.Request, wireErr *contract.Error) {
	status := wireErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		glog.Errorf("%s %s: %v", r.Method, r.URL.Path, wireErr)
	} else {
		glog.V(1).Infof("%s %s: %v", r.Method, r.URL.Path, wireErr)
	}

	render.Status(r, status)
	render.JSON(w, r, contract.Response{Error: wireErr})
}
