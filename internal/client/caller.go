package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/azizikri/edulearn/internal/contract"
	"github.com/azizikri/edulearn/internal/httpx"
	"github.com/google/uuid"
)

// Caller carries one operation invocation to wherever the contract is served.
// out must be a pointer to the operation's output type.
type Caller interface {
	Call(ctx context.Context, kind contract.Kind, operation string, in, out any) error
}

// DirectCaller invokes a registry in the same process. Inputs and results go
// through JSON so behaviour matches the remote transports.
type DirectCaller struct {
	registry *contract.Registry
}

func NewDirectCaller(registry *contract.Registry) *DirectCaller {
	return &DirectCaller{registry: registry}
}

func (c *DirectCaller) Call(ctx context.Context, kind contract.Kind, operation string, in, out any) error {
	op, ok := c.registry.Lookup(operation)
	if !ok {
		return contract.NewError(contract.CodeUnknownOperation, "no operation named "+operation)
	}
	if op.Kind != kind {
		return contract.NewError(contract.CodeMethodNotSupported, operation+" is a "+op.Kind.String())
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s input: %w", operation, err)
	}

	result, wireErr := c.registry.Call(ctx, operation, contract.JSONInput(raw))
	if wireErr != nil {
		return wireErr
	}
	if out == nil {
		return nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode %s result: %w", operation, err)
	}
	return json.Unmarshal(encoded, out)
}

// HTTPCaller talks to the /api/rpc endpoint. Queries are retried on transient
// failures; mutations are sent once.
type HTTPCaller struct {
	baseURL    string
	httpClient *http.Client
	queryRetry httpx.RetryConfig
}

func NewHTTPCaller(baseURL string, httpClient *http.Client) *HTTPCaller {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPCaller{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		queryRetry: httpx.DefaultRetryConfig(),
	}
}

func (c *HTTPCaller) Call(ctx context.Context, kind contract.Kind, operation string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s input: %w", operation, err)
	}

	endpoint := c.baseURL + "/api/rpc/" + url.PathEscape(operation)
	requestID := uuid.New().String()

	retry := c.queryRetry
	method := http.MethodGet
	if kind == contract.Mutation {
		retry = httpx.NoRetry()
		method = http.MethodPost
	} else {
		endpoint += "?input=" + url.QueryEscape(string(raw))
	}

	buildReq := func(ctx context.Context) (*http.Request, error) {
		var body *bytes.Reader
		if method == http.MethodPost {
			body = bytes.NewReader(raw)
		} else {
			body = bytes.NewReader(nil)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-Id", requestID)
		return req, nil
	}

	_, body, err := httpx.DoWithRetry(ctx, c.httpClient, buildReq, retry)
	if err != nil {
		var herr *httpx.HTTPError
		if errors.As(err, &herr) {
			if wireErr := decodeError(herr.Body); wireErr != nil {
				return wireErr
			}
		}
		return fmt.Errorf("%s: %w", operation, err)
	}

	var resp contract.RawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", operation, err)
	}
	return nil
}

func decodeError(body []byte) *contract.Error {
	var resp contract.RawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}
	return resp.Error
}
