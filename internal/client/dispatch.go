package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// The operations below are the only way resource clients talk to the API.
// Each issues exactly one round trip. Errors come back already
// classified by the transport (*lemon.APIError, *lemon.TransportError) or by
// decode (*lemon.DecodeError) and are returned unwrapped.

// get issues GET path and decodes the 200 body into T.
func get[T any](ctx context.Context, httpClient *http.Client, path string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return decode[T](resp)
}

// getWithQuery issues GET path with params encoded as the query string.
// params is a struct (or pointer to one) with `url` tags; nil pointer fields
// are left out, and no "?" is added when nothing remains.
func getWithQuery[T any](ctx context.Context, httpClient *http.Client, path string, params interface{}) (*T, error) {
	query, err := encodeQuery(params)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return decode[T](resp)
}

// post issues POST path with body serialized as JSON.
func post[T any, B any](ctx context.Context, httpClient *http.Client, path string, body B) (*T, error) {
	resp, err := httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return decode[T](resp)
}

// del issues DELETE path/pathParam. The parameter is escaped as a single
// path segment and no body is sent.
func del[T any](ctx context.Context, httpClient *http.Client, path, pathParam string) (*T, error) {
	segment, err := pathSegment(pathParam)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Delete(ctx, path+"/"+segment, path+"/"+idPlaceholder)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return decode[T](resp)
}

// postAction issues POST path/pathParam/action, e.g. orders/{id}/activate.
func postAction[T any, B any](ctx context.Context, httpClient *http.Client, path, pathParam, action string, body B) (*T, error) {
	segment, err := pathSegment(pathParam)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPost,
		Path:   path + "/" + segment + "/" + action,
		Route:  path + "/" + idPlaceholder + "/" + action,
		Body:   body,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return decode[T](resp)
}

const idPlaceholder = "{id}"

// pathSegment escapes param as one path segment. "." and ".." are refused
// since URL resolution would collapse them into a different endpoint.
func pathSegment(param string) (string, error) {
	switch param {
	case "":
		return "", constants.ErrPathParamRequired
	case ".", "..":
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidPathParam, param)
	}

	return url.PathEscape(param), nil
}

// envelopeHeader is the part of the body every 200 response must carry.
type envelopeHeader struct {
	Status *string `json:"status"`
}

// decode unmarshals a 200 body into T. Every successful response is an
// envelope; a null body or one without a status is a DecodeError, never a
// zero T.
func decode[T any](resp *http.Response) (*T, error) {
	if bytes.Equal(bytes.TrimSpace(resp.Body), []byte("null")) {
		return nil, &lemon.DecodeError{StatusCode: resp.StatusCode, Err: constants.ErrNullBody}
	}

	var header envelopeHeader

	err := json.Unmarshal(resp.Body, &header)
	if err != nil {
		return nil, &lemon.DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	if header.Status == nil {
		return nil, &lemon.DecodeError{StatusCode: resp.StatusCode, Err: constants.ErrEnvelopeStatusMissing}
	}

	var result T

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, &lemon.DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	return &result, nil
}
