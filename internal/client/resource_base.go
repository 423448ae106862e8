package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	internalhttp "github.com/edukit-io/canvas-client/internal/http"
	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// fetchOne GETs a single resource and hydrates it into T.
func fetchOne[T any](ctx context.Context, session *session, path string, query url.Values, what string) (*T, error) {
	resp, err := session.http.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", what, err)
	}

	var resource T

	err = json.Unmarshal(resp.Body, &resource)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	return &resource, nil
}

// fetchPage GETs a JSON array of resources plus the pagination links Canvas
// sends in the Link header.
func fetchPage[T any](ctx context.Context, session *session, pathOrLink string, query url.Values, what string) (*canvas.Page[T], error) {
	resp, err := session.http.Get(ctx, pathOrLink, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}

	var items []T

	err = json.Unmarshal(resp.Body, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", what, err)
	}

	return &canvas.Page[T]{Items: items, Links: resp.Links}, nil
}

// fetchKeyedPage is fetchPage for endpoints that nest the result array under
// a named key, e.g. {"quiz_submissions": [...]}.
func fetchKeyedPage[T any](ctx context.Context, session *session, pathOrLink string, query url.Values, key, what string) (*canvas.Page[T], error) {
	resp, err := session.http.Get(ctx, pathOrLink, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}

	var envelope map[string]json.RawMessage

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", what, err)
	}

	var items []T

	if raw, ok := envelope[key]; ok {
		err = json.Unmarshal(raw, &items)
		if err != nil {
			return nil, fmt.Errorf("parsing %s list: %w", what, err)
		}
	}

	return &canvas.Page[T]{Items: items, Links: resp.Links}, nil
}

// submitForm sends a request DTO with the method to path and hydrates the
// response into T. The DTO's strategy decides between form encoding and a
// JSON body.
func submitForm[T any](ctx context.Context, session *session, method, path string, dto canvas.FormEncoder, what string) (*T, error) {
	req := &internalhttp.Request{
		Method: method,
		Path:   path,
	}

	if dto.Strategy() == canvas.FormJSON {
		req.Body = map[string]interface{}{dto.APIProperty(): dto}
	} else {
		form, err := canvas.EncodeForm(dto)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request: %w", what, err)
		}

		req.Form = form
	}

	resp, err := session.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", methodVerb(method), what, err)
	}

	var resource T

	err = json.Unmarshal(resp.Body, &resource)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &resource, nil
}

// createResource POSTs a DTO to the collection path.
func createResource[T any](ctx context.Context, session *session, path string, dto canvas.FormEncoder, what string) (*T, error) {
	return submitForm[T](ctx, session, http.MethodPost, path, dto, what)
}

// updateResource PUTs a DTO to the item path.
func updateResource[T any](ctx context.Context, session *session, path string, dto canvas.FormEncoder, what string) (*T, error) {
	return submitForm[T](ctx, session, http.MethodPut, path, dto, what)
}

// saveResource creates when no identifier is present, updates otherwise.
func saveResource[T any](ctx context.Context, session *session, collectionPath, itemPath string, hasID bool, dto canvas.FormEncoder, what string) (*T, error) {
	if hasID {
		return updateResource[T](ctx, session, itemPath, dto, what)
	}

	return createResource[T](ctx, session, collectionPath, dto, what)
}

// destroyResource DELETEs the item path, optionally with query parameters.
func destroyResource(ctx context.Context, session *session, path string, query url.Values, what string) error {
	_, err := session.http.Do(ctx, &internalhttp.Request{
		Method: http.MethodDelete,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", what, err)
	}

	return nil
}

// unmarshalBody decodes a response body into out with a resource-specific
// error message.
func unmarshalBody(body []byte, out interface{}, what string) error {
	err := json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", what, err)
	}

	return nil
}

func methodVerb(method string) string {
	switch method {
	case http.MethodPost:
		return "creating"
	case http.MethodPut, http.MethodPatch:
		return "updating"
	default:
		return "requesting"
	}
}

// listFetcher adapts list endpoints to canvas.PageFetcher. The stored query
// applies only to the first, relative request; absolute next links already
// carry their own query string.
type listFetcher[T any] struct {
	session *session
	query   url.Values
	key     string
	what    string
}

func (f *listFetcher[T]) FetchPage(ctx context.Context, pathOrLink string) (*canvas.Page[T], error) {
	query := f.query
	if isAbsolute(pathOrLink) {
		query = nil
	}

	if f.key != "" {
		return fetchKeyedPage[T](ctx, f.session, pathOrLink, query, f.key, f.what)
	}

	return fetchPage[T](ctx, f.session, pathOrLink, query, f.what)
}

func isAbsolute(pathOrLink string) bool {
	return len(pathOrLink) > 8 && (pathOrLink[:7] == "http://" || pathOrLink[:8] == "https://")
}

// paginate builds an iterator over the list endpoint.
func paginate[T any](ctx context.Context, session *session, path string, query url.Values, key, what string) *canvas.PageIterator[T] {
	fetcher := &listFetcher[T]{session: session, query: query, key: key, what: what}

	return canvas.NewPageIterator[T](ctx, fetcher, path)
}

// listAll eagerly drains every page of the list endpoint.
func listAll[T any](ctx context.Context, session *session, path string, query url.Values, key, what string) ([]T, error) {
	return paginate[T](ctx, session, path, query, key, what).All()
}
