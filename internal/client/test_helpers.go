package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// NewTestClient creates a client backed by a context store pointed at the
// given base URL. An API key is set so requests carry an Authorization header
// the way production calls do.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	store := canvas.NewContextStore()
	store.SetAPIKey("", "test-api-key")

	err := store.SetBaseURL("", baseURL)
	require.NoError(t, err)

	client, err := New(context.Background(), store, "", nil)
	require.NoError(t, err)

	return client
}

// NewTestClientWithStore is NewTestClient for tests that need to tweak store
// fields (account ID, API version) before the client is built.
func NewTestClientWithStore(t *testing.T, store *canvas.ContextStore) *Client {
	t.Helper()

	client, err := New(context.Background(), store, "", nil)
	require.NoError(t, err)

	return client
}

// TestFindOperation represents a generic single-resource fetch test case.
type TestFindOperation[TResponse any] struct {
	Name         string
	ID           int
	ExpectedPath string
	StatusCode   int
	Response     *TResponse
	WantErr      bool
	ErrMessage   string
}

// TestCreateOperation represents a generic create operation test case.
type TestCreateOperation[TRequest, TResponse any] struct {
	Name         string
	Request      *TRequest
	ExpectedPath string
	ExpectedForm map[string]string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrMessage   string
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name          string
	ID            int
	ExpectedPath  string
	ExpectedQuery map[string]string
	StatusCode    int
	WantErr       bool
	ErrMessage    string
}

// canvasErrorBody is the error response shape the Canvas API sends.
func canvasErrorBody(message string) map[string]interface{} {
	return map[string]interface{}{
		"errors": []map[string]interface{}{
			{"message": message},
		},
	}
}

// RunFindTests runs a series of single-resource fetch tests.
func RunFindTests[TResponse any](
	t *testing.T,
	tests []TestFindOperation[TResponse],
	findFunc func(*Client) func(context.Context, int) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				assert.Equal(t, "Bearer test-api-key", request.Header.Get("Authorization"))

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.WantErr {
					_ = json.NewEncoder(writer).Encode(canvasErrorBody("The specified resource does not exist."))
				} else if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			findFn := findFunc(client)
			result, err := findFn(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

// RunCreateTests runs a series of create operation tests, asserting the
// flattened form fields the DTO serializes to.
func RunCreateTests[TRequest, TResponse any](
	t *testing.T,
	tests []TestCreateOperation[TRequest, TResponse],
	createFunc func(*Client) func(context.Context, *TRequest) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodPost, request.Method)

				if testCase.ExpectedForm != nil {
					require.NoError(t, request.ParseForm())

					for name, value := range testCase.ExpectedForm {
						assert.Equal(t, value, request.PostForm.Get(name), "form field %s", name)
					}
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			createFn := createFunc(client)
			result, err := createFn(context.Background(), testCase.Request)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, int) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodDelete, request.Method)

				for name, value := range testCase.ExpectedQuery {
					assert.Equal(t, value, request.URL.Query().Get(name), "query param %s", name)
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.WantErr {
					_ = json.NewEncoder(writer).Encode(canvasErrorBody("delete failed"))
				} else {
					_ = json.NewEncoder(writer).Encode(map[string]interface{}{"id": testCase.ID})
				}
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			deleteFn := deleteFunc(client)
			err := deleteFn(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// newListServer serves a two-page listing with a Link header on the first
// page, for pagination tests.
func newListServer(t *testing.T, firstPage, secondPage interface{}) *httptest.Server {
	t.Helper()

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		if request.URL.Query().Get("page") == "2" {
			_ = json.NewEncoder(writer).Encode(secondPage)

			return
		}

		next := server.URL + request.URL.Path + "?page=2"
		writer.Header().Set("Link", `<`+next+`>; rel="next", <`+server.URL+request.URL.Path+`>; rel="current"`)
		_ = json.NewEncoder(writer).Encode(firstPage)
	}))

	return server
}

// itoa keeps table literals short.
func itoa(id int) string {
	return strconv.Itoa(id)
}

// stringPtr returns a pointer to the given string.
func stringPtr(s string) *string {
	return &s
}

// intPtr returns a pointer to the given int.
func intPtr(i int) *int {
	return &i
}

// boolPtr returns a pointer to the given bool.
func boolPtr(b bool) *bool {
	return &b
}
