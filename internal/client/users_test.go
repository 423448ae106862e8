package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

func TestUsersClient_Find(t *testing.T) {
	t.Parallel()

	tests := []TestFindOperation[canvas.User]{
		{
			Name:         "successful find",
			ID:           12,
			ExpectedPath: "/api/v1/users/12",
			StatusCode:   http.StatusOK,
			Response:     &canvas.User{ID: 12, Name: "Ada Lovelace", LoginID: "ada"},
		},
		{
			Name:         "user not found",
			ID:           999,
			ExpectedPath: "/api/v1/users/999",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "getting user",
		},
	}

	RunFindTests(t, tests, func(c *Client) func(context.Context, int) (*canvas.User, error) {
		return c.Users().Find
	})
}

func TestUsersClient_Self(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/users/self", request.URL.Path)
		assert.Equal(t, "Bearer test-api-key", request.Header.Get("Authorization"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(canvas.User{ID: 1, Name: "Token Owner"})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	user, err := client.Users().Self(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Token Owner", user.Name)
}

func TestUsersClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts/1/users", request.URL.Path)
		assert.Equal(t, "smith", request.URL.Query().Get("search_term"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]canvas.User{
			{ID: 3, Name: "Jane Smith"},
			{ID: 4, Name: "John Smith"},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	page, err := client.Users().List(context.Background(), url.Values{"search_term": {"smith"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Jane Smith", page.Items[0].Name)
}

func TestUsersClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestCreateOperation[canvas.UserCreateRequest, canvas.User]{
		{
			Name: "successful create",
			Request: &canvas.UserCreateRequest{
				Name:      stringPtr("Grace Hopper"),
				ShortName: stringPtr("Grace"),
			},
			ExpectedPath: "/api/v1/accounts/1/users",
			ExpectedForm: map[string]string{
				"user[name]":       "Grace Hopper",
				"user[short_name]": "Grace",
			},
			StatusCode: http.StatusOK,
			Response:   &canvas.User{ID: 55, Name: "Grace Hopper"},
		},
		{
			Name:         "server rejects request",
			Request:      &canvas.UserCreateRequest{Name: stringPtr("x")},
			ExpectedPath: "/api/v1/accounts/1/users",
			StatusCode:   http.StatusBadRequest,
			Response:     canvasErrorBody("name is too short"),
			WantErr:      true,
			ErrMessage:   "creating user",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *canvas.UserCreateRequest) (*canvas.User, error) {
		return c.Users().Create
	})
}

func TestUsersClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "/api/v1/users/12", request.URL.Path)

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "America/New_York", request.PostForm.Get("user[time_zone]"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(canvas.User{ID: 12, TimeZone: "America/New_York"})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	user, err := client.Users().Update(context.Background(), 12, &canvas.UserCreateRequest{
		TimeZone: stringPtr("America/New_York"),
	})
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", user.TimeZone)
}

func TestUsersClient_ListCourses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/users/12/courses", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]canvas.Course{{ID: 101, Name: "Biology"}})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	page, err := client.Users().ListCourses(context.Background(), 12, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 101, page.Items[0].ID)
}

func TestUsersClient_Paginate(t *testing.T) {
	t.Parallel()

	server := newListServer(t,
		[]canvas.User{{ID: 1, Name: "First"}},
		[]canvas.User{{ID: 2, Name: "Second"}},
	)
	defer server.Close()

	client := NewTestClient(t, server.URL)

	users, err := client.Users().Paginate(context.Background(), nil).All()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "First", users[0].Name)
	assert.Equal(t, "Second", users[1].Name)
}
