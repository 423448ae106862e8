package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

func TestCoursesClient_Find(t *testing.T) {
	t.Parallel()

	tests := []TestFindOperation[canvas.Course]{
		{
			Name:         "successful find",
			ID:           101,
			ExpectedPath: "/api/v1/courses/101",
			StatusCode:   http.StatusOK,
			Response:     &canvas.Course{ID: 101, Name: "Intro to Biology", CourseCode: "BIO-101"},
		},
		{
			Name:         "course not found",
			ID:           404,
			ExpectedPath: "/api/v1/courses/404",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "getting course",
		},
	}

	RunFindTests(t, tests, func(c *Client) func(context.Context, int) (*canvas.Course, error) {
		return c.Courses().Find
	})
}

func TestCoursesClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestCreateOperation[canvas.CourseCreateRequest, canvas.Course]{
		{
			Name: "successful create",
			Request: &canvas.CourseCreateRequest{
				Name:       stringPtr("Intro to Biology"),
				CourseCode: stringPtr("BIO-101"),
			},
			ExpectedPath: "/api/v1/accounts/1/courses",
			ExpectedForm: map[string]string{
				"course[name]":        "Intro to Biology",
				"course[course_code]": "BIO-101",
			},
			StatusCode: http.StatusOK,
			Response:   &canvas.Course{ID: 101, Name: "Intro to Biology", CourseCode: "BIO-101"},
		},
		{
			Name:         "server rejects request",
			Request:      &canvas.CourseCreateRequest{Name: stringPtr("x")},
			ExpectedPath: "/api/v1/accounts/1/courses",
			StatusCode:   http.StatusBadRequest,
			Response:     canvasErrorBody("name is too short"),
			WantErr:      true,
			ErrMessage:   "creating course",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *canvas.CourseCreateRequest) (*canvas.Course, error) {
		return c.Courses().Create
	})
}

func TestCoursesClient_Create_UsesConfiguredAccount(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts/42/courses", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(canvas.Course{ID: 1})
	}))
	defer server.Close()

	store := canvas.NewContextStore()
	store.SetAPIKey("", "test-api-key")
	store.SetAccountID("", 42)
	require.NoError(t, store.SetBaseURL("", server.URL))

	client := NewTestClientWithStore(t, store)

	_, err := client.Courses().Create(context.Background(), &canvas.CourseCreateRequest{Name: stringPtr("n")})
	require.NoError(t, err)
}

func TestCoursesClient_Save(t *testing.T) {
	t.Parallel()

	t.Run("creates when no ID is set", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/api/v1/accounts/1/courses", request.URL.Path)

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "New Course", request.PostForm.Get("course[name]"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(canvas.Course{ID: 7, Name: "New Course", WorkflowState: "unpublished"})
		}))
		defer server.Close()

		client := NewTestClient(t, server.URL)

		course := &canvas.Course{Name: "New Course"}
		require.NoError(t, client.Courses().Save(context.Background(), course))

		assert.Equal(t, 7, course.ID)
		assert.Equal(t, "unpublished", course.WorkflowState)
	})

	t.Run("updates when an ID is set", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			assert.Equal(t, "/api/v1/courses/7", request.URL.Path)

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "Renamed Course", request.PostForm.Get("course[name]"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(canvas.Course{ID: 7, Name: "Renamed Course"})
		}))
		defer server.Close()

		client := NewTestClient(t, server.URL)

		course := &canvas.Course{ID: 7, Name: "Renamed Course"}
		require.NoError(t, client.Courses().Save(context.Background(), course))

		assert.Equal(t, "Renamed Course", course.Name)
	})
}

func TestCoursesClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []TestDeleteOperation{
		{
			Name:          "successful delete",
			ID:            101,
			ExpectedPath:  "/api/v1/courses/101",
			ExpectedQuery: map[string]string{"event": "delete"},
			StatusCode:    http.StatusOK,
		},
		{
			Name:         "delete forbidden",
			ID:           102,
			ExpectedPath: "/api/v1/courses/102",
			StatusCode:   http.StatusForbidden,
			WantErr:      true,
			ErrMessage:   "deleting course",
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, int) error {
		return c.Courses().Delete
	})
}

func TestCoursesClient_All_FollowsPaginationLinks(t *testing.T) {
	t.Parallel()

	server := newListServer(t,
		[]canvas.Course{{ID: 1, Name: "First"}, {ID: 2, Name: "Second"}},
		[]canvas.Course{{ID: 3, Name: "Third"}},
	)
	defer server.Close()

	client := NewTestClient(t, server.URL)

	courses, err := client.Courses().All(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "Third", courses[2].Name)
}
