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

func TestEnrollmentsClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestCreateOperation[canvas.EnrollmentCreateRequest, canvas.Enrollment]{
		{
			Name: "successful enrollment",
			Request: &canvas.EnrollmentCreateRequest{
				UserID: intPtr(30),
				Type:   stringPtr("StudentEnrollment"),
				Notify: boolPtr(true),
			},
			ExpectedPath: "/api/v1/courses/10/enrollments",
			ExpectedForm: map[string]string{
				"enrollment[user_id]": "30",
				"enrollment[type]":    "StudentEnrollment",
				"enrollment[notify]":  "true",
			},
			StatusCode: http.StatusOK,
			Response:   &canvas.Enrollment{ID: 5, CourseID: 10, UserID: 30, Type: "StudentEnrollment"},
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *canvas.EnrollmentCreateRequest) (*canvas.Enrollment, error) {
		return func(ctx context.Context, request *canvas.EnrollmentCreateRequest) (*canvas.Enrollment, error) {
			return c.Enrollments().Create(ctx, 10, request)
		}
	})
}

func TestEnrollmentsClient_Conclude(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/api/v1/courses/10/enrollments/5", request.URL.Path)
		assert.Equal(t, "conclude", request.URL.Query().Get("task"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(canvas.Enrollment{ID: 5, EnrollmentState: "completed"})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	require.NoError(t, client.Enrollments().Conclude(context.Background(), 10, 5))
}

func TestEnrollmentsClient_ListForCourse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/10/enrollments", request.URL.Path)
		assert.Equal(t, "StudentEnrollment", request.URL.Query().Get("type[]"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]canvas.Enrollment{
			{ID: 5, CourseID: 10, UserID: 30, Type: "StudentEnrollment"},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	page, err := client.Enrollments().ListForCourse(context.Background(), 10, map[string][]string{
		"type[]": {"StudentEnrollment"},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 30, page.Items[0].UserID)
}
