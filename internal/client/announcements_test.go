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

func TestAnnouncementsClient_ListForCourses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/announcements", request.URL.Path)
		assert.Equal(t, []string{"course_10", "course_20"}, request.URL.Query()["context_codes[]"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]canvas.Announcement{
			{ID: 1, Title: "Welcome", ContextCode: "course_10"},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	page, err := client.Announcements().ListForCourses(context.Background(), []int{10, 20}, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Welcome", page.Items[0].Title)
}

func TestAnnouncementsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/courses/10/discussion_topics", request.URL.Path)

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "Welcome", request.PostForm.Get("discussion_topic[title]"))
		assert.Equal(t, "true", request.PostForm.Get("discussion_topic[is_announcement]"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(canvas.Announcement{ID: 1, Title: "Welcome"})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	announcement, err := client.Announcements().Create(context.Background(), 10, &canvas.AnnouncementCreateRequest{
		Title:   stringPtr("Welcome"),
		Message: stringPtr("First day of class."),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, announcement.ID)
}
