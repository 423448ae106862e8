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

func TestQuizSubmissionsClient_RequiresScope(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, "https://canvas.example.edu")

	_, err := client.QuizSubmissions().List(context.Background(), nil)
	require.Error(t, err)

	scopeErr := &canvas.MissingScopeError{}
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, "ForQuiz", scopeErr.Setter)
	assert.Contains(t, err.Error(), "ForQuiz")
}

func TestQuizSubmissionsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/10/quizzes/20/submissions", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"quiz_submissions": []canvas.QuizSubmission{
				{ID: 1, QuizID: 20, Attempt: 1, WorkflowState: "complete"},
				{ID: 2, QuizID: 20, Attempt: 2, WorkflowState: "untaken"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	page, err := client.QuizSubmissions().ForQuiz(10, 20).List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "complete", page.Items[0].WorkflowState)
}

func TestQuizSubmissionsClient_Start(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/courses/10/quizzes/20/submissions", request.URL.Path)

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "secret", request.PostForm.Get("access_code"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"quiz_submissions": []canvas.QuizSubmission{
				{ID: 5, QuizID: 20, Attempt: 1, WorkflowState: "untaken", ValidationToken: "tok"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	submission, err := client.QuizSubmissions().ForQuiz(10, 20).Start(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, 5, submission.ID)
	assert.Equal(t, "tok", submission.ValidationToken)
}

func TestQuizSubmissionsClient_Complete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/courses/10/quizzes/20/submissions/5/complete", request.URL.Path)

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "1", request.PostForm.Get("quiz_submission[attempt]"))
		assert.Equal(t, "tok", request.PostForm.Get("quiz_submission[validation_token]"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"quiz_submissions": []canvas.QuizSubmission{
				{ID: 5, QuizID: 20, Attempt: 1, WorkflowState: "complete"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	request := &canvas.QuizSubmissionCompleteRequest{
		Attempt:         intPtr(1),
		ValidationToken: stringPtr("tok"),
	}

	submission, err := client.QuizSubmissions().ForQuiz(10, 20).Complete(context.Background(), 5, request)
	require.NoError(t, err)
	assert.Equal(t, "complete", submission.WorkflowState)
}
