package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// QuizSubmissionsClient manages quiz submissions. Every endpoint in this
// family lives under a course and quiz, so operations fail with a scope error
// until ForQuiz has been called.
type QuizSubmissionsClient struct {
	session  *session
	courseID int
	quizID   int
}

// NewQuizSubmissionsClient creates an unscoped quiz submissions client.
func NewQuizSubmissionsClient(session *session) *QuizSubmissionsClient {
	return &QuizSubmissionsClient{session: session}
}

// ForQuiz returns a client scoped to one quiz in one course.
func (c *QuizSubmissionsClient) ForQuiz(courseID, quizID int) *QuizSubmissionsClient {
	return &QuizSubmissionsClient{session: c.session, courseID: courseID, quizID: quizID}
}

// List returns the first page of the quiz's submissions. The response nests
// the array under a "quiz_submissions" key.
func (c *QuizSubmissionsClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.QuizSubmission], error) {
	path, err := c.scopedPath("submissions")
	if err != nil {
		return nil, err
	}

	return fetchKeyedPage[canvas.QuizSubmission](ctx, c.session, path, query, "quiz_submissions", "quiz submissions")
}

// Find fetches one quiz submission.
func (c *QuizSubmissionsClient) Find(ctx context.Context, submissionID int) (*canvas.QuizSubmission, error) {
	path, err := c.scopedPath("submissions", strconv.Itoa(submissionID))
	if err != nil {
		return nil, err
	}

	page, ferr := fetchKeyedPage[canvas.QuizSubmission](ctx, c.session, path, nil, "quiz_submissions", "quiz submission")
	if ferr != nil {
		return nil, ferr
	}

	if len(page.Items) == 0 {
		return nil, quizSubmissionNotFound()
	}

	return &page.Items[0], nil
}

// Start begins a new quiz-taking session for the current user.
func (c *QuizSubmissionsClient) Start(ctx context.Context, accessCode string) (*canvas.QuizSubmission, error) {
	path, err := c.scopedPath("submissions")
	if err != nil {
		return nil, err
	}

	var form []canvas.FormField
	if accessCode != "" {
		form = []canvas.FormField{{Name: "access_code", Contents: accessCode}}
	}

	resp, err := c.session.http.PostForm(ctx, path, form)
	if err != nil {
		return nil, err
	}

	return firstQuizSubmission(resp.Body)
}

// Complete turns in an in-progress quiz submission.
func (c *QuizSubmissionsClient) Complete(ctx context.Context, submissionID int, request *canvas.QuizSubmissionCompleteRequest) (*canvas.QuizSubmission, error) {
	path, err := c.scopedPath("submissions", strconv.Itoa(submissionID), "complete")
	if err != nil {
		return nil, err
	}

	envelope, serr := submitForm[quizSubmissionEnvelope](ctx, c.session, http.MethodPost, path, request, "quiz submission")
	if serr != nil {
		return nil, serr
	}

	if len(envelope.QuizSubmissions) == 0 {
		return nil, quizSubmissionNotFound()
	}

	return &envelope.QuizSubmissions[0], nil
}

func (c *QuizSubmissionsClient) scopedPath(segments ...string) (string, error) {
	if c.courseID == 0 || c.quizID == 0 {
		return "", &canvas.MissingScopeError{Setter: "ForQuiz"}
	}

	base := []string{"courses", strconv.Itoa(c.courseID), "quizzes", strconv.Itoa(c.quizID)}

	return c.session.apiPath(append(base, segments...)...), nil
}

// quizSubmissionEnvelope mirrors the keyed wrapper every quiz submission
// endpoint responds with.
type quizSubmissionEnvelope struct {
	QuizSubmissions []canvas.QuizSubmission `json:"quiz_submissions"`
}

func firstQuizSubmission(body []byte) (*canvas.QuizSubmission, error) {
	var envelope quizSubmissionEnvelope

	err := unmarshalBody(body, &envelope, "quiz submission")
	if err != nil {
		return nil, err
	}

	if len(envelope.QuizSubmissions) == 0 {
		return nil, quizSubmissionNotFound()
	}

	return &envelope.QuizSubmissions[0], nil
}

// quizSubmissionNotFound covers the empty-envelope case so callers can keep
// branching on status code the same way they do for real 404 responses.
func quizSubmissionNotFound() error {
	return &canvas.APIError{StatusCode: http.StatusNotFound, Message: "quiz submission not found"}
}
