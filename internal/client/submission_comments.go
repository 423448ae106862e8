package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// SubmissionCommentsClient manages comments on assignment submissions. The
// endpoints live under a course, assignment, and user, so operations fail
// with a scope error until ForSubmission has been called.
type SubmissionCommentsClient struct {
	session      *session
	courseID     int
	assignmentID int
	userID       int
}

// NewSubmissionCommentsClient creates an unscoped submission comments client.
func NewSubmissionCommentsClient(session *session) *SubmissionCommentsClient {
	return &SubmissionCommentsClient{session: session}
}

// ForSubmission returns a client scoped to one user's submission for one
// assignment in one course.
func (c *SubmissionCommentsClient) ForSubmission(courseID, assignmentID, userID int) *SubmissionCommentsClient {
	return &SubmissionCommentsClient{
		session:      c.session,
		courseID:     courseID,
		assignmentID: assignmentID,
		userID:       userID,
	}
}

// Create attaches a comment to the scoped submission. Canvas takes comments
// through the submission update endpoint and responds with the full
// submission, comments included.
func (c *SubmissionCommentsClient) Create(ctx context.Context, request *canvas.SubmissionCommentRequest) (*canvas.Submission, error) {
	path, err := c.submissionPath()
	if err != nil {
		return nil, err
	}

	return updateResource[canvas.Submission](ctx, c.session, path, request, "submission comment")
}

// List returns the comments already attached to the scoped submission.
func (c *SubmissionCommentsClient) List(ctx context.Context) ([]canvas.SubmissionComment, error) {
	submission, err := c.CurrentSubmission(ctx)
	if err != nil {
		return nil, err
	}

	if submission == nil {
		return nil, nil
	}

	return submission.SubmissionComments, nil
}

// CurrentSubmission fetches the scoped submission with its comments. A 404,
// meaning the user has not submitted yet, returns nil rather than an error.
func (c *SubmissionCommentsClient) CurrentSubmission(ctx context.Context) (*canvas.Submission, error) {
	path, err := c.submissionPath()
	if err != nil {
		return nil, err
	}

	query := url.Values{"include[]": {"submission_comments"}}

	submission, err := fetchOne[canvas.Submission](ctx, c.session, path, query, "submission")
	if err != nil {
		if canvas.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return submission, nil
}

func (c *SubmissionCommentsClient) submissionPath() (string, error) {
	if c.courseID == 0 || c.assignmentID == 0 || c.userID == 0 {
		return "", &canvas.MissingScopeError{Setter: "ForSubmission"}
	}

	return c.session.apiPath(
		"courses", strconv.Itoa(c.courseID),
		"assignments", strconv.Itoa(c.assignmentID),
		"submissions", strconv.Itoa(c.userID),
	), nil
}
