package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// EnrollmentsClient manages course and user enrollments.
type EnrollmentsClient struct {
	session *session
}

// NewEnrollmentsClient creates a new enrollments client.
func NewEnrollmentsClient(session *session) *EnrollmentsClient {
	return &EnrollmentsClient{session: session}
}

// ListForCourse returns the first page of enrollments in a course.
func (c *EnrollmentsClient) ListForCourse(ctx context.Context, courseID int, query url.Values) (*canvas.Page[canvas.Enrollment], error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "enrollments")

	return fetchPage[canvas.Enrollment](ctx, c.session, path, query, "enrollments")
}

// ListForUser returns the first page of a user's enrollments.
func (c *EnrollmentsClient) ListForUser(ctx context.Context, userID int, query url.Values) (*canvas.Page[canvas.Enrollment], error) {
	path := c.session.apiPath("users", strconv.Itoa(userID), "enrollments")

	return fetchPage[canvas.Enrollment](ctx, c.session, path, query, "enrollments")
}

// PaginateForCourse iterates over a course's enrollments page by page.
func (c *EnrollmentsClient) PaginateForCourse(ctx context.Context, courseID int, query url.Values) *canvas.PageIterator[canvas.Enrollment] {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "enrollments")

	return paginate[canvas.Enrollment](ctx, c.session, path, query, "", "enrollments")
}

// Create enrolls a user in a course.
func (c *EnrollmentsClient) Create(ctx context.Context, courseID int, request *canvas.EnrollmentCreateRequest) (*canvas.Enrollment, error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "enrollments")

	return createResource[canvas.Enrollment](ctx, c.session, path, request, "enrollment")
}

// Conclude ends an enrollment while keeping its record.
func (c *EnrollmentsClient) Conclude(ctx context.Context, courseID, enrollmentID int) error {
	return c.delete(ctx, courseID, enrollmentID, "conclude")
}

// Deactivate makes an enrollment inactive.
func (c *EnrollmentsClient) Deactivate(ctx context.Context, courseID, enrollmentID int) error {
	return c.delete(ctx, courseID, enrollmentID, "deactivate")
}

// Delete removes an enrollment entirely.
func (c *EnrollmentsClient) Delete(ctx context.Context, courseID, enrollmentID int) error {
	return c.delete(ctx, courseID, enrollmentID, "delete")
}

func (c *EnrollmentsClient) delete(ctx context.Context, courseID, enrollmentID int, task string) error {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "enrollments", strconv.Itoa(enrollmentID))
	query := url.Values{"task": []string{task}}

	return destroyResource(ctx, c.session, path, query, "enrollment")
}
