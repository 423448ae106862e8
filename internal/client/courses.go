package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// CoursesClient accesses Canvas courses. Listing and creation are scoped to
// the context's account unless an explicit account ID is given.
type CoursesClient struct {
	session *session
}

// NewCoursesClient creates a new courses client.
func NewCoursesClient(session *session) *CoursesClient {
	return &CoursesClient{session: session}
}

// Find fetches one course by ID.
func (c *CoursesClient) Find(ctx context.Context, courseID int) (*canvas.Course, error) {
	return fetchOne[canvas.Course](ctx, c.session, c.session.apiPath("courses", strconv.Itoa(courseID)), nil, "course")
}

// List returns the first page of the configured account's courses.
func (c *CoursesClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.Course], error) {
	return c.ListForAccount(ctx, c.session.accountID(), query)
}

// ListForAccount returns the first page of courses of a specific account.
func (c *CoursesClient) ListForAccount(ctx context.Context, accountID int, query url.Values) (*canvas.Page[canvas.Course], error) {
	path := c.session.apiPath("accounts", strconv.Itoa(accountID), "courses")

	return fetchPage[canvas.Course](ctx, c.session, path, query, "courses")
}

// Paginate iterates over the configured account's courses page by page.
func (c *CoursesClient) Paginate(ctx context.Context, query url.Values) *canvas.PageIterator[canvas.Course] {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "courses")

	return paginate[canvas.Course](ctx, c.session, path, query, "", "courses")
}

// All drains every page of the configured account's courses.
func (c *CoursesClient) All(ctx context.Context, query url.Values) ([]canvas.Course, error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "courses")

	return listAll[canvas.Course](ctx, c.session, path, query, "", "courses")
}

// Create creates a course under the configured account.
func (c *CoursesClient) Create(ctx context.Context, request *canvas.CourseCreateRequest) (*canvas.Course, error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "courses")

	return createResource[canvas.Course](ctx, c.session, path, request, "course")
}

// Update updates a course.
func (c *CoursesClient) Update(ctx context.Context, courseID int, request *canvas.CourseUpdateRequest) (*canvas.Course, error) {
	return updateResource[canvas.Course](ctx, c.session, c.session.apiPath("courses", strconv.Itoa(courseID)), request, "course")
}

// Delete deletes a course. Canvas models deletion as an update event.
func (c *CoursesClient) Delete(ctx context.Context, courseID int) error {
	return destroyResource(ctx, c.session, c.session.apiPath("courses", strconv.Itoa(courseID)),
		url.Values{"event": []string{"delete"}}, "course")
}

// Save creates the course when it has no ID, updates it otherwise, and copies
// the server's response back onto the given instance.
func (c *CoursesClient) Save(ctx context.Context, course *canvas.Course) error {
	var (
		saved *canvas.Course
		err   error
	)

	if course.ID > 0 {
		saved, err = c.Update(ctx, course.ID, &canvas.CourseUpdateRequest{
			Name:         optString(course.Name),
			CourseCode:   optString(course.CourseCode),
			StartAt:      course.StartAt,
			EndAt:        course.EndAt,
			IsPublic:     course.IsPublic,
			SyllabusBody: course.SyllabusBody,
		})
	} else {
		saved, err = c.Create(ctx, &canvas.CourseCreateRequest{
			Name:         optString(course.Name),
			CourseCode:   optString(course.CourseCode),
			StartAt:      course.StartAt,
			EndAt:        course.EndAt,
			IsPublic:     course.IsPublic,
			SyllabusBody: course.SyllabusBody,
		})
	}

	if err != nil {
		return err
	}

	*course = *saved

	return nil
}

// optString returns a pointer for non-empty values so empty fields stay out
// of the encoded request.
func optString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
