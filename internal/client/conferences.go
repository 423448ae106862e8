package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// ConferencesClient manages web conferences on courses.
type ConferencesClient struct {
	session *session
}

// NewConferencesClient creates a new conferences client.
func NewConferencesClient(session *session) *ConferencesClient {
	return &ConferencesClient{session: session}
}

// List returns the first page of a course's conferences. The endpoint nests
// the array under a "conferences" key.
func (c *ConferencesClient) List(ctx context.Context, courseID int, query url.Values) (*canvas.Page[canvas.Conference], error) {
	return fetchKeyedPage[canvas.Conference](ctx, c.session, c.conferencesPath(courseID), query, "conferences", "conferences")
}

// Create schedules a conference for a course.
func (c *ConferencesClient) Create(ctx context.Context, courseID int, request *canvas.ConferenceCreateRequest) (*canvas.Conference, error) {
	return createResource[canvas.Conference](ctx, c.session, c.conferencesPath(courseID), request, "conference")
}

// Update modifies an existing conference.
func (c *ConferencesClient) Update(ctx context.Context, courseID, conferenceID int, request *canvas.ConferenceCreateRequest) (*canvas.Conference, error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "conferences", strconv.Itoa(conferenceID))

	return updateResource[canvas.Conference](ctx, c.session, path, request, "conference")
}

func (c *ConferencesClient) conferencesPath(courseID int) string {
	return c.session.apiPath("courses", strconv.Itoa(courseID), "conferences")
}
