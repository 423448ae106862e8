package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// AnnouncementsClient manages course announcements. Canvas models an
// announcement as a discussion topic with is_announcement set, so creation
// goes through the discussion topics endpoint while the global listing
// endpoint filters by context codes.
type AnnouncementsClient struct {
	session *session
}

// NewAnnouncementsClient creates a new announcements client.
func NewAnnouncementsClient(session *session) *AnnouncementsClient {
	return &AnnouncementsClient{session: session}
}

// ListForCourses returns the first page of announcements across the given
// courses, most recent first.
func (c *AnnouncementsClient) ListForCourses(ctx context.Context, courseIDs []int, query url.Values) (*canvas.Page[canvas.Announcement], error) {
	merged := url.Values{}

	for key, values := range query {
		merged[key] = values
	}

	for _, id := range courseIDs {
		merged.Add("context_codes[]", fmt.Sprintf("course_%d", id))
	}

	return fetchPage[canvas.Announcement](ctx, c.session, c.session.apiPath("announcements"), merged, "announcements")
}

// Create posts an announcement to a course.
func (c *AnnouncementsClient) Create(ctx context.Context, courseID int, request *canvas.AnnouncementCreateRequest) (*canvas.Announcement, error) {
	request.IsAnnouncement = true
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "discussion_topics")

	return createResource[canvas.Announcement](ctx, c.session, path, request, "announcement")
}

// Delete removes an announcement from a course.
func (c *AnnouncementsClient) Delete(ctx context.Context, courseID, announcementID int) error {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "discussion_topics", strconv.Itoa(announcementID))

	return destroyResource(ctx, c.session, path, nil, "announcement")
}
