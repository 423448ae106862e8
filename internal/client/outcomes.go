package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// OutcomesClient manages learning outcomes. Listing and creation operate on
// the configured account's root outcome group by default; the ForCourse
// variants target a course's group instead.
type OutcomesClient struct {
	session *session
}

// NewOutcomesClient creates a new outcomes client.
func NewOutcomesClient(session *session) *OutcomesClient {
	return &OutcomesClient{session: session}
}

// Find fetches one outcome by ID. Outcome IDs are global, not scoped to an
// account or course.
func (c *OutcomesClient) Find(ctx context.Context, outcomeID int) (*canvas.Outcome, error) {
	return fetchOne[canvas.Outcome](ctx, c.session, c.session.apiPath("outcomes", strconv.Itoa(outcomeID)), nil, "outcome")
}

// List returns the first page of outcome links in the configured account's
// root outcome group.
func (c *OutcomesClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.Outcome], error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "outcome_group_links")

	return fetchPage[canvas.Outcome](ctx, c.session, path, query, "outcomes")
}

// ListForCourse returns the first page of outcome links in a course's root
// outcome group.
func (c *OutcomesClient) ListForCourse(ctx context.Context, courseID int, query url.Values) (*canvas.Page[canvas.Outcome], error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "outcome_group_links")

	return fetchPage[canvas.Outcome](ctx, c.session, path, query, "outcomes")
}

// Create adds an outcome to the configured account's root outcome group.
func (c *OutcomesClient) Create(ctx context.Context, request *canvas.OutcomeCreateRequest) (*canvas.Outcome, error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "root_outcome_group", "outcomes")

	return createResource[canvas.Outcome](ctx, c.session, path, request, "outcome")
}

// CreateForCourse adds an outcome to a course's root outcome group.
func (c *OutcomesClient) CreateForCourse(ctx context.Context, courseID int, request *canvas.OutcomeCreateRequest) (*canvas.Outcome, error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "root_outcome_group", "outcomes")

	return createResource[canvas.Outcome](ctx, c.session, path, request, "outcome")
}

// Update modifies an existing outcome.
func (c *OutcomesClient) Update(ctx context.Context, outcomeID int, request *canvas.OutcomeCreateRequest) (*canvas.Outcome, error) {
	path := c.session.apiPath("outcomes", strconv.Itoa(outcomeID))

	return updateResource[canvas.Outcome](ctx, c.session, path, request, "outcome")
}
