package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// ContentMigrationsClient manages content migrations. The no-suffix methods
// operate on the configured account; the ForCourse variants target a course.
type ContentMigrationsClient struct {
	session *session
}

// NewContentMigrationsClient creates a new content migrations client.
func NewContentMigrationsClient(session *session) *ContentMigrationsClient {
	return &ContentMigrationsClient{session: session}
}

// List returns the first page of the configured account's migrations.
func (c *ContentMigrationsClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.ContentMigration], error) {
	return fetchPage[canvas.ContentMigration](ctx, c.session, c.accountPath(), query, "content migrations")
}

// ListForCourse returns the first page of a course's migrations.
func (c *ContentMigrationsClient) ListForCourse(ctx context.Context, courseID int, query url.Values) (*canvas.Page[canvas.ContentMigration], error) {
	return fetchPage[canvas.ContentMigration](ctx, c.session, c.coursePath(courseID), query, "content migrations")
}

// Find fetches one migration on the configured account.
func (c *ContentMigrationsClient) Find(ctx context.Context, migrationID int) (*canvas.ContentMigration, error) {
	path := c.accountPath() + "/" + strconv.Itoa(migrationID)

	return fetchOne[canvas.ContentMigration](ctx, c.session, path, nil, "content migration")
}

// Create starts a migration on the configured account. Date shift options,
// including weekday substitutions, flatten into nested form keys.
func (c *ContentMigrationsClient) Create(ctx context.Context, request *canvas.ContentMigrationCreateRequest) (*canvas.ContentMigration, error) {
	return createResource[canvas.ContentMigration](ctx, c.session, c.accountPath(), request, "content migration")
}

// CreateForCourse starts a migration on a course.
func (c *ContentMigrationsClient) CreateForCourse(ctx context.Context, courseID int, request *canvas.ContentMigrationCreateRequest) (*canvas.ContentMigration, error) {
	return createResource[canvas.ContentMigration](ctx, c.session, c.coursePath(courseID), request, "content migration")
}

func (c *ContentMigrationsClient) accountPath() string {
	return c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "content_migrations")
}

func (c *ContentMigrationsClient) coursePath(courseID int) string {
	return c.session.apiPath("courses", strconv.Itoa(courseID), "content_migrations")
}
