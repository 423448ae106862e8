package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// UsersClient accesses Canvas users under the configured account.
type UsersClient struct {
	session *session
}

// NewUsersClient creates a new users client.
func NewUsersClient(session *session) *UsersClient {
	return &UsersClient{session: session}
}

// Find fetches one user by ID.
func (c *UsersClient) Find(ctx context.Context, userID int) (*canvas.User, error) {
	return fetchOne[canvas.User](ctx, c.session, c.session.apiPath("users", strconv.Itoa(userID)), nil, "user")
}

// Self fetches the user the current credentials belong to.
func (c *UsersClient) Self(ctx context.Context) (*canvas.User, error) {
	return fetchOne[canvas.User](ctx, c.session, c.session.apiPath("users", "self"), nil, "user")
}

// List returns the first page of the configured account's users.
func (c *UsersClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.User], error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "users")

	return fetchPage[canvas.User](ctx, c.session, path, query, "users")
}

// Paginate iterates over the configured account's users page by page.
func (c *UsersClient) Paginate(ctx context.Context, query url.Values) *canvas.PageIterator[canvas.User] {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "users")

	return paginate[canvas.User](ctx, c.session, path, query, "", "users")
}

// Create creates a user under the configured account.
func (c *UsersClient) Create(ctx context.Context, request *canvas.UserCreateRequest) (*canvas.User, error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "users")

	return createResource[canvas.User](ctx, c.session, path, request, "user")
}

// Update modifies an existing user.
func (c *UsersClient) Update(ctx context.Context, userID int, request *canvas.UserCreateRequest) (*canvas.User, error) {
	path := c.session.apiPath("users", strconv.Itoa(userID))

	return updateResource[canvas.User](ctx, c.session, path, request, "user")
}

// ListCourses returns the first page of a user's course enrollments.
func (c *UsersClient) ListCourses(ctx context.Context, userID int, query url.Values) (*canvas.Page[canvas.Course], error) {
	path := c.session.apiPath("users", strconv.Itoa(userID), "courses")

	return fetchPage[canvas.Course](ctx, c.session, path, query, "user courses")
}
