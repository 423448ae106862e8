package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// DeveloperKeysClient manages developer keys. Listing and creation are scoped
// to the configured account; update and delete address keys globally.
type DeveloperKeysClient struct {
	session *session
}

// NewDeveloperKeysClient creates a new developer keys client.
func NewDeveloperKeysClient(session *session) *DeveloperKeysClient {
	return &DeveloperKeysClient{session: session}
}

// List returns the first page of the configured account's developer keys.
func (c *DeveloperKeysClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.DeveloperKey], error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "developer_keys")

	return fetchPage[canvas.DeveloperKey](ctx, c.session, path, query, "developer keys")
}

// Create registers a developer key under the configured account.
func (c *DeveloperKeysClient) Create(ctx context.Context, request *canvas.DeveloperKeyCreateRequest) (*canvas.DeveloperKey, error) {
	path := c.session.apiPath("accounts", strconv.Itoa(c.session.accountID()), "developer_keys")

	return createResource[canvas.DeveloperKey](ctx, c.session, path, request, "developer key")
}

// Update modifies an existing developer key.
func (c *DeveloperKeysClient) Update(ctx context.Context, keyID int, request *canvas.DeveloperKeyCreateRequest) (*canvas.DeveloperKey, error) {
	path := c.session.apiPath("developer_keys", strconv.Itoa(keyID))

	return updateResource[canvas.DeveloperKey](ctx, c.session, path, request, "developer key")
}

// Delete deactivates a developer key.
func (c *DeveloperKeysClient) Delete(ctx context.Context, keyID int) error {
	path := c.session.apiPath("developer_keys", strconv.Itoa(keyID))

	return destroyResource(ctx, c.session, path, nil, "developer key")
}
