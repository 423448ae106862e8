package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// FeatureFlagsClient manages feature flags on accounts, courses, and users.
// The no-suffix methods operate on the configured account; the InContext
// variants take an explicit context type ("accounts", "courses", "users")
// and ID.
type FeatureFlagsClient struct {
	session *session
}

// NewFeatureFlagsClient creates a new feature flags client.
func NewFeatureFlagsClient(session *session) *FeatureFlagsClient {
	return &FeatureFlagsClient{session: session}
}

// List returns the first page of features available to the configured
// account, each with its current flag state.
func (c *FeatureFlagsClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.Feature], error) {
	return c.ListInContext(ctx, "accounts", c.session.accountID(), query)
}

// ListInContext returns the first page of features for an arbitrary context.
func (c *FeatureFlagsClient) ListInContext(ctx context.Context, contextType string, contextID int, query url.Values) (*canvas.Page[canvas.Feature], error) {
	path := c.session.apiPath(contextType, strconv.Itoa(contextID), "features")

	return fetchPage[canvas.Feature](ctx, c.session, path, query, "features")
}

// Get fetches one feature flag on the configured account.
func (c *FeatureFlagsClient) Get(ctx context.Context, feature string) (*canvas.FeatureFlag, error) {
	return c.GetInContext(ctx, "accounts", c.session.accountID(), feature)
}

// GetInContext fetches one feature flag for an arbitrary context.
func (c *FeatureFlagsClient) GetInContext(ctx context.Context, contextType string, contextID int, feature string) (*canvas.FeatureFlag, error) {
	path := c.session.apiPath(contextType, strconv.Itoa(contextID), "features", "flags", feature)

	return fetchOne[canvas.FeatureFlag](ctx, c.session, path, nil, "feature flag")
}

// Update sets a feature flag's state on the configured account.
func (c *FeatureFlagsClient) Update(ctx context.Context, feature, state string) (*canvas.FeatureFlag, error) {
	return c.UpdateInContext(ctx, "accounts", c.session.accountID(), feature, state)
}

// UpdateInContext sets a feature flag's state for an arbitrary context.
func (c *FeatureFlagsClient) UpdateInContext(ctx context.Context, contextType string, contextID int, feature, state string) (*canvas.FeatureFlag, error) {
	path := c.session.apiPath(contextType, strconv.Itoa(contextID), "features", "flags", feature)
	request := &canvas.FeatureFlagUpdateRequest{State: &state}

	return updateResource[canvas.FeatureFlag](ctx, c.session, path, request, "feature flag")
}

// Delete removes a flag override so the context inherits its parent's state.
func (c *FeatureFlagsClient) Delete(ctx context.Context, feature string) error {
	return c.DeleteInContext(ctx, "accounts", c.session.accountID(), feature)
}

// DeleteInContext removes a flag override for an arbitrary context.
func (c *FeatureFlagsClient) DeleteInContext(ctx context.Context, contextType string, contextID int, feature string) error {
	path := c.session.apiPath(contextType, strconv.Itoa(contextID), "features", "flags", feature)

	return destroyResource(ctx, c.session, path, nil, "feature flag")
}
