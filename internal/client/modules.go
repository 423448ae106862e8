package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// ModulesClient manages course modules and their items.
type ModulesClient struct {
	session *session
}

// NewModulesClient creates a new modules client.
func NewModulesClient(session *session) *ModulesClient {
	return &ModulesClient{session: session}
}

// List returns the first page of a course's modules.
func (c *ModulesClient) List(ctx context.Context, courseID int, query url.Values) (*canvas.Page[canvas.Module], error) {
	return fetchPage[canvas.Module](ctx, c.session, c.modulesPath(courseID), query, "modules")
}

// Find fetches one module.
func (c *ModulesClient) Find(ctx context.Context, courseID, moduleID int) (*canvas.Module, error) {
	return fetchOne[canvas.Module](ctx, c.session, c.modulePath(courseID, moduleID), nil, "module")
}

// Create adds a module to a course.
func (c *ModulesClient) Create(ctx context.Context, courseID int, request *canvas.ModuleCreateRequest) (*canvas.Module, error) {
	return createResource[canvas.Module](ctx, c.session, c.modulesPath(courseID), request, "module")
}

// Update modifies an existing module.
func (c *ModulesClient) Update(ctx context.Context, courseID, moduleID int, request *canvas.ModuleCreateRequest) (*canvas.Module, error) {
	return updateResource[canvas.Module](ctx, c.session, c.modulePath(courseID, moduleID), request, "module")
}

// Delete removes a module from a course.
func (c *ModulesClient) Delete(ctx context.Context, courseID, moduleID int) error {
	return destroyResource(ctx, c.session, c.modulePath(courseID, moduleID), nil, "module")
}

// ListItems returns the first page of a module's items.
func (c *ModulesClient) ListItems(ctx context.Context, courseID, moduleID int, query url.Values) (*canvas.Page[canvas.ModuleItem], error) {
	return fetchPage[canvas.ModuleItem](ctx, c.session, c.itemsPath(courseID, moduleID), query, "module items")
}

// CreateItem adds an item to a module. The item type is validated before any
// request is made.
func (c *ModulesClient) CreateItem(ctx context.Context, courseID, moduleID int, request *canvas.ModuleItemCreateRequest) (*canvas.ModuleItem, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return createResource[canvas.ModuleItem](ctx, c.session, c.itemsPath(courseID, moduleID), request, "module item")
}

// UpdateItem modifies an existing module item.
func (c *ModulesClient) UpdateItem(ctx context.Context, courseID, moduleID, itemID int, request *canvas.ModuleItemCreateRequest) (*canvas.ModuleItem, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	path := c.itemsPath(courseID, moduleID) + "/" + strconv.Itoa(itemID)

	return updateResource[canvas.ModuleItem](ctx, c.session, path, request, "module item")
}

// DeleteItem removes an item from a module.
func (c *ModulesClient) DeleteItem(ctx context.Context, courseID, moduleID, itemID int) error {
	path := c.itemsPath(courseID, moduleID) + "/" + strconv.Itoa(itemID)

	return destroyResource(ctx, c.session, path, nil, "module item")
}

func (c *ModulesClient) modulesPath(courseID int) string {
	return c.session.apiPath("courses", strconv.Itoa(courseID), "modules")
}

func (c *ModulesClient) modulePath(courseID, moduleID int) string {
	return c.session.apiPath("courses", strconv.Itoa(courseID), "modules", strconv.Itoa(moduleID))
}

func (c *ModulesClient) itemsPath(courseID, moduleID int) string {
	return c.session.apiPath("courses", strconv.Itoa(courseID), "modules", strconv.Itoa(moduleID), "items")
}
