package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// TabsClient manages course navigation tabs.
type TabsClient struct {
	session *session
}

// NewTabsClient creates a new tabs client.
func NewTabsClient(session *session) *TabsClient {
	return &TabsClient{session: session}
}

// List returns a course's navigation tabs. The endpoint is unpaginated.
func (c *TabsClient) List(ctx context.Context, courseID int, query url.Values) ([]canvas.Tab, error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "tabs")

	page, err := fetchPage[canvas.Tab](ctx, c.session, path, query, "tabs")
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// Update repositions or hides a tab. Tab IDs are strings ("home",
// "assignments", "context_external_tool_123").
func (c *TabsClient) Update(ctx context.Context, courseID int, tabID string, position int, hidden bool) (*canvas.Tab, error) {
	path := c.session.apiPath("courses", strconv.Itoa(courseID), "tabs", tabID)
	form := []canvas.FormField{
		{Name: "position", Contents: strconv.Itoa(position)},
		{Name: "hidden", Contents: strconv.FormatBool(hidden)},
	}

	resp, err := c.session.http.PutForm(ctx, path, form)
	if err != nil {
		return nil, fmt.Errorf("updating tab: %w", err)
	}

	var tab canvas.Tab

	err = json.Unmarshal(resp.Body, &tab)
	if err != nil {
		return nil, fmt.Errorf("parsing tab response: %w", err)
	}

	return &tab, nil
}
