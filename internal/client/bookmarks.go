package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// BookmarksClient manages the authenticated user's bookmarks.
type BookmarksClient struct {
	session *session
}

// NewBookmarksClient creates a new bookmarks client.
func NewBookmarksClient(session *session) *BookmarksClient {
	return &BookmarksClient{session: session}
}

// List returns the first page of the current user's bookmarks.
func (c *BookmarksClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.Bookmark], error) {
	return fetchPage[canvas.Bookmark](ctx, c.session, c.bookmarksPath(), query, "bookmarks")
}

// Find fetches one bookmark.
func (c *BookmarksClient) Find(ctx context.Context, bookmarkID int) (*canvas.Bookmark, error) {
	return fetchOne[canvas.Bookmark](ctx, c.session, c.bookmarkPath(bookmarkID), nil, "bookmark")
}

// Create adds a bookmark for the current user.
func (c *BookmarksClient) Create(ctx context.Context, request *canvas.BookmarkCreateRequest) (*canvas.Bookmark, error) {
	return createResource[canvas.Bookmark](ctx, c.session, c.bookmarksPath(), request, "bookmark")
}

// Update modifies an existing bookmark.
func (c *BookmarksClient) Update(ctx context.Context, bookmarkID int, request *canvas.BookmarkCreateRequest) (*canvas.Bookmark, error) {
	return updateResource[canvas.Bookmark](ctx, c.session, c.bookmarkPath(bookmarkID), request, "bookmark")
}

// Delete removes a bookmark.
func (c *BookmarksClient) Delete(ctx context.Context, bookmarkID int) error {
	return destroyResource(ctx, c.session, c.bookmarkPath(bookmarkID), nil, "bookmark")
}

// Save creates the bookmark when it has no ID yet, updates it otherwise, and
// copies the server's response back onto the instance.
func (c *BookmarksClient) Save(ctx context.Context, bookmark *canvas.Bookmark) error {
	request := &canvas.BookmarkCreateRequest{
		Name: optString(bookmark.Name),
		URL:  optString(bookmark.URL),
		Data: bookmark.Data,
	}

	if bookmark.Position > 0 {
		request.Position = &bookmark.Position
	}

	saved, err := saveResource[canvas.Bookmark](ctx, c.session,
		c.bookmarksPath(), c.bookmarkPath(bookmark.ID), bookmark.ID > 0, request, "bookmark")
	if err != nil {
		return err
	}

	*bookmark = *saved

	return nil
}

func (c *BookmarksClient) bookmarksPath() string {
	return c.session.apiPath("users", "self", "bookmarks")
}

func (c *BookmarksClient) bookmarkPath(bookmarkID int) string {
	return c.session.apiPath("users", "self", "bookmarks", strconv.Itoa(bookmarkID))
}
