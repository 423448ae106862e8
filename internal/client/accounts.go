package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// AccountsClient accesses Canvas accounts.
type AccountsClient struct {
	session *session
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(session *session) *AccountsClient {
	return &AccountsClient{session: session}
}

// Find fetches one account by ID.
func (c *AccountsClient) Find(ctx context.Context, accountID int) (*canvas.Account, error) {
	return fetchOne[canvas.Account](ctx, c.session, c.session.apiPath("accounts", strconv.Itoa(accountID)), nil, "account")
}

// Self fetches the context's configured account.
func (c *AccountsClient) Self(ctx context.Context) (*canvas.Account, error) {
	return c.Find(ctx, c.session.accountID())
}

// List returns the first page of accounts visible to the caller.
func (c *AccountsClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.Account], error) {
	return fetchPage[canvas.Account](ctx, c.session, c.session.apiPath("accounts"), query, "accounts")
}

// Paginate iterates over all visible accounts page by page.
func (c *AccountsClient) Paginate(ctx context.Context, query url.Values) *canvas.PageIterator[canvas.Account] {
	return paginate[canvas.Account](ctx, c.session, c.session.apiPath("accounts"), query, "", "accounts")
}

// ListSubAccounts returns the first page of sub-accounts of an account.
func (c *AccountsClient) ListSubAccounts(ctx context.Context, accountID int, query url.Values) (*canvas.Page[canvas.Account], error) {
	path := c.session.apiPath("accounts", strconv.Itoa(accountID), "sub_accounts")

	return fetchPage[canvas.Account](ctx, c.session, path, query, "sub-accounts")
}
