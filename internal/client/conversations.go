package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// ConversationsClient manages the authenticated user's conversations. These
// endpoints use bare flat form keys rather than the nested property
// convention, which the request DTOs encode for.
type ConversationsClient struct {
	session *session
}

// NewConversationsClient creates a new conversations client.
func NewConversationsClient(session *session) *ConversationsClient {
	return &ConversationsClient{session: session}
}

// List returns the first page of the current user's conversations.
func (c *ConversationsClient) List(ctx context.Context, query url.Values) (*canvas.Page[canvas.Conversation], error) {
	return fetchPage[canvas.Conversation](ctx, c.session, c.session.apiPath("conversations"), query, "conversations")
}

// Find fetches one conversation with its messages.
func (c *ConversationsClient) Find(ctx context.Context, conversationID int) (*canvas.Conversation, error) {
	return fetchOne[canvas.Conversation](ctx, c.session, c.conversationPath(conversationID), nil, "conversation")
}

// Create starts a conversation. Canvas responds with an array holding one
// conversation per recipient group.
func (c *ConversationsClient) Create(ctx context.Context, request *canvas.ConversationCreateRequest) ([]canvas.Conversation, error) {
	form, err := canvas.EncodeForm(request)
	if err != nil {
		return nil, fmt.Errorf("encoding conversation request: %w", err)
	}

	resp, err := c.session.http.PostForm(ctx, c.session.apiPath("conversations"), form)
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	var conversations []canvas.Conversation

	err = json.Unmarshal(resp.Body, &conversations)
	if err != nil {
		return nil, fmt.Errorf("parsing conversation response: %w", err)
	}

	return conversations, nil
}

// AddMessage appends a message to an existing conversation.
func (c *ConversationsClient) AddMessage(ctx context.Context, conversationID int, request *canvas.ConversationAddMessageRequest) (*canvas.Conversation, error) {
	path := c.conversationPath(conversationID) + "/add_message"

	return submitForm[canvas.Conversation](ctx, c.session, http.MethodPost, path, request, "conversation message")
}

// Delete removes a conversation from the current user's view.
func (c *ConversationsClient) Delete(ctx context.Context, conversationID int) error {
	return destroyResource(ctx, c.session, c.conversationPath(conversationID), nil, "conversation")
}

func (c *ConversationsClient) conversationPath(conversationID int) string {
	return c.session.apiPath("conversations", strconv.Itoa(conversationID))
}
