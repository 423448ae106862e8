package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

func TestConversationsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/conversations", request.URL.Path)

		require.NoError(t, request.ParseForm())

		// Conversations use bare flat keys, not conversation[...] nesting.
		assert.Equal(t, []string{"1", "2"}, request.PostForm["recipients[]"])
		assert.Equal(t, "hello there", request.PostForm.Get("body"))
		assert.Empty(t, request.PostForm.Get("conversation[body]"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]canvas.Conversation{
			{ID: 7, WorkflowState: "unread", LastMessage: "hello there"},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	request := &canvas.ConversationCreateRequest{
		Recipients: []string{"1", "2"},
		Body:       stringPtr("hello there"),
	}

	conversations, err := client.Conversations().Create(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, 7, conversations[0].ID)
}

func TestConversationsClient_AddMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/conversations/7/add_message", request.URL.Path)

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "following up", request.PostForm.Get("body"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(canvas.Conversation{ID: 7, MessageCount: 2})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	conversation, err := client.Conversations().AddMessage(context.Background(), 7, &canvas.ConversationAddMessageRequest{
		Body: stringPtr("following up"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, conversation.MessageCount)
}

func TestConversationsClient_Find(t *testing.T) {
	t.Parallel()

	tests := []TestFindOperation[canvas.Conversation]{
		{
			Name:         "successful find",
			ID:           7,
			ExpectedPath: "/api/v1/conversations/7",
			StatusCode:   http.StatusOK,
			Response:     &canvas.Conversation{ID: 7, Subject: "Office hours"},
		},
		{
			Name:         "conversation not found",
			ID:           8,
			ExpectedPath: "/api/v1/conversations/8",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "getting conversation",
		},
	}

	RunFindTests(t, tests, func(c *Client) func(context.Context, int) (*canvas.Conversation, error) {
		return c.Conversations().Find
	})
}
