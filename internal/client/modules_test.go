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

func TestModulesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/10/modules", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]canvas.Module{
			{ID: 1, Name: "Week 1", Position: 1},
			{ID: 2, Name: "Week 2", Position: 2},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	page, err := client.Modules().List(context.Background(), 10, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Week 1", page.Items[0].Name)
}

func TestModulesClient_CreateItem(t *testing.T) {
	t.Parallel()

	t.Run("successful create", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/api/v1/courses/10/modules/3/items", request.URL.Path)

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "Reading", request.PostForm.Get("module_item[title]"))
			assert.Equal(t, "Page", request.PostForm.Get("module_item[type]"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(canvas.ModuleItem{ID: 9, Title: "Reading", Type: "Page"})
		}))
		defer server.Close()

		client := NewTestClient(t, server.URL)

		item, err := client.Modules().CreateItem(context.Background(), 10, 3, &canvas.ModuleItemCreateRequest{
			Title: stringPtr("Reading"),
			Type:  stringPtr("Page"),
		})
		require.NoError(t, err)
		assert.Equal(t, 9, item.ID)
	})

	t.Run("rejects unknown item type without a request", func(t *testing.T) {
		t.Parallel()

		var called bool

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			called = true
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewTestClient(t, server.URL)

		_, err := client.Modules().CreateItem(context.Background(), 10, 3, &canvas.ModuleItemCreateRequest{
			Title: stringPtr("Bad"),
			Type:  stringPtr("Hologram"),
		})
		require.Error(t, err)
		require.ErrorIs(t, err, canvas.ErrInvalidModuleItem)
		assert.False(t, called)
	})
}

func TestModulesClient_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch request.Method {
		case http.MethodPut:
			assert.Equal(t, "/api/v1/courses/10/modules/3", request.URL.Path)
			_ = json.NewEncoder(writer).Encode(canvas.Module{ID: 3, Name: "Renamed"})
		case http.MethodDelete:
			assert.Equal(t, "/api/v1/courses/10/modules/3/items/9", request.URL.Path)
			_ = json.NewEncoder(writer).Encode(canvas.ModuleItem{ID: 9})
		default:
			t.Errorf("unexpected method %s", request.Method)
		}
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	module, err := client.Modules().Update(context.Background(), 10, 3, &canvas.ModuleCreateRequest{
		Name: stringPtr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", module.Name)

	require.NoError(t, client.Modules().DeleteItem(context.Background(), 10, 3, 9))
}
