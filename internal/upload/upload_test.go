package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revbook/revbook-client/internal/api"
)

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "revbook-avatars", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://cdn.example.com/v1/avatar.png",
		})
	}))
	defer server.Close()

	client := New(server.URL, "revbook-avatars")
	url, err := client.Upload(context.Background(), "avatar.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/v1/avatar.png", url)
}

func TestUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid image format"})
	}))
	defer server.Close()

	client := New(server.URL, "revbook-avatars")
	_, err := client.Upload(context.Background(), "avatar.txt", strings.NewReader("not an image"))
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, api.ServerRejection, apiErr.Kind)
	assert.Equal(t, "Invalid image format", apiErr.Message)
}

func TestUploadRejectedWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "revbook-avatars")
	_, err := client.Upload(context.Background(), "avatar.png", strings.NewReader("bytes"))
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, api.GenericFailureMessage, apiErr.Message)
}

func TestUploadNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := New(server.URL, "revbook-avatars")
	_, err := client.Upload(context.Background(), "avatar.png", strings.NewReader("bytes"))
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, api.NetworkFailure, apiErr.Kind)
}
