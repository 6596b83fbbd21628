// Package upload sends avatar images to the external upload service.
// The service is an opaque collaborator: a multipart POST carrying the
// image and an upload preset, answered with a secure URL.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/revbook/revbook-client/internal/api"
)

// Client uploads images to a preset-scoped endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	preset     string
}

// New creates an upload client for the given endpoint and preset.
func New(endpoint, preset string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // uploads carry image payloads
		},
		endpoint: endpoint,
		preset:   preset,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Message   string `json:"message"`
}

// Upload sends one image and returns its secure URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.preset); err != nil {
		return "", fmt.Errorf("write preset field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &api.Error{Kind: api.NetworkFailure, Message: "could not reach the upload service: " + err.Error()}
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &api.Error{Kind: api.ServerRejection, Message: api.GenericFailureMessage}
	}

	if resp.StatusCode != http.StatusOK || result.SecureURL == "" {
		message := result.Message
		if message == "" {
			message = api.GenericFailureMessage
		}
		return "", &api.Error{Kind: api.ServerRejection, Message: message}
	}

	return result.SecureURL, nil
}
