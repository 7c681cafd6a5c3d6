package facepp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"skincare-backend/internal/vision"
)

// DefaultEndpoint is the Face++ detect API (US region).
const DefaultEndpoint = "https://api-us.faceplusplus.com/facepp/v3/detect"

const maxResponseBytes = 1 << 20

// Client implements vision.Client against the Face++ detect API.
type Client struct {
	endpoint   string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient constructs a Face++ client. timeout bounds each HTTP exchange.
func NewClient(endpoint, apiKey, apiSecret string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		return nil, fmt.Errorf("VISION_API_KEY and VISION_API_SECRET are required for facepp")
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// AnalyzeFace uploads image and returns the decoded response document.
func (c *Client) AnalyzeFace(ctx context.Context, image []byte) (vision.Document, error) {
	body, contentType, err := c.buildForm(image)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("facepp request timeout: %w", err)
		}
		return nil, fmt.Errorf("facepp request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("facepp read response: %w", err)
	}

	doc, decodeErr := decode(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &vision.StatusError{StatusCode: resp.StatusCode, Message: errorMessage(doc)}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("facepp response parse: %w", decodeErr)
	}
	if msg := errorMessage(doc); msg != "" {
		return nil, &vision.StatusError{StatusCode: resp.StatusCode, Message: msg}
	}
	return doc, nil
}

func (c *Client) buildForm(image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"api_key", c.apiKey},
		{"api_secret", c.apiSecret},
		{"return_attributes", "skinstatus"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile("image_file", "face.jpg")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func decode(raw []byte) (vision.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc vision.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func errorMessage(doc vision.Document) string {
	if doc == nil {
		return ""
	}
	msg, _ := doc["error_message"].(string)
	return strings.TrimSpace(msg)
}
