// Package imagehost provides an ImageHost adapter for a Cloudinary-compatible upload API.
package imagehost

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // the destroy API mandates SHA-1 request signatures
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ayabeauty/storefront/internal/domain/model"
	"github.com/ayabeauty/storefront/internal/ports"
)

const (
	// DefaultBaseURL is the public Cloudinary API endpoint.
	DefaultBaseURL = "https://api.cloudinary.com/v1_1"

	maxResponseBodyBytes = 64 * 1024
	maxListBodyBytes     = 4 << 20

	listPageSize = 500
	maxListPages = 10
)

var (
	// ErrNotConfigured is returned when the client lacks the settings an operation needs.
	ErrNotConfigured = errors.New("image host not configured")

	_ ports.ImageHost = (*Client)(nil)
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	// APIKey and APISecret sign destroy requests; uploads use the unsigned preset.
	APIKey     string
	APISecret  string
	Folder     string
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client talks to the image host over HTTP.
type Client struct {
	baseURL      string
	cloudName    string
	uploadPreset string
	apiKey       string
	apiSecret    string
	folder       string
	http         *http.Client
	now          func() time.Time
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		cloudName:    opts.CloudName,
		uploadPreset: opts.UploadPreset,
		apiKey:       opts.APIKey,
		apiSecret:    opts.APISecret,
		folder:       opts.Folder,
		http:         opts.HTTPClient,
		now:          opts.Now,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

type resourceListResponse struct {
	Resources []struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
	} `json:"resources"`
	NextCursor string `json:"next_cursor"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file to the unsigned upload endpoint and returns its secure URL and public id.
func (c *Client) Upload(ctx context.Context, in ports.ImageUpload) (model.Image, error) {
	if c.cloudName == "" || c.uploadPreset == "" {
		return model.Image{}, fmt.Errorf("upload: %w", ErrNotConfigured)
	}
	if in.Body == nil {
		return model.Image{}, errors.New("upload: file body is required")
	}

	body, contentType, err := c.buildUploadBody(in)
	if err != nil {
		return model.Image{}, err
	}

	var out uploadResponse
	if err := c.post(ctx, c.endpoint("upload"), contentType, body, &out); err != nil {
		return model.Image{}, fmt.Errorf("upload: %w", err)
	}
	if out.SecureURL == "" {
		return model.Image{}, errors.New("upload: response missing secure_url")
	}
	if out.PublicID == "" {
		out.PublicID = model.ExtractPublicID(out.SecureURL)
	}
	return model.Image{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

func (c *Client) buildUploadBody(in ports.ImageUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := in.Filename
	if filename == "" {
		filename = "upload"
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, in.Body); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := mw.WriteField("upload_preset", c.uploadPreset); err != nil {
		return nil, "", fmt.Errorf("write upload_preset: %w", err)
	}
	if c.folder != "" {
		if err := mw.WriteField("folder", c.folder); err != nil {
			return nil, "", fmt.Errorf("write folder: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// Delete destroys the image with publicID. Images that are already gone count as deleted.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return errors.New("destroy: public id is required")
	}
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return fmt.Errorf("destroy: %w", ErrNotConfigured)
	}

	ts := strconv.FormatInt(c.now().Unix(), 10)
	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", ts)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(map[string]string{"public_id": publicID, "timestamp": ts}))

	var out destroyResponse
	err := c.post(ctx, c.endpoint("destroy"), "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &out)
	if err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	switch out.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("destroy: unexpected result %q", out.Result)
	}
}

// List returns the images stored under folder, following next_cursor pages.
// Listing stops after maxListPages pages.
func (c *Client) List(ctx context.Context, folder string) ([]model.Image, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return nil, errors.New("list: folder is required")
	}
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return nil, fmt.Errorf("list: %w", ErrNotConfigured)
	}

	images := []model.Image{}
	cursor := ""
	for range maxListPages {
		q := url.Values{}
		q.Set("prefix", folder+"/")
		q.Set("max_results", strconv.Itoa(listPageSize))
		if cursor != "" {
			q.Set("next_cursor", cursor)
		}

		var out resourceListResponse
		if err := c.get(ctx, c.resourcesEndpoint()+"?"+q.Encode(), &out); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		for _, r := range out.Resources {
			if r.SecureURL == "" {
				continue
			}
			images = append(images, model.Image{URL: r.SecureURL, PublicID: r.PublicID})
		}
		if out.NextCursor == "" {
			break
		}
		cursor = out.NextCursor
	}
	return images, nil
}

// sign builds the SHA-1 signature over the alphabetically sorted params followed by the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "&") + c.apiSecret)) //nolint:gosec // required by API
	return hex.EncodeToString(sum[:])
}

func (c *Client) endpoint(action string) string {
	return c.baseURL + "/" + url.PathEscape(c.cloudName) + "/image/" + action
}

// resourcesEndpoint is the admin listing of uploaded images.
func (c *Client) resourcesEndpoint() string {
	return c.baseURL + "/" + url.PathEscape(c.cloudName) + "/resources/image/upload"
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, maxResponseBodyBytes, out)
}

// get calls the admin API, which authenticates with the API key pair.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	return c.do(req, maxListBodyBytes, out)
}

func (c *Client) do(req *http.Request, limit int64, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, limit))
	if closeErr := resp.Body.Close(); closeErr != nil && readErr == nil {
		readErr = closeErr
	}
	if readErr != nil {
		return fmt.Errorf("read response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
