package gateway

// Package gateway is the stateless HTTP client for the annotation backend.
// One method per endpoint, no caching, no retries; every call captures a
// complete request payload at call time.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cyclopcam/logs"
)

type Client struct {
	BaseURL string // eg http://localhost:8000 (no trailing slash)
	HTTP    *http.Client
	Log     logs.Log
}

func NewClient(baseURL string, logger logs.Log) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
		Log:     logger,
	}
}

// Generate uploads an image and placement parameters, and returns the
// composed canvas as a base64 data URL.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := bytes.Buffer{}
	mw := multipart.NewWriter(&body)
	name := req.ImageName
	if name == "" {
		name = "upload.png"
	}
	fw, err := mw.CreateFormFile("image", name)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(req.ImageData); err != nil {
		return "", err
	}
	mw.WriteField("size", strconv.Itoa(req.Size))
	mw.WriteField("x", strconv.Itoa(req.X))
	mw.WriteField("y", strconv.Itoa(req.Y))
	mw.WriteField("random_bg", strconv.FormatBool(req.RandomBg))
	if err := mw.Close(); err != nil {
		return "", err
	}
	resp := generateResponse{}
	if err := c.postForm(ctx, "/generate", &body, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	if resp.Image == "" {
		return "", fmt.Errorf("Backend returned no image")
	}
	return resp.Image, nil
}

// SaveAnnotations submits the annotation set for one image.
// An application-level failure comes back as *BackendError.
func (c *Client) SaveAnnotations(ctx context.Context, req SaveRequest) (*SaveResponse, error) {
	annJSON, err := json.Marshal(req.Annotations)
	if err != nil {
		return nil, err
	}
	body := bytes.Buffer{}
	mw := multipart.NewWriter(&body)
	mw.WriteField("annotations", string(annJSON))
	mw.WriteField("filename", req.Filename)
	mw.WriteField("session_name", req.SessionName)
	mw.WriteField("image_width", strconv.Itoa(req.ImageWidth))
	mw.WriteField("image_height", strconv.Itoa(req.ImageHeight))
	mw.WriteField("image_data", req.ImageData)
	if err := mw.Close(); err != nil {
		return nil, err
	}
	resp := SaveResponse{}
	if err := c.postForm(ctx, "/save_annotations", &body, mw.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Message: resp.Message}
	}
	c.Log.Infof("Saved %v annotations as '%v' in session '%v'", len(req.Annotations), resp.UniqueName, req.SessionName)
	return &resp, nil
}

// ListSessions fetches the session list from /api/sessions (the canonical
// endpoint; the legacy /list_sessions variant is not used).
func (c *Client) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	resp := sessionsResponse{}
	if err := c.getJSON(ctx, "/api/sessions", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Message: resp.Message}
	}
	return resp.Sessions, nil
}

// DownloadSession streams the session's ZIP archive (YOLO images/ + labels/
// layout) into w, returning the number of bytes written.
func (c *Client) DownloadSession(ctx context.Context, name string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/download_session/"+url.PathEscape(name), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(w, resp.Body)
}

// VisualizeSession fetches the per-image annotation data for a session.
func (c *Client) VisualizeSession(ctx context.Context, name string) (*VisualizeResponse, error) {
	resp := VisualizeResponse{}
	if err := c.getJSON(ctx, "/api/session/"+url.PathEscape(name)+"/visualize", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSession permanently deletes a session and all of its files.
func (c *Client) DeleteSession(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.BaseURL+"/delete_session/"+url.PathEscape(name), nil)
	if err != nil {
		return err
	}
	resp := statusResponse{}
	if err := c.fetchJSON(req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &BackendError{Message: resp.Message}
	}
	c.Log.Infof("Deleted session '%v'", name)
	return nil
}

// AugmentationInfo returns the variants the backend can apply, keyed by the
// opaque variant key.
func (c *Client) AugmentationInfo(ctx context.Context, name string) (map[string]Variant, error) {
	resp := augmentationInfoResponse{}
	if err := c.getJSON(ctx, "/api/session/"+url.PathEscape(name)+"/augmentation/info", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Message: resp.Message}
	}
	return resp.AvailableVariants, nil
}

// StartAugmentation kicks off an augmentation job for the given variant keys.
func (c *Client) StartAugmentation(ctx context.Context, name string, variants []string) error {
	payload, err := json.Marshal(map[string][]string{"variants": variants})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/api/session/"+url.PathEscape(name)+"/augmentation/start", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp := statusResponse{}
	if err := c.fetchJSON(req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &BackendError{Message: resp.Message}
	}
	return nil
}

// AugmentationProgress samples the progress of a running augmentation job.
func (c *Client) AugmentationProgress(ctx context.Context, name string) (*Progress, error) {
	resp := Progress{}
	if err := c.getJSON(ctx, "/api/session/"+url.PathEscape(name)+"/augmentation/progress", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{}
	}
	return &resp, nil
}

// do performs the request and turns any non-200 status into an error that
// includes the response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		respB, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error %v (%v)", resp.Status, string(respB))
	}
	return resp, nil
}

func (c *Client) fetchJSON(req *http.Request, output any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(output)
}

func (c *Client) getJSON(ctx context.Context, path string, output any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.fetchJSON(req, output)
}

func (c *Client) postForm(ctx context.Context, path string, body io.Reader, contentType string, output any) error {
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.fetchJSON(req, output)
}
