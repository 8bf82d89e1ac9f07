package aura

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/set-night/aura/internal/config"
)

// Client talks to the AURA backend. Every method performs exactly one request;
// retrying is the caller's decision.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.GenerateTimeout},
	}
}

// File is the raw file handle submitted to an upload endpoint.
type File struct {
	Name string
	Data []byte
}

// UploadResult is the JSON descriptor returned by the upload endpoints.
type UploadResult struct {
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	ContentType      string `json:"content_type"`
	FilePath         string `json:"file_path"`
	URL              string `json:"url"`
}

// MediaResult normalizes an upload/generate response. URL is either a
// backend-assigned URL or an ephemeral memory:// reference wrapping Data,
// used when the backend streams raw media instead of a JSON descriptor.
type MediaResult struct {
	URL      string
	MIME     string
	Filename string
	Data     []byte
}

// Ephemeral reports whether the result wraps in-memory bytes rather than a
// backend URL.
func (m *MediaResult) Ephemeral() bool {
	return m.Data != nil
}

// APIError is a non-2xx backend response. Detail carries the backend's
// human-readable message when its error body was parsable.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("aura backend: %s (status %d)", e.Detail, e.Status)
}

// UploadImage stores an image on the backend and returns its descriptor.
func (c *Client) UploadImage(ctx context.Context, f File) (*UploadResult, error) {
	return c.uploadJSON(ctx, "/upload/", f)
}

// UploadAudio stores an audio file on the backend and returns its descriptor.
func (c *Client) UploadAudio(ctx context.Context, f File) (*UploadResult, error) {
	return c.uploadJSON(ctx, "/upload-audio/", f)
}

// ProcessVideo runs a clip through the backend pipeline. The backend answers
// with either a JSON descriptor or the processed clip itself as a binary
// stream; a binary stream becomes an ephemeral reference.
func (c *Client) ProcessVideo(ctx context.Context, f File) (*MediaResult, error) {
	resp, err := c.postFile(ctx, "/upload-video/", f)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	if isJSON(resp) {
		var result UploadResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("parse video descriptor: %w", err)
		}
		return &MediaResult{URL: result.URL, MIME: result.ContentType, Filename: result.Filename}, nil
	}

	return materialize(resp, "mp4")
}

// GenerateMusic turns an uploaded image into generated music. The backend
// streams the wav back; the result is always ephemeral.
func (c *Client) GenerateMusic(ctx context.Context, f File) (*MediaResult, error) {
	resp, err := c.postFile(ctx, "/upload-image-music/", f)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return materialize(resp, "wav")
}

// EstimateProcessingTime predicts how long music generation for the image will
// take, in seconds.
func (c *Client) EstimateProcessingTime(ctx context.Context, f File) (int, error) {
	resp, err := c.postFile(ctx, "/estimate-processing-time/", f)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, err
	}

	var result struct {
		TotalSeconds int `json:"total_seconds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("parse time estimate: %w", err)
	}
	return result.TotalSeconds, nil
}

// EstimateVideoTime predicts how long video processing will take, in seconds.
func (c *Client) EstimateVideoTime(ctx context.Context, f File) (int, error) {
	resp, err := c.postFile(ctx, "/estimate-video-time/", f)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, err
	}

	var result struct {
		EstimatedTime int `json:"estimated_time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("parse time estimate: %w", err)
	}
	return result.EstimatedTime, nil
}

// ChatRequest is the combined submission: the typed text plus the staged
// reference URLs, if any.
type ChatRequest struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// Chat sends one combined chat submission and returns the bot's reply.
func (c *Client) Chat(ctx context.Context, chatReq ChatRequest) (string, error) {
	payload, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var chatResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return chatResp.Response, nil
}

func (c *Client) uploadJSON(ctx context.Context, path string, f File) (*UploadResult, error) {
	resp, err := c.postFile(ctx, path, f)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse upload descriptor: %w", err)
	}
	return &result, nil
}

// postFile performs a multipart POST with the file under the fixed "file"
// field, matching the backend contract.
func (c *Client) postFile(ctx context.Context, path string, f File) (*http.Response, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", f.Name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	return resp, nil
}

// checkStatus turns a non-2xx response into an *APIError, preferring the
// backend's JSON {"detail": ...} body over the transport status line.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Detail: resp.Status}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			apiErr.Detail = payload.Detail
		}
	}
	return apiErr
}

func isJSON(resp *http.Response) bool {
	ct := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// materialize drains a binary media stream into an ephemeral memory://
// reference that lives for the session.
func materialize(resp *http.Response, ext string) (*MediaResult, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read media stream: %w", err)
	}

	filename := dispositionFilename(resp)
	if filename == "" {
		filename = fmt.Sprintf("generated_%s.%s", uuid.New().String(), ext)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return &MediaResult{
		URL:      "memory://" + uuid.New().String(),
		MIME:     mediaType,
		Filename: filename,
		Data:     data,
	}, nil
}

func dispositionFilename(resp *http.Response) string {
	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}
