// Package api implements the HTTP client the CLI talks to the server
// with. Every authenticated call attaches the bearer token it is given.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wallfeed/wallfeed/internal/dto"
)

// Error carries the server's response message alongside the status code.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, token, in, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, out)
}

func (c *Client) Register(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.postJSON(ctx, "/api/auth/register", "", dto.RegisterRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.postJSON(ctx, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProfile(ctx context.Context, token string, id uint) (*dto.UserSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/profile/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	var snapshot dto.UserSnapshot
	if err := c.do(req, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, id uint, update *dto.UpdateProfileRequest) (*dto.UserSnapshot, error) {
	var snapshot dto.UserSnapshot
	err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/profile/%d", id), token, update, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// UploadAvatar sends the file at path as the multipart "file" field.
func (c *Client) UploadAvatar(ctx context.Context, token string, id uint, path string) (*dto.UserSnapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/profile/%d/avatar", c.baseURL, id), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var snapshot dto.UserSnapshot
	if err := c.do(req, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) ListPosts(ctx context.Context, token string, limit, offset int, sort string, userID uint) ([]dto.PostResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if sort != "" {
		query.Set("sort", sort)
	}
	if userID != 0 {
		query.Set("userId", strconv.FormatUint(uint64(userID), 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/posts?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var posts []dto.PostResponse
	if err := c.do(req, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost sends the multipart form the server expects: the text field,
// image files under "images", kept filenames under "existingImages".
func (c *Client) CreatePost(ctx context.Context, token, text string, imagePaths []string) (*dto.PostResponse, error) {
	return c.sendPostForm(ctx, http.MethodPost, "/api/posts", token, &text, nil, imagePaths)
}

func (c *Client) UpdatePost(ctx context.Context, token string, id uint, text *string, existingImages []string, imagePaths []string) (*dto.PostResponse, error) {
	return c.sendPostForm(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), token, text, existingImages, imagePaths)
}

func (c *Client) sendPostForm(ctx context.Context, method, path, token string, text *string, existingImages, imagePaths []string) (*dto.PostResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if text != nil {
		if err := writer.WriteField("text", *text); err != nil {
			return nil, err
		}
	}
	for _, name := range existingImages {
		if err := writer.WriteField("existingImages", name); err != nil {
			return nil, err
		}
	}
	for _, imagePath := range imagePaths {
		file, err := os.Open(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", imagePath, err)
		}
		part, err := writer.CreateFormFile("images", filepath.Base(imagePath))
		if err != nil {
			file.Close()
			return nil, err
		}
		if _, err := io.Copy(part, file); err != nil {
			file.Close()
			return nil, err
		}
		file.Close()
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var post dto.PostResponse
	if err := c.do(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, token string, id uint) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/posts/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.do(req, nil)
}
