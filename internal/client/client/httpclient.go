package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/fleet"
)

// HTTPClient talks to the VoltDrive REST API. The bearer token is read from
// the TokenSource on every request, so a session change is picked up
// without rebuilding the client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	// uploads go straight to object storage; they must not carry the
	// API bearer token.
	uploads *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{base: http.DefaultTransport, tokens: tokens},
		},
		uploads: &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, in any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *HTTPClient) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &eb)
	return &APIError{Status: resp.StatusCode, Message: eb.Message, Detail: eb.Error}
}

// do sends a JSON request and decodes a 2xx JSON answer into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req, err := c.newRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, data models.LoginData) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("decode response: missing user")
	}
	return out.User, nil
}

func (c *HTTPClient) ListCars(ctx context.Context, f fleet.Filter) ([]*models.Car, error) {
	var out []*models.Car
	if err := c.do(ctx, http.MethodGet, "/api/cars", f.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	var out models.Car
	if err := c.do(ctx, http.MethodPost, "/api/cars", nil, car, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	var out models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	var out []*models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) RequestAvatarUpload(ctx context.Context) (*AvatarUpload, error) {
	var out AvatarUpload
	if err := c.do(ctx, http.MethodPost, "/api/users/me/avatar", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar PUTs the image bytes to a presigned storage URL.
func (c *HTTPClient) UploadAvatar(ctx context.Context, url string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.uploads.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("avatar upload: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Health returns the health check result. A degraded server answers 503 with the
// same body, which is decoded rather than treated as an error.
func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, apiError(resp)
	}

	var out Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
