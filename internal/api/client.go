// Package api is the HTTP client for the backend trip/order API. It owns
// the transport timeout and the conflict-disambiguation logic for order
// completion; everything above it works with decoded results, never with
// raw responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/model"
)

// BackendError is a non-2xx response from the backend.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// Trip is the wire representation of a trip. A nil or empty Orders list
// marks a legacy trip.
type Trip struct {
	TripID      string             `json:"trip_id"`
	Status      string             `json:"status"`
	Metadata    model.Metadata     `json:"metadata"`
	Destination *model.Destination `json:"destination,omitempty"`
	Estimate    *model.Estimate    `json:"estimate,omitempty"`
	Orders      []Order            `json:"orders,omitempty"`
	Views       *model.TripViews   `json:"views,omitempty"`
}

// Order is the wire representation of an order.
type Order struct {
	OrderID     string            `json:"order_id"`
	Destination model.Destination `json:"destination"`
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty"`
	Estimate    *model.Estimate   `json:"estimate,omitempty"`
	Status      string            `json:"status"`
	Metadata    model.Metadata    `json:"metadata"`
}

// TripParams describes a trip to create.
type TripParams struct {
	DeviceID    string             `json:"device_id"`
	Destination *model.Destination `json:"destination,omitempty"`
	Orders      []OrderParams      `json:"orders,omitempty"`
}

// OrderParams describes an order to add to a trip.
type OrderParams struct {
	OrderID     string            `json:"order_id"`
	Destination model.Destination `json:"destination"`
}

type tripsPage struct {
	Data            []Trip `json:"data"`
	PaginationToken string `json:"pagination_token"`
}

type imagePayload struct {
	FileName string `json:"file_name"`
	Data     string `json:"data"`
}

// Client calls the backend over HTTP with a fixed transport timeout.
// Timeouts surface as regular request errors, never as hangs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	deviceID   string
	logger     *zap.Logger
}

func NewClient(baseURL, authToken, deviceID string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		authToken:  authToken,
		deviceID:   deviceID,
		logger:     logger,
	}
}

// GetTrips fetches the full remote trip list, following pagination
// tokens until the backend reports no further pages.
func (c *Client) GetTrips(ctx context.Context) ([]Trip, error) {
	var trips []Trip
	token := ""
	for {
		endpoint := "client/trips"
		if token != "" {
			endpoint += "?pagination_token=" + url.QueryEscape(token)
		}
		var page tripsPage
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch trips: %w", err)
		}
		trips = append(trips, page.Data...)
		if page.PaginationToken == "" {
			return trips, nil
		}
		token = page.PaginationToken
	}
}

// CompleteOrder asks the backend to complete an order. A 409 response
// carries an order snapshot whose status tells which transition won.
func (c *Client) CompleteOrder(ctx context.Context, tripID, orderID string) OrderCompletionResult {
	return c.setOrderCompletion(ctx, tripID, orderID, "complete")
}

// CancelOrder asks the backend to cancel an order, with the same
// conflict semantics as CompleteOrder.
func (c *Client) CancelOrder(ctx context.Context, tripID, orderID string) OrderCompletionResult {
	return c.setOrderCompletion(ctx, tripID, orderID, "cancel")
}

func (c *Client) setOrderCompletion(ctx context.Context, tripID, orderID, action string) OrderCompletionResult {
	endpoint := fmt.Sprintf("client/trips/%s/orders/%s/%s", tripID, orderID, action)
	resp, err := c.send(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return OrderCompletionFailure{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return OrderCompletionSuccess{}
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return OrderCompletionFailure{Err: readErr}
	}

	if resp.StatusCode == http.StatusConflict {
		var snapshot Order
		if err := json.Unmarshal(body, &snapshot); err != nil {
			return OrderCompletionFailure{Err: &BackendError{StatusCode: resp.StatusCode, Body: string(body)}}
		}
		switch model.OrderStatusFromString(snapshot.Status) {
		case model.OrderStatusCompleted:
			return OrderCompletionAlreadyCompleted{}
		case model.OrderStatusCanceled:
			return OrderCompletionAlreadyCanceled{}
		}
	}

	return OrderCompletionFailure{Err: &BackendError{StatusCode: resp.StatusCode, Body: string(body)}}
}

// SnoozeOrder disables an ongoing order until it is unsnoozed.
func (c *Client) SnoozeOrder(ctx context.Context, tripID, orderID string) error {
	endpoint := fmt.Sprintf("client/trips/%s/orders/%s/disable", tripID, orderID)
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}

// UnsnoozeOrder returns a snoozed order to the ongoing state.
func (c *Client) UnsnoozeOrder(ctx context.Context, tripID, orderID string) error {
	endpoint := fmt.Sprintf("client/trips/%s/orders/%s/enable", tripID, orderID)
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}

// UpdateOrderMetadata pushes the full metadata map for an order. The
// backend replaces the stored map, so callers must send every key they
// want to keep.
func (c *Client) UpdateOrderMetadata(ctx context.Context, tripID, orderID string, md model.Metadata) error {
	endpoint := fmt.Sprintf("client/trips/%s/orders/%s", tripID, orderID)
	payload := struct {
		Metadata model.Metadata `json:"metadata"`
	}{Metadata: md}
	if err := c.do(ctx, http.MethodPatch, endpoint, payload, nil); err != nil {
		return fmt.Errorf("failed to update order metadata: %w", err)
	}
	return nil
}

// CreateTrip creates a trip and returns the backend's representation.
func (c *Client) CreateTrip(ctx context.Context, params TripParams) (Trip, error) {
	var trip Trip
	if err := c.do(ctx, http.MethodPost, "client/trips", params, &trip); err != nil {
		return Trip{}, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

// AddOrderToTrip appends an order to an existing trip and returns the
// updated trip.
func (c *Client) AddOrderToTrip(ctx context.Context, tripID string, params OrderParams) (Trip, error) {
	endpoint := fmt.Sprintf("client/trips/%s/orders", tripID)
	var trip Trip
	if err := c.do(ctx, http.MethodPost, endpoint, params, &trip); err != nil {
		return Trip{}, fmt.Errorf("failed to add order to trip: %w", err)
	}
	return trip, nil
}

// CompleteTrip completes a whole trip.
func (c *Client) CompleteTrip(ctx context.Context, tripID string) error {
	endpoint := fmt.Sprintf("client/trips/%s/complete", tripID)
	if err := c.do(ctx, http.MethodPost, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to complete trip: %w", err)
	}
	return nil
}

// UploadImage sends a base64 image payload keyed by the caller-supplied
// photo id. The backend deduplicates on the id, so retries are safe.
func (c *Client) UploadImage(ctx context.Context, photoID, base64Data string) error {
	payload := imagePayload{FileName: photoID, Data: base64Data}
	if err := c.do(ctx, http.MethodPost, "client/images", payload, nil); err != nil {
		return fmt.Errorf("failed to upload image %s: %w", photoID, err)
	}
	return nil
}

// GetImage fetches the base64 thumbnail of a previously uploaded image.
func (c *Client) GetImage(ctx context.Context, photoID string) (string, error) {
	var payload imagePayload
	if err := c.do(ctx, http.MethodGet, "client/images/"+url.PathEscape(photoID), nil, &payload); err != nil {
		return "", fmt.Errorf("failed to fetch image %s: %w", photoID, err)
	}
	return payload.Data, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.send(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &BackendError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s request: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	req.Header.Set("X-Device-Id", c.deviceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed",
			zap.String("method", method), zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}
	return resp, nil
}
