package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVehicle получает автомобиль пользователя по ID
func (c *Client) GetVehicle(ctx context.Context, userID, vehicleID string) (*Vehicle, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s/vehicles/%s",
		c.baseURL, url.PathEscape(userID), url.PathEscape(vehicleID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user or vehicle ID", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrVehicleNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var vehicle Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&vehicle); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if vehicle.UserID != "" && vehicle.UserID != userID {
		return nil, ErrVehicleNotFound
	}

	return &vehicle, nil
}

// GetVehicleWithGracefulDegradation получает автомобиль с graceful degradation
// При недоступности UserService возвращает ErrServiceDegraded: бронирование
// продолжается без номера автомобиля
func (c *Client) GetVehicleWithGracefulDegradation(ctx context.Context, userID, vehicleID string) (*Vehicle, error) {
	vehicle, err := c.GetVehicle(ctx, userID, vehicleID)
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			c.log.Info("Vehicle not found: user=%s, vehicle=%s", userID, vehicleID)
			return nil, err
		}

		c.log.Error("UserService unavailable, applying graceful degradation for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: user=%s, error=%v", ErrServiceDegraded, userID, err)
	}

	return vehicle, nil
}
