// Package customerapi предоставляет клиент для внешнего справочника клиентов.
package customerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

var (
	// ErrNotFound возвращается, если справочник не знает клиента.
	ErrNotFound = errors.New("customer not found in directory")
	// ErrRateLimited возвращается при ответе 429.
	ErrRateLimited = errors.New("customer directory rate limited")
)

// RateLimitError дополняет ErrRateLimited временем ожидания из Retry-After.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrRateLimited, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// Client инкапсулирует HTTP-взаимодействие со справочником клиентов.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type customerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// NewClient создаёт HTTP-клиент для обращения к справочнику по указанному адресу.
func NewClient(baseURL string) *Client {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GetCustomer запрашивает клиента по идентификатору.
func (c *Client) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("customer directory not configured")
	}

	endpoint := fmt.Sprintf("%s/api/customers/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case http.StatusTooManyRequests:
		retryAfter := time.Duration(0)
		if v := resp.Header.Get("Retry-After"); v != "" {
			if seconds, parseErr := strconv.Atoi(v); parseErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return nil, &RateLimitError{RetryAfter: retryAfter}
	default:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body customerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &model.Customer{
		ID:      body.ID,
		Name:    body.Name,
		Phone:   body.Phone,
		Address: body.Address,
	}, nil
}
