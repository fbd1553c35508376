package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "dispatch-api"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// OrderGateway клиент REST API для watcher'а, ходит от имени владельца токена.
type OrderGateway struct {
	client  client
	retrier retrier
	baseURL string
	token   string
}

func New(client client, baseURL string, token string) *OrderGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &OrderGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// ListOrderIDs id заказов, видимых пользователю под фильтром.
func (o *OrderGateway) ListOrderIDs(ctx context.Context, filter entities.OrderFilter) ([]string, error) {
	endpoint := o.baseURL + "/orders"
	if query := toQuery(filter).Encode(); query != "" {
		endpoint += "?" + query
	}

	var resp listResponse

	err := gateway.Execute(ctx, o.retrier, serviceName, "ListOrders", statusCode, func(ctx context.Context) error {
		return o.getJSON(ctx, endpoint, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway order, list orders: %w", err)
	}

	return toIDs(&resp), nil
}

func (o *OrderGateway) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.token)
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrUnauthorized) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	// сетевые ошибки транспорта
	return true
}

func statusCode(err error) string {
	if err == nil {
		return strconv.Itoa(http.StatusOK)
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.Code)
	}
	if errors.Is(err, ErrUnauthorized) {
		return strconv.Itoa(http.StatusUnauthorized)
	}
	return "UNKNOWN"
}
