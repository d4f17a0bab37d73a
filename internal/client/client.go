package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 10 * time.Second

// Client talks to the medtrack HTTP API. It is both the attendance store and
// the session provider for a tracker.Controller.
type Client struct {
	baseURL string
	timeout time.Duration
	dial    fasthttp.DialFunc
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
	user  *sessionUser
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

// WithDialer replaces the TCP dialer, for example with an in-memory listener.
func WithDialer(dial fasthttp.DialFunc) Option {
	return func(client *Client) {
		client.dial = dial
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	client := &Client{
		baseURL: trimmed,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("server returned status %d", err.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", err.StatusCode, err.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

func newAPIError(statusCode int, body []byte) *APIError {
	payload := struct {
		Error string `json:"error"`
	}{}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload.Error = strings.TrimSpace(string(body))
	}
	return &APIError{StatusCode: statusCode, Message: payload.Error}
}

func (client *Client) requestTimeout(ctx context.Context) (time.Duration, error) {
	timeout := client.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, nil
}

func (client *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout, err := client.requestTimeout(ctx)
	if err != nil {
		return err
	}

	agent := fiber.AcquireAgent()
	request := agent.Request()
	request.Header.SetMethod(method)
	request.SetRequestURI(client.baseURL + path)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token := client.Token(); token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		agent.JSON(body)
	}
	agent.Timeout(timeout)

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("prepare %s %s: %w", method, path, err)
	}
	if client.dial != nil {
		agent.HostClient.Dial = client.dial
	}

	statusCode, responseBody, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		client.logger.Debug("medtrack request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if statusCode < fiber.StatusOK || statusCode >= fiber.StatusMultipleChoices {
		return newAPIError(statusCode, responseBody)
	}

	if out != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
