// Package client is the data-access layer of the inventory client: a thin HTTP
// wrapper around the REST API plus the auth and product services built on it.
//
// Every call is a single attempt with no retry. Requests have no deadline
// unless Config.Timeout is set.
package client

import (
	"net/url"
	"strings"
	"time"

	"go-inventory-client/internal/session"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api.
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Envelope is the wrapper around every API payload.
type Envelope[T any] struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp"`
}

type Client struct {
	baseURL string
	timeout time.Duration
	session *session.Provider
	http    *fiber.Client
	log     *zap.Logger

	Auth     *AuthService
	Products *ProductService
}

func New(cfg Config, sp *session.Provider) *Client {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		session: sp,
		http: &fiber.Client{
			UserAgent:   "inventory-client",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
		log: log,
	}
	c.Auth = &AuthService{client: c}
	c.Products = &ProductService{client: c}
	return c
}

// Session returns the session handle the client authenticates with.
func (c *Client) Session() *session.Provider {
	return c.session
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		payload = raw
	}

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	var a *fiber.Agent
	switch method {
	case fiber.MethodGet:
		a = c.http.Get(uri)
	case fiber.MethodPost:
		a = c.http.Post(uri)
	case fiber.MethodPut:
		a = c.http.Put(uri)
	case fiber.MethodDelete:
		a = c.http.Delete(uri)
	default:
		return errors.Errorf("unsupported method %s", method)
	}

	// Send escaped segments such as %2F as written.
	a.Request().URI().DisablePathNormalizing = true
	a.ContentType(fiber.MIMEApplicationJSON)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token := c.session.Token(); token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if payload != nil {
		a.Body(payload)
	}
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}

	status, resp, errs := a.Bytes()
	if len(errs) > 0 {
		c.log.Debug("api call failed", zap.String("method", method), zap.String("path", path), zap.Errors("errors", errs))
		return connectivity(errs[0])
	}
	c.log.Debug("api call", zap.String("method", method), zap.String("path", path), zap.Int("status", status))

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return statusError(status, resp)
	}
	if out == nil || len(resp) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return connectivity(errors.Wrap(err, "decode response"))
	}
	return nil
}

// call sends one request and unwraps the data field of the envelope.
func call[T any](c *Client, method, path string, query url.Values, body interface{}) (T, error) {
	var env Envelope[T]
	err := c.do(method, path, query, body, &env)
	return env.Data, err
}
