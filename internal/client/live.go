package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"go-inventory-client/internal/model"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Event is one stock update pushed by the server after a product mutation.
type Event struct {
	Type    string         `json:"type"`
	Action  string         `json:"action"`
	Product *model.Product `json:"product,omitempty"`
	User    string         `json:"user,omitempty"`
	Message string         `json:"message"`
}

// Watch streams stock updates to onEvent until ctx is done (returns nil) or the
// connection fails.
func (c *Client) Watch(ctx context.Context, onEvent func(Event)) error {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return errors.Wrap(err, "parse watch url")
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}

	header := http.Header{}
	if token := c.session.Token(); token != "" {
		header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, resp, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			var body []byte
			if resp.Body != nil {
				body, _ = io.ReadAll(resp.Body)
			}
			return statusError(resp.StatusCode, body)
		}
		return connectivity(err)
	}
	defer conn.Close()
	c.log.Debug("watching stock updates", zap.String("url", u.String()))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return connectivity(err)
		}
		onEvent(ev)
	}
}
