package client

import (
	"net"
	"testing"
	"time"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/repository"
	"go-inventory-client/internal/router"
	"go-inventory-client/internal/service"
	"go-inventory-client/internal/session"
	"go-inventory-client/internal/ws"
	"go-inventory-client/pkg/jwt"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

type testServer struct {
	baseURL string
	hub     *ws.Hub
}

// startServer serves the real API over memory repositories on a loopback port.
func startServer(t *testing.T) *testServer {
	t.Helper()

	users := repository.NewMemoryUserRepo()
	admin := &model.User{Email: adminEmail, FullName: "Administrator", Role: model.RoleUser, Active: true}
	require.NoError(t, admin.SetPassword(adminPassword))
	require.NoError(t, users.Create(admin))

	hub := ws.NewHub(nil)
	go hub.Run()

	products := repository.NewMemoryProductRepo()
	app := router.New(router.Deps{
		Products:  service.NewProductService(products, hub),
		Dashboard: service.NewDashboardService(products),
		Auth:      service.NewAuthService(users, jwt.NewManager("test-secret", time.Hour)),
		Hub:       hub,
		Quiet:     true,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)

	t.Cleanup(func() {
		hub.Close()
		_ = app.Shutdown()
	})
	return &testServer{baseURL: "http://" + ln.Addr().String() + "/api", hub: hub}
}

func (s *testServer) client() *Client {
	return New(Config{BaseURL: s.baseURL, Timeout: 5 * time.Second}, session.NewProvider(session.NewMemoryStore(), nil))
}

// loggedIn returns a client holding an admin session.
func (s *testServer) loggedIn(t *testing.T) *Client {
	t.Helper()
	c := s.client()
	_, err := c.Auth.Login(adminEmail, adminPassword)
	require.NoError(t, err)
	return c
}

func newFields(name, sku string, qty int, price string, category string) *model.ProductFields {
	return &model.ProductFields{
		Name:     name,
		SKU:      sku,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}
