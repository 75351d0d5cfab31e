package router

import (
	"go-inventory-client/internal/handler"
	"go-inventory-client/internal/middleware"
	"go-inventory-client/internal/service"
	"go-inventory-client/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
)

// Deps are the services the HTTP surface is wired to.
type Deps struct {
	Products  service.ProductService
	Dashboard service.DashboardService
	Auth      service.AuthService
	Hub       *ws.Hub

	// Quiet disables per-request access logging.
	Quiet bool
}

// New builds the fiber application serving the /api routes.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Inventory API v1.0",
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
	})

	if !d.Quiet {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New())

	productHandler := handler.NewProductHandler(d.Products)
	dashHandler := handler.NewDashboardHandler(d.Dashboard)
	authHandler := handler.NewAuthHandler(d.Auth)

	api := app.Group("/api")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Protected. Static product paths go before /:id.
	products := api.Group("/products", middleware.RequireAuth(d.Auth))
	products.Get("/", productHandler.GetProducts)
	products.Get("/search", productHandler.SearchProducts)
	products.Get("/low-stock", productHandler.GetLowStockProducts)
	products.Get("/category/:category", productHandler.GetProductsByCategory)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", productHandler.CreateProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	// Dashboard
	api.Get("/dashboard/stats", middleware.RequireAuth(d.Auth), dashHandler.GetDashboardStats)

	// Stock update stream
	if d.Hub != nil {
		hub := d.Hub
		api.Use("/ws", middleware.RequireAuth(d.Auth), func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		api.Get("/ws", websocket.New(func(c *websocket.Conn) {
			hub.Add(c)
			defer hub.Remove(c)

			// Unblock the read loop on shutdown. The watcher exits before the
			// handler returns, as the conn is recycled after that.
			stop := make(chan struct{})
			watcher := make(chan struct{})
			go func() {
				defer close(watcher)
				select {
				case <-hub.Done():
					c.Close()
				case <-stop:
				}
			}()
			defer func() {
				close(stop)
				<-watcher
			}()

			for {
				// Keep alive loop
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}

	return app
}
