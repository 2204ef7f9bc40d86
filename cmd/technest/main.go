package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"technest/internal/config"
	"technest/internal/http/handlers"
	applog "technest/internal/log"
	"technest/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log detail, return a generic envelope; internals never leak.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "something went wrong, please try again",
			})
		},
	})
	// Global body size guard; the upload route parses its own 5 MiB cap.
	app.Server().MaxRequestBodySize = 6 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// The Next.js storefront runs on another origin.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Static assets (uploaded media) ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /assets -> %s", mediaDir)
	app.Static("/assets", mediaDir)

	// ---------- API ----------
	deps := handlers.NewDeps(db, cfg)
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"status": "ok"}})
	})

	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "error": "too many attempts, please try again later",
			})
		},
	})
	api.Post("/auth/register", authLimiter, deps.AuthHandler.Register)
	api.Post("/auth/login", authLimiter, deps.AuthHandler.Login)

	// Account
	api.Get("/users/:id/balance", deps.AccountHandler.Balance)
	api.Post("/users/:id/topup", deps.AccountHandler.TopUp)
	api.Put("/users/:id/profile", deps.AccountHandler.UpdateProfile)
	api.Get("/users/:id/membership", deps.AccountHandler.Membership)
	api.Get("/users/:id/orders", deps.AccountHandler.OrderHistory)
	api.Get("/users/:id/vouchers", deps.AccountHandler.VoucherList)
	api.Post("/users/:id/vouchers/check", deps.AccountHandler.VoucherCheck)

	// Catalog
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/search", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Post("/products", deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)

	// Cart & checkout
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:productId", deps.CartHandler.UpdateQuantity)
	api.Delete("/cart/items/:productId", deps.CartHandler.Remove)
	api.Post("/checkout", deps.CheckoutHandler.Place)

	// Upload
	api.Post("/upload", deps.UploadHandler.Image)

	// 404 envelope for everything else
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
