package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"technest/internal/config"
	"technest/internal/http/handlers"
	"technest/internal/repos"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()})

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/auth/register", deps.AuthHandler.Register)
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Get("/users/:id/balance", deps.AccountHandler.Balance)
	api.Post("/users/:id/topup", deps.AccountHandler.TopUp)
	api.Get("/users/:id/membership", deps.AccountHandler.Membership)
	api.Get("/users/:id/vouchers", deps.AccountHandler.VoucherList)
	api.Post("/users/:id/vouchers/check", deps.AccountHandler.VoucherCheck)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:productId", deps.CartHandler.UpdateQuantity)
	api.Post("/checkout", deps.CheckoutHandler.Place)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("bad envelope %q: %v", raw, err)
	}
	return resp, env
}

func TestProductsEndpoint_FilterAndSort(t *testing.T) {
	app := newTestApp(t)

	resp, env := doJSON(t, app, "GET", "/api/products?category=Audio&sort=desc", nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("want 200 success, got %d %q", resp.StatusCode, env.Error)
	}
	var prods []struct {
		Category string `json:"category"`
		Price    int    `json:"price"`
	}
	if err := json.Unmarshal(env.Data, &prods); err != nil {
		t.Fatal(err)
	}
	if len(prods) == 0 {
		t.Fatal("expected audio products")
	}
	for i, p := range prods {
		if p.Category != "Audio" {
			t.Fatalf("wrong category at %d: %+v", i, p)
		}
		if i > 0 && prods[i-1].Price < p.Price {
			t.Fatal("not sorted descending")
		}
	}

	// malformed price bound means "no bound", never an empty catalog
	_, env = doJSON(t, app, "GET", "/api/products?min_price=abc", nil)
	var all []json.RawMessage
	if err := json.Unmarshal(env.Data, &all); err != nil {
		t.Fatal(err)
	}
	if len(all) == 0 {
		t.Fatal("malformed bound must not exclude the catalog")
	}
}

func TestProductsEndpoint_SearchValidation(t *testing.T) {
	app := newTestApp(t)

	// characters outside the allow-list are rejected, never ignored
	resp, env := doJSON(t, app, "GET", "/api/products?q=C%2B%2B", nil)
	if resp.StatusCode != http.StatusBadRequest || env.Success {
		t.Fatalf("bad query: want 400, got %d %+v", resp.StatusCode, env)
	}

	// a clean query that matches nothing yields an empty list, not the catalog
	resp, env = doJSON(t, app, "GET", "/api/products?q=nonexistent+widget", nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("clean query: want 200, got %d %q", resp.StatusCode, env.Error)
	}
	var prods []json.RawMessage
	if err := json.Unmarshal(env.Data, &prods); err != nil {
		t.Fatal(err)
	}
	if len(prods) != 0 {
		t.Fatalf("unmatched search must return an empty list, got %d products", len(prods))
	}
}

func TestProductDetail_NotFound(t *testing.T) {
	app := newTestApp(t)
	resp, env := doJSON(t, app, "GET", "/api/products/99999", nil)
	if resp.StatusCode != http.StatusNotFound || env.Success {
		t.Fatalf("want 404 envelope, got %d %+v", resp.StatusCode, env)
	}
	if env.Error == "" {
		t.Fatal("error message missing")
	}
}

func TestTopUpEndpoint_Validation(t *testing.T) {
	app := newTestApp(t)

	resp, env := doJSON(t, app, "POST", "/api/users/1/topup", map[string]int{"amount": 500})
	if resp.StatusCode != http.StatusBadRequest || env.Success {
		t.Fatalf("want 400, got %d %+v", resp.StatusCode, env)
	}

	resp, env = doJSON(t, app, "POST", "/api/users/1/topup", map[string]int{"amount": 100000})
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("want 200, got %d %q", resp.StatusCode, env.Error)
	}
	var data struct {
		Balance int `json:"balance"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Balance != 25_000_000+100000 {
		t.Fatalf("want updated balance, got %d", data.Balance)
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	app := newTestApp(t)

	resp, env := doJSON(t, app, "POST", "/api/auth/register", map[string]string{
		"full_name": "Citra Lestari",
		"email":     "citra@technest.test",
		"phone":     "+628555666777",
		"password":  "Rahasia123",
	})
	if resp.StatusCode != http.StatusCreated || !env.Success {
		t.Fatalf("register: want 201, got %d %q", resp.StatusCode, env.Error)
	}

	resp, env = doJSON(t, app, "POST", "/api/auth/login", map[string]string{
		"email":    "citra@technest.test",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized || env.Success {
		t.Fatalf("bad login: want 401, got %d", resp.StatusCode)
	}

	resp, env = doJSON(t, app, "POST", "/api/auth/login", map[string]string{
		"email":    "citra@technest.test",
		"password": "Rahasia123",
	})
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("login: want 200, got %d %q", resp.StatusCode, env.Error)
	}
	var data struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.User.Email != "citra@technest.test" {
		t.Fatalf("unexpected login payload: %s", env.Data)
	}
}

func TestCartEndpoints_MergeAndInvalidQuantity(t *testing.T) {
	app := newTestApp(t)
	sid := &http.Cookie{Name: "sid", Value: "cart-api-session"}

	add := map[string]int{"product_id": 1, "quantity": 1}
	if resp, env := doJSON(t, app, "POST", "/api/cart/items", add, sid); resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("add: got %d %q", resp.StatusCode, env.Error)
	}
	_, env := doJSON(t, app, "POST", "/api/cart/items", add, sid)

	var cv struct {
		Items     []json.RawMessage `json:"items"`
		ItemCount int               `json:"item_count"`
	}
	if err := json.Unmarshal(env.Data, &cv); err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.ItemCount != 2 {
		t.Fatalf("adds should merge into one line of two units: %+v", cv)
	}

	resp, env := doJSON(t, app, "PUT", "/api/cart/items/1", map[string]int{"quantity": 0}, sid)
	if resp.StatusCode != http.StatusBadRequest || env.Success {
		t.Fatalf("quantity 0: want 400, got %d", resp.StatusCode)
	}

	// state unchanged after the failed update
	_, env = doJSON(t, app, "GET", "/api/cart", nil, sid)
	if err := json.Unmarshal(env.Data, &cv); err != nil {
		t.Fatal(err)
	}
	if cv.ItemCount != 2 {
		t.Fatalf("cart changed after failed update: %+v", cv)
	}
}

func TestCheckoutEndpoint_InsufficientStock(t *testing.T) {
	app := newTestApp(t)
	sid := &http.Cookie{Name: "sid", Value: "checkout-stock-session"}

	_, env := doJSON(t, app, "GET", "/api/products?q=MacBook", nil)
	var prods []struct {
		ID    int `json:"id"`
		Stock int `json:"stock"`
	}
	if err := json.Unmarshal(env.Data, &prods); err != nil {
		t.Fatal(err)
	}
	if len(prods) != 1 {
		t.Fatalf("want one MacBook, got %d", len(prods))
	}
	mac := prods[0]

	add := map[string]int{"product_id": mac.ID, "quantity": mac.Stock + 1}
	if resp, env := doJSON(t, app, "POST", "/api/cart/items", add, sid); resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("add: got %d %q", resp.StatusCode, env.Error)
	}

	resp, env := doJSON(t, app, "POST", "/api/checkout", map[string]any{"user_id": 1}, sid)
	if resp.StatusCode != http.StatusBadRequest || env.Success {
		t.Fatalf("want 400 envelope, got %d %+v", resp.StatusCode, env)
	}
	if !strings.Contains(env.Error, "insufficient stock") {
		t.Fatalf("error must name the stock problem, got %q", env.Error)
	}

	// the failed checkout leaves stock untouched
	_, env = doJSON(t, app, "GET", "/api/products/"+strconv.Itoa(mac.ID), nil)
	var p struct {
		Stock int `json:"stock"`
	}
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Stock != mac.Stock {
		t.Fatalf("stock changed on failed checkout: %d -> %d", mac.Stock, p.Stock)
	}
}

func TestVoucherCheckEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, env := doJSON(t, app, "POST", "/api/users/1/vouchers/check",
		map[string]any{"code": "TECH20", "subtotal": 1_000_000})
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("got %d %q", resp.StatusCode, env.Error)
	}
	var pv struct {
		Eligible bool `json:"eligible"`
		Discount struct {
			Amount int `json:"amount"`
		} `json:"discount"`
	}
	if err := json.Unmarshal(env.Data, &pv); err != nil {
		t.Fatal(err)
	}
	if !pv.Eligible || pv.Discount.Amount != 100_000 {
		t.Fatalf("TECH20 on 1,000,000 should preview a capped 100,000: %+v", pv)
	}

	// below the minimum purchase the preview reports ineligible
	_, env = doJSON(t, app, "POST", "/api/users/1/vouchers/check",
		map[string]any{"code": "TECH20", "subtotal": 400_000})
	if err := json.Unmarshal(env.Data, &pv); err != nil {
		t.Fatal(err)
	}
	if pv.Eligible {
		t.Fatal("subtotal under the minimum must not be eligible")
	}

	resp, _ = doJSON(t, app, "POST", "/api/users/1/vouchers/check",
		map[string]any{"code": "NOPE", "subtotal": 1_000_000})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown code: want 404, got %d", resp.StatusCode)
	}
}

func TestVoucherListEndpoint(t *testing.T) {
	app := newTestApp(t)
	resp, env := doJSON(t, app, "GET", "/api/users/1/vouchers", nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("got %d %q", resp.StatusCode, env.Error)
	}
	var vs []struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(env.Data, &vs); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, v := range vs {
		if v.Code == "TECH20" {
			found = true
		}
	}
	if !found {
		t.Fatalf("seeded TECH20 voucher missing: %+v", vs)
	}
}
