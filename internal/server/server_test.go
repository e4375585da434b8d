package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/config"
	"github.com/shashiranjanraj/infocart/internal/server"
	"github.com/shashiranjanraj/infocart/pkg/auth"
	"github.com/shashiranjanraj/infocart/pkg/payment"
	"github.com/shashiranjanraj/infocart/pkg/storage"
)

type stubGateway struct {
	order *payment.Order
	err   error
}

func (g *stubGateway) CreateOrder(context.Context, payment.OrderRequest) (*payment.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

type testApp struct {
	handler http.Handler
	store   *repositories.Store
	gateway *stubGateway
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		AppPort:       "0",
		CORSOrigin:    "*",
		StorageDisk:   "local",
		UploadRoot:    t.TempDir(),
		UploadURL:     "/uploads",
		MaxUploadSize: 5 << 20,
	}
	store := repositories.NewMemoryStore()
	disk := storage.NewLocalDisk(cfg.UploadRoot, cfg.UploadURL)
	gw := &stubGateway{order: &payment.Order{ID: "order_stub", Status: "created"}}
	tokens := auth.NewTokenManager("test-secret")

	r := server.NewRouter(cfg, store, disk, gw, tokens)
	return &testApp{handler: r.Handler(), store: store, gateway: gw}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func (a *testApp) register(t *testing.T, username, password string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
}

func (a *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	token, _ := decodeJSON(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// seedMaster provisions a master account directly, the way the CLI does.
func (a *testApp) seedMaster(t *testing.T, username, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, a.store.Users.Create(context.Background(), &models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleMaster,
	}))
}

func (a *testApp) createProduct(t *testing.T, token, name, price string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("price", price))
	require.NoError(t, mw.WriteField("description", name+" description"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	return decodeJSON(t, rec)
}

func TestUploadedImageServedBack(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	token := app.login(t, "master", "master-secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "mug"))
	require.NoError(t, mw.WriteField("price", "9.99"))
	require.NoError(t, mw.WriteField("description", "a mug"))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	image, _ := decodeJSON(t, rec)["image"].(string)
	require.True(t, strings.HasPrefix(image, "/uploads/"), "image path: %s", image)
	assert.True(t, strings.HasSuffix(image, ".png"))

	// The stored path is fetchable straight through the router.
	rec = app.do(t, http.MethodGet, image, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png bytes", rec.Body.String())
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeJSON(t, rec)["status"])
}

func TestRegisterLoginProfile(t *testing.T) {
	app := newTestApp(t)

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	rec := app.do(t, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "user", body["role"])
}

func TestRegisterDuplicate(t *testing.T) {
	app := newTestApp(t)

	app.register(t, "alice", "password1")
	rec := app.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", decodeJSON(t, rec)["message"])
}

func TestLoginBadPassword(t *testing.T) {
	app := newTestApp(t)

	app.register(t, "alice", "password1")
	rec := app.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeJSON(t, rec)["message"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", decodeJSON(t, rec)["message"])

	rec = app.do(t, http.MethodGet, "/api/cart", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeJSON(t, rec)["message"])
}

func TestProductWriteIsMasterOnly(t *testing.T) {
	app := newTestApp(t)

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "mug"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Master only.", decodeJSON(t, rec)["message"])
}

func TestCatalogLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	token := app.login(t, "master", "master-secret")

	created := app.createProduct(t, token, "mug", "9.99")
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, 9.99, created["price"])

	// Listing is public.
	rec := app.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "mug", listed[0]["name"])

	rec = app.do(t, http.MethodDelete, "/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", decodeJSON(t, rec)["message"])

	rec = app.do(t, http.MethodDelete, "/api/products/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeJSON(t, rec)["message"])
}

func TestProductMissingFields(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	token := app.login(t, "master", "master-secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "mug"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", decodeJSON(t, rec)["message"])
}

func TestCartAddTwiceIncrements(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	masterToken := app.login(t, "master", "master-secret")
	product := app.createProduct(t, masterToken, "mug", "9.99")
	productID := product["_id"].(string)

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	for i := 0; i < 2; i++ {
		rec := app.do(t, http.MethodPost, "/api/cart", token, map[string]any{
			"productId": productID,
			"quantity":  1,
		})
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	}

	rec := app.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	items, _ := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(2), item["quantity"])
	require.NotNil(t, item["productId"])
	assert.Equal(t, "mug", item["productId"].(map[string]any)["name"])
}

func TestCartAcceptsZeroQuantity(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	masterToken := app.login(t, "master", "master-secret")
	product := app.createProduct(t, masterToken, "mug", "9.99")
	productID := product["_id"].(string)

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	rec := app.do(t, http.MethodPost, "/api/cart", token, map[string]any{
		"productId": productID,
		"quantity":  0,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, _ := decodeJSON(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(0), items[0].(map[string]any)["quantity"])
}

func TestOrderAcceptsZeroAmounts(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	masterToken := app.login(t, "master", "master-secret")
	product := app.createProduct(t, masterToken, "freebie", "0")
	productID := product["_id"].(string)

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	rec := app.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{
			{"productId": productID, "quantity": 0, "price": 0},
		},
		"totalAmount": 0,
		"orderId":     "order_free",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "completed", decodeJSON(t, rec)["status"])
}

func TestCartRemoveWithoutCart(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	rec := app.do(t, http.MethodDelete, "/api/cart/remove", token, map[string]any{
		"productId": "64b1f0c2a1b2c3d4e5f60718",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart not found", decodeJSON(t, rec)["message"])
}

func TestCheckoutFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedMaster(t, "master", "master-secret")
	masterToken := app.login(t, "master", "master-secret")
	product := app.createProduct(t, masterToken, "mug", "9.99")
	productID := product["_id"].(string)

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	rec := app.do(t, http.MethodPost, "/api/cart", token, map[string]any{
		"productId": productID,
		"quantity":  3,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/create-order", token, map[string]any{
		"amount":   29.97,
		"currency": "INR",
		"receipt":  "rcpt_1",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "order_stub", decodeJSON(t, rec)["id"])

	rec = app.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{
			{"productId": productID, "quantity": 3, "price": 9.99},
		},
		"totalAmount": 29.97,
		"paymentId":   "pay_123",
		"orderId":     "order_stub",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "completed", decodeJSON(t, rec)["status"])

	// The cart is emptied by the checkout.
	rec = app.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, _ := decodeJSON(t, rec)["items"].([]any)
	assert.Empty(t, items)

	rec = app.do(t, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, 29.97, orders[0]["totalAmount"])
}

func TestCreateGatewayOrderFailure(t *testing.T) {
	app := newTestApp(t)
	app.gateway.err = fmt.Errorf("gateway down")

	app.register(t, "alice", "password1")
	token := app.login(t, "alice", "password1")

	rec := app.do(t, http.MethodPost, "/api/create-order", token, map[string]any{
		"amount":   10,
		"currency": "INR",
		"receipt":  "rcpt_1",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error creating order", decodeJSON(t, rec)["message"])
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "Authorization"))
}
