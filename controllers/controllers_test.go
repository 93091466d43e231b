package controllers

import (
	"bytes"
	"context"
	"easy-shop/models"
	"easy-shop/services"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memProducts struct{ products map[string]models.Product }

func (m *memProducts) Create(_ context.Context, p *models.Product) error { return nil }
func (m *memProducts) List(_ context.Context) ([]models.Product, error) {
	return nil, nil
}
func (m *memProducts) Update(_ context.Context, p *models.Product) error { return nil }
func (m *memProducts) Delete(_ context.Context, id string) error         { return nil }
func (m *memProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders map[string]models.Order
	fail   error
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.orders[o.ID]; ok {
		return models.ErrDuplicateOrder
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memOrders) ListByEmail(_ context.Context, email string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrders) ListAll(_ context.Context) ([]models.Order, error) { return nil, nil }
func (m *memOrders) Delete(_ context.Context, id string) error         { return nil }

type shopFixture struct {
	router  *gin.Engine
	session *models.Session
	orders  *memOrders
}

func newShopFixture() *shopFixture {
	gin.SetMode(gin.TestMode)

	products := &memProducts{products: map[string]models.Product{
		"a": {ID: "a", Name: "Product A", Price: decimal.NewFromInt(10)},
		"b": {ID: "b", Name: "Product B", Price: decimal.NewFromInt(5)},
	}}
	orders := &memOrders{orders: make(map[string]models.Order)}

	catalog := services.NewCatalogService(products, nil, time.Second, zap.NewNop())
	cartCtrl := NewCartController(services.NewCartService(catalog))
	orderCtrl := NewOrderController(
		services.NewCheckoutService(orders, nil, time.Second, zap.NewNop()),
		services.NewOrderService(orders, time.Second),
	)

	session := models.NewSession("s1", "x@y.com", models.RoleCustomer)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session", session)
		c.Next()
	})
	r.GET("/cart", cartCtrl.GetCart)
	r.POST("/cart/items", cartCtrl.AddItem)
	r.PATCH("/cart/items/:product_id", cartCtrl.SetQuantity)
	r.POST("/orders", orderCtrl.Checkout)
	r.GET("/orders", orderCtrl.GetHistory)

	return &shopFixture{router: r, session: session, orders: orders}
}

func (f *shopFixture) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func checkoutBody() map[string]string {
	return map[string]string{"customer_name": "Ann", "mobile": "0812", "address": "Main St 1"}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	f := newShopFixture()

	w, resp := f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "a"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product added to cart", resp["message"])

	w, resp = f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "a"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product is already in the cart", resp["message"])

	w, _ = f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "b"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = f.do(t, http.MethodPatch, "/cart/items/a", map[string]int{"quantity": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "25", resp["data"].(map[string]any)["total"])

	w, resp = f.do(t, http.MethodPost, "/orders", checkoutBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := resp["data"].(map[string]any)
	assert.Equal(t, "25", order["total_price"])
	assert.Equal(t, "x@y.com", order["email"])
	assert.Len(t, order["lines"], 2)

	_, resp = f.do(t, http.MethodGet, "/cart", nil, nil)
	assert.EqualValues(t, 0, resp["data"].(map[string]any)["count"])

	_, resp = f.do(t, http.MethodGet, "/orders", nil, nil)
	assert.Len(t, resp["data"], 1)
}

func TestSetQuantity_ClampsAndZero(t *testing.T) {
	f := newShopFixture()
	f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "a"}, nil)

	_, resp := f.do(t, http.MethodPatch, "/cart/items/a", map[string]int{"quantity": 150}, nil)
	line := resp["data"].(map[string]any)["lines"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 99, line["quantity"])

	w, resp := f.do(t, http.MethodPatch, "/cart/items/a", map[string]int{"quantity": 0}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	line = resp["data"].(map[string]any)["lines"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 1, line["quantity"])

	w, _ = f.do(t, http.MethodPatch, "/cart/items/zzz", map[string]int{"quantity": 3}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newShopFixture()

	w, resp := f.do(t, http.MethodPost, "/orders", checkoutBody(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestCheckout_StoreFailureIsRetryableAndKeepsCart(t *testing.T) {
	f := newShopFixture()
	f.orders.fail = fmt.Errorf("insert order: %w", context.DeadlineExceeded)
	f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "a"}, nil)

	w, resp := f.do(t, http.MethodPost, "/orders", checkoutBody(), nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, true, resp["retryable"])

	_, resp = f.do(t, http.MethodGet, "/cart", nil, nil)
	assert.EqualValues(t, 1, resp["data"].(map[string]any)["count"])
}

func TestCheckout_IdempotencyKeyHeader(t *testing.T) {
	f := newShopFixture()
	key := uuid.NewString()
	f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "a"}, nil)

	w, resp := f.do(t, http.MethodPost, "/orders", checkoutBody(), map[string]string{"Idempotency-Key": key})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, key, resp["data"].(map[string]any)["id"])

	w, resp = f.do(t, http.MethodPost, "/orders", checkoutBody(), map[string]string{"Idempotency-Key": key})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, key, resp["data"].(map[string]any)["id"])
	assert.Len(t, f.orders.orders, 1)
}

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
	}{
		{&models.ValidationError{Field: "name", Message: "required"}, http.StatusBadRequest},
		{models.ErrEmptyCart, http.StatusBadRequest},
		{fmt.Errorf("get product: %w", models.ErrProductNotFound), http.StatusNotFound},
		{models.ErrOrderNotFound, http.StatusNotFound},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrEmailTaken, http.StatusConflict},
		{models.ErrDuplicateOrder, http.StatusConflict},
		{models.ErrStoreTimeout, http.StatusGatewayTimeout},
		{models.ErrFeedUnavailable, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err, "failed")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
