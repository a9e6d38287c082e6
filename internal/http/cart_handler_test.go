package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelab/storefront/internal/session"
)

func cartRouter(sessions *session.Store) http.Handler {
	h := NewCartHandler(sessions)

	r := chi.NewRouter()
	r.Use(SessionMiddleware)
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{product_id}", h.UpdateQuantity)
		r.Delete("/items/{product_id}", h.RemoveItem)
	})
	return r
}

func doCart(t *testing.T, router http.Handler, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: testSessionID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_EmptyCart(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()

	rec := doCart(t, cartRouter(sessions), http.MethodGet, "/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["itemCount"])
	assert.Equal(t, float64(0), data["subtotal"])
	assert.Empty(t, data["items"])
}

func TestCartHandler_AddSameItemTwice(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()
	router := cartRouter(sessions)

	payload := `{"id":"p1","title":"Shoe","price":10.00,"image":"img"}`
	rec := doCart(t, router, http.MethodPost, "/cart/items", payload)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doCart(t, router, http.MethodPost, "/cart/items", payload)
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(2), item["quantity"])
	assert.Equal(t, float64(2), data["itemCount"])
	assert.Equal(t, 20.00, data["subtotal"])
}

func TestCartHandler_AddItem_RequiresProductID(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()

	rec := doCart(t, cartRouter(sessions), http.MethodPost, "/cart/items", `{"title":"Shoe","price":10.00}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_AddItem_RejectsNegativePrice(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()

	rec := doCart(t, cartRouter(sessions), http.MethodPost, "/cart/items", `{"id":"p1","price":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()
	router := cartRouter(sessions)

	doCart(t, router, http.MethodPost, "/cart/items", `{"id":"p1","title":"Shoe","price":5.00}`)

	rec := doCart(t, router, http.MethodPut, "/cart/items/p1", `{"quantity":4}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(4), data["itemCount"])
	assert.Equal(t, 20.00, data["subtotal"])
}

func TestCartHandler_UpdateQuantityToZero_RemovesItem(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()
	router := cartRouter(sessions)

	doCart(t, router, http.MethodPost, "/cart/items", `{"id":"p1","title":"Shoe","price":5.00}`)

	rec := doCart(t, router, http.MethodPut, "/cart/items/p1", `{"quantity":0}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Empty(t, data["items"])
}

func TestCartHandler_RemoveItem(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()
	router := cartRouter(sessions)

	doCart(t, router, http.MethodPost, "/cart/items", `{"id":"p1","price":5.00}`)
	doCart(t, router, http.MethodPost, "/cart/items", `{"id":"p2","price":7.00}`)

	rec := doCart(t, router, http.MethodDelete, "/cart/items/p1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].(map[string]any)["id"])
}

func TestCartHandler_Clear(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()
	router := cartRouter(sessions)

	doCart(t, router, http.MethodPost, "/cart/items", `{"id":"p1","price":5.00}`)

	rec := doCart(t, router, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Empty(t, data["items"])
	assert.Equal(t, float64(0), data["subtotal"])
}

func TestSessionMiddleware_AssignsCookie(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	cartRouter(sessions).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestSessionMiddleware_SessionsAreIsolated(t *testing.T) {
	sessions := session.NewStore()
	defer sessions.Close()
	router := cartRouter(sessions)

	doCart(t, router, http.MethodPost, "/cart/items", `{"id":"p1","price":5.00}`)

	// A request with a different session cookie sees an empty cart.
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "someone-else"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Empty(t, data["items"])
}
