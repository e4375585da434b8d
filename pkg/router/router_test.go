package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/infocart/pkg/router"
)

func handlerEcho(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}
}

func tagMiddleware(tag string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Tags", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupPrefixComposition(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	v1 := api.Group("v1")
	v1.Get("/things", "things.index", handlerEcho("things"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/things", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "things", rec.Body.String())
}

func TestGroupMiddlewareOrder(t *testing.T) {
	r := router.New()
	g := r.Group("/api", tagMiddleware("group"))
	g.Get("/x", "x", handlerEcho("ok"), tagMiddleware("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	// Group middleware wraps outside the per-route middleware.
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Tags"))
}

func TestRoutesTableSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.create", handlerEcho(""))
	r.Get("/a", "a.index", handlerEcho(""))
	r.Get("/b", "b.index", handlerEcho(""))

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/a", Name: "a.index"}, infos[0])
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/b", Name: "b.index"}, infos[1])
	assert.Equal(t, router.RouteInfo{Method: http.MethodPost, Path: "/b", Name: "b.create"}, infos[2])
}

func TestUnnamedRoutesStayOffTheTable(t *testing.T) {
	r := router.New()
	r.Get("/hidden", "", handlerEcho("hidden"))

	assert.Empty(t, r.Routes())

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hidden", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotMatched(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "g", handlerEcho("ok"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
