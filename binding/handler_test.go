package binding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/relaypage/ctxutil"
	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/memory"
	"github.com/ncobase/relaypage/ecode"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const products = `[
	{"_id": 1, "type": "fruit", "price": 3},
	{"_id": 2, "type": "dairy", "price": 1},
	{"_id": 3, "type": "fruit", "price": 2},
	{"_id": 4, "type": "dairy", "price": 3},
	{"_id": 5, "type": "fruit", "price": 1},
	{"_id": 6, "type": "dairy", "price": 2},
	{"_id": 7, "type": "fruit", "price": 3},
	{"_id": 8, "type": "dairy", "price": 1},
	{"_id": 9, "type": "fruit", "price": 2},
	{"_id": 10, "type": "dairy", "price": 3}
]`

type page struct {
	Edges []struct {
		Node   map[string]any `json:"node"`
		Cursor string         `json:"cursor"`
	} `json:"edges"`
	PageInfo   paging.PageInfo `json:"pageInfo"`
	TotalCount int64           `json:"totalCount"`
}

func (p page) ids() []int {
	out := make([]int, len(p.Edges))
	for i, e := range p.Edges {
		out[i] = int(e.Node["_id"].(float64))
	}
	return out
}

type failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newTestRouter(t *testing.T, opts ...Option) *gin.Engine {
	t.Helper()
	source := memory.NewSource(fstest.MapFS{"products.json": {Data: []byte(products)}})
	d, cleanup, err := data.New(context.Background(), &config.Config{Driver: "memory"}, data.WithSource(source))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewRouter(NewHandler(d, opts...), d.Health)
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) page {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func decodeFailure(t *testing.T, w *httptest.ResponseRecorder) failure {
	t.Helper()
	var f failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
	return f
}

func TestHandlerWalksForwardAndBack(t *testing.T) {
	r := newTestRouter(t)

	p := decodePage(t, get(t, r, "/collections/products?first=3&sort=price&direction=desc"))
	assert.Equal(t, []int{10, 7, 4}, p.ids())
	assert.True(t, p.PageInfo.HasNextPage)
	assert.False(t, p.PageInfo.HasPreviousPage)
	assert.Equal(t, int64(10), p.TotalCount)

	p = decodePage(t, get(t, r, "/collections/products?first=3&sort=price&direction=desc&after="+url.QueryEscape(p.PageInfo.EndCursor)))
	assert.Equal(t, []int{1, 9, 6}, p.ids())
	assert.True(t, p.PageInfo.HasNextPage)
	assert.True(t, p.PageInfo.HasPreviousPage)

	p = decodePage(t, get(t, r, "/collections/products?last=2&sort=price&direction=desc&before="+url.QueryEscape(p.PageInfo.StartCursor)))
	assert.Equal(t, []int{7, 4}, p.ids())
	assert.True(t, p.PageInfo.HasPreviousPage)
	assert.True(t, p.PageInfo.HasNextPage)
}

func TestHandlerWhere(t *testing.T) {
	r := newTestRouter(t)

	p := decodePage(t, get(t, r, "/collections/products?where=type:fruit&where=price:gte:2"))
	assert.Equal(t, []int{1, 3, 7, 9}, p.ids())
	assert.Equal(t, int64(4), p.TotalCount)
	assert.False(t, p.PageInfo.HasNextPage)
}

func TestHandlerLimits(t *testing.T) {
	r := newTestRouter(t, WithLimits(paging.Limits{DefaultPageSize: 4, MaxPageSize: 5}))

	p := decodePage(t, get(t, r, "/collections/products"))
	assert.Equal(t, []int{1, 2, 3, 4}, p.ids())

	p = decodePage(t, get(t, r, "/collections/products?first=100"))
	assert.Len(t, p.Edges, 5)
	assert.True(t, p.PageInfo.HasNextPage)
}

func TestHandlerClientErrors(t *testing.T) {
	r := newTestRouter(t)
	priceCursor := decodePage(t, get(t, r, "/collections/products?first=1&sort=price")).PageInfo.EndCursor

	tests := []struct {
		name   string
		target string
		status int
		code   int
	}{
		{"negative first", "/collections/products?first=-1", http.StatusBadRequest, ecode.ParamErr},
		{"mixed windows", "/collections/products?first=2&last=2", http.StatusBadRequest, ecode.ParamErr},
		{"bad size", "/collections/products?first=ten", http.StatusBadRequest, ecode.ParamErr},
		{"bad direction", "/collections/products?direction=sideways", http.StatusBadRequest, ecode.ParamErr},
		{"bad where", "/collections/products?where=fruit", http.StatusBadRequest, ecode.ParamErr},
		{"malformed cursor", "/collections/products?first=2&after=%21%21", http.StatusBadRequest, ecode.CursorErr},
		{"cursor for another sort", "/collections/products?first=2&sort=type&after=" + url.QueryEscape(priceCursor), http.StatusBadRequest, ecode.CursorErr},
		{"unknown collection", "/collections/orders", http.StatusNotFound, ecode.NotFound},
		{"invalid collection", "/collections/9lives", http.StatusBadRequest, ecode.ParamErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, tt.target)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decodeFailure(t, w).Code)
		})
	}
}

type brokenStore struct{}

func (brokenStore) Find(context.Context, query.Find) ([]data.Document, error) {
	return nil, errors.New("dial tcp 10.0.0.7:5432: connection refused")
}

func (brokenStore) Count(context.Context, query.Expr) (int64, error) { return 0, nil }

type collectionsFunc func(ctx context.Context, name string) (data.Collection, error)

func (f collectionsFunc) Collection(ctx context.Context, name string) (data.Collection, error) {
	return f(ctx, name)
}

func TestHandlerStoreErrors(t *testing.T) {
	broken := collectionsFunc(func(context.Context, string) (data.Collection, error) { return brokenStore{}, nil })
	r := NewRouter(NewHandler(broken), nil)

	w := get(t, r, "/collections/products?first=1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	f := decodeFailure(t, w)
	assert.Equal(t, ecode.ServerErr, f.Code)
	assert.NotContains(t, f.Message, "10.0.0.7")

	open := collectionsFunc(func(context.Context, string) (data.Collection, error) { return nil, data.ErrUnavailable })
	w = get(t, NewRouter(NewHandler(open), nil), "/collections/products")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTraceHeader(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/collections/products?first=1", nil)
	req.Header.Set(ctxutil.TraceHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get(ctxutil.TraceHeader))

	w = get(t, r, "/collections/products?first=1")
	assert.NotEmpty(t, w.Header().Get(ctxutil.TraceHeader))
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	down := func(context.Context) map[string]any { return map[string]any{"status": "degraded"} }
	w = get(t, NewRouter(NewHandler(nil), down), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
