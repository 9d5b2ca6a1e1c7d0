package binding

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/relaypage/ctxutil"
	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/logging/observes"
	"github.com/ncobase/relaypage/net/resp"
	"github.com/ncobase/relaypage/paging"
)

// Collections hands out collections by name. *data.Data implements it.
type Collections interface {
	Collection(ctx context.Context, name string) (data.Collection, error)
}

// Handler serves paginated collections.
type Handler struct {
	collections   Collections
	limits        paging.Limits
	tieBreakField string
}

// Option configures a Handler
type Option func(*Handler)

// WithLimits bounds the page sizes the handler serves.
func WithLimits(limits paging.Limits) Option {
	return func(h *Handler) {
		h.limits = limits
	}
}

// WithTieBreakField sets the default tie-break field. Requests may
// override it with the tie_break parameter.
func WithTieBreakField(field string) Option {
	return func(h *Handler) {
		if field != "" {
			h.tieBreakField = field
		}
	}
}

// NewHandler creates a handler over collections.
func NewHandler(collections Collections, opts ...Option) *Handler {
	h := &Handler{collections: collections, tieBreakField: paging.DefaultTieBreakField}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the handler: GET /collections/:name.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/collections/:name", h.Page)
}

// pageQuery holds the query parameters besides the page arguments.
type pageQuery struct {
	Sort      string   `form:"sort"`
	Direction string   `form:"direction" binding:"omitempty,oneof=asc desc ascending descending 1 -1"`
	Where     []string `form:"where"`
	TieBreak  string   `form:"tie_break"`
}

// pageArgKeys are the query parameters read by ParseArgs.
var pageArgKeys = []string{"first", "after", "last", "before"}

// Page serves one page of a collection.
//
//	GET /collections/products?first=10&after=...&sort=price&direction=desc&where=type:in:fruit,dairy
func (h *Handler) Page(c *gin.Context) {
	ctx := ctxutil.FromGinContext(c)
	name := c.Param("name")

	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.Fail(c.Writer, resp.InvalidParams(err.Error()))
		return
	}

	raw := make(map[string]any, len(pageArgKeys))
	for _, key := range pageArgKeys {
		if v, ok := c.GetQuery(key); ok {
			raw[key] = v
		}
	}
	args, err := ParseArgs(raw)
	if err != nil {
		h.fail(ctx, c, name, err)
		return
	}

	filter, err := ParseWhere(q.Where)
	if err != nil {
		h.fail(ctx, c, name, err)
		return
	}

	coll, err := h.collections.Collection(ctx, name)
	if err != nil {
		h.fail(ctx, c, name, err)
		return
	}

	tie := h.tieBreakField
	if q.TieBreak != "" {
		tie = q.TieBreak
	}
	conn, err := paging.Resolve(ctx, args, coll, filter, &paging.Options[data.Document, data.Document]{
		CursorField:   q.Sort,
		Direction:     paging.ParseDirection(q.Direction),
		TieBreakField: tie,
		Limits:        h.limits,
	})
	if err != nil {
		h.fail(ctx, c, name, err)
		return
	}

	resp.Success(c.Writer, conn)
}

func (h *Handler) fail(ctx context.Context, c *gin.Context, name string, err error) {
	e := resp.FromError(err)
	if e.Status >= http.StatusInternalServerError {
		logger.Errorf(ctx, "binding: page %s: %v", name, err)
		observes.CaptureError(err, map[string]any{
			"collection": name,
			"query":      c.Request.URL.RawQuery,
			"trace_id":   ctxutil.GetTraceID(ctx),
		})
	}
	resp.Fail(c.Writer, e)
}
