package router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a new context which replaces the current one for
// the rest of the request. Returning a nil context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc is always called at the end of request, even if the request
// failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx   context.Context
	inner *gin.Engine

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers receive a context derived from ctx. The
// ctx should carry the configs, logger and database.
func New(ctx context.Context) *Router {
	if xcontext.Configs(ctx).Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	return &Router{ctx: ctx, inner: engine}
}

// Branch creates a router sharing the same engine. Middlewares added to the
// branch do not affect its parent.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		inner:   r.inner,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle registers a plain http.Handler, bypassing middlewares.
func (r *Router) Handle(method, pattern string, handler http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	allowedOrigins := xcontext.Configs(r.ctx).ApiServer.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
	}).Handler(r.inner)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores, afters, closers := r.befores, r.afters, r.closers

	return func(c *gin.Context) {
		ctx := xcontext.WithHTTPRequest(r.ctx, c.Request)
		ctx = xcontext.WithHTTPWriter(ctx, c.Writer)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		ctx = runMiddlewares(ctx, befores)
		if xcontext.Error(ctx) != nil {
			writeResponse(ctx, c)
			return
		}

		var req Request
		if err := bind(c, method, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
			writeResponse(ctx, c)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeResponse(ctx, c)
			return
		}

		ctx = xcontext.WithResponse(ctx, resp)
		ctx = runMiddlewares(ctx, afters)
		writeResponse(ctx, c)
	}
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) context.Context {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx
}

func bind(c *gin.Context, method string, req any) error {
	switch method {
	case http.MethodGet:
		return c.ShouldBindQuery(req)
	case http.MethodPost:
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			return nil
		}

		if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		return nil
	default:
		return errors.New("unsupported method")
	}
}
