package router

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/voluntree-lab/backend/config"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/pkg/authenticator"
	"github.com/voluntree-lab/backend/pkg/logger"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc can replace the request context by returning a non-nil one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type CloserFunc func(ctx context.Context)

type WebsocketHandlerFunc func(ctx context.Context) error

type Router struct {
	mux *http.ServeMux

	db           *gorm.DB
	cfg          config.Configs
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine[model.AccessToken]
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		db:           db,
		cfg:          cfg,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch shares the underlying mux but gets its own middleware chains, so
// route groups can require different authentication.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

// Websocket registers a GET endpoint whose handler upgrades the connection
// itself via xcontext.HTTPWriter and xcontext.HTTPRequest.
func Websocket(r *Router, pattern string, handler WebsocketHandlerFunc) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	closers := append([]CloserFunc{}, r.closers...)

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(req, w)
		defer runClosers(ctx, closers)

		ctx, ok := runMiddlewares(ctx, befores)
		if !ok {
			writeError(ctx)
			return
		}

		if err := handler(ctx); err != nil {
			setError(ctx, err)
			writeError(ctx)
		}
	})
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(req, w)
		defer runClosers(ctx, closers)

		if req.Method != method {
			http.NotFound(w, req)
			return
		}

		ctx, ok := runMiddlewares(ctx, befores)
		if !ok {
			writeError(ctx)
			return
		}

		var request Request
		var err error
		switch method {
		case http.MethodGet:
			err = decodeQuery(req.URL.Query(), &request)
		default:
			err = decodeBody(req, &request)
		}
		if err != nil {
			setError(ctx, err)
			writeError(ctx)
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			setError(ctx, err)
		} else if resp != nil {
			setResponse(ctx, resp)
		}

		if ctx, ok = runMiddlewares(ctx, afters); !ok {
			writeError(ctx)
			return
		}

		writeResult(ctx)
	})
}

func (r *Router) newContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return withRequestState(ctx)
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, bool) {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if err != nil {
			setError(ctx, err)
			return ctx, false
		}
		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, true
}

func runClosers(ctx context.Context, closers []CloserFunc) {
	for _, c := range closers {
		c(ctx)
	}
}
