package xcontext

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/voluntree-lab/backend/config"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/pkg/authenticator"
	"github.com/voluntree-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	txKey            struct{}
	tokenEngineKey   struct{}
	sessionStoreKey  struct{}
	requestUserIDKey struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. Inside a transaction scope it
// returns the transaction instead, so repositories never need to know
// whether they run transactionally.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !tx.done {
		return tx.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction on the context database. The usual
// shape is:
//
//	ctx = xcontext.WithDBTransaction(ctx)
//	defer xcontext.WithRollbackDBTransaction(ctx)
//	...
//	xcontext.WithCommitDBTransaction(ctx)
func WithDBTransaction(ctx context.Context) context.Context {
	db := ctx.Value(dbKey{}).(*gorm.DB)
	return context.WithValue(ctx, txKey{}, &dbTransaction{tx: db.Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !tx.done {
		tx.tx.Commit()
		tx.done = true
	}

	return ctx
}

// WithRollbackDBTransaction is a no-op after a commit, so it is safe to
// defer unconditionally.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !tx.done {
		tx.tx.Rollback()
		tx.done = true
	}

	return ctx
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(httpRequestKey{}).(*http.Request); ok {
		return r
	}

	return nil
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	if w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter); ok {
		return w
	}

	return nil
}
