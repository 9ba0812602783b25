package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splatbuilds/backend/config"
	"github.com/splatbuilds/backend/pkg/logger"
	"github.com/splatbuilds/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx xcontext.Context, req *Request) (*Response, error)
type MiddlewareFunc func(ctx xcontext.Context) error

type Router struct {
	Inner gin.IRouter

	engine *gin.Engine
	cfg    config.Configs
	logger logger.Logger
	db     *gorm.DB
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	engine := gin.New()
	return &Router{
		Inner:  engine,
		engine: engine,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Use(middleware MiddlewareFunc) {
	r.Inner.Use(wrapMiddleware(r, middleware))
}

// Branch returns a sub router sharing the engine and the middlewares
// registered so far, but whose own middlewares apply only to routes
// registered through it.
func (r *Router) Branch() *Router {
	return &Router{
		Inner:  r.engine.Group(""),
		engine: r.engine,
		cfg:    r.cfg,
		logger: r.logger,
		db:     r.db,
	}
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
