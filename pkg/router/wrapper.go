package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splatbuilds/backend/pkg/errorx"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

// xcontextKey stores the request-scoped xcontext.Context in the gin context,
// so middlewares and the handler observe the same values.
const xcontextKey = "xcontext"

func requestContext(router *Router, gctx *gin.Context) xcontext.Context {
	if value, ok := gctx.Get(xcontextKey); ok {
		return value.(xcontext.Context)
	}

	ctx := xcontext.NewContext(
		gctx.Request.Context(), gctx.Request, gctx.Writer,
		router.cfg, router.logger, router.db,
	)
	gctx.Set(xcontextKey, ctx)
	return ctx
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		default:
			err = gctx.ShouldBindJSON(&req)
		}
		if err != nil {
			gctx.JSON(http.StatusOK, newErrorResponse(
				errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		ctx := requestContext(router, gctx)
		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.SetError(ctx, err)
			gctx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		xcontext.SetResponse(ctx, resp)
		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}

func wrapMiddleware(router *Router, middleware MiddlewareFunc) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := requestContext(router, gctx)
		if err := middleware(ctx); err != nil {
			xcontext.SetError(ctx, err)
			gctx.JSON(http.StatusOK, newErrorResponse(err))
			gctx.Abort()
		}
	}
}
