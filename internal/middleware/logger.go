package middleware

import "github.com/splatbuilds/backend/pkg/xcontext"

func Logger(ctx xcontext.Context) error {
	ctx.Logger().Infof("%s %s", ctx.Request().Method, ctx.Request().URL.Path)
	return nil
}
