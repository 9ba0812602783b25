package middleware

import "github.com/splatbuilds/backend/pkg/xcontext"

func AllowCors(ctx xcontext.Context) error {
	if origin := ctx.Request().Header.Get("Origin"); origin != "" {
		header := ctx.Writer().Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		header.Set("Access-Control-Allow-Headers",
			"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
	}

	return nil
}
