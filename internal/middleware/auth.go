package middleware

import (
	"strings"

	"github.com/splatbuilds/backend/pkg/errorx"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

// ParseToken resolves the requester identity from the bearer header, the
// access token cookie or the signed session, in that order. A request with
// none of them stays anonymous; a request with a broken token is rejected.
func ParseToken(ctx xcontext.Context) error {
	token := ""
	if header := ctx.Request().Header.Get("Authorization"); header != "" {
		token = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := ctx.Request().Cookie(ctx.Configs().Auth.AccessToken.Name); err == nil {
		token = cookie.Value
	}

	if token == "" {
		return parseSession(ctx)
	}

	info, err := ctx.AccessTokenEngine().Verify(token)
	if err != nil {
		ctx.Logger().Debugf("Cannot verify access token: %v", err)
		return errorx.New(errorx.Unauthenticated, "Invalid access token")
	}

	xcontext.SetRequestUserID(ctx, info.ID)
	return nil
}

// parseSession reads the requester identity from the session cookie written
// by the login portal. An absent or undecodable session means anonymous, not
// an error.
func parseSession(ctx xcontext.Context) error {
	session, err := ctx.SessionStore().Get(ctx.Request(), ctx.Configs().Session.Name)
	if err != nil {
		ctx.Logger().Debugf("Cannot decode session: %v", err)
		return nil
	}

	if userID, ok := session.Values["user_id"].(string); ok && userID != "" {
		xcontext.SetRequestUserID(ctx, userID)
	}

	return nil
}

// Authenticate guards routes that require a signed-in requester. It must be
// registered after ParseToken.
func Authenticate(ctx xcontext.Context) error {
	if xcontext.GetRequestUserID(ctx) == "" {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
	return nil
}
