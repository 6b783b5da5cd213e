package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "userRole"
)

var errMissingBearer = errors.New("authorization header must be 'Bearer <token>'")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT stores the caller's user id and role in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingBearer))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(tokenStr))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyUserID, userID)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}

// IdentifyJWT sets the same context keys as VerifyJWT when a valid bearer
// token is present and lets every other request through anonymously.
func (a *Authenticator) IdentifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr, ok := strings.CutPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if ok {
			if claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(tokenStr)); err == nil {
				if userID, err := claims.UserID(); err == nil {
					ctx.Set(ContextKeyUserID, userID)
					ctx.Set(ContextKeyRole, claims.Role)
				}
			}
		}

		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ContextKeyRole)
		for _, r := range roles {
			if role == r {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(
			fmt.Errorf("role %q may not %s %s", role, ctx.Request.Method, ctx.FullPath()),
		))
	}
}
