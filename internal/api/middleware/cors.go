package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfigCORS allows the given origins. With no origins it adds no CORS
// headers at all, so browsers fall back to same-origin only.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	if len(allowedDomains) == 0 {
		zap.L().Warn("no CORS origins configured, cross-origin requests will be refused by browsers")

		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedDomains,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
