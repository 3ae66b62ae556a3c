package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// JSONRecovery turns panics into a JSON 500 so clients parsing the body
// never see an HTML error page. The stack goes to the log, a generic message
// to the client.
func JSONRecovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err interface{}) {
		log.Errorf("panic recovered: %v\n%s", err, debug.Stack())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
