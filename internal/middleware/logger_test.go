package middleware

import (
	"net/http"
	"testing"

	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/api/post/detail", func(c *gin.Context) {
		c.Set(utils.CtxUserID, uint(3))
		utils.Error(c, utils.CodePostNotFound, "")
	})
	r.GET("/api/post/list", func(c *gin.Context) {
		utils.Success(c, nil)
	})

	serve(r, http.MethodGet, "/api/post/detail?id=9", "")
	serve(r, http.MethodGet, "/api/post/list", "")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	rejected := entries[0]
	assert.Equal(t, zapcore.WarnLevel, rejected.Level)
	fields := rejected.ContextMap()
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.Equal(t, "/api/post/detail", fields["route"])
	assert.Equal(t, "id=9", fields["query"])
	assert.EqualValues(t, 3, fields["user_id"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "user_id")
}
