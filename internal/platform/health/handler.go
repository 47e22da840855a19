package health

import (
	"net/http"

	"github.com/SlpAus/zonk-wheel-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// GetHealthz 返回进程存活状态和余额缓存的可用性。
// 缓存不可用不影响核心接口，只是读路径回退到SQLite。
func GetHealthz(c *gin.Context) {
	cacheState := "unavailable"
	if database.IsRedisHealthy() {
		cacheState = "ok"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"balanceCache": cacheState,
	})
}
