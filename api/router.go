package api

import (
	"github.com/SlpAus/zonk-wheel-backend/internal/account"
	"github.com/SlpAus/zonk-wheel-backend/internal/platform/health"
	"github.com/SlpAus/zonk-wheel-backend/internal/spin"
	"github.com/SlpAus/zonk-wheel-backend/internal/wallet"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	apiRoutes := router.Group("/api")
	{
		// 转盘相关的路由 /api/spins
		// 历史是全局的信息流，读取不需要账户身份
		apiRoutes.POST("/spins", account.EnsureAccountCookieMiddleware(), spin.SubmitSpin)
		apiRoutes.GET("/spins", spin.GetSpins)

		// 余额查询 /api/wallet
		// 读取已有身份即可，查询余额不应该替客户端开新账户
		apiRoutes.GET("/wallet", account.LoadAccountMiddleware(), wallet.GetWallet)

		// 存活与缓存状态 /api/healthz
		apiRoutes.GET("/healthz", health.GetHealthz)
	}
}
