package wallet

import (
	"net/http"

	"github.com/SlpAus/zonk-wheel-backend/internal/account"
	"github.com/gin-gonic/gin"
)

// BalanceResponse 定义了余额查询接口的JSON结构
type BalanceResponse struct {
	AccountID string `json:"accountId"`
	Coins     int    `json:"coins"`
	FreeSpins int    `json:"freeSpins"`
}

// GetWallet 处理前端查询当前账户余额的请求
func GetWallet(c *gin.Context) {
	accountID := account.AccountIDFromContext(c)
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少账户标识"})
		return
	}

	snapshot, err := GetBalance(accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取余额失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		AccountID: accountID,
		Coins:     snapshot.Coins,
		FreeSpins: snapshot.FreeSpins,
	})
}
