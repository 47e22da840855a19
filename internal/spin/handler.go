package spin

import (
	"net/http"
	"strconv"

	"github.com/SlpAus/zonk-wheel-backend/internal/account"
	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
	"github.com/gin-gonic/gin"
)

// SubmitSpin 处理前端提交的转盘结果
func SubmitSpin(c *gin.Context) {
	var input spinapi.SpinInput

	// 1. 绑定并校验请求体。校验失败是客户端错误，
	// 此时不会产生任何记录或余额变化。
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	// 2. 确定本次转动所属的账户
	accountID := account.AccountIDFromContext(c)
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少账户标识"})
		return
	}

	// 3. 执行原子的账本追加
	record, err := ProcessSpin(accountID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理转盘结果失败: " + err.Error()})
		return
	}

	// 4. 返回已持久化的完整记录
	c.JSON(http.StatusCreated, record)
}

// GetSpins 返回转盘历史记录
// 可选的limit/cursor参数提供翻页窗口；缺省时返回全部历史，
// 与旧契约保持兼容。
func GetSpins(c *gin.Context) {
	var query HistoryQuery

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit参数无效"})
			return
		}
		query.Limit = limit
	}
	if cursor := c.Query("cursor"); cursor != "" {
		if err := ValidateCursor(cursor); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cursor参数无效: " + err.Error()})
			return
		}
		query.Cursor = cursor
	}

	records, err := GetHistory(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取转盘历史失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
