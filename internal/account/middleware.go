package account

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName   = "account-id"
	CookieMaxAge = 365 * 24 * 60 * 60
	AccountIDKey = "accountID"
)

// EnsureAccountCookieMiddleware 确保用户的浏览器中有一个格式正确的account-id cookie。
// 如果没有或格式不正确，它会生成一个新的临时ID并设置cookie。
func EnsureAccountCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := c.Cookie(CookieName)

		// 如果Cookie不存在，或存在但格式不正确，则分发一个新的
		if err != nil || !IsValidUUID(accountID) {
			if err != nil && err != http.ErrNoCookie {
				fmt.Printf("检测到无效的账户Cookie: %s, err: %v\n", accountID, err)
			}
			provisionalID, genErr := CreateProvisionalAccountID()
			if genErr != nil {
				fmt.Printf("创建临时账户ID时发生错误: %v\n", genErr)
			} else {
				c.SetCookie(CookieName, provisionalID, CookieMaxAge, "/", "", false, true)
				accountID = provisionalID
			}
		}

		// 新分发的cookie在本次请求中还读不到，必须同时写入上下文
		c.Set(AccountIDKey, accountID)
		c.Next()
	}
}

// LoadAccountMiddleware 读取cookie并将其值放入Gin上下文中。
func LoadAccountMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, _ := c.Cookie(CookieName)
		c.Set(AccountIDKey, accountID)
		c.Next()
	}
}

// AccountIDFromContext 从Gin上下文中取出当前请求的账户ID。
func AccountIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(AccountIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
