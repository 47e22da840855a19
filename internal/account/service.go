package account

import (
	"fmt"

	"github.com/google/uuid"
)

// CreateProvisionalAccountID 生成一个临时的、尚未持久化的新账户UUID。
// 这个UUID将被设置到cookie中；对应的钱包行会在该账户第一次
// 转动转盘时，在同一个账本事务内被惰性创建。
func CreateProvisionalAccountID() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 检查一个字符串是否是合法的UUID格式。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
