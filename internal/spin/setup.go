package spin

import (
	"fmt"

	"github.com/SlpAus/zonk-wheel-backend/internal/platform/database"
)

// PrimeDB 负责初始化spin模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Spin{}); err != nil {
		return fmt.Errorf("无法迁移spin表: %w", err)
	}
	fmt.Println("Spin数据库表迁移成功。")
	return nil
}
