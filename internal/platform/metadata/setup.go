package metadata

import (
	"fmt"

	"github.com/SlpAus/zonk-wheel-backend/internal/platform/database"
)

// PrimeDB 负责初始化metadata模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}

	// 比对已记录的表结构版本，再写入当前版本
	storedVersion, err := GetValue(database.DB, SchemaVersionKey)
	if err != nil {
		return fmt.Errorf("无法读取schema版本: %w", err)
	}
	if storedVersion != "" && storedVersion != CurrentSchemaVersion {
		fmt.Printf("检测到schema版本变化: %s -> %s\n", storedVersion, CurrentSchemaVersion)
	}
	if err := SetValue(database.DB, SchemaVersionKey, CurrentSchemaVersion); err != nil {
		return fmt.Errorf("无法写入schema版本: %w", err)
	}

	fmt.Println("Metadata数据库表迁移成功。")
	return nil
}
