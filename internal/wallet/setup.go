package wallet

import (
	"encoding/json"
	"fmt"

	"github.com/SlpAus/zonk-wheel-backend/internal/platform/database"
	"github.com/SlpAus/zonk-wheel-backend/internal/platform/metadata"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Wallet{}); err != nil {
		return fmt.Errorf("无法迁移wallet表: %w", err)
	}
	fmt.Println("Wallet数据库表迁移成功。")

	// 记录初始默认值已写入表定义，供运维排查
	if err := metadata.SetValue(database.DB, metadata.WalletDefaultsProvisionedKey, "true"); err != nil {
		return fmt.Errorf("无法写入钱包默认值标记: %w", err)
	}
	return nil
}

// WarmupCache 从SQLite加载所有钱包余额，并预热到Redis的Hash中
func WarmupCache() error {
	var wallets []Wallet
	// 1. 从SQLite读取所有钱包
	if err := database.DB.Find(&wallets).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取钱包数据: %w", err)
	}

	if len(wallets) == 0 {
		fmt.Println("无现有钱包数据，无需预热余额缓存。")
		return nil
	}

	// 2. 将每个钱包的余额快照序列化为JSON
	fields := make(map[string]interface{}, len(wallets))
	for _, w := range wallets {
		snapshotJSON, err := json.Marshal(BalanceSnapshot{Coins: w.Coins, FreeSpins: w.FreeSpins})
		if err != nil {
			return fmt.Errorf("无法序列化账户 %s 的余额快照: %w", w.AccountID, err)
		}
		fields[w.AccountID] = snapshotJSON
	}

	// 3. 使用Pipeline批量写入Redis
	pipe := database.RDB.Pipeline()
	// 先清空旧的缓存，确保数据一致性
	pipe.Del(database.Ctx, BalancesKey)
	pipe.HSet(database.Ctx, BalancesKey, fields)

	_, err := pipe.Exec(database.Ctx)
	if err != nil {
		return fmt.Errorf("预热余额缓存到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个钱包余额到Redis。\n", len(wallets))
	return nil
}

// PrimeCachedDB 是wallet模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
