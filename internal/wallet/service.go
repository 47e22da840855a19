package wallet

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SlpAus/zonk-wheel-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GetBalance 返回一个账户当前的余额快照。
// 优先读取Redis缓存；缓存不可用或未命中时回退到SQLite账本。
// 尚未开户的账户返回初始默认值（与惰性开户的语义一致）。
func GetBalance(accountID string) (BalanceSnapshot, error) {
	if database.IsRedisHealthy() {
		RLockRepository()
		snapshotJSON, err := database.RDB.HGet(database.Ctx, BalancesKey, accountID).Result()
		RUnlockRepository()

		if err == nil {
			var snapshot BalanceSnapshot
			if jsonErr := json.Unmarshal([]byte(snapshotJSON), &snapshot); jsonErr == nil {
				return snapshot, nil
			}
			// 缓存中的数据损坏，穿透到SQLite并覆盖它
			fmt.Printf("警告: 账户 %s 的余额缓存损坏，回退到SQLite。\n", accountID)
		} else if err != redis.Nil {
			// 读取缓存失败，标记缓存不可用，由健康检查器负责恢复
			fmt.Printf("警告: 读取余额缓存失败: %v\n", err)
			database.UpdateStatus(false, "")
		}
	}

	return getBalanceFromDB(accountID)
}

// getBalanceFromDB 直接从SQLite账本读取余额。
func getBalanceFromDB(accountID string) (BalanceSnapshot, error) {
	var w Wallet
	err := database.DB.Where("account_id = ?", accountID).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceSnapshot{Coins: DefaultCoins, FreeSpins: DefaultFreeSpins}, nil
		}
		return BalanceSnapshot{}, fmt.Errorf("无法从SQLite读取账户 %s 的钱包: %w", accountID, err)
	}
	return BalanceSnapshot{Coins: w.Coins, FreeSpins: w.FreeSpins}, nil
}

// RefreshCache 在账本事务提交后，将最新余额写入Redis缓存。
// 这是尽力而为的操作：失败只会把缓存标记为不可用，绝不影响已提交的账本。
func RefreshCache(accountID string, snapshot BalanceSnapshot) {
	if !database.IsRedisHealthy() {
		return
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		fmt.Printf("警告: 无法序列化账户 %s 的余额快照: %v\n", accountID, err)
		return
	}

	LockRepository()
	defer UnlockRepository()
	if err := database.RDB.HSet(database.Ctx, BalancesKey, accountID, snapshotJSON).Err(); err != nil {
		fmt.Printf("警告: 刷新账户 %s 的余额缓存失败: %v\n", accountID, err)
		database.UpdateStatus(false, "")
	}
}
