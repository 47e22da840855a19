package wallet

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Redis 键名常量 ---

const (
	// BalancesKey 是一个 Redis Hash 的键，用于缓存每个账户的余额快照。
	// Field: 账户的UUID
	// Value: BalanceSnapshot 结构体的JSON序列化字符串
	BalancesKey = "wallet:balances"
)

// BalanceSnapshot 定义了在 Redis 的 wallet:balances 哈希表中，
// 以JSON格式存储的余额数据结构。
type BalanceSnapshot struct {
	Coins     int `json:"coins"`
	FreeSpins int `json:"freeSpins"`
}

// --- 并发控制 ---

// repoMutex 是一个模块内部的、不导出的全局读写锁，
// 用于保护对本模块管理的Redis键的并发访问。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() {
	repoMutex.RLock()
}

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() {
	repoMutex.RUnlock()
}

// --- SQLite 账本原语 ---

// GetOrCreateForUpdate 在给定事务中锁定并返回一个账户的钱包行。
// 如果该账户还没有钱包，则按初始默认值创建一行。
// 行锁保证了同一账户的并发转盘事务串行地应用各自的增量。
func GetOrCreateForUpdate(tx *gorm.DB, accountID string) (*Wallet, error) {
	var w Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ?", accountID).
		First(&w).Error
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 惰性开户：第一次转动时在同一事务内创建钱包
	w = Wallet{
		AccountID: accountID,
		Coins:     DefaultCoins,
		FreeSpins: DefaultFreeSpins,
	}
	if err := tx.Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}
