package wallet

import (
	"time"
)

const (
	// DefaultCoins 是新钱包的初始金币数。
	DefaultCoins = 10000
	// DefaultFreeSpins 是新钱包的初始免费次数。
	DefaultFreeSpins = 0
)

// Wallet 定义了单个账户在SQLite数据库中的余额模型。
// 它是账本中唯一可变的状态，只能由转盘事务在应用增量时修改。
type Wallet struct {
	// AccountID 是账户的主键，来自客户端Cookie。
	AccountID string `gorm:"primarykey;type:varchar(36)" json:"accountId"`

	// Coins 是账户当前的金币余额。
	// 增量不做钳制，负余额是可表示的状态。
	Coins int `gorm:"not null;default:10000" json:"coins"`

	// FreeSpins 是账户当前持有的免费转动次数。
	FreeSpins int `gorm:"not null;default:0" json:"freeSpins"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
