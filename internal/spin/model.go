package spin

import (
	"time"

	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
)

// Spin 定义了单条转盘记录在SQLite数据库中的持久化模型。
// 记录是只追加的：创建后既不更新也不删除，因此不使用gorm.Model
// 的UpdatedAt/DeletedAt字段。插入顺序由自增ID决定。
type Spin struct {
	// ID 由账本单调分配，是插入顺序的权威定义。
	ID uint `gorm:"primarykey"`

	// AccountID 记录了发起本次转动的账户。
	AccountID string `gorm:"index;type:varchar(36)"`

	// Result 是奖项的描述文案，例如 "1000 Coins" 或 "Big Zonk"。
	Result string `gorm:"not null"`

	// Outcome 是创建时写入的显式胜负标签（WIN/LOSS）。
	Outcome spinapi.Outcome `gorm:"type:varchar(8);not null"`

	// CoinDelta 是本次转动对金币余额的有符号增量。
	CoinDelta int `gorm:"not null;default:0"`

	// FreeSpinDelta 是本次转动对免费次数的有符号增量。
	FreeSpinDelta int `gorm:"not null;default:0"`

	// CreatedAt 由账本在插入时赋值，与ID一同定义历史顺序。
	CreatedAt time.Time `gorm:"index"`
}

// ToRecord 将持久化模型转换为契约层的SpinRecord。
func (s Spin) ToRecord() spinapi.SpinRecord {
	return spinapi.SpinRecord{
		ID:            s.ID,
		AccountID:     s.AccountID,
		Result:        s.Result,
		Outcome:       s.Outcome,
		CoinDelta:     s.CoinDelta,
		FreeSpinDelta: s.FreeSpinDelta,
		CreatedAt:     s.CreatedAt,
	}
}
