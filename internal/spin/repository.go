package spin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SlpAus/zonk-wheel-backend/internal/wallet"
	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
	"gorm.io/gorm"
)

// HistoryQuery 描述了一次历史查询的窗口参数。
// 零值表示返回全部历史，与旧契约保持兼容。
type HistoryQuery struct {
	// Limit 限制返回的记录条数，0表示不限制。
	Limit int
	// Cursor 是上一页最后一条记录的游标，空字符串表示从最新开始。
	Cursor string
}

// Cursor 把一条记录编码为翻页游标。
// 格式是 "<created_at_unix_nano>:<id>"，与排序键一一对应。
func Cursor(record spinapi.SpinRecord) string {
	return fmt.Sprintf("%d:%d", record.CreatedAt.UnixNano(), record.ID)
}

// ValidateCursor 检查游标字符串是否可解析。
// 处理器用它把格式错误在进入存储层之前拦截为客户端错误。
func ValidateCursor(cursor string) error {
	_, _, err := parseCursor(cursor)
	return err
}

// parseCursor 解析游标字符串。
func parseCursor(cursor string) (time.Time, uint, error) {
	nanoStr, idStr, ok := strings.Cut(cursor, ":")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("游标格式错误: %s", cursor)
	}
	nano, err := strconv.ParseInt(nanoStr, 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("游标时间戳无效: %w", err)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("游标ID无效: %w", err)
	}
	return time.Unix(0, nano), uint(id), nil
}

// AppendSpin 是账本的追加原语。
// 它在一个数据库事务内完成三件事：锁定并按需创建账户钱包、
// 应用余额增量、插入一条新的转盘记录。事务保证了外部永远
// 不会观察到只有记录没有余额变化（或相反）的中间状态。
func AppendSpin(db *gorm.DB, accountID string, input spinapi.SpinInput) (Spin, wallet.BalanceSnapshot, error) {
	var created Spin
	var snapshot wallet.BalanceSnapshot

	// 显式标签缺省时，按结果文案的兼容规则推导
	outcome := input.Outcome
	if !outcome.Valid() {
		outcome = spinapi.ClassifyResult(input.Result)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// 1. 锁定钱包行，串行化同一账户的并发转动
		w, err := wallet.GetOrCreateForUpdate(tx, accountID)
		if err != nil {
			return fmt.Errorf("无法锁定账户 %s 的钱包: %w", accountID, err)
		}

		// 2. 应用增量。不做非负钳制，负余额是可表示的状态。
		w.Coins += input.CoinDelta
		w.FreeSpins += input.FreeSpinDelta
		if err := tx.Save(w).Error; err != nil {
			return fmt.Errorf("无法更新账户 %s 的余额: %w", accountID, err)
		}

		// 3. 插入新的转盘记录，ID和CreatedAt由账本赋值
		created = Spin{
			AccountID:     accountID,
			Result:        input.Result,
			Outcome:       outcome,
			CoinDelta:     input.CoinDelta,
			FreeSpinDelta: input.FreeSpinDelta,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("无法持久化转盘记录: %w", err)
		}

		snapshot = wallet.BalanceSnapshot{Coins: w.Coins, FreeSpins: w.FreeSpins}
		return nil
	})
	if err != nil {
		return Spin{}, wallet.BalanceSnapshot{}, err
	}

	return created, snapshot, nil
}

// ListSpins 按历史顺序返回转盘记录。
// 排序是本查询的显式契约：created_at 降序，相同时间戳按 id 降序，
// 消费方不需要再自行排序。
func ListSpins(db *gorm.DB, query HistoryQuery) ([]Spin, error) {
	q := db.Model(&Spin{}).Order("created_at DESC, id DESC")

	if query.Cursor != "" {
		createdAt, id, err := parseCursor(query.Cursor)
		if err != nil {
			return nil, err
		}
		// 只返回严格早于游标位置的记录
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	var spins []Spin
	if err := q.Find(&spins).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite读取转盘历史: %w", err)
	}
	return spins, nil
}
