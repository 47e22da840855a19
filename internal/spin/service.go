package spin

import (
	"github.com/SlpAus/zonk-wheel-backend/internal/platform/database"
	"github.com/SlpAus/zonk-wheel-backend/internal/wallet"
	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
)

// ProcessSpin 是转盘事务的核心入口。
// 输入已经通过契约校验；这里执行一次原子的账本追加，
// 然后尽力刷新余额缓存，最后返回已持久化的记录。
func ProcessSpin(accountID string, input spinapi.SpinInput) (spinapi.SpinRecord, error) {
	created, snapshot, err := AppendSpin(database.DB, accountID, input)
	if err != nil {
		return spinapi.SpinRecord{}, err
	}

	// 账本已提交，缓存刷新失败不影响本次请求的结果
	wallet.RefreshCache(accountID, snapshot)

	return created.ToRecord(), nil
}

// GetHistory 返回按显式契约排序的转盘历史。
func GetHistory(query HistoryQuery) ([]spinapi.SpinRecord, error) {
	spins, err := ListSpins(database.DB, query)
	if err != nil {
		return nil, err
	}

	records := make([]spinapi.SpinRecord, len(spins))
	for i, s := range spins {
		records[i] = s.ToRecord()
	}
	return records, nil
}
