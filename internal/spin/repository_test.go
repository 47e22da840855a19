package spin

import (
	"fmt"
	"sync"
	"testing"

	"github.com/SlpAus/zonk-wheel-backend/internal/wallet"
	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为每个测试创建一个独立的内存SQLite账本。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&wallet.Wallet{}, &Spin{}))
	return db
}

const testAccount = "0191d2a6-0000-7000-8000-000000000001"

func TestAppendSpinAssignsServerFields(t *testing.T) {
	db := newTestDB(t)

	created, snapshot, err := AppendSpin(db, testAccount, spinapi.SpinInput{
		Result:    "1000 Coins",
		CoinDelta: 1000,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "1000 Coins", created.Result)
	assert.Equal(t, spinapi.OutcomeWin, created.Outcome)
	assert.Equal(t, 1000, created.CoinDelta)
	// 缺省的增量按0处理
	assert.Equal(t, 0, created.FreeSpinDelta)

	// 钱包在同一事务内被惰性创建并应用了增量
	assert.Equal(t, wallet.DefaultCoins+1000, snapshot.Coins)
	assert.Equal(t, wallet.DefaultFreeSpins, snapshot.FreeSpins)
}

func TestAppendSpinClassifiesZonkAsLoss(t *testing.T) {
	db := newTestDB(t)

	created, snapshot, err := AppendSpin(db, testAccount, spinapi.SpinInput{Result: "Zonk!"})
	require.NoError(t, err)

	assert.Equal(t, spinapi.OutcomeLoss, created.Outcome)
	assert.Equal(t, 0, created.CoinDelta)
	assert.Equal(t, 0, created.FreeSpinDelta)
	assert.Equal(t, wallet.DefaultCoins, snapshot.Coins)
}

func TestAppendSpinHonorsExplicitOutcome(t *testing.T) {
	db := newTestDB(t)

	// 外部生成器给出的显式标签优先于文案推导
	created, _, err := AppendSpin(db, testAccount, spinapi.SpinInput{
		Result:  "Consolation Zonk Bonus",
		Outcome: spinapi.OutcomeWin,
	})
	require.NoError(t, err)
	assert.Equal(t, spinapi.OutcomeWin, created.Outcome)
}

func TestBalanceConsistencyOverSequentialSpins(t *testing.T) {
	db := newTestDB(t)

	deltas := []struct{ coins, freeSpins int }{
		{1000, 0}, {-250, 1}, {0, 2}, {-9000, 0}, {500, -1},
	}
	wantCoins := wallet.DefaultCoins
	wantFree := wallet.DefaultFreeSpins
	for i, d := range deltas {
		_, snapshot, err := AppendSpin(db, testAccount, spinapi.SpinInput{
			Result:        fmt.Sprintf("Prize %d", i),
			CoinDelta:     d.coins,
			FreeSpinDelta: d.freeSpins,
		})
		require.NoError(t, err)
		wantCoins += d.coins
		wantFree += d.freeSpins
		assert.Equal(t, wantCoins, snapshot.Coins)
		assert.Equal(t, wantFree, snapshot.FreeSpins)
	}

	// 余额等于初始默认值加上全部增量之和；负余额不做钳制
	var w wallet.Wallet
	require.NoError(t, db.Where("account_id = ?", testAccount).First(&w).Error)
	assert.Equal(t, wantCoins, w.Coins)
	assert.Equal(t, wantFree, w.FreeSpins)
}

func TestConcurrentSpinsSerializeOnOneAccount(t *testing.T) {
	db := newTestDB(t)

	const (
		workers   = 10
		coinDelta = 10
	)

	// 同一账户的并发转动在事务内经行锁串行化，不能丢失任何增量
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := AppendSpin(db, testAccount, spinapi.SpinInput{
				Result:    fmt.Sprintf("Prize %d", i),
				CoinDelta: coinDelta,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// 每次转动都留下了记录
	var count int64
	require.NoError(t, db.Model(&Spin{}).Count(&count).Error)
	assert.EqualValues(t, workers, count)

	// 余额严格等于默认值加上全部增量，没有写覆盖写
	var w wallet.Wallet
	require.NoError(t, db.Where("account_id = ?", testAccount).First(&w).Error)
	assert.Equal(t, wallet.DefaultCoins+workers*coinDelta, w.Coins)
	assert.Equal(t, wallet.DefaultFreeSpins, w.FreeSpins)
}

func TestAppendRejectionLeavesNoPartialState(t *testing.T) {
	db := newTestDB(t)

	// 在事务外删除spin表，强制追加在第3步失败
	require.NoError(t, db.Migrator().DropTable(&Spin{}))

	_, _, err := AppendSpin(db, testAccount, spinapi.SpinInput{
		Result:    "1000 Coins",
		CoinDelta: 1000,
	})
	require.Error(t, err)

	// 余额变更必须随事务一起回滚：不存在只有余额没有记录的状态
	var count int64
	require.NoError(t, db.Model(&wallet.Wallet{}).Where("account_id = ?", testAccount).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListSpinsOrderingContract(t *testing.T) {
	db := newTestDB(t)

	var ids []uint
	for i := 0; i < 4; i++ {
		created, _, err := AppendSpin(db, testAccount, spinapi.SpinInput{Result: fmt.Sprintf("Prize %d", i)})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	spins, err := ListSpins(db, HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, spins, 4)

	// created_at 降序，时间相同按 id 降序：最新的记录在最前面
	for i, s := range spins {
		assert.Equal(t, ids[len(ids)-1-i], s.ID)
	}

	// 无写入时重复读取返回相同的结果
	again, err := ListSpins(db, HistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, spins, again)
}

func TestListSpinsCursorPagination(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		_, _, err := AppendSpin(db, testAccount, spinapi.SpinInput{Result: fmt.Sprintf("Prize %d", i)})
		require.NoError(t, err)
	}

	firstPage, err := ListSpins(db, HistoryQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)

	cursor := Cursor(firstPage[1].ToRecord())
	secondPage, err := ListSpins(db, HistoryQuery{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 2)

	// 两页之间严格更旧且无重叠
	seen := map[uint]bool{firstPage[0].ID: true, firstPage[1].ID: true}
	for _, s := range secondPage {
		assert.False(t, seen[s.ID])
		assert.Less(t, s.ID, firstPage[1].ID)
	}

	// 缺省参数返回全部历史，保持向后兼容
	all, err := ListSpins(db, HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestValidateCursor(t *testing.T) {
	assert.NoError(t, ValidateCursor("1700000000000000000:42"))
	assert.Error(t, ValidateCursor("not-a-cursor"))
	assert.Error(t, ValidateCursor("abc:1"))
	assert.Error(t, ValidateCursor("1700000000000000000:xyz"))
}
