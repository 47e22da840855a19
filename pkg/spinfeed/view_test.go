package spinfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id uint, result string, createdAt time.Time) spinapi.SpinRecord {
	return spinapi.SpinRecord{
		ID:        id,
		Result:    result,
		Outcome:   spinapi.ClassifyResult(result),
		CreatedAt: createdAt,
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	t1 := record(1, "Prize 1", base)
	t2 := record(2, "Prize 2", base.Add(time.Minute))
	t3 := record(3, "Prize 3", base.Add(2*time.Minute))

	// 无论服务端返回什么顺序，展示层都按 T3, T2, T1 排列
	sorted := sortNewestFirst([]spinapi.SpinRecord{t1, t3, t2})
	require.Len(t, sorted, 3)
	assert.EqualValues(t, 3, sorted[0].ID)
	assert.EqualValues(t, 2, sorted[1].ID)
	assert.EqualValues(t, 1, sorted[2].ID)

	// 时间相同按id降序
	t4 := record(4, "Prize 4", base)
	tied := sortNewestFirst([]spinapi.SpinRecord{t1, t4})
	assert.EqualValues(t, 4, tied[0].ID)
	assert.EqualValues(t, 1, tied[1].ID)
}

func TestFormatRecord(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	win := FormatRecord(record(1, "500 Coins", now.Add(-3*time.Minute)), now)
	assert.Contains(t, win, "🏆")
	assert.Contains(t, win, "500 Coins")
	assert.Contains(t, win, "ago")

	loss := FormatRecord(record(2, "Big Zonk", now.Add(-time.Hour)), now)
	assert.Contains(t, loss, "☹")
	assert.Contains(t, loss, "Big Zonk")
}

func newViewServer(t *testing.T, failing *atomic.Bool, records *[]spinapi.SpinRecord) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(*records)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHistoryViewStateMachine(t *testing.T) {
	var failing atomic.Bool
	records := []spinapi.SpinRecord{}
	server := newViewServer(t, &failing, &records)

	view := NewHistoryView(NewClient(server.URL))
	assert.Equal(t, StateLoading, view.State())

	// 空历史渲染占位提示，而不是空列表
	require.NoError(t, view.Refresh(context.Background()))
	assert.Equal(t, StateEmpty, view.State())
	assert.Contains(t, view.Render(time.Now()), "No spins yet")

	// 有记录后进入populated状态
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records = []spinapi.SpinRecord{
		record(1, "Big Zonk", now.Add(-2*time.Minute)),
		record(2, "500 Coins", now.Add(-time.Minute)),
	}
	view.client.cache.Invalidate(spinapi.SpinsPath)
	require.NoError(t, view.Refresh(context.Background()))
	assert.Equal(t, StatePopulated, view.State())

	rendered := view.Render(now)
	// 最新在前
	firstIdx := strings.Index(rendered, "500 Coins")
	secondIdx := strings.Index(rendered, "Big Zonk")
	require.GreaterOrEqual(t, firstIdx, 0)
	require.GreaterOrEqual(t, secondIdx, 0)
	assert.Less(t, firstIdx, secondIdx)

	// 获取失败时保留上一次的已知内容
	failing.Store(true)
	view.client.cache.Invalidate(spinapi.SpinsPath)
	require.Error(t, view.Refresh(context.Background()))
	assert.Equal(t, StatePopulated, view.State())
	assert.Contains(t, view.Render(now), "500 Coins")
}
