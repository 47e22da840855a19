package spinfeed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
	"github.com/dustin/go-humanize"
)

// ViewState 是历史视图的状态枚举
type ViewState int

const (
	// StateLoading 表示视图正在等待第一次（或失效后的）获取完成
	StateLoading ViewState = iota
	// StateEmpty 表示历史为空，应渲染占位提示
	StateEmpty
	// StatePopulated 表示视图持有至少一条记录
	StatePopulated
)

// HistoryView 维护历史信息流的展示状态。
// 状态机是 loading -> { empty | populated }；只有显式的Refresh
// 才会重新进入loading。获取失败时保留上一次的已知内容。
type HistoryView struct {
	client *Client

	mu      sync.RWMutex
	state   ViewState
	records []spinapi.SpinRecord
}

// NewHistoryView 创建一个挂载在给定客户端上的历史视图。
func NewHistoryView(client *Client) *HistoryView {
	return &HistoryView{
		client: client,
		state:  StateLoading,
	}
}

// State 返回视图当前的状态。
func (v *HistoryView) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Refresh 重新获取历史列表并推进状态机。
// 获取失败时返回错误，但视图继续展示上一次的已知状态，
// 而不是崩溃或清空。
func (v *HistoryView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	records, err := v.client.ListSpins(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		// 保留上一次的内容；没有历史时退回loading状态
		if len(v.records) > 0 {
			v.state = StatePopulated
		}
		return err
	}

	v.records = sortNewestFirst(records)
	if len(v.records) == 0 {
		v.state = StateEmpty
	} else {
		v.state = StatePopulated
	}
	return nil
}

// Render 把视图当前内容渲染为文本信息流。
// now 用于计算相对时间标签，便于测试注入固定时刻。
func (v *HistoryView) Render(now time.Time) string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	switch v.state {
	case StateLoading:
		return "Loading recent spins...\n"
	case StateEmpty:
		return "No spins yet. Be the first!\n"
	}

	var b strings.Builder
	b.WriteString("Recent Spins\n")
	for _, record := range v.records {
		b.WriteString(FormatRecord(record, now))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatRecord 渲染单条记录：胜负标记、奖项文案和相对时间。
func FormatRecord(record spinapi.SpinRecord, now time.Time) string {
	marker := "🏆"
	if record.IsLoss() {
		marker = "☹"
	}
	age := humanize.RelTime(record.CreatedAt, now, "ago", "from now")
	return fmt.Sprintf("%s %s · %s", marker, record.Result, age)
}

// sortNewestFirst 按createdAt降序重排记录，时间相同按id降序。
// 服务端已经保证了这个顺序，这里是展示层的防御性重排。
func sortNewestFirst(records []spinapi.SpinRecord) []spinapi.SpinRecord {
	sorted := make([]spinapi.SpinRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}
