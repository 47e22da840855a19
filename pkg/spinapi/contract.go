// Package spinapi 定义了转盘子系统的请求/响应契约。
// 服务端用它校验入站请求并组装出站记录，客户端用它校验响应。
// 两侧共享同一份定义，任何校验分歧都是缺陷。
package spinapi

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// --- 路由 ---

const (
	// SpinsPath 是创建与查询转盘记录的端点路径。
	SpinsPath = "/api/spins"
	// WalletPath 是查询余额快照的端点路径。
	WalletPath = "/api/wallet"
)

// --- 结果分类 ---

// Outcome 是转盘结果的显式胜负标签
type Outcome string

const (
	// OutcomeWin 表示本次转动获得了奖励
	OutcomeWin Outcome = "WIN"
	// OutcomeLoss 表示本次转动落在了Zonk区
	OutcomeLoss Outcome = "LOSS"
)

// Valid 检查Outcome是否是已知的标签。
func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// ClassifyResult 按结果文案推导胜负。
// 历史数据没有显式Outcome字段，约定是：文案中（不区分大小写）
// 含有"zonk"即为失败，否则为胜利。新记录在创建时写入显式标签，
// 这条推导规则仅作为兼容垫片保留。
func ClassifyResult(result string) Outcome {
	if strings.Contains(strings.ToLower(result), "zonk") {
		return OutcomeLoss
	}
	return OutcomeWin
}

// --- 请求/响应模型 ---

// SpinInput 定义了创建转盘记录时请求体的JSON结构。
// Result 必填；两个增量缺省为0；Outcome 可以由外部的抽奖
// 生成器直接给出，缺省时由 ClassifyResult 推导。
type SpinInput struct {
	Result        string  `json:"result" binding:"required" validate:"required"`
	Outcome       Outcome `json:"outcome,omitempty" binding:"omitempty,oneof=WIN LOSS" validate:"omitempty,oneof=WIN LOSS"`
	CoinDelta     int     `json:"coinDelta"`
	FreeSpinDelta int     `json:"freeSpinDelta"`
}

// SpinRecord 定义了一条已持久化的转盘记录的JSON结构。
// ID 和 CreatedAt 由账本在插入时赋值，记录创建后不可变。
type SpinRecord struct {
	ID            uint      `json:"id" validate:"required"`
	AccountID     string    `json:"accountId"`
	Result        string    `json:"result" validate:"required"`
	Outcome       Outcome   `json:"outcome" validate:"required,oneof=WIN LOSS"`
	CoinDelta     int       `json:"coinDelta"`
	FreeSpinDelta int       `json:"freeSpinDelta"`
	CreatedAt     time.Time `json:"createdAt" validate:"required"`
}

// IsLoss 报告这条记录是否是一次失败的转动。
func (r SpinRecord) IsLoss() bool {
	if r.Outcome.Valid() {
		return r.Outcome == OutcomeLoss
	}
	// 兼容缺少显式标签的历史数据
	return ClassifyResult(r.Result) == OutcomeLoss
}

// WalletSnapshot 定义了余额查询响应的JSON结构。
type WalletSnapshot struct {
	AccountID string `json:"accountId"`
	Coins     int    `json:"coins"`
	FreeSpins int    `json:"freeSpins"`
}

// --- 共享校验器 ---

// validate 是契约专用的校验器单例，两侧通过下面的函数使用它。
var validate = validator.New()

// ValidateInput 校验一个入站的SpinInput是否满足契约。
func ValidateInput(input SpinInput) error {
	return validate.Struct(input)
}

// ValidateRecord 校验一条出站（或收到）的SpinRecord是否满足契约。
// 客户端对每条响应记录调用它；不满足契约的服务端数据按获取失败处理。
func ValidateRecord(record SpinRecord) error {
	return validate.Struct(record)
}
