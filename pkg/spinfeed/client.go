// Package spinfeed 是转盘服务的Go客户端。
// 它提供类型化的API调用、带失效机制的列表缓存，
// 以及历史信息流的渲染视图。
package spinfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
)

// Client 是转盘服务的HTTP客户端。
// 它使用共享契约（pkg/spinapi）校验每一条响应：
// 不满足契约的服务端数据一律按获取失败处理。
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *ListCache
}

// NewClient 创建一个指向指定服务地址的客户端。
// 内置的cookie jar会保存服务端分发的账户cookie。
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Jar: jar},
		cache:      NewListCache(),
	}
}

// CreateSpin 提交一次转盘结果，返回已持久化的完整记录。
// 提交成功后，历史列表的缓存会被标记为失效，
// 保证下一次读取能看到这条新记录。
func (c *Client) CreateSpin(ctx context.Context, input spinapi.SpinInput) (spinapi.SpinRecord, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return spinapi.SpinRecord{}, fmt.Errorf("无法序列化转盘结果: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+spinapi.SpinsPath, bytes.NewReader(body))
	if err != nil {
		return spinapi.SpinRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return spinapi.SpinRecord{}, fmt.Errorf("提交转盘结果失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return spinapi.SpinRecord{}, fmt.Errorf("提交转盘结果失败: 服务端返回 %d", resp.StatusCode)
	}

	var record spinapi.SpinRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return spinapi.SpinRecord{}, fmt.Errorf("无法解析转盘记录响应: %w", err)
	}
	if err := spinapi.ValidateRecord(record); err != nil {
		return spinapi.SpinRecord{}, fmt.Errorf("服务端返回的转盘记录不符合契约: %w", err)
	}

	// 新记录已落库，历史列表缓存作废
	c.cache.Invalidate(spinapi.SpinsPath)

	return record, nil
}

// ListSpins 返回转盘历史列表。
// 命中缓存时不发起网络请求；未命中时获取、逐条校验并回填缓存。
func (c *Client) ListSpins(ctx context.Context) ([]spinapi.SpinRecord, error) {
	if records, ok := c.cache.Get(spinapi.SpinsPath); ok {
		return records, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+spinapi.SpinsPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取转盘历史失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取转盘历史失败: 服务端返回 %d", resp.StatusCode)
	}

	var records []spinapi.SpinRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("无法解析转盘历史响应: %w", err)
	}
	for _, record := range records {
		if err := spinapi.ValidateRecord(record); err != nil {
			return nil, fmt.Errorf("服务端返回的转盘记录不符合契约: %w", err)
		}
	}

	c.cache.Put(spinapi.SpinsPath, records)
	return records, nil
}

// Wallet 返回当前账户的余额快照。
func (c *Client) Wallet(ctx context.Context) (spinapi.WalletSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+spinapi.WalletPath, nil)
	if err != nil {
		return spinapi.WalletSnapshot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return spinapi.WalletSnapshot{}, fmt.Errorf("获取余额失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return spinapi.WalletSnapshot{}, fmt.Errorf("获取余额失败: 服务端返回 %d", resp.StatusCode)
	}

	var snapshot spinapi.WalletSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return spinapi.WalletSnapshot{}, fmt.Errorf("无法解析余额响应: %w", err)
	}
	return snapshot, nil
}
