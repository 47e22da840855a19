package database

import (
	"fmt"
	"sync"
)

// statusManager 负责线程安全地管理和提供余额缓存的可用状态。
// Redis在本项目中只承担钱包余额的读缓存；当它不可用时，
// 读路径必须回退到SQLite账本本身。
type statusManager struct {
	mu             sync.RWMutex
	isRedisHealthy bool
	lastKnownRunID string
}

// 全局的状态管理器实例
// 在InitRedis成功之前，缓存一律视为不可用（测试环境不启动Redis）。
var globalStatus = &statusManager{
	isRedisHealthy: false,
}

// IsRedisHealthy 返回当前Redis的健康状态。
func IsRedisHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.isRedisHealthy
}

// SetInitialRunID 在应用启动时，由main.go调用，用于设置初始的Redis run_id。
func SetInitialRunID(runID string) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.lastKnownRunID = runID
}

// UpdateStatus 用于线程安全地更新健康状态。
func UpdateStatus(isHealthy bool, newRunID string) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	// 只有当状态发生变化时才打印日志
	if globalStatus.isRedisHealthy != isHealthy {
		globalStatus.isRedisHealthy = isHealthy
		if isHealthy {
			fmt.Println("健康检查: 余额缓存状态已更新为 [可用]")
		} else {
			fmt.Println("健康检查警告: 余额缓存状态已更新为 [不可用]，读取将回退到SQLite")
		}
	}

	// 只有在健康状态下，才更新已知的run_id
	if isHealthy && newRunID != "" {
		globalStatus.lastKnownRunID = newRunID
	}
}

// GetLastKnownRunID 用于线程安全地获取已知的run_id。
func GetLastKnownRunID() string {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.lastKnownRunID
}
