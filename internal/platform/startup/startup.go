package startup

import (
	"fmt"

	"github.com/SlpAus/zonk-wheel-backend/internal/platform/metadata"
	"github.com/SlpAus/zonk-wheel-backend/internal/spin"
	"github.com/SlpAus/zonk-wheel-backend/internal/wallet"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := wallet.PrimeCachedDB(); err != nil {
		return err
	}
	if err := spin.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis余额缓存的函数
// 它在健康检查器检测到Redis重启后被调用。
func RebuildCache() error {
	fmt.Println("开始余额缓存热重建...")

	wallet.LockRepository()
	defer wallet.UnlockRepository()
	if err := wallet.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("余额缓存热重建完成。")
	return nil
}
