// Package cmd 命令行入口模块
// stats.go - 历史统计命令，显示复制历史和情绪分布
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"emoset/internal/config"
	"emoset/internal/storage"
	"emoset/internal/ui"
)

// statsCmd 统计命令定义
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "历史统计",
	Long:  "显示复制历史和统计信息",
	Run:   runStats,
}

// init 注册 stats 子命令
func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats 执行统计命令
// 显示复制总数、批次数、情绪分布等信息
func runStats(cmd *cobra.Command, args []string) {
	ui.Banner()
	ui.Title("📊", "历史统计")
	ui.Divider()

	// 初始化数据库以获取统计数据
	db, err := storage.NewDatabase()
	if err != nil {
		ui.Error("无法连接数据库: %v", err)
		return
	}
	defer db.Close()

	// 获取统计信息
	stats, err := db.GetStatistics()
	if err != nil {
		ui.Error("获取统计失败: %v", err)
		return
	}

	cfg := config.Get()

	// 显示系统状态
	fmt.Println()
	ui.Info("复制历史:")
	ui.Info("  已复制:    %v 张", stats["total_copied"]) // 成功复制的图片数
	ui.Info("  批次:      %v 次", stats["batch_count"])  // 整理批次数
	ui.Info("  已撤销:    %v 张", stats["undone_count"]) // 被撤销的复制数

	// 显示历史功能状态
	history := "开启"
	if !cfg.EnableHistory {
		history = "关闭"
	}
	ui.Info("  历史记录:  %s", history)

	// 显示情绪分布（如果有数据）
	if dist, ok := stats["emotion_distribution"].(map[string]int); ok && len(dist) > 0 {
		fmt.Println()
		ui.Info("情绪分布:")
		for emotion, cnt := range dist {
			ui.Info("  %-12s %d", emotion, cnt)
		}
	}
}
