// Package cmd 命令行入口模块
// reset.go - 重置命令，用于清除复制历史
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package cmd

import (
	"github.com/spf13/cobra"

	"emoset/internal/storage"
	"emoset/internal/ui"
)

// resetCmd 重置命令定义
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "重置数据",
	Long:  "清空复制历史，已整理的文件不受影响",
	Run:   runReset,
}

// init 注册 reset 子命令
func init() {
	rootCmd.AddCommand(resetCmd)
}

// runReset 执行重置命令
// 清空复制历史后，undo 和 stats 将失去所有历史数据
func runReset(cmd *cobra.Command, args []string) {
	ui.Banner()

	// 连接数据库
	db, err := storage.NewDatabase()
	if err != nil {
		ui.Error("数据库连接失败: %v", err)
		return
	}
	defer db.Close()

	if !ui.ConfirmDanger("确认清空复制历史?") {
		ui.Warning("已取消")
		return
	}

	if err := db.ResetAll(); err != nil {
		ui.Error("重置失败: %v", err)
		return
	}
	ui.Success("已清空复制历史")
}
