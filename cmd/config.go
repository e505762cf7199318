// Package cmd 命令行入口模块
// config.go - 配置管理命令，用于查看和修改 Emoset 配置
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"emoset/internal/config"
	"emoset/internal/labels"
	"emoset/internal/ui"
)

// 配置选项标志
var (
	addAlias      string // 添加情绪别名，格式 from=to
	setTestCount  int    // 设置 split 的测试图片数
	setSizes      []int  // 设置 split 的训练集规模序列
	toggleHistory bool   // 切换历史记录开关
)

// configCmd 配置管理命令定义
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置管理",
	Long:  "查看或修改 Emoset 配置",
	Run:   runConfig,
}

// init 注册 config 子命令及其标志
func init() {
	configCmd.Flags().StringVar(&addAlias, "add-alias", "", "添加情绪别名（格式: sadness=sad）")
	configCmd.Flags().IntVar(&setTestCount, "test-count", 0, "设置每情绪测试图片数 (1-100)")
	configCmd.Flags().IntSliceVar(&setSizes, "sizes", nil, "设置训练集规模序列")
	configCmd.Flags().BoolVar(&toggleHistory, "toggle-history", false, "切换历史记录开关")
	rootCmd.AddCommand(configCmd)
}

// runConfig 执行配置命令
// 如果没有设置选项，显示当前配置；否则修改配置
func runConfig(cmd *cobra.Command, args []string) {
	ui.Banner()
	cfg := config.Get()

	// 检查是否有设置选项
	hasChanges := false

	// 添加情绪别名
	if addAlias != "" {
		parts := strings.SplitN(addAlias, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			ui.Error("别名格式错误，应为 from=to（如 sadness=sad）")
			return
		}
		from := labels.Normalize(parts[0])
		to := labels.Normalize(parts[1])
		if cfg.EmotionAliases == nil {
			cfg.EmotionAliases = make(map[string]string)
		}
		cfg.EmotionAliases[from] = to
		ui.Success("已添加别名: %s → %s", from, to)
		hasChanges = true
	}

	// 设置测试图片数
	if setTestCount > 0 {
		if setTestCount > 100 {
			ui.Error("测试图片数必须在 1 到 100 之间")
			return
		}
		cfg.TestCount = setTestCount
		ui.Success("测试图片数已设置为: %d", setTestCount)
		hasChanges = true
	}

	// 设置训练集规模序列
	if len(setSizes) > 0 {
		for _, size := range setSizes {
			if size <= 0 {
				ui.Error("训练集规模必须为正整数")
				return
			}
		}
		cfg.TrainSizes = setSizes
		ui.Success("训练集规模已设置为: %v", setSizes)
		hasChanges = true
	}

	// 切换历史记录
	if toggleHistory {
		cfg.EnableHistory = !cfg.EnableHistory
		status := "开启"
		if !cfg.EnableHistory {
			status = "关闭"
		}
		ui.Success("历史记录已%s", status)
		hasChanges = true
	}

	// 如果有更改，保存配置
	if hasChanges {
		if err := cfg.Save(); err != nil {
			ui.Error("保存配置失败: %v", err)
		} else {
			ui.Success("配置已保存")
		}
		return
	}

	// 没有设置选项，显示当前配置
	showConfig(cfg)
}

// showConfig 显示当前配置
func showConfig(cfg *config.Config) {
	ui.Title("⚙️", "当前配置")
	ui.Divider()

	fmt.Println()
	ui.Info("标签配置:")
	if len(cfg.EmotionAliases) == 0 {
		ui.Info("  情绪别名:      (无)")
	} else {
		ui.Info("  情绪别名:")
		for from, to := range cfg.EmotionAliases {
			ui.Info("    %-12s → %s", from, to)
		}
	}

	fmt.Println()
	ui.Info("切分配置:")
	ui.Info("  训练集规模:    %v", cfg.TrainSizes)
	ui.Info("  测试图片数:    %d", cfg.TestCount)
	ui.Info("  每情绪最少:    %d 张", cfg.MinImagesPerEmotion())

	fmt.Println()
	ui.Info("历史配置:")
	history := "开启"
	if !cfg.EnableHistory {
		history = "关闭"
	}
	ui.Info("  历史记录:      %s", history)

	fmt.Println()
	ui.Info("数据路径:")
	ui.Info("  数据目录:      %s", cfg.DataDir)
	ui.Info("  数据库文件:    %s", cfg.DBPath)

	fmt.Println()
	ui.Dim("修改配置示例:")
	ui.Dim("  emoset config --add-alias sadness=sad")
	ui.Dim("  emoset config --test-count 10")
	ui.Dim("  emoset config --sizes 10,20,30,40,50")
	ui.Dim("  emoset config --toggle-history")
}
