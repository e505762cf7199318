// Package cmd 命令行入口模块
// check.go - 检查命令，核对标注文件与图片目录是否匹配
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"emoset/internal/labels"
	"emoset/internal/scanner"
	"emoset/internal/ui"
)

// check 命令行参数
var (
	checkImageDir string // 图片源目录
	checkCSVPath  string // CSV 标注文件路径
)

// checkCmd 检查命令定义
var checkCmd = &cobra.Command{
	Use:           "check",
	Short:         "检查标注与图片",
	Long:          "加载标注文件并索引图片目录，报告情绪分布和缺失的图片，不执行复制",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

// init 注册 check 子命令及其标志
func init() {
	checkCmd.Flags().StringVarP(&checkImageDir, "image_dir", "i", "", "图片源目录（必填）")
	checkCmd.Flags().StringVarP(&checkCSVPath, "csv_path", "c", "", "CSV 标注文件路径（必填）")
	checkCmd.MarkFlagRequired("image_dir")
	checkCmd.MarkFlagRequired("csv_path")
	rootCmd.AddCommand(checkCmd)
}

// runCheck 执行检查命令
// 报告每个情绪的标注条数，以及标注中引用但目录里没有的图片
func runCheck(cmd *cobra.Command, args []string) error {
	ui.Banner()

	// 加载标注
	loaded, err := labels.Load(checkCSVPath)
	if err != nil {
		return err
	}
	if loaded.Skipped > 0 {
		ui.Warning("%d 行字段不足，已跳过", loaded.Skipped)
	}

	// 索引图片目录
	idx, err := scanner.ScanImageDir(checkImageDir)
	if err != nil {
		return fmt.Errorf("无法读取图片目录 %s: %w", checkImageDir, err)
	}

	idx.PrintStatistics()

	// ===== 情绪分布 =====
	dist := labels.Distribution(loaded.Records)
	emotions := make([]string, 0, len(dist))
	for e := range dist {
		emotions = append(emotions, e)
	}
	sort.Strings(emotions)

	ui.Title("😀", "情绪分布")
	ui.Divider()
	for _, e := range emotions {
		ui.Info("  %-12s %d 条", e, dist[e])
	}

	// ===== 缺失图片 =====
	missing := 0
	for _, r := range loaded.Records {
		if _, ok := idx.Resolve(r.Name); !ok {
			missing++
			if missing <= 5 {
				ui.Dim("  缺失: %s (%s)", r.Name, r.Emotion)
			}
		}
	}

	fmt.Println()
	if missing == 0 {
		ui.Success("标注引用的图片全部存在")
	} else {
		if missing > 5 {
			ui.Dim("  ... 还有 %d 张缺失", missing-5)
		}
		ui.Warning("共 %d 条标注找不到对应图片", missing)
	}
	return nil
}
