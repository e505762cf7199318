// Package cmd 命令行入口模块
// split.go - 切分命令，构建固定测试集和递增规模的训练集
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emoset/internal/config"
	"emoset/internal/labels"
	"emoset/internal/scanner"
	"emoset/internal/splitter"
	"emoset/internal/ui"
)

// split 命令行参数
var (
	splitImageDir  string // 图片源目录
	splitCSVPath   string // 主 CSV 标注文件路径
	splitOutputDir string // 输出目录
	splitSecondary string // 副 CSV 标注文件路径（可选）
	splitSizes     []int  // 训练集规模序列
	splitTestCount int    // 每个情绪的测试图片数
	splitDryRun    bool   // 预览模式
)

// splitCmd 切分命令定义
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "训练/测试集切分",
	Long: `把每个情绪的图片切分为一个固定测试集和若干递增规模的训练集。

图片名排序后取前 (最大训练规模+测试数) 张：末尾的作为测试集，
其余作为训练全集，每个规模 N 取其前 N 张。图片不足的情绪跳过。

产出目录结构:
  output/test/<情绪>/
  output/train_<N>/<情绪>/   (每个规模一个)

示例:
  emoset split -i ./images -c labels.csv -o ./dataset
  emoset split -i ./images -c labels.csv -s extra.csv -o ./dataset
  emoset split -i ./images -c labels.csv -o ./dataset --sizes 20,40 --test-count 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSplit,
}

// init 注册 split 子命令及其标志
func init() {
	cfg := config.Get()
	splitCmd.Flags().StringVarP(&splitImageDir, "image_dir", "i", "", "图片源目录（必填）")
	splitCmd.Flags().StringVarP(&splitCSVPath, "csv_path", "c", "", "主 CSV 标注文件路径（必填）")
	splitCmd.Flags().StringVarP(&splitOutputDir, "output_dir", "o", "", "输出目录（必填）")
	splitCmd.Flags().StringVarP(&splitSecondary, "secondary_csv", "s", "", "副 CSV 标注文件路径（可选）")
	splitCmd.Flags().IntSliceVar(&splitSizes, "sizes", cfg.TrainSizes, "训练集规模序列")
	splitCmd.Flags().IntVar(&splitTestCount, "test-count", cfg.TestCount, "每个情绪的测试图片数")
	splitCmd.Flags().BoolVar(&splitDryRun, "dry-run", false, "预览模式")

	splitCmd.MarkFlagRequired("image_dir")
	splitCmd.MarkFlagRequired("csv_path")
	splitCmd.MarkFlagRequired("output_dir")
	rootCmd.AddCommand(splitCmd)
}

// runSplit 执行切分命令
// 整体流程：加载标注 -> 按情绪分组 -> 生成计划 -> 执行复制
func runSplit(cmd *cobra.Command, args []string) error {
	ui.Banner()

	// 校验参数
	if splitTestCount <= 0 {
		return fmt.Errorf("测试图片数必须为正整数: %d", splitTestCount)
	}
	for _, size := range splitSizes {
		if size <= 0 {
			return fmt.Errorf("训练集规模必须为正整数: %d", size)
		}
	}
	if _, err := os.Stat(splitImageDir); err != nil {
		return fmt.Errorf("图片目录不存在: %s", splitImageDir)
	}

	// 加载标注（含可能的副 CSV 合并）
	records, err := loadRecords(splitCSVPath, splitSecondary)
	if err != nil {
		return err
	}

	// 索引图片目录
	idx, err := scanner.ScanImageDir(splitImageDir)
	if err != nil {
		return fmt.Errorf("无法读取图片目录 %s: %w", splitImageDir, err)
	}

	opts := splitter.Options{
		ImageDir:   splitImageDir,
		OutputDir:  splitOutputDir,
		TrainSizes: splitSizes,
		TestCount:  splitTestCount,
		DryRun:     splitDryRun,
	}

	// 生成切分计划
	ui.Title("✂️", "生成切分计划")
	plans, skipped := splitter.BuildPlans(labels.GroupByEmotion(records), opts)
	if len(plans) == 0 {
		ui.Warning("没有图片数量达标的情绪，未执行切分")
		return nil
	}
	ui.Success("%d 种情绪达标，%d 种跳过", len(plans), len(skipped))

	// 执行切分
	ui.Title("🚀", "执行切分")
	result, err := splitter.Execute(plans, idx, opts)
	if err != nil {
		return err
	}

	fmt.Println()
	if splitDryRun {
		ui.Warning("预览模式 - 未执行实际复制")
	}
	ui.Success("复制: %d 张图片 (%d 种情绪)", result.Copied, result.Emotions)
	if result.Missing > 0 {
		ui.Warning("缺失或失败: %d 张", result.Missing)
	}
	return nil
}
