// Package cmd 命令行入口模块
// 提供 emoset 的所有命令行功能，包括图片归类、切分、统计等
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
	"emoset/internal/organizer"
	"emoset/internal/scanner"
	"emoset/internal/ui"
)

// 命令行参数变量
var (
	imageDir     string // 图片源目录
	csvPath      string // 主 CSV 标注文件路径
	outputDir    string // 输出目录，情绪子目录建在其下
	secondaryCSV string // 副 CSV 标注文件路径（可选）
	numPerLabel  int    // 每个情绪最多复制的图片数，0 表示不限
	dryRun       bool   // 预览模式，不实际复制文件
	verbose      bool   // 详细输出模式
	noHistory    bool   // 本次运行不记录复制历史
)

// rootCmd 根命令定义
// 按 CSV 标注把图片归入输出目录下的情绪子目录
var rootCmd = &cobra.Command{
	Use:   "emoset",
	Short: "emoset - 表情数据集整理，标注即归档",
	Long: ui.Cyan(`
  ███████╗███╗   ███╗ ██████╗ ███████╗███████╗████████╗
  ██╔════╝████╗ ████║██╔═══██╗██╔════╝██╔════╝╚══██╔══╝
  █████╗  ██╔████╔██║██║   ██║███████╗█████╗     ██║
  ██╔══╝  ██║╚██╔╝██║██║   ██║╚════██║██╔══╝     ██║
  ███████╗██║ ╚═╝ ██║╚██████╔╝███████║███████╗   ██║
  ╚══════╝╚═╝     ╚═╝ ╚═════╝ ╚══════╝╚══════╝   ╚═╝   `) + `

  表情数据集整理 · 标注即归档  v` + config.Version + `

  🗂️ 按 CSV 标注归入情绪子目录
  🔢 可选的每情绪复制配额
  ⏪ 复制历史可撤销

示例:
  emoset -i ./images -c labels.csv -o ./dataset          # 全量归类
  emoset -i ./images -c labels.csv -o ./dataset -n 50    # 每个情绪最多50张
  emoset -i ./images -c labels.csv -o ./dataset --dry-run # 预览模式
  emoset check -i ./images -c labels.csv                 # 检查标注与图片
  emoset split -i ./images -c labels.csv -o ./dataset    # 训练/测试集切分
  emoset undo                                            # 撤销最近一次整理
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOrganize,
}

// init 初始化命令行参数
func init() {
	// 注册命令行标志
	rootCmd.Flags().StringVarP(&imageDir, "image_dir", "i", "", "图片源目录（必填）")
	rootCmd.Flags().StringVarP(&csvPath, "csv_path", "c", "", "CSV 标注文件路径（必填）")
	rootCmd.Flags().StringVarP(&outputDir, "output_dir", "o", "", "输出目录（必填）")
	rootCmd.Flags().IntVarP(&numPerLabel, "num_images_per_emotion", "n", 0, "每个情绪最多复制的图片数，0 表示不限")
	rootCmd.Flags().StringVarP(&secondaryCSV, "secondary_csv", "s", "", "副 CSV 标注文件路径（可选）")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "预览模式")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "详细输出")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "不记录复制历史")

	rootCmd.MarkFlagRequired("image_dir")
	rootCmd.MarkFlagRequired("csv_path")
	rootCmd.MarkFlagRequired("output_dir")
}

// Execute 执行根命令
// 这是程序的主入口，由 main.go 调用
// 致命错误（配置错误、标注文件不可读等）以非零退出码结束进程
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Red("✗"), err)
		os.Exit(1)
	}
}

// runOrganize 执行图片归类的核心逻辑
// 整体流程：校验参数 -> 加载标注 -> 索引图片目录 -> 归类复制
func runOrganize(cmd *cobra.Command, args []string) error {
	// 显示启动横幅
	ui.Banner()

	// ========== 步骤1: 校验参数 ==========
	if numPerLabel < 0 {
		return fmt.Errorf("每情绪图片数必须为正整数: %d", numPerLabel)
	}
	info, err := os.Stat(imageDir)
	if err != nil {
		return fmt.Errorf("图片目录不存在: %s", imageDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("不是目录: %s", imageDir)
	}

	// ========== 步骤2: 加载标注 ==========
	records, err := loadRecords(csvPath, secondaryCSV)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.Warning("标注文件中没有有效记录")
		return nil
	}

	// ========== 步骤3: 索引图片目录 ==========
	idx, err := scanner.ScanImageDir(imageDir)
	if err != nil {
		return fmt.Errorf("无法读取图片目录 %s: %w", imageDir, err)
	}

	// 显示整理计划
	limitLine := "不限"
	if numPerLabel > 0 {
		limitLine = fmt.Sprintf("每个情绪最多 %d 张", numPerLabel)
	}
	dist := labels.Distribution(records)
	ui.Box("📋 整理计划", []string{
		fmt.Sprintf("📄 标注: %d 条", len(records)),
		fmt.Sprintf("😀 情绪: %d 种", len(dist)),
		fmt.Sprintf("🖼️ 图片: %d 张", idx.Count),
		fmt.Sprintf("🔢 配额: %s", limitLine),
		fmt.Sprintf("📂 输出: %s", outputDir),
	})

	// ========== 步骤4: 归类复制 ==========
	cfg := config.Get()
	result, err := organizer.Organize(records, idx, organizer.Options{
		ImageDir:  imageDir,
		OutputDir: outputDir,
		Limit:     numPerLabel,
		DryRun:    dryRun,
		Verbose:   verbose,
		History:   cfg.EnableHistory && !noHistory,
	})
	if err != nil {
		return err
	}

	organizer.PrintResult(result, dryRun)
	return nil
}

// loadRecords 加载主 CSV，并在指定了副 CSV 时合并
// 标注文件缺失或不可读是致命错误
func loadRecords(primaryPath, secondaryPath string) ([]labels.Record, error) {
	primary, err := labels.Load(primaryPath)
	if err != nil {
		return nil, err
	}
	if primary.Skipped > 0 {
		ui.Warning("主标注文件中 %d 行字段不足，已跳过", primary.Skipped)
	}

	if secondaryPath == "" {
		return primary.Records, nil
	}

	secondary, err := labels.Load(secondaryPath)
	if err != nil {
		return nil, err
	}
	if secondary.Skipped > 0 {
		ui.Warning("副标注文件中 %d 行字段不足，已跳过", secondary.Skipped)
	}

	merged := labels.MergeSecondary(primary.Records, secondary.Records, config.Get().EmotionAliases)
	ui.Info("副标注合并: 新增 %d 条记录", len(merged)-len(primary.Records))
	return merged, nil
}
