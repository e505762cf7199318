// Package splitter 训练/测试集切分模块
// 把每个情绪的图片切分为一个固定测试集和若干递增规模的训练集
// 产出目录结构: output/test/<情绪>/ 和 output/train_<N>/<情绪>/
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"emoset/internal/organizer"
	"emoset/internal/scanner"
	"emoset/internal/ui"
)

// ==================== 类型定义 ====================

// Options 切分选项
type Options struct {
	ImageDir   string // 图片源目录
	OutputDir  string // 输出目录
	TrainSizes []int  // 训练集规模序列（如 10,20,30,40,50）
	TestCount  int    // 每个情绪的测试图片数
	DryRun     bool   // 预览模式，不实际复制文件
}

// Plan 单个情绪的切分计划
type Plan struct {
	Emotion string   // 情绪标签
	Test    []string // 测试集图片名
	Train   []string // 训练全集图片名（各 train_N 取其前 N 张）
}

// Result 切分结果统计
type Result struct {
	Copied   int      // 成功复制的图片数（含多个训练集的重复复制）
	Missing  int      // 源图片不存在的数量
	Skipped  []string // 图片不足被跳过的情绪
	Emotions int      // 实际切分的情绪数
}

// ==================== 计划生成函数 ====================

// maxSize 返回训练集规模序列中的最大值
func maxSize(sizes []int) int {
	max := 0
	for _, s := range sizes {
		if s > max {
			max = s
		}
	}
	return max
}

// BuildPlans 为每个情绪生成切分计划
// 图片名先排序保证可复现，然后取前 (最大训练规模+测试数) 张：
// 末尾 TestCount 张作为测试集，其余作为训练全集
// 图片不足的情绪跳过并记入 Result.Skipped
func BuildPlans(byEmotion map[string][]string, opts Options) ([]Plan, []string) {
	need := maxSize(opts.TrainSizes) + opts.TestCount

	// 情绪名排序，保证输出顺序稳定
	emotions := make([]string, 0, len(byEmotion))
	for e := range byEmotion {
		emotions = append(emotions, e)
	}
	sort.Strings(emotions)

	var plans []Plan
	var skipped []string

	for _, emotion := range emotions {
		// 去重后排序，保持切分的一致性
		images := dedup(byEmotion[emotion])
		sort.Strings(images)

		if len(images) < need {
			skipped = append(skipped, emotion)
			ui.Warning("情绪 %s 只有 %d 张图片，至少需要 %d 张，已跳过", emotion, len(images), need)
			continue
		}

		// 取前 need 张：末尾 TestCount 张做测试，其余做训练全集
		selected := images[:need]
		plans = append(plans, Plan{
			Emotion: emotion,
			Test:    selected[len(selected)-opts.TestCount:],
			Train:   selected[:len(selected)-opts.TestCount],
		})
	}

	return plans, skipped
}

// dedup 去除重复图片名，保持首次出现的顺序
func dedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// ==================== 执行函数 ====================

// Execute 执行切分计划
// 复制测试集到 test/<情绪>/，每个训练规模 N 复制训练全集的前 N 张
// 到 train_<N>/<情绪>/。源图片缺失只报告不中断
func Execute(plans []Plan, idx *scanner.Index, opts Options) (*Result, error) {
	result := &Result{Emotions: len(plans)}

	for _, plan := range plans {
		// ===== 测试集 =====
		testDir := filepath.Join(opts.OutputDir, "test", plan.Emotion)
		if err := copySet(plan.Test, testDir, idx, opts, result); err != nil {
			return result, err
		}

		// ===== 各规模训练集 =====
		for _, size := range opts.TrainSizes {
			if size > len(plan.Train) {
				size = len(plan.Train)
			}
			trainDir := filepath.Join(opts.OutputDir, fmt.Sprintf("train_%d", size), plan.Emotion)
			if err := copySet(plan.Train[:size], trainDir, idx, opts, result); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// copySet 把一组图片复制到目标目录
// 目录创建失败视为致命错误，单张缺失只计数
func copySet(names []string, dir string, idx *scanner.Index, opts Options, result *Result) error {
	if opts.DryRun {
		result.Copied += len(names)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("无法创建目录 %s: %w", dir, err)
	}

	for _, name := range names {
		src, ok := idx.Resolve(name)
		if !ok {
			result.Missing++
			ui.Warning("图片不存在: %s", name)
			continue
		}
		if err := organizer.CopyFile(src, filepath.Join(dir, name)); err != nil {
			result.Missing++
			ui.Error("复制失败 %s: %v", name, err)
			continue
		}
		result.Copied++
	}
	return nil
}
