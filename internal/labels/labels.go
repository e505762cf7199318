// Package labels 标注加载模块
// 负责读取 CSV 标注文件，产出按行序排列的 (图片名, 情绪) 记录
// 支持副 CSV 合并、情绪别名映射和去重
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package labels

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ==================== 类型定义 ====================

// Record 标注记录
// 对应 CSV 中的一行：图片文件名 + 情绪标签
type Record struct {
	Name    string // 图片文件名（即图片目录下的文件名）
	Emotion string // 情绪标签（已去空格并转小写）
}

// LoadResult 加载结果
// 除记录列表外，还统计被跳过的畸形行数
type LoadResult struct {
	Records []Record // 有效记录，保持 CSV 行序
	Skipped int      // 字段不足被跳过的行数
}

// ==================== 加载函数 ====================

// Load 读取 CSV 标注文件
// 约定：首行为表头，自动跳过
// 列映射：
//   - 行有3列及以上时取第2、3列（数据集常带一列行号）
//   - 行只有2列时取第1、2列
// 字段不足2列的行按"跳过并计数"策略处理，不中断加载
// 情绪标签统一去空格并转小写，保证大小写不敏感
func Load(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开标注文件 %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // 允许各行列数不同，由下面的列映射处理

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析标注文件 %s 失败: %w", path, err)
	}

	result := &LoadResult{}

	// 跳过表头行
	for i, row := range rows {
		if i == 0 {
			continue
		}

		name, emotion, ok := pickColumns(row)
		if !ok {
			result.Skipped++ // 畸形行：字段不足
			continue
		}

		result.Records = append(result.Records, Record{
			Name:    name,
			Emotion: Normalize(emotion),
		})
	}

	return result, nil
}

// pickColumns 从一行中取出图片名和情绪两列
// 返回 ok=false 表示该行字段不足
func pickColumns(row []string) (name, emotion string, ok bool) {
	switch {
	case len(row) >= 3:
		// 带行号列的三列格式：index, image, emotion
		return row[1], row[2], true
	case len(row) == 2:
		// 两列格式：image, emotion
		return row[0], row[1], true
	default:
		return "", "", false
	}
}

// Normalize 规范化情绪标签
// 去除首尾空白并转为小写
func Normalize(emotion string) string {
	return strings.ToLower(strings.TrimSpace(emotion))
}

// ==================== 合并函数 ====================

// MergeSecondary 将副 CSV 的记录合并到主记录之后
// 规则（保持行序）：
//  1. 副记录的情绪先经过别名映射（如 sadness -> sad）
//  2. 只保留主记录中已出现过的情绪
//  3. 丢弃与主记录同名的图片，避免重复
func MergeSecondary(primary, secondary []Record, aliases map[string]string) []Record {
	// 收集主记录的情绪集合和图片名集合
	validEmotions := make(map[string]bool)
	primaryNames := make(map[string]bool)
	for _, r := range primary {
		validEmotions[r.Emotion] = true
		primaryNames[r.Name] = true
	}

	merged := make([]Record, 0, len(primary)+len(secondary))
	merged = append(merged, primary...)

	for _, r := range secondary {
		// 应用别名映射
		emotion := r.Emotion
		if mapped, ok := aliases[emotion]; ok {
			emotion = mapped
		}

		// 过滤主记录之外的情绪
		if !validEmotions[emotion] {
			continue
		}
		// 去重：主记录已有同名图片
		if primaryNames[r.Name] {
			continue
		}

		merged = append(merged, Record{Name: r.Name, Emotion: emotion})
	}

	return merged
}

// ==================== 统计函数 ====================

// Distribution 统计每个情绪的记录数
// 用于 check 和 stats 命令的分布展示
func Distribution(records []Record) map[string]int {
	dist := make(map[string]int)
	for _, r := range records {
		dist[r.Emotion]++
	}
	return dist
}

// GroupByEmotion 按情绪分组图片名
// 组内保持记录的原始顺序，供 split 命令使用
func GroupByEmotion(records []Record) map[string][]string {
	groups := make(map[string][]string)
	for _, r := range records {
		groups[r.Emotion] = append(groups[r.Emotion], r.Name)
	}
	return groups
}
