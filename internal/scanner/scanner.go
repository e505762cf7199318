// Package scanner 图片目录扫描模块
// 建立图片目录的文件名索引，用于快速解析标注中的图片名
// 自动过滤隐藏文件和系统文件
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"emoset/internal/ui"
)

// ==================== 类型定义 ====================

// Index 图片目录索引
// 一次扫描建立文件名到完整路径的映射，之后的按名查找都在内存完成
type Index struct {
	Dir       string            // 被索引的目录
	ByName    map[string]string // 文件名 -> 完整路径
	Count     int               // 文件总数
	TotalSize int64             // 总大小（字节）
	ExtCounts map[string]int    // 按扩展名统计的文件数
}

// skipNames 需要跳过的文件名
// 包括系统文件和版本控制目录
var skipNames = map[string]bool{
	".DS_Store":    true, // macOS 系统文件
	"Thumbs.db":    true, // Windows 缩略图缓存
	"desktop.ini":  true, // Windows 文件夹配置
	"$RECYCLE.BIN": true, // Windows 回收站
	".git":         true, // Git 版本控制
	".emoset":      true, // Emoset 数据目录
}

// ==================== 核心扫描函数 ====================

// ScanImageDir 扫描图片目录并建立索引
// 只扫描第一层（标注引用的是扁平目录中的文件名），跳过子目录、
// 隐藏文件及 skipNames 中的系统文件
func ScanImageDir(dir string) (*Index, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Dir:       absDir,
		ByName:    make(map[string]string),
		ExtCounts: make(map[string]int),
	}

	for _, entry := range entries {
		name := entry.Name()

		// 跳过子目录、隐藏文件和系统文件
		if entry.IsDir() || strings.HasPrefix(name, ".") || skipNames[name] {
			continue
		}

		idx.ByName[name] = filepath.Join(absDir, name)
		idx.Count++

		if info, err := entry.Info(); err == nil {
			idx.TotalSize += info.Size()
		}

		// 扩展名统计（转小写，无扩展名单独归类）
		ext := strings.ToLower(filepath.Ext(name))
		if ext == "" {
			ext = "(无扩展名)"
		}
		idx.ExtCounts[ext]++
	}

	return idx, nil
}

// Resolve 按图片名解析完整路径
// 返回 ok=false 表示图片目录中没有这个文件
func (idx *Index) Resolve(name string) (string, bool) {
	path, ok := idx.ByName[name]
	return path, ok
}

// ==================== 统计函数 ====================

// PrintStatistics 打印索引的统计信息
// 以美观的格式显示文件数、总大小和类型分布
func (idx *Index) PrintStatistics() {
	ui.Title("📊", "图片目录统计")
	ui.Divider()

	ui.Info("📂 目录:   %s", idx.Dir)
	ui.Info("🖼️ 图片:   %d 个", idx.Count)
	ui.Info("💾 总大小: %s", ui.FormatSize(idx.TotalSize))

	// 按扩展名统计（如果有数据）
	if len(idx.ExtCounts) > 0 {
		ui.Info("")
		ui.Info("按类型统计:")

		// 按数量排序
		type kv struct {
			Ext   string
			Count int
		}
		var sorted []kv
		for k, v := range idx.ExtCounts {
			sorted = append(sorted, kv{k, v})
		}
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Count > sorted[j].Count // 按数量降序
		})

		// 显示前12种类型
		for i, kv := range sorted {
			if i >= 12 {
				ui.Dim("  ... 还有 %d 种类型", len(sorted)-12)
				break
			}
			ui.Info("  %-12s %4d 个", kv.Ext, kv.Count)
		}
	}
}
