// Package organizer 图片归类模块
// 负责按标注记录把图片复制到输出目录下的情绪子目录
// 支持每情绪配额、预览模式和复制历史记录
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"

	"emoset/internal/labels"
	"emoset/internal/scanner"
	"emoset/internal/storage"
	"emoset/internal/ui"
)

// ==================== 类型定义 ====================

// Options 归类选项
type Options struct {
	ImageDir  string            // 图片源目录
	OutputDir string            // 输出目录（情绪子目录建在其下）
	Limit     int               // 每个情绪最多复制的图片数，0 表示不限
	DryRun    bool              // 预览模式，不实际复制文件
	Verbose   bool              // 详细输出模式
	History   bool              // 是否记录复制历史（用于撤销）
	DB        *storage.Database // 复制历史数据库，为空时按配置路径打开
}

// Result 归类结果统计
type Result struct {
	BatchID    string         // 本次整理的批次 ID
	Copied     int            // 成功复制的图片数
	Quota      int            // 达到配额被跳过的记录数
	Missing    int            // 源图片不存在的记录数
	Failed     int            // 复制失败的图片数
	PerEmotion map[string]int // 每个情绪成功复制的数量
}

// Total 计算处理过的记录总数
func (r *Result) Total() int {
	return r.Copied + r.Quota + r.Missing + r.Failed
}

// ==================== 核心归类函数 ====================

// Organize 执行图片归类
// 按记录的输入顺序处理：
//  1. 配额已满的情绪直接跳过该记录
//  2. 在图片索引中解析图片名，找不到则报告并继续
//  3. 懒创建情绪子目录，把图片字节级复制进去
//  4. 复制成功后才累加该情绪的计数器
//
// 源图片缺失等单条错误只报告不中断；输出目录不可写视为致命错误
func Organize(records []labels.Record, idx *scanner.Index, opts Options) (*Result, error) {
	result := &Result{PerEmotion: make(map[string]int)}

	// 生成批次 ID（用于撤销功能）
	result.BatchID = time.Now().Format("20060102_150405")

	// 输出目录必须可创建，否则整个运行没有意义
	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建输出目录 %s: %w", opts.OutputDir, err)
		}
	}

	// 初始化数据库连接（用于记录复制历史）
	// 外部注入的连接由调用方负责关闭，这里只关闭自己打开的
	var db *storage.Database
	ownDB := false
	if opts.History && !opts.DryRun {
		db = opts.DB
		if db == nil {
			var err error
			db, err = storage.NewDatabase()
			if err != nil {
				ui.Warning("无法记录复制历史: %v", err)
				db = nil // 继续执行，但无法撤销
			} else {
				ownDB = true
			}
		}
	}
	defer func() {
		if ownDB && db != nil {
			db.Close()
		}
	}()

	// 创建进度条（详细模式下逐条打印，不显示进度条）
	var bar *progressbar.ProgressBar
	if !opts.Verbose && !opts.DryRun {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("  复制中"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
		)
	}

	// 每个情绪已复制的计数器
	counts := make(map[string]int)
	// 已创建的情绪子目录，避免重复 MkdirAll
	madeDirs := make(map[string]bool)

	// 按 CSV 行序逐条处理
	for _, r := range records {
		if bar != nil {
			bar.Add(1)
		}

		// ===== 1. 配额检查 =====
		if opts.Limit > 0 && counts[r.Emotion] >= opts.Limit {
			result.Quota++
			if opts.Verbose {
				fmt.Printf("  %s %s %s\n", ui.StatusIcon("quota"), r.Name, ui.Gray("(配额已满)"))
			}
			continue
		}

		// ===== 2. 解析源图片路径 =====
		src, ok := idx.Resolve(r.Name)
		if !ok {
			// 索引未命中时再按路径拼接探测一次，兼容索引建立后新增的文件
			probe := filepath.Join(opts.ImageDir, r.Name)
			if _, err := os.Stat(probe); err != nil {
				result.Missing++
				ui.Warning("图片不存在: %s", r.Name)
				continue
			}
			src = probe
		}

		// 预览模式：只计数，不复制
		if opts.DryRun {
			counts[r.Emotion]++
			result.Copied++
			result.PerEmotion[r.Emotion]++
			continue
		}

		// ===== 3. 懒创建情绪子目录 =====
		emotionDir := filepath.Join(opts.OutputDir, r.Emotion)
		if !madeDirs[emotionDir] {
			if err := os.MkdirAll(emotionDir, 0755); err != nil {
				return result, fmt.Errorf("无法创建目录 %s: %w", emotionDir, err)
			}
			madeDirs[emotionDir] = true
		}

		// ===== 4. 复制图片 =====
		dst := filepath.Join(emotionDir, r.Name)
		if err := CopyFile(src, dst); err != nil {
			result.Failed++
			ui.Error("复制失败 %s: %v", r.Name, err)
			// 记录失败的操作
			if db != nil {
				db.AddCopyLog(result.BatchID, src, dst, r.Name, r.Emotion, "failed")
			}
			continue
		}

		// 复制成功后才累加计数器
		counts[r.Emotion]++
		result.Copied++
		result.PerEmotion[r.Emotion]++

		if opts.Verbose {
			fmt.Printf("  %s %s %s %s\n", ui.StatusIcon("copied"), r.Name, ui.Gray("→"), ui.Gray(r.Emotion+"/"))
		}

		// 记录成功的操作（用于撤销）
		if db != nil {
			db.AddCopyLog(result.BatchID, src, dst, r.Name, r.Emotion, "success")
		}
	}

	return result, nil
}

// ==================== 结果展示函数 ====================

// PrintResult 打印归类结果
// 显示总体统计和每个情绪的复制数量
func PrintResult(result *Result, dryRun bool) {
	fmt.Println()
	if dryRun {
		ui.Warning("预览模式 - 未执行实际复制")
	}
	ui.Info("处理: %d 条记录", result.Total())
	ui.Success("复制: %d 张图片", result.Copied)
	if result.Quota > 0 {
		ui.Info("配额跳过: %d 条", result.Quota)
	}
	if result.Missing > 0 {
		ui.Warning("缺失图片: %d 张", result.Missing)
	}
	if result.Failed > 0 {
		ui.Error("复制失败: %d 张", result.Failed)
	}

	// 按情绪名排序显示分布
	if len(result.PerEmotion) > 0 {
		emotions := make([]string, 0, len(result.PerEmotion))
		for e := range result.PerEmotion {
			emotions = append(emotions, e)
		}
		sort.Strings(emotions)

		fmt.Println()
		for _, e := range emotions {
			ui.Info("  📁 %-12s %d 张", e+"/", result.PerEmotion[e])
		}
	}

	if !dryRun && result.Copied > 0 {
		fmt.Println()
		ui.Dim("批次: %s (可用 'emoset undo' 撤销)", result.BatchID)
	}
}

// ==================== 文件操作 ====================

// CopyFile 字节级复制文件
// 目标已存在时直接覆盖（同名同标签的重复行产出相同内容）
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
