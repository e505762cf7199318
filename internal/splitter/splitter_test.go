// Package splitter 训练/测试集切分模块测试
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"emoset/internal/scanner"
)

// names 生成 n 个有序图片名 img_00.jpg ... 的测试辅助函数
func names(n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = fmt.Sprintf("img_%02d.jpg", i)
	}
	return out
}

// TestBuildPlans 验证切分计划：排序、测试集取末尾、不足跳过
func TestBuildPlans(t *testing.T) {
	opts := Options{TrainSizes: []int{2, 4}, TestCount: 2} // 每情绪至少需要6张
	byEmotion := map[string][]string{
		"happy": {"c.jpg", "a.jpg", "b.jpg", "f.jpg", "e.jpg", "d.jpg"},
		"sad":   {"x.jpg", "y.jpg"}, // 不足6张，应跳过
	}

	plans, skipped := BuildPlans(byEmotion, opts)

	if len(plans) != 1 || plans[0].Emotion != "happy" {
		t.Fatalf("计划不符: %v", plans)
	}
	if !reflect.DeepEqual(skipped, []string{"sad"}) {
		t.Errorf("跳过列表不符: %v", skipped)
	}

	// 排序后取前6张：前4张训练全集，末尾2张测试集
	if !reflect.DeepEqual(plans[0].Train, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}) {
		t.Errorf("训练全集不符: %v", plans[0].Train)
	}
	if !reflect.DeepEqual(plans[0].Test, []string{"e.jpg", "f.jpg"}) {
		t.Errorf("测试集不符: %v", plans[0].Test)
	}
}

// TestBuildPlansDedup 验证重复图片名在切分前去重
func TestBuildPlansDedup(t *testing.T) {
	opts := Options{TrainSizes: []int{1}, TestCount: 1}
	byEmotion := map[string][]string{
		"happy": {"a.jpg", "a.jpg", "b.jpg"},
	}

	plans, _ := BuildPlans(byEmotion, opts)
	if len(plans) != 1 {
		t.Fatalf("计划不符: %v", plans)
	}
	if !reflect.DeepEqual(plans[0].Train, []string{"a.jpg"}) || !reflect.DeepEqual(plans[0].Test, []string{"b.jpg"}) {
		t.Errorf("去重后切分不符: train=%v test=%v", plans[0].Train, plans[0].Test)
	}
}

// TestExecute 验证切分执行：目录结构和每个集合的内容
func TestExecute(t *testing.T) {
	imageDir := t.TempDir()
	imgs := names(6)
	for _, name := range imgs {
		if err := os.WriteFile(filepath.Join(imageDir, name), []byte("img:"+name), 0644); err != nil {
			t.Fatalf("创建测试图片失败: %v", err)
		}
	}

	idx, err := scanner.ScanImageDir(imageDir)
	if err != nil {
		t.Fatalf("建立索引失败: %v", err)
	}

	outputDir := filepath.Join(t.TempDir(), "out")
	opts := Options{
		ImageDir:   imageDir,
		OutputDir:  outputDir,
		TrainSizes: []int{2, 4},
		TestCount:  2,
	}

	plans, _ := BuildPlans(map[string][]string{"happy": imgs}, opts)
	result, err := Execute(plans, idx, opts)
	if err != nil {
		t.Fatalf("Execute 返回错误: %v", err)
	}

	// 测试集2张 + train_2 2张 + train_4 4张
	if result.Copied != 8 {
		t.Errorf("Copied = %d, want 8", result.Copied)
	}

	cases := []struct {
		dir  string
		want int
	}{
		{"test/happy", 2},
		{"train_2/happy", 2},
		{"train_4/happy", 4},
	}
	for _, c := range cases {
		entries, err := os.ReadDir(filepath.Join(outputDir, c.dir))
		if err != nil {
			t.Errorf("读取 %s 失败: %v", c.dir, err)
			continue
		}
		if len(entries) != c.want {
			t.Errorf("%s 有 %d 个文件, want %d", c.dir, len(entries), c.want)
		}
	}

	// 测试集是排序后的末尾两张
	if _, err := os.Stat(filepath.Join(outputDir, "test", "happy", "img_05.jpg")); err != nil {
		t.Errorf("测试集缺少 img_05.jpg: %v", err)
	}
	// train_2 是最前两张
	if _, err := os.Stat(filepath.Join(outputDir, "train_2", "happy", "img_00.jpg")); err != nil {
		t.Errorf("train_2 缺少 img_00.jpg: %v", err)
	}
}

// TestExecuteMissing 验证源图片缺失只计数不中断
func TestExecuteMissing(t *testing.T) {
	imageDir := t.TempDir()
	os.WriteFile(filepath.Join(imageDir, "a.jpg"), []byte("x"), 0644)

	idx, err := scanner.ScanImageDir(imageDir)
	if err != nil {
		t.Fatalf("建立索引失败: %v", err)
	}

	outputDir := filepath.Join(t.TempDir(), "out")
	opts := Options{ImageDir: imageDir, OutputDir: outputDir, TrainSizes: []int{1}, TestCount: 1}

	// 计划直接引用一张不存在的图片
	plans := []Plan{{Emotion: "happy", Train: []string{"a.jpg"}, Test: []string{"ghost.jpg"}}}
	result, err := Execute(plans, idx, opts)
	if err != nil {
		t.Fatalf("Execute 返回错误: %v", err)
	}
	if result.Missing != 1 || result.Copied != 1 {
		t.Errorf("Missing=%d Copied=%d, want 1/1", result.Missing, result.Copied)
	}
}

// TestExecuteDryRun 验证预览模式不创建任何文件
func TestExecuteDryRun(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "out")
	opts := Options{OutputDir: outputDir, TrainSizes: []int{1}, TestCount: 1, DryRun: true}

	plans := []Plan{{Emotion: "happy", Train: []string{"a.jpg"}, Test: []string{"b.jpg"}}}
	result, err := Execute(plans, nil, opts)
	if err != nil {
		t.Fatalf("Execute 返回错误: %v", err)
	}
	if result.Copied != 2 {
		t.Errorf("Copied = %d, want 2", result.Copied)
	}
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Error("预览模式不应创建输出目录")
	}
}
