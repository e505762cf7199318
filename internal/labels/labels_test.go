// Package labels 标注加载模块测试
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package labels

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeCSV 写临时 CSV 文件的测试辅助函数
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试 CSV 失败: %v", err)
	}
	return path
}

// TestLoad 验证基本加载：跳过表头、保持行序、规范化标签
func TestLoad(t *testing.T) {
	path := writeCSV(t, "image,emotion\n001.jpg,happy\n002.jpg, SAD \n003.jpg,happy\n")

	result, err := Load(path)
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}

	want := []Record{
		{Name: "001.jpg", Emotion: "happy"},
		{Name: "002.jpg", Emotion: "sad"}, // 去空格并转小写
		{Name: "003.jpg", Emotion: "happy"},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Errorf("记录不符\n got: %v\nwant: %v", result.Records, want)
	}
	if result.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", result.Skipped)
	}
}

// TestLoadThreeColumns 验证带行号列的三列格式取第2、3列
func TestLoadThreeColumns(t *testing.T) {
	path := writeCSV(t, "index,image,emotion\n0,001.jpg,happy\n1,002.jpg,Sadness\n")

	result, err := Load(path)
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}

	want := []Record{
		{Name: "001.jpg", Emotion: "happy"},
		{Name: "002.jpg", Emotion: "sadness"},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Errorf("记录不符\n got: %v\nwant: %v", result.Records, want)
	}
}

// TestLoadSkipsMalformedRows 验证字段不足的行被跳过并计数
func TestLoadSkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, "image,emotion\nonly-one-field\n001.jpg,happy\n")

	result, err := Load(path)
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(result.Records) != 1 || result.Records[0].Name != "001.jpg" {
		t.Errorf("有效记录不符: %v", result.Records)
	}
}

// TestLoadMissingFile 验证文件不存在时返回错误
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("期望返回错误，实际为 nil")
	}
}

// TestMergeSecondary 验证副 CSV 合并：别名映射、情绪过滤和去重
func TestMergeSecondary(t *testing.T) {
	primary := []Record{
		{Name: "001.jpg", Emotion: "happy"},
		{Name: "002.jpg", Emotion: "sad"},
	}
	secondary := []Record{
		{Name: "003.jpg", Emotion: "happiness"}, // 别名映射到 happy
		{Name: "001.jpg", Emotion: "happy"},     // 与主记录重名，丢弃
		{Name: "004.jpg", Emotion: "angry"},     // 主记录中没有的情绪，丢弃
		{Name: "005.jpg", Emotion: "sad"},
	}
	aliases := map[string]string{"happiness": "happy", "sadness": "sad"}

	merged := MergeSecondary(primary, secondary, aliases)

	want := []Record{
		{Name: "001.jpg", Emotion: "happy"},
		{Name: "002.jpg", Emotion: "sad"},
		{Name: "003.jpg", Emotion: "happy"},
		{Name: "005.jpg", Emotion: "sad"},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("合并结果不符\n got: %v\nwant: %v", merged, want)
	}
}

// TestDistribution 验证情绪分布统计
func TestDistribution(t *testing.T) {
	records := []Record{
		{Name: "a.jpg", Emotion: "happy"},
		{Name: "b.jpg", Emotion: "sad"},
		{Name: "c.jpg", Emotion: "happy"},
	}
	dist := Distribution(records)
	if dist["happy"] != 2 || dist["sad"] != 1 {
		t.Errorf("分布不符: %v", dist)
	}
}

// TestGroupByEmotion 验证按情绪分组，组内保持原始顺序
func TestGroupByEmotion(t *testing.T) {
	records := []Record{
		{Name: "b.jpg", Emotion: "happy"},
		{Name: "a.jpg", Emotion: "happy"},
		{Name: "c.jpg", Emotion: "sad"},
	}
	groups := GroupByEmotion(records)
	if !reflect.DeepEqual(groups["happy"], []string{"b.jpg", "a.jpg"}) {
		t.Errorf("happy 组不符: %v", groups["happy"])
	}
	if !reflect.DeepEqual(groups["sad"], []string{"c.jpg"}) {
		t.Errorf("sad 组不符: %v", groups["sad"])
	}
}
