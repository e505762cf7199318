// Package storage 数据存储模块测试
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package storage

import (
	"path/filepath"
	"testing"
)

// openTestDB 在临时目录中打开数据库的测试辅助函数
func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("打开数据库失败: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestAddAndGetBatchLogs 验证复制日志的写入和按批次读取
func TestAddAndGetBatchLogs(t *testing.T) {
	db := openTestDB(t)

	if err := db.AddCopyLog("20260101_120000", "/src/a.jpg", "/out/happy/a.jpg", "a.jpg", "happy", "success"); err != nil {
		t.Fatalf("AddCopyLog 返回错误: %v", err)
	}
	if err := db.AddCopyLog("20260101_120000", "/src/b.jpg", "/out/sad/b.jpg", "b.jpg", "sad", "success"); err != nil {
		t.Fatalf("AddCopyLog 返回错误: %v", err)
	}
	// 失败的记录不应出现在批次日志中
	db.AddCopyLog("20260101_120000", "/src/c.jpg", "/out/sad/c.jpg", "c.jpg", "sad", "failed")

	logs, err := db.GetBatchLogs("20260101_120000")
	if err != nil {
		t.Fatalf("GetBatchLogs 返回错误: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("日志条数 = %d, want 2", len(logs))
	}
	if logs[0].Filename != "a.jpg" || logs[0].Emotion != "happy" {
		t.Errorf("首条日志不符: %+v", logs[0])
	}

	// 按状态统计应同时覆盖成功与失败的记录
	if n, err := db.CountLogs("20260101_120000", "success"); err != nil || n != 2 {
		t.Errorf("CountLogs(success) = %d, %v, want 2", n, err)
	}
	if n, err := db.CountLogs("20260101_120000", "failed"); err != nil || n != 1 {
		t.Errorf("CountLogs(failed) = %d, %v, want 1", n, err)
	}
}

// TestGetLatestBatch 验证最近批次的获取
func TestGetLatestBatch(t *testing.T) {
	db := openTestDB(t)

	if got := db.GetLatestBatch(); got != "" {
		t.Errorf("空库应返回空批次, got %q", got)
	}

	db.AddCopyLog("batch_1", "/src/a.jpg", "/out/happy/a.jpg", "a.jpg", "happy", "success")
	if got := db.GetLatestBatch(); got != "batch_1" {
		t.Errorf("GetLatestBatch = %q, want batch_1", got)
	}
}

// TestMarkBatchUndone 验证撤销标记后批次不再可撤销
func TestMarkBatchUndone(t *testing.T) {
	db := openTestDB(t)
	db.AddCopyLog("batch_1", "/src/a.jpg", "/out/happy/a.jpg", "a.jpg", "happy", "success")

	if err := db.MarkBatchUndone("batch_1"); err != nil {
		t.Fatalf("MarkBatchUndone 返回错误: %v", err)
	}

	logs, _ := db.GetBatchLogs("batch_1")
	if len(logs) != 0 {
		t.Errorf("已撤销批次不应返回日志: %v", logs)
	}
	if got := db.GetLatestBatch(); got != "" {
		t.Errorf("已撤销后不应有最近批次, got %q", got)
	}
}

// TestGetRecentBatches 验证批次列表的聚合
func TestGetRecentBatches(t *testing.T) {
	db := openTestDB(t)
	db.AddCopyLog("batch_1", "/src/a.jpg", "/out/happy/a.jpg", "a.jpg", "happy", "success")
	db.AddCopyLog("batch_1", "/src/b.jpg", "/out/sad/b.jpg", "b.jpg", "sad", "success")

	batches, err := db.GetRecentBatches(10)
	if err != nil {
		t.Fatalf("GetRecentBatches 返回错误: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("批次数 = %d, want 1", len(batches))
	}
	if batches[0]["file_count"].(int) != 2 {
		t.Errorf("批次文件数不符: %v", batches[0])
	}
}

// TestGetStatistics 验证统计信息的聚合
func TestGetStatistics(t *testing.T) {
	db := openTestDB(t)
	db.AddCopyLog("batch_1", "/src/a.jpg", "/out/happy/a.jpg", "a.jpg", "happy", "success")
	db.AddCopyLog("batch_1", "/src/b.jpg", "/out/happy/b.jpg", "b.jpg", "happy", "success")
	db.AddCopyLog("batch_2", "/src/c.jpg", "/out/sad/c.jpg", "c.jpg", "sad", "success")

	stats, err := db.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics 返回错误: %v", err)
	}
	if stats["total_copied"].(int) != 3 {
		t.Errorf("total_copied = %v, want 3", stats["total_copied"])
	}
	if stats["batch_count"].(int) != 2 {
		t.Errorf("batch_count = %v, want 2", stats["batch_count"])
	}
	dist := stats["emotion_distribution"].(map[string]int)
	if dist["happy"] != 2 || dist["sad"] != 1 {
		t.Errorf("情绪分布不符: %v", dist)
	}
}

// TestResetAll 验证清空复制历史
func TestResetAll(t *testing.T) {
	db := openTestDB(t)
	db.AddCopyLog("batch_1", "/src/a.jpg", "/out/happy/a.jpg", "a.jpg", "happy", "success")

	if err := db.ResetAll(); err != nil {
		t.Fatalf("ResetAll 返回错误: %v", err)
	}

	stats, _ := db.GetStatistics()
	if stats["total_copied"].(int) != 0 {
		t.Errorf("重置后 total_copied = %v, want 0", stats["total_copied"])
	}
}
