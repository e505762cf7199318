// Package storage 数据存储模块
// 提供 SQLite 数据库的封装，用于持久化存储复制历史
// 复制历史支撑 undo（撤销整理）和 stats（分布统计）两个命令
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset
package storage

import (
	"database/sql"
	"time"

	// 使用纯 Go 实现的 SQLite 驱动，无需 CGO
	_ "modernc.org/sqlite"

	"emoset/internal/config"
)

// Database 数据库管理器
// 封装 SQLite 数据库连接，提供复制历史的所有数据操作接口
// 采用 WAL 模式提升并发性能
type Database struct {
	db *sql.DB // SQLite 数据库连接实例
}

// CopyLog 复制日志记录
// 记录单次图片复制的完整信息，用于撤销和统计
type CopyLog struct {
	ID         int64     // 记录唯一标识符
	BatchID    string    // 批次 ID（同一次整理操作的唯一标识）
	SourcePath string    // 源图片路径
	DestPath   string    // 目标路径（输出目录下的情绪子目录）
	Filename   string    // 图片文件名
	Emotion    string    // 情绪标签
	Status     string    // 状态: success, failed, undone
	CreatedAt  time.Time // 创建时间
}

// NewDatabase 创建并初始化数据库连接
// 数据库文件路径来自全局配置 (~/.emoset/history.db)
func NewDatabase() (*Database, error) {
	cfg := config.Get()
	return OpenDatabase(cfg.DBPath)
}

// OpenDatabase 打开指定路径的数据库
// 执行以下操作：
// 1. 打开 SQLite 数据库连接
// 2. 启用 WAL 模式和 NORMAL 同步模式以提升性能
// 3. 初始化数据表和索引
func OpenDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// 启用 WAL（Write-Ahead Logging）模式
	// WAL 模式可以显著提升读写并发性能，减少锁竞争
	db.Exec("PRAGMA journal_mode=WAL")

	// 设置同步模式为 NORMAL
	// NORMAL 模式在性能和数据安全性之间取得平衡
	db.Exec("PRAGMA synchronous=NORMAL")

	d := &Database{db: db}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init 初始化数据库表结构和索引
func (d *Database) init() error {
	schemas := []string{
		// ========== 复制日志表 ==========
		// 记录每次图片复制操作，支持撤销和统计
		`CREATE TABLE IF NOT EXISTS copy_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			source_path TEXT NOT NULL,
			dest_path TEXT NOT NULL,
			filename TEXT NOT NULL,
			emotion TEXT NOT NULL,
			status TEXT DEFAULT 'success',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// ========== 索引定义 ==========
		// 为常用查询字段创建索引，提升查询性能
		`CREATE INDEX IF NOT EXISTS idx_copy_batch ON copy_logs(batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_copy_emotion ON copy_logs(emotion)`,
		`CREATE INDEX IF NOT EXISTS idx_copy_time ON copy_logs(created_at)`,
	}

	// 依次执行所有 DDL 语句
	for _, schema := range schemas {
		if _, err := d.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// Close 关闭数据库连接
// 释放数据库资源，应在程序退出前调用
func (d *Database) Close() error {
	return d.db.Close()
}

// ==================== 复制日志操作 ====================
// 以下方法用于管理复制日志，支持撤销功能

// AddCopyLog 添加复制日志
// 记录一次图片复制操作
//
// 参数:
//   - batchID: 批次 ID
//   - sourcePath: 源图片路径
//   - destPath: 目标路径
//   - filename: 图片文件名
//   - emotion: 情绪标签
//   - status: 操作状态
func (d *Database) AddCopyLog(batchID, sourcePath, destPath, filename, emotion, status string) error {
	_, err := d.db.Exec(`
		INSERT INTO copy_logs (batch_id, source_path, dest_path, filename, emotion, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, batchID, sourcePath, destPath, filename, emotion, status)
	return err
}

// GetRecentBatches 获取最近的操作批次
// 用于显示可撤销的操作列表
func (d *Database) GetRecentBatches(limit int) ([]map[string]interface{}, error) {
	rows, err := d.db.Query(`
		SELECT batch_id,
		       COUNT(*) as file_count,
		       MIN(created_at) as created_at,
		       GROUP_CONCAT(DISTINCT emotion) as emotions
		FROM copy_logs
		WHERE status = 'success'
		GROUP BY batch_id
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []map[string]interface{}
	for rows.Next() {
		var batchID, createdAt, emotions string
		var fileCount int
		if rows.Scan(&batchID, &fileCount, &createdAt, &emotions) == nil {
			batches = append(batches, map[string]interface{}{
				"batch_id":   batchID,
				"file_count": fileCount,
				"created_at": createdAt,
				"emotions":   emotions,
			})
		}
	}
	return batches, nil
}

// GetBatchLogs 获取指定批次的所有复制日志
// 只返回状态为 success 的记录（可撤销的部分）
func (d *Database) GetBatchLogs(batchID string) ([]CopyLog, error) {
	rows, err := d.db.Query(`
		SELECT id, batch_id, source_path, dest_path, filename, emotion, status, created_at
		FROM copy_logs
		WHERE batch_id = ? AND status = 'success'
		ORDER BY id ASC
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []CopyLog
	for rows.Next() {
		var log CopyLog
		var createdAt string
		if rows.Scan(&log.ID, &log.BatchID, &log.SourcePath, &log.DestPath, &log.Filename, &log.Emotion, &log.Status, &createdAt) == nil {
			log.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
			logs = append(logs, log)
		}
	}
	return logs, nil
}

// CountLogs 统计指定批次中某状态的日志条数
func (d *Database) CountLogs(batchID, status string) (int, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM copy_logs
		WHERE batch_id = ? AND status = ?
	`, batchID, status).Scan(&count)
	return count, err
}

// MarkBatchUndone 标记批次为已撤销
func (d *Database) MarkBatchUndone(batchID string) error {
	_, err := d.db.Exec(`
		UPDATE copy_logs
		SET status = 'undone'
		WHERE batch_id = ?
	`, batchID)
	return err
}

// GetLatestBatch 获取最近一次操作的批次 ID
// 没有可撤销操作时返回空字符串
func (d *Database) GetLatestBatch() string {
	var batchID string
	d.db.QueryRow(`
		SELECT batch_id
		FROM copy_logs
		WHERE status = 'success'
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&batchID)
	return batchID
}

// ==================== 统计操作 ====================
// 以下方法用于获取复制历史的统计信息

// GetStatistics 获取复制历史统计信息
// 返回各种统计指标，包括：
// - 总复制数、批次数
// - 情绪分布（Top 10 情绪及其数量）
func (d *Database) GetStatistics() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	// ===== 1. 总复制数 =====
	var total int
	d.db.QueryRow("SELECT COUNT(*) FROM copy_logs WHERE status = 'success'").Scan(&total)
	stats["total_copied"] = total

	// ===== 2. 批次数 =====
	var batches int
	d.db.QueryRow("SELECT COUNT(DISTINCT batch_id) FROM copy_logs").Scan(&batches)
	stats["batch_count"] = batches

	// ===== 3. 已撤销数 =====
	var undone int
	d.db.QueryRow("SELECT COUNT(*) FROM copy_logs WHERE status = 'undone'").Scan(&undone)
	stats["undone_count"] = undone

	// ===== 4. 情绪分布 =====
	// 统计各情绪的复制数量，返回 Top 10
	rows, _ := d.db.Query(`
		SELECT emotion, COUNT(*) as cnt
		FROM copy_logs
		WHERE status = 'success'
		GROUP BY emotion
		ORDER BY cnt DESC
		LIMIT 10
	`)
	if rows != nil {
		defer rows.Close()
		dist := make(map[string]int)
		for rows.Next() {
			var emotion string
			var cnt int
			if rows.Scan(&emotion, &cnt) == nil {
				dist[emotion] = cnt
			}
		}
		stats["emotion_distribution"] = dist
	}

	return stats, nil
}

// ==================== 重置操作 ====================

// ResetAll 清空复制历史
// 这将使 undo 和 stats 失去所有历史数据
// 警告：此操作不可恢复，请谨慎使用
func (d *Database) ResetAll() error {
	_, err := d.db.Exec("DELETE FROM copy_logs")
	return err
}
