// Package config 配置管理模块
// 提供全局配置的加载、保存和管理功能
// 配置文件存储在 ~/.emoset/config.json
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// 版本和作者信息常量
const (
	Version   = "1.0.0"                            // 程序版本号
	BuildDate = "2026"                             // 构建日期
	Author    = "lynx-lee"                         // 作者
	Homepage  = "https://github.com/lynx-lee/emoset" // 项目主页
	License   = "MIT"                              // 开源许可
)

// Config 全局配置结构体
// 包含标签配置、切分配置和历史记录配置
type Config struct {
	// ==================== 标签配置 ====================
	// 情绪别名映射：副 CSV 中的标签名 -> 主 CSV 中的标准标签名
	// 不同数据集对同一情绪的叫法不同（如 sadness 与 sad）
	EmotionAliases map[string]string `json:"emotion_aliases"`

	// ==================== 切分配置 ====================
	TrainSizes []int `json:"train_sizes"` // split 命令的训练集规模序列
	TestCount  int   `json:"test_count"`  // split 命令每个情绪的测试图片数

	// ==================== 历史配置 ====================
	EnableHistory bool `json:"enable_history"` // 是否记录复制历史（用于撤销和统计）

	// ==================== 内部路径（不序列化）====================
	DataDir string `json:"-"` // 数据目录路径 (~/.emoset)
	DBPath  string `json:"-"` // 数据库文件路径 (~/.emoset/history.db)
}

// 单例模式相关变量
var (
	instance *Config   // 全局配置实例
	once     sync.Once // 确保只初始化一次
)

// Get 获取全局配置实例（单例模式）
// 首次调用时会初始化默认配置并尝试从文件加载
func Get() *Config {
	once.Do(func() {
		instance = defaultConfig() // 创建默认配置
		instance.initPaths()       // 初始化路径
		instance.Load()            // 从文件加载（如果存在）
	})
	return instance
}

// defaultConfig 创建默认配置
// 返回带有合理默认值的配置实例
func defaultConfig() *Config {
	return &Config{
		// 常见数据集间的情绪标签别名
		EmotionAliases: map[string]string{
			"sadness":   "sad",
			"happiness": "happy",
			"fearful":   "fear",
		},
		TrainSizes:    []int{10, 20, 30, 40, 50}, // 递增的训练集规模
		TestCount:     10,                        // 每个情绪固定10张测试图
		EnableHistory: true,                      // 默认记录复制历史
	}
}

// initPaths 初始化数据存储路径
// 创建 ~/.emoset 目录（如果不存在）
func (c *Config) initPaths() {
	homeDir, _ := os.UserHomeDir()
	c.DataDir = filepath.Join(homeDir, ".emoset")     // 数据目录
	c.DBPath = filepath.Join(c.DataDir, "history.db") // SQLite 数据库路径
	os.MkdirAll(c.DataDir, 0755)                      // 创建目录
}

// Load 从文件加载配置
// 配置文件路径: ~/.emoset/config.json
func (c *Config) Load() error {
	configPath := filepath.Join(c.DataDir, "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err // 文件不存在时返回错误，使用默认配置
	}
	return json.Unmarshal(data, c)
}

// Save 保存配置到文件
// 以格式化的 JSON 格式保存
func (c *Config) Save() error {
	configPath := filepath.Join(c.DataDir, "config.json")
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// MinImagesPerEmotion 返回 split 命令要求的每情绪最少图片数
// 即最大训练集规模 + 测试图片数
func (c *Config) MinImagesPerEmotion() int {
	max := 0
	for _, s := range c.TrainSizes {
		if s > max {
			max = s
		}
	}
	return max + c.TestCount
}
