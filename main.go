// Emoset - 表情数据集整理工具
// 按 CSV 标注将表情图片归入各情绪子目录
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/emoset
// License: MIT

package main

import "emoset/cmd"

// main 程序入口函数
// 调用 cmd.Execute() 启动命令行应用
func main() {
	cmd.Execute()
}
