package strutil

import "regexp"

// 预编译的正则表达式模式，避免重复编译提升性能

var (
	// 文件名非法字符（Windows 规则，其他平台同样适用）
	InvalidCharsPattern = regexp.MustCompile(`[<>:"/\\|?*]`)

	// 空白符
	WhitespacePattern = regexp.MustCompile(`[\s\p{Z}]+`)

	// 首尾的空白与连接符（连字符、破折号、短破折号、下划线）
	EdgeConnectorPattern = regexp.MustCompile(`^[\s\p{Z}_\-—–]+|[\s\p{Z}_\-—–]+$`)

	// 型号归一化时需要整体去除的空白与连接符
	ConnectorRunPattern = regexp.MustCompile(`[\s\p{Z}_\-—–]+`)
)
