package filename

import "errors"

var (
	// ErrPatternNotFound 文件名中找不到"型号 + 第N(个)点"结构
	ErrPatternNotFound = errors.New("filename: no model/point pattern found")

	// ErrEmptyModel 型号清洗后为空
	ErrEmptyModel = errors.New("filename: model is empty after sanitizing")

	// ErrInvalidNumeral 点位序号无法解析为整数
	ErrInvalidNumeral = errors.New("filename: point numeral is not a valid number")
)
