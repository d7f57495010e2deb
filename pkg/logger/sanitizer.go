package logger

import (
	"strings"
)

// 需要脱敏的字段关键字（按子串、大小写不敏感匹配）
var sensitiveKeys = []string{
	"token",
	"password",
	"passwd",
	"secret",
	"api_key",
	"apikey",
	"authorization",
}

// MaskToken 脱敏token字符串
// 规则:
//   - 空字符串返回空
//   - 长度<8: 返回 "***"
//   - 长度>=8: 保留前4后4,中间用星号替换
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	length := len(token)
	if length < 8 {
		return "***"
	}
	return token[:4] + strings.Repeat("*", length-8) + token[length-4:]
}

// IsSensitiveKey 判断键名是否为敏感字段
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			return true
		}
	}
	return false
}

// SanitizeValue 键名为敏感字段时脱敏其值
func SanitizeValue(key string, value any) any {
	if !IsSensitiveKey(key) {
		return value
	}
	if s, ok := value.(string); ok {
		return MaskToken(s)
	}
	return "***MASKED***"
}

// SanitizeArgs 批量脱敏slog日志参数（key1, value1, key2, value2, ...）
// 没有敏感字段时原样返回，不分配新切片
func SanitizeArgs(args ...any) []any {
	sensitive := false
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok && IsSensitiveKey(key) {
			sensitive = true
			break
		}
	}
	if !sensitive {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)
	for i := 0; i+1 < len(result); i += 2 {
		if key, ok := result[i].(string); ok {
			result[i+1] = SanitizeValue(key, result[i+1])
		}
	}
	return result
}
