package strutil

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// 数字字符映射（含小写、大写/财务中文数字）
var chineseDigits = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4, '五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
	'壹': 1, '贰': 2, '貳': 2, '叁': 3, '肆': 4, '伍': 5, '陆': 6, '陸': 6, '柒': 7, '捌': 8, '玖': 9,
}

// 单位字符映射（十/百/千，小写与大写）
var chineseUnits = map[rune]int{
	'十': 10, '拾': 10,
	'百': 100, '佰': 100,
	'千': 1000, '仟': 1000,
}

var lowerDigitGlyphs = [10]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// IsChineseNumeral 判断字符是否属于中文数字（数字或单位）
func IsChineseNumeral(r rune) bool {
	if _, ok := chineseDigits[r]; ok {
		return true
	}
	_, ok := chineseUnits[r]
	return ok
}

// IsDecimalDigit 判断字符是否为 Unicode 十进制数字（0-9、全角 ０-９、٣ 等）
func IsDecimalDigit(r rune) bool {
	return unicode.IsDigit(r)
}

// digitValue 十进制数字字符的数值
// Unicode 中每组十进制数字都从 0 开始连续排列，Nd 表中的区间长度均为 10 的倍数
func digitValue(r rune) (int, bool) {
	for _, rg := range unicode.Nd.R16 {
		if rg.Stride == 1 && rune(rg.Lo) <= r && r <= rune(rg.Hi) {
			return int(r-rune(rg.Lo)) % 10, true
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if rg.Stride == 1 && rune(rg.Lo) <= r && r <= rune(rg.Hi) {
			return int(r-rune(rg.Lo)) % 10, true
		}
	}
	return 0, false
}

// ChineseToNumber 将中文数字、大写中文数字或阿拉伯数字字符串转换为整数
// 支持：三、十二、一百零五、贰拾、12、１２（全角）、٣
// 任一无法识别的字符都会导致整体失败，返回 (0, false)
func ChineseToNumber(str string) (int, bool) {
	s := strings.TrimSpace(str)
	if s == "" {
		return 0, false
	}

	if isDecimalDigits(s) {
		return parseDecimal(s)
	}

	total := 0
	current := 0
	for _, r := range s {
		if digit, ok := chineseDigits[r]; ok {
			current = digit
			continue
		}
		if unit, ok := chineseUnits[r]; ok {
			// 处理"十、百、千"前省略"一"的情况
			if current == 0 {
				current = 1
			}
			total += current * unit
			current = 0
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		return 0, false
	}

	return total + current, true
}

// NumberToChinese 整数转小写中文数字（0-999），超出范围返回阿拉伯数字字符串
func NumberToChinese(n int) string {
	switch {
	case n < 0 || n >= 1000:
		return strconv.Itoa(n)
	case n < 10:
		return lowerDigitGlyphs[n]
	case n < 100:
		tens, units := n/10, n%10
		result := "十"
		if tens > 1 {
			result = lowerDigitGlyphs[tens] + "十"
		}
		if units > 0 {
			result += lowerDigitGlyphs[units]
		}
		return result
	}

	hundreds, remainder := n/100, n%100
	result := lowerDigitGlyphs[hundreds] + "百"
	if remainder == 0 {
		return result
	}
	if remainder < 10 {
		result += "零"
	}
	return result + NumberToChinese(remainder)
}

func isDecimalDigits(s string) bool {
	for _, r := range s {
		if !IsDecimalDigit(r) {
			return false
		}
	}
	return true
}

// parseDecimal 解析十进制数字串，超过 int32 上限视为失败
func parseDecimal(s string) (int, bool) {
	n := 0
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			return 0, false
		}
		n = n*10 + d
		if n > math.MaxInt32 {
			return 0, false
		}
	}
	return n, true
}
