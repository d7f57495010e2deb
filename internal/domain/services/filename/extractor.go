// Package filename 从文件名中提取机型与点位序号，并生成规范化的新文件名。
package filename

import (
	"strings"
	"unicode"

	strutil "github.com/easayliu/normname/pkg/utils/string"
)

// ParseResult 单个文件名的解析结果
type ParseResult struct {
	Noise   string `json:"noise,omitempty"` // 被丢弃的噪声前缀（含分隔符）
	Model   string `json:"model"`           // 原始型号文本（仅去首尾空白）
	Numeral string `json:"numeral"`         // 原始点位序号文本
}

// marker 文件名中一次"第 N (个) 点 (位)"的出现
type marker struct {
	start   int // "第" 所在下标
	numeral string
}

// Extract 解析无扩展名的文件名：
//
//	[噪声前缀][连续分隔符]? <型号> 第 <序号> (个)? 点 (位)? <忽略的尾部>
//
// 型号取最短匹配，即止于其后第一个合法的点位标记。
// 噪声前缀取最短的、以 "--"(及更长)/"—" 结尾的前缀，且剩余部分仍能构成完整结构。
func Extract(stem string) (ParseResult, error) {
	runes := []rune(stem)
	markers := findMarkers(runes)
	if len(markers) == 0 {
		return ParseResult{}, ErrPatternNotFound
	}

	for p := range runes {
		for _, sepEnd := range separatorEnds(runes, p) {
			wsEnd := skipSpaces(runes, sepEnd)
			// 型号起点优先紧跟空白之后，其次把空白让给型号
			for m := wsEnd; m >= sepEnd; m-- {
				if mk, ok := firstMarkerAfter(markers, m); ok {
					return ParseResult{
						Noise:   string(runes[:m]),
						Model:   strings.TrimSpace(string(runes[m:mk.start])),
						Numeral: mk.numeral,
					}, nil
				}
			}
		}
	}

	// 无噪声前缀：型号从开头起算，至少一个字符
	if mk, ok := firstMarkerAfter(markers, 0); ok {
		return ParseResult{
			Model:   strings.TrimSpace(string(runes[:mk.start])),
			Numeral: mk.numeral,
		}, nil
	}

	return ParseResult{}, ErrPatternNotFound
}

// findMarkers 找出所有合法的点位标记，按出现顺序返回
func findMarkers(runes []rune) []marker {
	var markers []marker
	for i, r := range runes {
		if r != MarkerOrdinal {
			continue
		}
		if numeral, ok := parseMarker(runes, i); ok {
			markers = append(markers, marker{start: i, numeral: numeral})
		}
	}
	return markers
}

// parseMarker 校验 runes[start] 处的 "第" 是否引出 "\s* 序号 \s* 个? \s* 点"
// "位" 及其后的任何内容都被忽略
func parseMarker(runes []rune, start int) (string, bool) {
	i := skipSpaces(runes, start+1)
	numStart := i

	switch {
	case i < len(runes) && strutil.IsDecimalDigit(runes[i]):
		for i < len(runes) && strutil.IsDecimalDigit(runes[i]) {
			i++
		}
	case i < len(runes) && strutil.IsChineseNumeral(runes[i]):
		for i < len(runes) && strutil.IsChineseNumeral(runes[i]) {
			i++
		}
	default:
		return "", false
	}
	numeral := string(runes[numStart:i])

	i = skipSpaces(runes, i)
	if i < len(runes) && runes[i] == MarkerCounter {
		i = skipSpaces(runes, i+1)
	}
	if i >= len(runes) || runes[i] != MarkerPoint {
		return "", false
	}
	return numeral, true
}

// separatorEnds 返回以 runes[p] 开头的噪声分隔符所有可能的结束位置，按尝试顺序排列：
// 先是 2 个及以上的连字符/破折号（由长到短），再是单个破折号
func separatorEnds(runes []rune, p int) []int {
	run := 0
	for p+run < len(runes) && isSeparator(runes[p+run]) {
		run++
	}

	var ends []int
	for n := run; n >= 2; n-- {
		ends = append(ends, p+n)
	}
	if run >= 1 && runes[p] == separatorEmDash {
		ends = append(ends, p+1)
	}
	return ends
}

func isSeparator(r rune) bool {
	return r == separatorHyphen || r == separatorEmDash
}

// firstMarkerAfter 返回起点在 modelStart 之后（型号至少一个字符）的第一个标记
func firstMarkerAfter(markers []marker, modelStart int) (marker, bool) {
	for _, mk := range markers {
		if mk.start > modelStart {
			return mk, true
		}
	}
	return marker{}, false
}

func skipSpaces(runes []rune, i int) int {
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}
