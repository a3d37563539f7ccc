package parser

import "strings"

// ContainsAny 任意一个文本包含关键词即返回 true
func ContainsAny(texts []string, keyword string) bool {
	for _, t := range texts {
		if strings.Contains(t, keyword) {
			return true
		}
	}
	return false
}

// ContainsAnyKeyword 文本包含任意一个关键词即返回 true
func ContainsAnyKeyword(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// EqualsAny 文本与任意一个候选完全相等
func EqualsAny(text string, candidates ...string) bool {
	for _, c := range candidates {
		if text == c {
			return true
		}
	}
	return false
}
