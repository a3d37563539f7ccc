package parser

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// FormatCurrency 纯数字（最多一个小数点）格式化为 "$1,234.50"，其他值原样返回
func FormatCurrency(c model.Cell) model.Cell {
	if c.IsEmpty() || !isPlainDecimal(c.String()) {
		return c
	}
	v, ok := c.Float()
	if !ok {
		return c
	}
	return model.TextCell("$" + humanize.FormatFloat("#,###.##", v))
}

// isPlainDecimal 去掉一个小数点后全部为数字
func isPlainDecimal(s string) bool {
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
