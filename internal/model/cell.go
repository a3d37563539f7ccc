package model

import (
	"strconv"
	"strings"
	"time"
)

// CellKind 单元格取值类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellDate
	CellText
	CellBool
)

// Cell 工作表中的一个只读单元格
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
}

// TextCell 构造文本单元格
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell 构造数值单元格
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// DateCell 构造日期单元格
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// BoolCell 构造布尔单元格
func BoolCell(b bool) Cell {
	c := Cell{Kind: CellBool}
	if b {
		c.Number = 1
	}
	return c
}

// IsEmpty 是否为空单元格
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String 规范文本形式，标签与表头匹配都基于它
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02 15:04:05")
	case CellBool:
		if c.Number != 0 {
			return "True"
		}
		return "False"
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Trimmed 去除首尾空白后的文本
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}

// Lower 小写文本（用于关键词匹配）
func (c Cell) Lower() string {
	return strings.ToLower(c.String())
}

// Float 数值转换；文本去空白后解析，无法解析时返回 false
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case CellNumber, CellBool:
		return c.Number, true
	case CellText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Value 写入 Excel 时使用的原始值
func (c Cell) Value() interface{} {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellDate:
		return c.Time
	case CellBool:
		return c.Number != 0
	case CellText:
		return c.Text
	default:
		return nil
	}
}
