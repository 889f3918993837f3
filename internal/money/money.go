// File: internal/money/money.go

// Package money 金额展示格式化
// 金额在整个客户端里都是十进制大数，只有在渲染的最后一刻才变成字符串。
package money

import (
	"strings"

	"github.com/ericlagergren/decimal"
)

// Format 将金额格式化为带千分位的美元字符串，固定两位小数。
// 四舍五入采用去零进位（1234.5678 -> $1,234.57）。
// 负数的符号紧跟货币符号之后：$-1,234.56，这个位置是对外承诺的行为。
func Format(amount *decimal.Big) string {
	if amount == nil {
		return "$0.00"
	}

	rounded := new(decimal.Big).Copy(amount)
	rounded.Context.RoundingMode = decimal.ToNearestAway
	rounded.Quantize(2)

	// Quantize(2) 之后 String 输出固定是普通两位小数形式
	text := rounded.String()

	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}

	intPart, fracPart, ok := strings.Cut(text, ".")
	if !ok {
		fracPart = "00"
	}
	// Quantize(2) 之后小数位固定是两位，这里兜底补齐
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	var b strings.Builder
	b.WriteByte('$')
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// groupThousands 从低位起每三位插入一个逗号
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
