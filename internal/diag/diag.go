// Package diag 实现前端错误的终端诊断输出
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/tangzhangming/kunlun/internal/token"
)

// ============================================================================
// 诊断输出
// ============================================================================

// PrintError 输出一条带源码上下文的错误
//
// 格式：
//
//	file.kl:3:10: error: expected ')' after map results
//	    load A[(d0 -> (d0)]($i)
//	           ^
func PrintError(w io.Writer, source string, pos token.Position, message string) {
	fmt.Fprintf(w, "%s: %s %s\n",
		colorize(pos.String(), ColorBoldWhite),
		colorize("error:", ColorBoldRed),
		message)

	line := sourceLine(source, pos.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)
	if pos.Column >= 1 {
		caret := strings.Repeat(" ", columnOffset(line, pos.Column)) + "^"
		fmt.Fprintf(w, "    %s\n", colorize(caret, ColorBoldRed))
	}
}

// sourceLine 取源码的第 n 行（1-based），越界返回空串
func sourceLine(source string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// columnOffset 把列号换算成显示偏移，制表符按原样计宽
func columnOffset(line string, column int) int {
	offset := column - 1
	if offset > len(line) {
		offset = len(line)
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
