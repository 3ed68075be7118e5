package diag

import (
	"os"
	"runtime"
	"strings"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorYellow
	ColorCyan
	ColorBoldRed
	ColorBoldWhite
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:     "\033[0m",
	ColorRed:       "\033[31m",
	ColorYellow:    "\033[33m",
	ColorCyan:      "\033[36m",
	ColorBoldRed:   "\033[1;31m",
	ColorBoldWhite: "\033[1;37m",
}

// colorsEnabled 是否启用颜色
var colorsEnabled = detectColorSupport()

// detectColorSupport 检测终端是否支持 ANSI 颜色
func detectColorSupport() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" && runtime.GOOS != "windows" {
		return false
	}
	if strings.Contains(term, "color") || strings.Contains(term, "xterm") ||
		strings.Contains(term, "screen") || strings.Contains(term, "tmux") {
		return true
	}
	return term != ""
}

// colorize 给文本加上颜色（终端不支持时原样返回）
func colorize(text string, c Color) string {
	if !colorsEnabled {
		return text
	}
	code, ok := ansiCodes[c]
	if !ok {
		return text
	}
	return code + text + ansiCodes[ColorReset]
}
