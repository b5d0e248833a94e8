// Package report 提供 global-search 的终端输出能力。
// 输出分两层：Formatter 负责按类别做视觉强调，
// Print 负责把 Result 渲染成命中清单、警告与总结。
package report

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Emphasis 枚举输出强调类别。
// 类别集合是固定的，彩色与纯文本两种实现共用同一套类别。
type Emphasis int

const (
	// EmphasisPathRoot 用于命中文件路径的根目录部分。
	EmphasisPathRoot Emphasis = iota
	// EmphasisPathSuffix 用于命中文件路径在根目录之后的部分。
	EmphasisPathSuffix
	// EmphasisMatch 用于行内被命中的搜索串本身。
	EmphasisMatch
	// EmphasisLineNumber 用于行号。
	EmphasisLineNumber
	// EmphasisError 用于警告与截断提示。
	EmphasisError
	// EmphasisSuccess 用于搜索根目录等确认性信息。
	EmphasisSuccess
	// EmphasisSummary 用于结尾的总结行与命中序号。
	EmphasisSummary
)

// Formatter 按类别对文本做视觉强调。
// styles 为 nil 时是纯文本模式，Apply 原样返回输入。
type Formatter struct {
	styles map[Emphasis]*color.Color
}

// NewFormatter 创建格式化器。colored 为 false 时输出纯文本。
func NewFormatter(colored bool) *Formatter {
	if !colored {
		return &Formatter{}
	}
	return &Formatter{styles: map[Emphasis]*color.Color{
		EmphasisPathRoot:   color.New(color.FgGreen),
		EmphasisPathSuffix: color.New(color.FgHiGreen),
		EmphasisMatch:      color.New(color.FgHiCyan),
		EmphasisLineNumber: color.New(color.FgHiWhite),
		EmphasisError:      color.New(color.FgRed),
		EmphasisSuccess:    color.New(color.FgGreen),
		EmphasisSummary:    color.New(color.FgCyan),
	}}
}

// Apply 对文本施加指定类别的强调。
func (f *Formatter) Apply(category Emphasis, text string) string {
	style, ok := f.styles[category]
	if !ok {
		return text
	}
	return style.Sprint(text)
}

// AutoColor 判断默认是否启用彩色输出：仅当目标是真实终端时。
func AutoColor(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
