// Package search 实现 global-search 的核心单行扫描逻辑。
// 包内只做纯函数判定：命中位置、行尾注释识别与行分类，
// 文件读写和计数聚合都由 scanner 层负责。
package search

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Config 是一次搜索的不可变配置，进程启动时构建一次并全程传递。
type Config struct {
	// Pattern 是要查找的字面子串，不做正则解释。
	Pattern string
	// CaseSensitive 为 false 时，行和 Pattern 都按小写折叠后比较。
	CaseSensitive bool
	// IncludeComments 为 true 时，注释行和行尾注释里的命中也被接受。
	IncludeComments bool
	// CommentMarker 是行注释起始符，必须恰好为一个字符。
	CommentMarker string
	// MaxResults 是命中行数上限，超过后扫描立即中止。
	MaxResults int
	// Replacement 是替换文本，仅在 HasReplacement 为 true 时生效。
	Replacement string
	// HasReplacement 区分“未指定替换”与“替换为空串”两种情况。
	HasReplacement bool
}

// Validate 在扫描开始前校验配置组合。
//
// 约束说明：
// - 注释符必须恰好是一个字符
// - 结果上限必须为正数
// - 替换模式必须大小写敏感：折叠后的命中位置无法无歧义地
//   映射回原始大小写文本
func (c Config) Validate() error {
	if utf8.RuneCountInString(c.CommentMarker) != 1 {
		return fmt.Errorf("comment marker must be exactly one character, got %q", c.CommentMarker)
	}
	if c.MaxResults <= 0 {
		return errors.New("maximum result count must be greater than 0")
	}
	if c.HasReplacement && !c.CaseSensitive {
		return errors.New("replace mode requires a case sensitive search")
	}
	return nil
}
