package search

import (
	"strings"
	"unicode/utf8"

	"github.com/wxgeo/global-search/internal/model"
)

// prefixState 是引号/注释状态机的状态值。
// 状态机只在“候选命中位置之前的子串”上运行一次，扫描结束即丢弃。
type prefixState int

const (
	// stateNone 表示不在任何引号或注释区域内。
	stateNone prefixState = iota
	// stateSingleQuote 表示处于单引号字符串内。
	stateSingleQuote
	// stateDoubleQuote 表示处于双引号字符串内。
	stateDoubleQuote
	// stateComment 表示处于行尾注释内。
	stateComment
)

// classifyPrefix 从左到右扫描前缀并返回最终状态。
//
// 转移规则：
// - stateNone 遇到引号或注释符时进入对应状态
// - 只有与当前状态相同的字符才能把状态关回 stateNone，
//   注释状态也只会被再次出现的注释符关闭
// - 其余字符一律不产生转移
//
// 已知限制：三引号（跨行字符串）不做跟踪，引号状态从不跨行延续，
// 这类字面量内的命中可能被误分类，属于有意接受的行为。
func classifyPrefix(prefix string, marker rune) prefixState {
	state := stateNone
	for _, current := range prefix {
		switch state {
		case stateNone:
			switch {
			case current == '\'':
				state = stateSingleQuote
			case current == '"':
				state = stateDoubleQuote
			case current == marker:
				state = stateComment
			}
		case stateSingleQuote:
			if current == '\'' {
				state = stateNone
			}
		case stateDoubleQuote:
			if current == '"' {
				state = stateNone
			}
		case stateComment:
			if current == marker {
				state = stateNone
			}
		}
	}
	return state
}

// LineScanner 对单个物理行做命中判定或行分类。
// 它是纯函数式组件：不做任何 I/O，也不持有跨行状态。
type LineScanner struct {
	config    Config
	statsMode bool
	// pattern 是按配置折叠过大小写的搜索串。
	pattern string
	// marker 是 CommentMarker 解码出的单个字符。
	marker rune
}

// NewLineScanner 创建行扫描器。
// statsMode 为 true 时 Scan 只做 code/comment/blank 分类，不做匹配。
func NewLineScanner(config Config, statsMode bool) *LineScanner {
	pattern := config.Pattern
	if !config.CaseSensitive {
		pattern = strings.ToLower(pattern)
	}
	marker, _ := utf8.DecodeRuneInString(config.CommentMarker)
	return &LineScanner{
		config:    config,
		statsMode: statsMode,
		pattern:   pattern,
		marker:    marker,
	}
}

// Pattern 返回实际参与比较的搜索串（大小写不敏感时为折叠形式）。
func (s *LineScanner) Pattern() string {
	return s.pattern
}

// Fold 返回参与比较和展示的行文本。
// 大小写不敏感模式下命中位置以折叠后的行为准。
func (s *LineScanner) Fold(line string) string {
	if s.config.CaseSensitive {
		return line
	}
	return strings.ToLower(line)
}

// Scan 处理一个物理行并返回判定结果。
//
// 匹配模式下的步骤：
// 1. 未开启注释搜索时，整行注释直接跳过
// 2. 按配置折叠大小写
// 3. 从左到右找出搜索串的全部出现位置
// 4. 对每个位置独立运行前缀状态机，丢弃落在行尾注释内的命中
func (s *LineScanner) Scan(line string, lineNumber int) model.LineResult {
	result := model.LineResult{LineNumber: lineNumber}

	if s.statsMode {
		s.classify(line, &result)
		return result
	}
	if s.pattern == "" {
		return result
	}

	if !s.config.IncludeComments && strings.HasPrefix(strings.TrimSpace(line), s.config.CommentMarker) {
		result.IsComment = true
		return result
	}

	folded := s.Fold(line)
	offset := 0
	for {
		pos := strings.Index(folded[offset:], s.pattern)
		if pos < 0 {
			break
		}
		pos += offset
		if s.config.IncludeComments || !s.insideTrailingComment(folded[:pos]) {
			result.Positions = append(result.Positions, pos)
		}
		offset = pos + len(s.pattern)
	}
	return result
}

// insideTrailingComment 判断命中位置是否落在行尾注释内。
// 注释符可能出现在字符串字面量里，所以不能只看前缀是否含注释符，
// 必须用状态机区分。
func (s *LineScanner) insideTrailingComment(prefix string) bool {
	if !strings.Contains(prefix, s.config.CommentMarker) {
		return false
	}
	return classifyPrefix(prefix, s.marker) == stateComment
}

// classify 为统计模式做 code/comment/blank 三分类。
//
// 约束说明：
// - 去掉空白后为空 → blank
// - 首字符不是注释符 → code
// - 去掉全部注释符后仍有内容 → comment，
//   否则视为纯注释符分隔线，按 blank 计数
func (s *LineScanner) classify(line string, result *model.LineResult) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		result.IsBlank = true
		return
	}
	if !strings.HasPrefix(trimmed, s.config.CommentMarker) {
		return
	}
	if strings.Trim(trimmed, s.config.CommentMarker) == "" {
		result.IsBlank = true
		return
	}
	result.IsComment = true
}
