// Package model 定义 global-search 的核心数据模型。
// 这些结构会被行扫描器、编排层、输出层和命令层共同使用。
package model

// Mode 表示一次运行的工作模式。
type Mode string

const (
	// ModeSearch 是默认模式：查找并展示命中行。
	ModeSearch Mode = "search"
	// ModeReplace 在命中行上执行原地替换。
	ModeReplace Mode = "replace"
	// ModeStats 只统计 code/comment/blank 行数，不做匹配。
	ModeStats Mode = "stats"
)

// Status 表示扫描的终止方式。
//
// 注意：
// - Truncated 不是错误，而是达到结果上限后的主动提前终止
// - 两种状态都会携带已经累计出的计数值
type Status string

const (
	// StatusCompleted 表示全部候选文件都扫描完毕。
	StatusCompleted Status = "completed"
	// StatusTruncated 表示命中行数超过上限，扫描被立即中止。
	StatusTruncated Status = "truncated"
)

// LineResult 是行扫描器对单行的判定结果。
// 每行新建一个，编排层消费后即丢弃，不做任何持久化。
type LineResult struct {
	LineNumber int
	// Positions 按从左到右的顺序记录被接受的命中位置（字节偏移）。
	// 位于行尾注释内且未开启注释搜索的命中不会出现在这里。
	Positions []int
	// IsComment 表示整行是注释（仅统计模式或注释行跳过时有意义）。
	IsComment bool
	// IsBlank 表示空白行（含“全部由注释符组成的分隔行”）。
	IsBlank bool
}

// LineMatch 表示输出层需要的一条命中记录。
type LineMatch struct {
	// Index 是全局命中行序号（从 1 开始，跨文件累计）。
	Index      int    `json:"index"`
	LineNumber int    `json:"line_number"`
	Positions  []int  `json:"positions"`
	// Text 是用于展示的行内容。
	// 大小写不敏感模式下展示折叠后的行，位置与其对齐。
	Text string `json:"text"`
}

// FileMatches 表示单文件的全部命中。
type FileMatches struct {
	Path    string      `json:"path"`
	Matches []LineMatch `json:"matches"`
}

// LineStats 是统计模式的行分类计数。
type LineStats struct {
	Code    int64 `json:"code"`
	Comment int64 `json:"comment"`
	Blank   int64 `json:"blank"`
}

// Warning 记录单文件级别的失败信息。
// 设计为“警告不阻断全量扫描”，一个坏文件不会中止整次遍历。
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result 是一次完整运行的输出模型。
type Result struct {
	Root          string        `json:"root"`
	Mode          Mode          `json:"mode"`
	Status        Status        `json:"status"`
	Files         []FileMatches `json:"files"`
	Warnings      []Warning     `json:"warnings"`
	Stats         LineStats     `json:"stats"`
	FileCount     int64         `json:"file_count"`
	MatchingLines int64         `json:"matching_lines"`
	Occurrences   int64         `json:"occurrences"`
}
