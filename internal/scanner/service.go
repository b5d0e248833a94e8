// Package scanner 提供顺序扫描编排能力。
// 该层负责目录遍历、候选过滤、逐行委派、计数聚合与原地重写，
// 不负责单行判定细节（单行逻辑在 search 包）。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/wxgeo/global-search/internal/model"
	"github.com/wxgeo/global-search/internal/search"
)

// Service 是扫描服务对象。
// 扫描全程单线程顺序执行：文件逐个处理，行逐条处理，
// 所有计数器都由本次运行独占，不需要加锁。
type Service struct {
	config       search.Config
	mode         model.Mode
	extensions   []string
	skipPatterns []string
	line         *search.LineScanner
}

// NewService 创建扫描服务。
func NewService(config search.Config, mode model.Mode, extensions []string, skipPatterns []string) *Service {
	return &Service{
		config:       config,
		mode:         mode,
		extensions:   normalizeExtensions(extensions),
		skipPatterns: append([]string(nil), skipPatterns...),
		line:         search.NewLineScanner(config, mode == model.ModeStats),
	}
}

// normalizeExtensions 统一后缀形式：补齐点号并转小写。
func normalizeExtensions(extensions []string) []string {
	result := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		result = append(result, strings.ToLower(trimmed))
	}
	return result
}

// Run 从 root 目录开始完整扫描。
// 返回错误仅代表扫描无法开始；单文件的读取/解码失败只会
// 变成 Result.Warnings 里的警告，不会中止遍历。
func (s *Service) Run(root string) (model.Result, error) {
	result := model.Result{
		Mode:     s.mode,
		Status:   model.StatusCompleted,
		Files:    make([]model.FileMatches, 0),
		Warnings: make([]model.Warning, 0),
	}

	// 配置错误是全局致命的，必须在接触任何文件之前拒绝。
	if err := s.config.Validate(); err != nil {
		return result, err
	}

	trimmedRoot := strings.TrimSpace(root)
	if trimmedRoot == "" {
		return result, errors.New("search root is empty")
	}

	absoluteRoot, err := filepath.Abs(trimmedRoot)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteRoot)
	if err != nil {
		return result, fmt.Errorf("stat search root: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("search root is not a directory: %s", absoluteRoot)
	}

	result.Root = absoluteRoot

	files := s.collectFiles(absoluteRoot, &result)

	for _, path := range files {
		if truncated := s.scanFile(path, &result); truncated {
			result.Status = model.StatusTruncated
			break
		}
	}

	return result, nil
}

// collectFiles 遍历目录树并返回全部候选文件。
// 遍历顺序由 WalkDir 决定（字典序），保证输出可复现。
// 遍历中的读取失败（例如无权限的子目录）只记为警告并跳过该子树，
// 不会中止整次遍历。
func (s *Service) collectFiles(root string, result *model.Result) []string {
	files := make([]string, 0)

	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			result.Warnings = append(result.Warnings, model.Warning{
				Path:    path,
				Message: err.Error(),
			})
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && s.matchesSkipPattern(path, true) {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !s.extensionAllowed(ext) {
			return nil
		}
		if s.matchesSkipPattern(path, false) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files
}

// extensionAllowed 判断后缀是否在白名单内。
func (s *Service) extensionAllowed(ext string) bool {
	for _, allowed := range s.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// matchesSkipPattern 判断路径是否命中任一跳过模式。
// 模式是以 * 为通配符的 glob，依次尝试完整路径、任意层级下的
// 相对形式与文件名本身；目录额外尝试带尾部分隔符的形式，
// 使 ".tox/*" 这类模式也能整目录剪枝。
func (s *Service) matchesSkipPattern(path string, isDir bool) bool {
	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, raw := range s.skipPatterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		pattern = strings.TrimSuffix(pattern, "/")

		candidates := []string{slashPath, base}
		if isDir {
			candidates = append(candidates, slashPath+"/")
		}
		for _, candidate := range candidates {
			if matched, err := doublestar.Match(pattern, candidate); err == nil && matched {
				return true
			}
			if matched, err := doublestar.Match("**/"+pattern, candidate); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// scanFile 顺序扫描单个文件并把产出累加到 result 上。
// 返回 true 表示命中行数已超过上限，整个扫描必须立即停止。
func (s *Service) scanFile(path string, result *model.Result) bool {
	result.FileCount++

	content, err := os.ReadFile(path)
	if err != nil {
		result.Warnings = append(result.Warnings, model.Warning{
			Path:    path,
			Message: err.Error(),
		})
		return false
	}
	if !utf8.Valid(content) {
		result.Warnings = append(result.Warnings, model.Warning{
			Path:    path,
			Message: "content is not valid UTF-8, file skipped",
		})
		return false
	}

	lines := strings.Split(string(content), "\n")
	fileMatches := model.FileMatches{Path: path, Matches: make([]model.LineMatch, 0)}
	modified := false
	truncated := false

	for index, line := range lines {
		// 末尾换行符会在 Split 后多出一个空元素，它不是真实的行。
		if index == len(lines)-1 && line == "" {
			continue
		}

		lineNumber := index + 1
		lineResult := s.line.Scan(line, lineNumber)

		if s.mode == model.ModeStats {
			s.accumulateStats(lineResult, &result.Stats)
			continue
		}

		if len(lineResult.Positions) == 0 {
			continue
		}

		result.Occurrences += int64(len(lineResult.Positions))
		result.MatchingLines++

		if s.mode == model.ModeReplace {
			lines[index] = strings.ReplaceAll(line, s.config.Pattern, s.config.Replacement)
			modified = true
		}

		fileMatches.Matches = append(fileMatches.Matches, model.LineMatch{
			Index:      int(result.MatchingLines),
			LineNumber: lineNumber,
			Positions:  lineResult.Positions,
			Text:       strings.TrimRight(s.line.Fold(line), " \t\r"),
		})

		if result.MatchingLines > int64(s.config.MaxResults) {
			truncated = true
			break
		}
	}

	if len(fileMatches.Matches) > 0 {
		result.Files = append(result.Files, fileMatches)
	}

	// 重写只发生在整文件扫描完毕后；提前截断的文件不回写，
	// 避免把半个文件的替换落盘。
	if modified && !truncated {
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
			result.Warnings = append(result.Warnings, model.Warning{
				Path:    path,
				Message: fmt.Sprintf("rewrite failed: %v", err),
			})
		}
	}

	return truncated
}

// accumulateStats 把单行分类结果累加到统计计数器。
func (s *Service) accumulateStats(lineResult model.LineResult, stats *model.LineStats) {
	switch {
	case lineResult.IsBlank:
		stats.Blank++
	case lineResult.IsComment:
		stats.Comment++
	default:
		stats.Code++
	}
}
