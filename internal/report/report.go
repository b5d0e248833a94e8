package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wxgeo/global-search/internal/model"
	"github.com/wxgeo/global-search/internal/search"
)

// Print 把一次运行的完整结果渲染到 writer。
// 渲染顺序：标题、逐文件命中清单、警告、截断提示、模式相关总结。
func Print(writer io.Writer, result model.Result, config search.Config, formatter *Formatter) error {
	if err := printHeader(writer, result, config, formatter); err != nil {
		return err
	}

	searchText := config.Pattern
	if !config.CaseSensitive {
		searchText = strings.ToLower(searchText)
	}

	for _, file := range result.Files {
		if err := printFileMatches(writer, result.Root, file, searchText, formatter); err != nil {
			return err
		}
	}

	for _, warning := range result.Warnings {
		line := formatter.Apply(EmphasisError, "ERROR:") + " can't read " + warning.Path + ": " + warning.Message
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	// 截断的运行只以截断提示收尾，不再输出常规总结，
	// 保证截断结果与正常完成在输出上可区分。
	if result.Status == model.StatusTruncated {
		_, err := fmt.Fprintln(writer, formatter.Apply(EmphasisError, "Maximum output exceeded...!"))
		return err
	}

	return printSummary(writer, result, config, formatter)
}

// printHeader 输出运行标题与搜索根目录。
func printHeader(writer io.Writer, result model.Result, config search.Config, formatter *Formatter) error {
	if result.Mode != model.ModeStats {
		title := fmt.Sprintf("=== Searching for %q ===", config.Pattern)
		if _, err := fmt.Fprintf(writer, "%s\n\n", formatter.Apply(EmphasisLineNumber, title)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "Searching in %s...\n\n", formatter.Apply(EmphasisSuccess, result.Root))
	return err
}

// printFileMatches 输出单文件的命中清单。
// 路径按“根目录 + 相对后缀”两段分别强调。
func printFileMatches(writer io.Writer, root string, file model.FileMatches, searchText string, formatter *Formatter) error {
	rootPart := root + string(filepath.Separator)
	suffix := strings.TrimPrefix(file.Path, rootPart)
	if suffix == file.Path {
		// 路径不在根目录下时整段按后缀处理。
		rootPart = ""
		suffix = file.Path
	}

	bullet := " • in " + formatter.Apply(EmphasisPathRoot, rootPart) + formatter.Apply(EmphasisPathSuffix, suffix)
	if _, err := fmt.Fprintln(writer, bullet); err != nil {
		return err
	}

	for _, match := range file.Matches {
		row := fmt.Sprintf("   %s  line %s:   %s",
			formatter.Apply(EmphasisSummary, fmt.Sprintf("(%d)", match.Index)),
			formatter.Apply(EmphasisLineNumber, fmt.Sprintf("%d", match.LineNumber)),
			highlightMatches(match.Text, match.Positions, len(searchText), formatter),
		)
		if _, err := fmt.Fprintln(writer, strings.TrimRight(row, " \t")); err != nil {
			return err
		}
	}
	return nil
}

// highlightMatches 在每个命中位置给搜索串加上强调。
// positions 以 text 的字节偏移为准，按升序处理。
func highlightMatches(text string, positions []int, width int, formatter *Formatter) string {
	if width <= 0 || len(positions) == 0 {
		return text
	}

	var builder strings.Builder
	previous := 0
	for _, position := range positions {
		if position < previous || position+width > len(text) {
			continue
		}
		builder.WriteString(text[previous:position])
		builder.WriteString(formatter.Apply(EmphasisMatch, text[position:position+width]))
		previous = position + width
	}
	builder.WriteString(text[previous:])
	return builder.String()
}

// printSummary 输出与运行模式对应的总结。
func printSummary(writer io.Writer, result model.Result, config search.Config, formatter *Formatter) error {
	switch result.Mode {
	case model.ModeStats:
		lines := []string{
			fmt.Sprintf("%d lines of code", result.Stats.Code),
			fmt.Sprintf("%d comment lines", result.Stats.Comment),
			fmt.Sprintf("%d blank lines", result.Stats.Blank),
			fmt.Sprintf("%d files", result.FileCount),
		}
		_, err := fmt.Fprintln(writer, formatter.Apply(EmphasisSummary, strings.Join(lines, "\n")))
		return err
	case model.ModeReplace:
		summary := fmt.Sprintf("%d occurrence(s) of %q replaced by %q.",
			result.Occurrences, config.Pattern, config.Replacement)
		_, err := fmt.Fprintln(writer, formatter.Apply(EmphasisSummary, summary))
		return err
	default:
		summary := fmt.Sprintf("\n-> %d occurrence(s) found.", result.Occurrences)
		_, err := fmt.Fprintln(writer, formatter.Apply(EmphasisSummary, summary))
		return err
	}
}
