package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/wxgeo/global-search/internal/model"
	"github.com/wxgeo/global-search/internal/search"
)

// plainConfig 返回测试用的基础配置。
func plainConfig(pattern string) search.Config {
	return search.Config{
		Pattern:       pattern,
		CaseSensitive: true,
		CommentMarker: "#",
		MaxResults:    100,
	}
}

// TestPrintSearchResult 验证默认模式的渲染结构。
func TestPrintSearchResult(t *testing.T) {
	root := filepath.Join("/tmp", "project")
	result := model.Result{
		Root:   root,
		Mode:   model.ModeSearch,
		Status: model.StatusCompleted,
		Files: []model.FileMatches{
			{
				Path: filepath.Join(root, "src", "a.py"),
				Matches: []model.LineMatch{
					{Index: 1, LineNumber: 3, Positions: []int{4}, Text: "x = value + 1"},
				},
			},
		},
		MatchingLines: 1,
		Occurrences:   1,
	}

	var builder strings.Builder
	if err := Print(&builder, result, plainConfig("value"), NewFormatter(false)); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	output := builder.String()

	for _, fragment := range []string{
		`=== Searching for "value" ===`,
		"Searching in " + root + "...",
		filepath.Join("src", "a.py"),
		"(1)  line 3:   x = value + 1",
		"-> 1 occurrence(s) found.",
	} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, output)
		}
	}
}

// TestPrintTruncationAndWarnings 验证截断提示与解码警告的渲染。
func TestPrintTruncationAndWarnings(t *testing.T) {
	result := model.Result{
		Root:   "/tmp/p",
		Mode:   model.ModeSearch,
		Status: model.StatusTruncated,
		Warnings: []model.Warning{
			{Path: "/tmp/p/bad.py", Message: "content is not valid UTF-8, file skipped"},
		},
	}

	var builder strings.Builder
	if err := Print(&builder, result, plainConfig("x"), NewFormatter(false)); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	output := builder.String()

	if !strings.Contains(output, "Maximum output exceeded...!") {
		t.Fatalf("missing truncation notice:\n%s", output)
	}
	if !strings.Contains(output, "ERROR: can't read /tmp/p/bad.py") {
		t.Fatalf("missing decode warning:\n%s", output)
	}
	// 截断后不再有常规总结，截断结果必须保持可区分。
	if strings.Contains(output, "occurrence(s) found") {
		t.Fatalf("truncated run must not print the normal summary:\n%s", output)
	}
}

// TestPrintStatsSummary 验证统计模式的总结形态。
func TestPrintStatsSummary(t *testing.T) {
	result := model.Result{
		Root:      "/tmp/p",
		Mode:      model.ModeStats,
		Status:    model.StatusCompleted,
		Stats:     model.LineStats{Code: 12, Comment: 3, Blank: 5},
		FileCount: 2,
	}

	var builder strings.Builder
	if err := Print(&builder, result, plainConfig(""), NewFormatter(false)); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	output := builder.String()

	for _, fragment := range []string{
		"12 lines of code",
		"3 comment lines",
		"5 blank lines",
		"2 files",
	} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("stats summary missing %q:\n%s", fragment, output)
		}
	}
	if strings.Contains(output, "=== Searching for") {
		t.Fatalf("stats mode must not print a search title:\n%s", output)
	}
}

// TestPrintReplaceSummary 验证替换模式的总结形态。
func TestPrintReplaceSummary(t *testing.T) {
	config := plainConfig("old")
	config.Replacement = "fresh"
	config.HasReplacement = true

	result := model.Result{
		Root:        "/tmp/p",
		Mode:        model.ModeReplace,
		Status:      model.StatusCompleted,
		Occurrences: 2,
	}

	var builder strings.Builder
	if err := Print(&builder, result, config, NewFormatter(false)); err != nil {
		t.Fatalf("print failed: %v", err)
	}

	if !strings.Contains(builder.String(), `2 occurrence(s) of "old" replaced by "fresh".`) {
		t.Fatalf("unexpected replace summary:\n%s", builder.String())
	}
}

// TestHighlightMatchesPositions 验证按位置插入强调不破坏其余文本。
func TestHighlightMatchesPositions(t *testing.T) {
	formatter := NewFormatter(false)

	// 纯文本模式下强调是恒等变换，输出必须与输入一致。
	text := "foo bar foo"
	if got := highlightMatches(text, []int{0, 8}, 3, formatter); got != text {
		t.Fatalf("plain highlight changed text: %q", got)
	}

	// 越界位置被忽略而不是崩溃。
	if got := highlightMatches(text, []int{100}, 3, formatter); got != text {
		t.Fatalf("out of range position mishandled: %q", got)
	}
}
