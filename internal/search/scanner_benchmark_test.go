package search

import (
	"strconv"
	"testing"
)

// prepareBenchmarkLines 构造一批含行尾注释与字符串字面量的行。
func prepareBenchmarkLines() []string {
	lines := make([]string, 0, 3000)
	for i := 0; i < 1000; i++ {
		lines = append(lines, "value"+strconv.Itoa(i)+" = value + 1  # trailing value note")
		lines = append(lines, `text = "quoted # value inside string"`)
		lines = append(lines, "# pure comment line with value")
	}
	return lines
}

// BenchmarkScanLine 衡量单行匹配路径的性能。
func BenchmarkScanLine(b *testing.B) {
	config := Config{
		Pattern:       "value",
		CaseSensitive: true,
		CommentMarker: "#",
		MaxResults:    100,
	}
	scanner := NewLineScanner(config, false)
	lines := prepareBenchmarkLines()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for number, line := range lines {
			_ = scanner.Scan(line, number+1)
		}
	}
}

// BenchmarkClassifyLine 衡量统计模式分类路径的性能。
func BenchmarkClassifyLine(b *testing.B) {
	config := Config{
		CaseSensitive: true,
		CommentMarker: "#",
		MaxResults:    100,
	}
	scanner := NewLineScanner(config, true)
	lines := prepareBenchmarkLines()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for number, line := range lines {
			_ = scanner.Scan(line, number+1)
		}
	}
}
