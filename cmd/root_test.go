package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wxgeo/global-search/internal/editor"
)

// TestRootCommandPlainWhenRedirected 验证输出被重定向时不产生 ANSI 转义序列。
func TestRootCommandPlainWhenRedirected(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "a.py"), []byte("hit = 1\n"), 0o644); err != nil {
		t.Fatalf("write fixture file failed: %v", err)
	}
	previousDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working directory failed: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(previousDir); err != nil {
			t.Fatalf("restore working directory failed: %v", err)
		}
	})

	rootCmd := newRootCmd("test", editor.NewRegistry())
	var buffer bytes.Buffer
	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{"hit"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	output := buffer.String()
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("redirected output must be plain text:\n%q", output)
	}
	if !strings.Contains(output, "-> 1 occurrence(s) found.") {
		t.Fatalf("missing search summary:\n%s", output)
	}
}
