// Package editor 负责“在外部编辑器中打开命中行”的调用。
// 每个受支持的编辑器携带自己的行定位参数语法，
// 通过注册表查找而不是链式字符串比较。
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
)

// DefaultName 是未指定编辑器时的默认选择。
const DefaultName = "nano"

// lineFlagStyle 枚举“打开文件并跳到第 N 行”的参数语法。
type lineFlagStyle int

const (
	// stylePlus 形如 `editor +N file`（nano/vim/emacs/gedit）。
	stylePlus lineFlagStyle = iota
	// styleShortL 形如 `editor -l N file`（geany/kate）。
	styleShortL
	// styleLongLine 形如 `editor --line N file`（kile）。
	styleLongLine
)

// Editor 表示一个受支持的外部编辑器。
type Editor struct {
	name  string
	style lineFlagStyle
}

// Name 返回编辑器名称。
func (e Editor) Name() string {
	return e.name
}

// LineSyntax 返回该编辑器行定位参数的展示形式。
func (e Editor) LineSyntax() string {
	switch e.style {
	case styleShortL:
		return "-l N"
	case styleLongLine:
		return "--line N"
	default:
		return "+N"
	}
}

// Command 构造“打开文件并跳到指定行”的命令行。
func (e Editor) Command(path string, line int) (string, []string) {
	number := strconv.Itoa(line)
	switch e.style {
	case styleShortL:
		return e.name, []string{"-l", number, path}
	case styleLongLine:
		return e.name, []string{"--line", number, path}
	default:
		return e.name, []string{"+" + number, path}
	}
}

// Open 启动编辑器并阻塞到进程退出。
// 终端编辑器需要接管标准输入输出，否则无法交互。
func (e Editor) Open(path string, line int) error {
	name, args := e.Command(path, line)
	command := exec.Command(name, args...)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	if err := command.Run(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Registry 管理受支持编辑器的注册与查找。
// 注册表在启动时构建一次并显式传递，不存在可变的包级单例。
type Registry struct {
	editors []Editor
	byName  map[string]Editor
}

// NewRegistry 创建并注册全部受支持的编辑器。
func NewRegistry() *Registry {
	editors := []Editor{
		{name: "geany", style: styleShortL},
		{name: "gedit", style: stylePlus},
		{name: "nano", style: stylePlus},
		{name: "vim", style: stylePlus},
		{name: "emacs", style: stylePlus},
		{name: "kate", style: styleShortL},
		{name: "kile", style: styleLongLine},
	}

	registry := &Registry{
		editors: editors,
		byName:  make(map[string]Editor, len(editors)),
	}
	for _, item := range editors {
		registry.byName[item.name] = item
	}
	return registry
}

// Lookup 按名称查找编辑器。
// 未注册的名称返回错误，错误信息中列出全部受支持的编辑器，
// 调用方把它作为警告展示即可，不应中止运行。
func (r *Registry) Lookup(name string) (Editor, error) {
	item, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return Editor{}, fmt.Errorf("%s is currently not supported (supported editors: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return item, nil
}

// Names 返回受支持编辑器名称的有序列表。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.editors))
	for _, item := range r.editors {
		names = append(names, item.name)
	}
	sort.Strings(names)
	return names
}

// Editors 返回展示用的编辑器清单（按名称排序）。
func (r *Registry) Editors() []Editor {
	result := append([]Editor(nil), r.editors...)
	sort.Slice(result, func(i int, j int) bool {
		return result[i].name < result[j].name
	})
	return result
}
