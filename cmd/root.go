// Package cmd 提供 global-search 的命令行入口与子命令编排。
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wxgeo/global-search/internal/editor"
	"github.com/wxgeo/global-search/internal/model"
	"github.com/wxgeo/global-search/internal/report"
	"github.com/wxgeo/global-search/internal/scanner"
	"github.com/wxgeo/global-search/internal/search"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry := editor.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// rootOptions 存放根命令的可配置参数。
type rootOptions struct {
	replaceWith     string
	editResult      []int
	editWith        string
	stats           bool
	maximum         int
	includeComments bool
	extensions      []string
	noColor         bool
	skipPaths       []string
	discardCase     bool
	commentMarker   string
}

// defaultExtensions 返回默认搜索后缀（每次调用都返回新切片）。
func defaultExtensions() []string {
	return []string{".py", ".pyw"}
}

// defaultSkipPatterns 返回默认跳过模式（每次调用都返回新切片）。
func defaultSkipPatterns() []string {
	return []string{".*", "dist/", "doc/", ".tox/*"}
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身就是搜索入口：
//
//	global-search needle
//	global-search -c -i needle
//	global-search -r replacement needle
//	global-search -s
func newRootCmd(version string, registry *editor.Registry) *cobra.Command {
	options := rootOptions{
		editWith:      editor.DefaultName,
		maximum:       100,
		extensions:    defaultExtensions(),
		skipPaths:     defaultSkipPatterns(),
		commentMarker: "#",
	}

	rootCmd := &cobra.Command{
		Use:   "global-search [flags] [STRING]",
		Short: "在当前目录树中递归查找字面子串",
		Long: "global-search 在当前目录及其子目录的源码文件中递归查找字面子串，\n" +
			"支持行尾注释识别、原地替换、行统计（code/comment/blank）\n" +
			"以及在外部编辑器中打开命中行。STRING 为空时进入统计模式。",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, registry, options, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&options.replaceWith, "replace-with", "r", "", "把 STRING 的全部出现替换为该文本（要求大小写敏感）")
	flags.IntSliceVarP(&options.editResult, "edit-result", "e", nil, "在编辑器中打开第 N 个结果，N=0 表示全部结果")
	flags.StringVarP(&options.editWith, "edit-with", "w", options.editWith, "打开命中行所用的编辑器")
	flags.BoolVarP(&options.stats, "stats", "s", false, "只统计扫描文件的行数信息")
	flags.IntVarP(&options.maximum, "maximum", "m", options.maximum, "最多展示前 N 个命中行")
	flags.BoolVarP(&options.includeComments, "include-comments", "i", false, "注释内容也参与搜索")
	flags.StringSliceVarP(&options.extensions, "extensions", "x", options.extensions, "只搜索这些后缀的文件")
	flags.BoolVarP(&options.noColor, "no-color", "n", false, "禁用彩色输出")
	flags.StringSliceVarP(&options.skipPaths, "skip-paths", "k", options.skipPaths, "要跳过的路径模式（* 为通配符）")
	flags.BoolVarP(&options.discardCase, "discard-case", "c", false, "大小写不敏感搜索")
	flags.StringVar(&options.commentMarker, "comment-marker", options.commentMarker, "行注释起始符（单个字符）")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newEditorsCmd(registry))

	return rootCmd
}

// runSearch 是根命令的执行体：构建配置、跑扫描、渲染结果、
// 按需调起外部编辑器。
func runSearch(cmd *cobra.Command, registry *editor.Registry, options rootOptions, args []string) error {
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	hasReplacement := cmd.Flags().Changed("replace-with")

	mode := model.ModeSearch
	switch {
	case options.stats || pattern == "":
		mode = model.ModeStats
	case hasReplacement:
		mode = model.ModeReplace
	}

	config := search.Config{
		Pattern:         pattern,
		CaseSensitive:   !options.discardCase,
		IncludeComments: options.includeComments,
		CommentMarker:   options.commentMarker,
		MaxResults:      options.maximum,
		Replacement:     options.replaceWith,
		HasReplacement:  hasReplacement,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	service := scanner.NewService(config, mode, options.extensions, options.skipPaths)
	result, err := service.Run(root)
	if err != nil {
		return err
	}

	// 彩色判定针对真实的输出目标：输出被重定向（测试、管道）时退回纯文本。
	colored := false
	if !options.noColor {
		if file, ok := cmd.OutOrStdout().(*os.File); ok {
			colored = report.AutoColor(file)
		}
	}
	formatter := report.NewFormatter(colored)
	if err := report.Print(cmd.OutOrStdout(), result, config, formatter); err != nil {
		return err
	}

	if cmd.Flags().Changed("edit-result") && mode != model.ModeStats {
		openResults(cmd, registry, options, result, formatter)
	}
	return nil
}

// openResults 在外部编辑器中逐个打开选中的命中行。
// 编辑器相关的失败都只是警告，不影响本次运行的返回值。
func openResults(cmd *cobra.Command, registry *editor.Registry, options rootOptions, result model.Result, formatter *report.Formatter) {
	chosen, err := registry.Lookup(options.editWith)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatter.Apply(report.EmphasisError, err.Error()))
		return
	}

	openAll := len(options.editResult) == 0
	selected := make(map[int]bool, len(options.editResult))
	for _, index := range options.editResult {
		if index == 0 {
			openAll = true
			continue
		}
		selected[index] = true
	}

	for _, file := range result.Files {
		for _, match := range file.Matches {
			if !openAll && !selected[match.Index] {
				continue
			}
			if openErr := chosen.Open(file.Path, match.LineNumber); openErr != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(),
					formatter.Apply(report.EmphasisError, "WARNING: "+openErr.Error()))
			}
		}
	}
}
