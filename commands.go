package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/ByLCY/labelkit/binding"
	"github.com/ByLCY/labelkit/dsl"
	"github.com/ByLCY/labelkit/fit"
	"github.com/ByLCY/labelkit/layout"
	canvasrenderer "github.com/ByLCY/labelkit/renderer/canvas"
	"github.com/ByLCY/labelkit/renderer/zpl"
)

type renderOptions struct {
	Template      string
	Data          string
	Out           string
	Preview       string
	PreviewFormat string
	Font          string
	Debug         string
	FitDetails    bool
	Strategy      string
}

func newRenderCommand() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "按模板排版记录并输出 ZPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.Template, "template", "t", "", "标签模板文件（.label）")
	f.StringVarP(&opts.Data, "data", "d", "", "记录数据文件（YAML/JSON），- 表示标准输入")
	f.StringVarP(&opts.Out, "out", "o", "", "ZPL 输出路径，默认写到标准输出")
	f.StringVar(&opts.Preview, "preview", "", "额外输出 PDF/SVG 预览的路径")
	f.StringVar(&opts.PreviewFormat, "preview-format", "", "预览格式 pdf/svg，默认按 --preview 的扩展名推断")
	f.StringVar(&opts.Font, "font", "", "预览使用的 TTF/OTF 字体，缺省时以灰色条块代替文字")
	f.StringVar(&opts.Debug, "debug", "", "排版调试 JSON 输出路径")
	f.BoolVar(&opts.FitDetails, "fit-details", false, "在调试 JSON 中保留字号选择细节")
	f.StringVar(&opts.Strategy, "strategy", "linear", "字号搜索策略 linear/binary")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newTestLabelCommand() *cobra.Command {
	var tplPath, out string
	cmd := &cobra.Command{
		Use:   "test-label",
		Short: "输出用于校准介质尺寸的测试标签",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(tplPath, fit.Linear)
			if err != nil {
				return err
			}
			doc, err := zpl.TestLabel(tpl)
			if err != nil {
				return err
			}
			return writeOutput(out, []byte(doc), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&tplPath, "template", "t", "", "标签模板文件（.label）")
	cmd.Flags().StringVarP(&out, "out", "o", "", "ZPL 输出路径，默认写到标准输出")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

// runRender 串联解析、编译、绑定、排版与渲染。
func runRender(opts renderOptions, stdin io.Reader, stdout io.Writer) error {
	strategy, err := fit.ParseStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	tpl, err := loadTemplate(opts.Template, strategy)
	if err != nil {
		return err
	}
	data, err := loadData(opts.Data, stdin)
	if err != nil {
		return err
	}
	records := binding.Records(data, tpl.Keys())
	logger.Infof("排版 %d 条记录，模板 %s（%dx%d 点，%s）",
		len(records), tpl.Name, tpl.Size.WidthInDots, tpl.Size.HeightInDots, tpl.Density)

	result, err := layout.Build(tpl, records, layout.BuildOptions{
		Debug: layout.DebugOptions{FitDetails: opts.FitDetails},
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.Debug != "" {
		if err := layout.WriteDebugJSON(result, opts.Debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if opts.Preview != "" {
		if err := writePreview(result, opts); err != nil {
			return err
		}
	}

	doc, err := zpl.NewRenderer().Render(result)
	if err != nil {
		return fmt.Errorf("渲染 ZPL 失败: %w", err)
	}
	return writeOutput(opts.Out, doc, stdout)
}

func loadTemplate(path string, strategy fit.Strategy) (*layout.Template, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开模板文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(path, file)
	if err != nil {
		return nil, fmt.Errorf("解析模板失败: %w", err)
	}
	fitter := fit.New()
	fitter.Strategy = strategy
	tpl, err := layout.Compile(doc, layout.CompileOptions{Fitter: fitter})
	if err != nil {
		return nil, fmt.Errorf("编译模板失败: %w", err)
	}
	return tpl, nil
}

func loadData(path string, stdin io.Reader) ([]any, error) {
	if path == "-" {
		return binding.LoadRecords(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开数据文件 %s: %w", path, err)
	}
	defer file.Close()
	return binding.LoadRecords(file)
}

func writePreview(result *layout.Result, opts renderOptions) error {
	format := opts.PreviewFormat
	if format == "" {
		format = filepath.Ext(opts.Preview)
		if len(format) > 0 {
			format = format[1:]
		}
	}
	f, err := canvasrenderer.ParseFormat(format)
	if err != nil {
		return err
	}
	out, err := canvasrenderer.NewRenderer(canvasrenderer.Options{FontPath: opts.Font, Format: f}).Render(result)
	if err != nil {
		return fmt.Errorf("渲染预览失败: %w", err)
	}
	if err := writeFile(opts.Preview, out); err != nil {
		return err
	}
	logger.Infof("已生成预览：%s", opts.Preview)
	return nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	logger.Infof("已生成 ZPL：%s", path)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
