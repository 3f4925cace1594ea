// Package zpl 把结构化的排版指令序列化为 ZPL II 标记。
package zpl

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/flanksource/commons/logger"

	"github.com/ByLCY/labelkit/layout"
	"github.com/ByLCY/labelkit/renderer"
)

const (
	crlf = "\r\n"

	// StartFormat 与 EndFormat 包裹整份文档，所有记录共享一个框架。
	StartFormat = "^XA"
	EndFormat   = "^XZ"

	// centerEscape 附加在居中文本末尾，与 ^FB 的 C 对齐配合使用。
	centerEscape = `\&`
	// fieldBlockLineSpacing 是 ^FB 的行间距参数。
	fieldBlockLineSpacing = 3
)

// Renderer 生成 ZPL 文档。
type Renderer struct{}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer returns a ZPL renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render 输出 ^XA + ^PW/^LL 前导 + 每条记录的各区域输出 + ^XZ。
// 同一记录内各区域输出以 CRLF 连接，缺失的区域贡献空串。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var buf bytes.Buffer
	if err := Write(&buf, result); err != nil {
		return nil, err
	}
	logger.Debugf("zpl: %d labels, %d bytes", len(result.Labels), buf.Len())
	return buf.Bytes(), nil
}

// Write streams the document for result to w.
func Write(w io.Writer, result *layout.Result) error {
	if result == nil {
		return fmt.Errorf("渲染结果为空")
	}
	var sb strings.Builder
	sb.WriteString(StartFormat + crlf)
	writePreamble(&sb, result.Size.WidthInDots, result.Size.HeightInDots)
	for _, label := range result.Labels {
		parts := make([]string, 0, len(label.Sections))
		for _, sec := range label.Sections {
			parts = append(parts, Block(sec.Block))
		}
		sb.WriteString(strings.Join(parts, crlf))
	}
	sb.WriteString(EndFormat)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("写入 ZPL 失败: %w", err)
	}
	return nil
}

func writePreamble(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, "^PW%d%s^LL%d%s", width, crlf, height, crlf)
}

// RenderSection 对单个区域排版并直接返回其 ZPL 片段：先文本，后边框。
func RenderSection(s layout.Section, values []string) string {
	return Block(s.Layout(values))
}

// Block 序列化一个区域的排版输出。文本存在时先声明 UTF-8 编码与字段方向。
func Block(b layout.Block) string {
	var sb strings.Builder
	if len(b.Texts) > 0 {
		sb.WriteString("^CI28" + crlf)
		sb.WriteString(fieldOrientation(b.Orientation) + crlf)
		for _, t := range b.Texts {
			writeText(&sb, t)
		}
	}
	for _, box := range b.Boxes {
		writeBox(&sb, box)
	}
	return sb.String()
}

func fieldOrientation(o layout.Orientation) string {
	if o == layout.Landscape {
		return "^FWB"
	}
	return "^FWN"
}

func writeText(sb *strings.Builder, t layout.TextInstruction) {
	text := t.Text
	if t.Align == layout.AlignCenter {
		text += centerEscape
	}
	fmt.Fprintf(sb, "^FO%d,%d%s", t.X, t.Y, crlf)
	fmt.Fprintf(sb, "^A%s,%d,%d%s", t.Font, t.FontSize, t.Font.CharWidth(t.FontSize), crlf)
	fmt.Fprintf(sb, "^FB%d,,%d,%s%s", t.BlockWidth, fieldBlockLineSpacing, t.Align, crlf)
	fmt.Fprintf(sb, "^FD%s^FS%s", text, crlf)
}

func writeBox(sb *strings.Builder, b layout.BoxInstruction) {
	fmt.Fprintf(sb, "^FO%d,%d%s", b.X, b.Y, crlf)
	fmt.Fprintf(sb, "^GB%d,%d,%d^FS%s", b.Width, b.Height, b.Thickness, crlf)
}
