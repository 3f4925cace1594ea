// Package canvasrenderer 把排版结果绘制为 PDF 或 SVG 预览，用于在没有打印机时校对标签。
// 预览是近似的：字形来自本地字体文件，未提供字体时用灰色条块表示估算的文本宽度。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/flanksource/commons/logger"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/labelkit/layout"
	"github.com/ByLCY/labelkit/metrics"
	"github.com/ByLCY/labelkit/renderer"
)

// Format 是预览输出格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

const (
	mmPerPt = 25.4 / 72.0
	// barHeightRatio 是无字体时灰色条块高度相对字号的比例。
	barHeightRatio = 0.7
)

var (
	inkColor = canvas.Hex("#1e1e1e")
	barColor = canvas.Hex("#b4b4b4")
)

// Options configures the preview renderer.
type Options struct {
	// FontPath 指向 TTF/OTF 字体文件，为空时以灰色条块代替文字。
	FontPath string
	// FontData 直接提供字体字节，优先于 FontPath。
	FontData []byte
	// Format 默认为 pdf。
	Format Format
	// Metrics 用于估算条块宽度，为空时使用内置宽度表。
	Metrics *metrics.Model
}

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontOnce sync.Once
	family   *canvas.FontFamily
	fontErr  error
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a preview renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatPDF
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Default()
	}
	return &Renderer{opts: opts}
}

// ParseFormat accepts pdf or svg (case-insensitive).
func ParseFormat(v string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(v))); f {
	case FormatPDF, FormatSVG:
		return f, nil
	case "":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("未知的预览格式 %q（可选 pdf/svg）", v)
}

// Render 把每张标签绘制为一页。SVG 只有一页，标签自上而下依次排列。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Labels) == 0 {
		return nil, fmt.Errorf("缺少可渲染的标签")
	}
	family, err := r.fontFamily()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch r.opts.Format {
	case FormatSVG:
		err = r.renderSVG(&buf, result, family)
	default:
		err = r.renderPDF(&buf, result, family)
	}
	if err != nil {
		return nil, err
	}
	logger.Debugf("preview %s: %d labels, %d bytes", r.opts.Format, len(result.Labels), buf.Len())
	return buf.Bytes(), nil
}

func (r *Renderer) renderPDF(w io.Writer, result *layout.Result, family *canvas.FontFamily) error {
	pageW, pageH := pageSize(result)
	writer := pdf.New(w, pageW, pageH, nil)
	writer.SetInfo(result.Name, "", "", "", "labelkit")
	for i, label := range result.Labels {
		if i > 0 {
			writer.NewPage(pageW, pageH)
		}
		c := canvas.New(pageW, pageH)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 与 ZPL 一致，左上角为原点
		r.drawLabel(ctx, result, label, 0, family)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

func (r *Renderer) renderSVG(w io.Writer, result *layout.Result, family *canvas.FontFamily) error {
	pageW, pageH := pageSize(result)
	totalH := pageH * float64(len(result.Labels))
	c := canvas.New(pageW, totalH)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	for i, label := range result.Labels {
		offset := pageH * float64(i)
		if i > 0 {
			// 标签之间的分隔线
			ctx.SetFillColor(barColor)
			ctx.DrawPath(0, offset, canvas.Rectangle(pageW, 0.2))
		}
		r.drawLabel(ctx, result, label, offset, family)
	}
	writer := svg.New(w, pageW, totalH, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 SVG 失败: %w", err)
	}
	return nil
}

func pageSize(result *layout.Result) (float64, float64) {
	dpmm := result.Density.DotsPerMM()
	return float64(result.Size.WidthInDots) / dpmm, float64(result.Size.HeightInDots) / dpmm
}

// drawLabel 依次绘制各区域：先文本，后边框，与 ZPL 输出顺序一致。
func (r *Renderer) drawLabel(ctx *canvas.Context, result *layout.Result, label layout.Label, offsetY float64, family *canvas.FontFamily) {
	dpmm := result.Density.DotsPerMM()
	mm := func(dots int) float64 { return float64(dots) / dpmm }
	for _, sec := range label.Sections {
		if !sec.Present {
			continue
		}
		for _, t := range sec.Block.Texts {
			r.drawText(ctx, sec.Key, sec.Block.Orientation, t, mm, offsetY, family)
		}
		ctx.SetFillColor(inkColor)
		for _, b := range sec.Block.Boxes {
			ctx.DrawPath(mm(b.X), mm(b.Y)+offsetY, canvas.Rectangle(mm(b.Width), mm(b.Height)))
		}
	}
}

// drawText 在文本块的局部坐标系中绘制一行：局部 x 沿块宽度，局部 y 沿行堆叠方向。
// 横向文本（^FWB）自下而上书写，局部坐标系逆时针旋转 90 度。
func (r *Renderer) drawText(ctx *canvas.Context, key string, o layout.Orientation, t layout.TextInstruction,
	mm func(int) float64, offsetY float64, family *canvas.FontFamily) {
	x, y := mm(t.X), mm(t.Y)+offsetY
	blockW := mm(t.BlockWidth)
	size := mm(t.FontSize)

	view := canvas.Identity.Translate(x, y)
	if o == layout.Landscape {
		view = canvas.Identity.Translate(x, y+blockW).Rotate(-90)
	}
	ctx.SetView(view)
	defer ctx.ResetView()

	if family == nil {
		width := mm(int(r.opts.Metrics.Width(t.Text, t.FontSize, t.Font.Scale())))
		ctx.SetFillColor(barColor)
		ctx.DrawPath(anchor(t.Align, blockW, width), 0, canvas.Rectangle(width, size*barHeightRatio))
		return
	}

	face := family.Face(size/mmPerPt, inkColor, canvas.FontRegular, canvas.FontNormal)
	if w, over := overflows(face, t.Text, blockW); over {
		logger.Warnf("section %q: %q overflows its block (%.1fmm > %.1fmm)", key, t.Text, w, blockW)
	}
	textAlign := canvas.Left
	switch t.Align {
	case layout.AlignCenter:
		textAlign = canvas.Center
	case layout.AlignRight:
		textAlign = canvas.Right
	}
	line := canvas.NewTextLine(face, t.Text, textAlign)
	ctx.DrawText(anchor(t.Align, blockW, 0), face.Metrics().Ascent, line)
}

// overflows 以真实字形宽度检查一行是否超出块宽度。
func overflows(face *canvas.FontFace, text string, blockW float64) (float64, bool) {
	w := face.TextWidth(text)
	return w, w > blockW
}

// anchor 返回一行文本在块内的起始位置。居中与右对齐时 width 为 0 表示由文本对象自行对齐。
func anchor(a layout.Alignment, blockW, width float64) float64 {
	switch a {
	case layout.AlignCenter:
		return (blockW - width) / 2
	case layout.AlignRight:
		return blockW - width
	}
	return 0
}

// fontFamily 在首次渲染时加载字体；未配置字体时返回 nil。
func (r *Renderer) fontFamily() (*canvas.FontFamily, error) {
	if r.opts.FontPath == "" && len(r.opts.FontData) == 0 {
		return nil, nil
	}
	r.fontOnce.Do(func() {
		data, source := r.opts.FontData, "FontData"
		if len(data) == 0 {
			var err error
			if data, err = os.ReadFile(r.opts.FontPath); err != nil {
				r.fontErr = fmt.Errorf("读取字体文件 %s 失败: %w", r.opts.FontPath, err)
				return
			}
			source = r.opts.FontPath
		}
		family := canvas.NewFontFamily("labelkit-preview")
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			r.fontErr = fmt.Errorf("加载字体 %s 失败: %w", source, err)
			return
		}
		r.family = family
	})
	return r.family, r.fontErr
}
