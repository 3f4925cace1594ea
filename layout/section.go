package layout

import (
	"fmt"
	"slices"

	"github.com/ByLCY/labelkit/fit"
	"github.com/ByLCY/labelkit/geometry"
)

// Section 是模板中绑定到某个键的矩形区域。
// 接口通过未导出方法封闭，新增区域类型时只需在本包实现 Layout，装配流程无需改动。
type Section interface {
	Key() string
	Layout(values []string) Block
	section()
}

var _ Section = (*TextSection)(nil)

// TextSectionOptions 描述文本区域的全部配置。零值字段使用默认值。
type TextSectionOptions struct {
	Key             string
	Font            FontFamily
	Size            geometry.Size
	Origin          geometry.Origin
	Padding         geometry.Padding
	Orientation     Orientation
	Border          Border
	BorderThickness int
	Align           Alignment
	FontSize        int
	// Fitter 为空时使用 fit.New()。
	Fitter *fit.Fitter
}

// TextSection 在固定矩形内排布多行文本，并可绘制边框。构造后只读，可并发使用。
type TextSection struct {
	key             string
	font            FontFamily
	size            geometry.Size
	origin          geometry.Origin
	padding         geometry.Padding
	orientation     Orientation
	border          Border
	borderThickness int
	align           Alignment
	fontSize        int
	fitter          *fit.Fitter
}

// NewTextSection 校验配置并构造文本区域。
func NewTextSection(opts TextSectionOptions) (*TextSection, error) {
	if opts.Key == "" {
		return nil, fmt.Errorf("区域缺少 key")
	}
	s := &TextSection{
		key:             opts.Key,
		font:            opts.Font,
		size:            opts.Size,
		origin:          opts.Origin,
		padding:         opts.Padding,
		orientation:     opts.Orientation,
		border:          opts.Border,
		borderThickness: opts.BorderThickness,
		align:           opts.Align,
		fontSize:        opts.FontSize,
		fitter:          opts.Fitter,
	}
	if s.font == "" {
		s.font = FontScalable
	}
	if !s.font.Valid() {
		return nil, fmt.Errorf("区域 %s: 无效的字体 %q", s.key, s.font)
	}
	if s.size.WidthInDots < 0 || s.size.HeightInDots < 0 {
		return nil, fmt.Errorf("区域 %s: 尺寸不能为负 (%dx%d)", s.key, s.size.WidthInDots, s.size.HeightInDots)
	}
	if s.origin.X < 0 || s.origin.Y < 0 {
		return nil, fmt.Errorf("区域 %s: %w", s.key, geometry.ErrNegativeOrigin)
	}
	if s.padding.Top < 0 || s.padding.Bottom < 0 || s.padding.Left < 0 || s.padding.Right < 0 {
		return nil, fmt.Errorf("区域 %s: 内边距不能为负", s.key)
	}
	var err error
	if s.orientation, err = ParseOrientation(string(s.orientation)); err != nil {
		return nil, fmt.Errorf("区域 %s: %w", s.key, err)
	}
	if s.border, err = ParseBorder(string(s.border)); err != nil {
		return nil, fmt.Errorf("区域 %s: %w", s.key, err)
	}
	if s.align, err = ParseAlignment(string(s.align)); err != nil {
		return nil, fmt.Errorf("区域 %s: %w", s.key, err)
	}
	if s.borderThickness == 0 {
		s.borderThickness = DefaultBorderThickness
	}
	if s.borderThickness < 0 {
		return nil, fmt.Errorf("区域 %s: 边框粗细不能为负", s.key)
	}
	if s.fontSize == 0 {
		s.fontSize = DefaultFontSize
	}
	if !slices.Contains(AllowedFontSizes, s.fontSize) {
		return nil, fmt.Errorf("区域 %s: 字号 %d 不在可选范围 %v 内", s.key, s.fontSize, AllowedFontSizes)
	}
	if s.fitter == nil {
		s.fitter = fit.New()
	}
	return s, nil
}

func (s *TextSection) section() {}

// Key 返回用于在记录中查找取值的键。
func (s *TextSection) Key() string { return s.key }

func (s *TextSection) Font() FontFamily          { return s.font }
func (s *TextSection) Size() geometry.Size       { return s.size }
func (s *TextSection) Origin() geometry.Origin   { return s.origin }
func (s *TextSection) Padding() geometry.Padding { return s.padding }
func (s *TextSection) Orientation() Orientation  { return s.orientation }
func (s *TextSection) Border() Border            { return s.border }
func (s *TextSection) BorderThickness() int      { return s.borderThickness }
func (s *TextSection) Align() Alignment          { return s.align }
func (s *TextSection) FontSize() int             { return s.fontSize }

// interior 返回 (折行宽度, 堆叠方向可用长度)。横向时两者互换。
func (s *TextSection) interior() (wrapWidth, stackExtent int) {
	width := s.size.WidthInDots - s.padding.TotalX()
	height := s.size.HeightInDots - s.padding.TotalY()
	if s.orientation == Landscape {
		return height, width
	}
	return width, height
}

// Layout 计算文本与边框指令。values 为空时只输出边框。
func (s *TextSection) Layout(values []string) Block {
	block := Block{Orientation: s.orientation}
	if len(values) > 0 {
		block.Texts, block.Fit = s.layoutText(values)
	}
	block.Boxes = s.borders()
	return block
}

func (s *TextSection) layoutText(values []string) ([]TextInstruction, *FitDetails) {
	wrapWidth, extent := s.interior()
	res := s.fitter.Fit(values, float64(wrapWidth), s.fontSize, s.font.Scale())
	details := &FitDetails{
		DesiredFontSize: s.fontSize,
		FitFontSize:     res.FontSize,
		FontSize:        res.FontSize,
		Wrapped:         res.Wrapped,
		AvailableWidth:  float64(wrapWidth),
		AvailableExtent: extent,
		InputLines:      len(values),
		OutputLines:     len(res.Lines),
	}
	if len(res.Lines) == 0 {
		return nil, details
	}
	// 各行还要沿堆叠方向放得下：fontSize * 行数 <= extent
	fontSize := min(res.FontSize, floorDiv(extent, len(res.Lines)))
	details.FontSize = fontSize

	out := make([]TextInstruction, 0, len(res.Lines))
	for i, line := range res.Lines {
		x := s.origin.X + s.padding.Left
		y := s.origin.Y + s.padding.Top
		if s.orientation == Landscape {
			x += i * fontSize
		} else {
			y += i * fontSize
		}
		out = append(out, TextInstruction{
			X:          x,
			Y:          y,
			Font:       s.font,
			FontSize:   fontSize,
			BlockWidth: wrapWidth,
			Align:      s.align,
			Text:       line,
		})
	}
	return out, details
}

// borders 生成贴合整个区域外框（不含内边距）的边框矩形，顺序为 top/bottom/left/right。
func (s *TextSection) borders() []BoxInstruction {
	if s.border == BorderNone {
		return nil
	}
	t := s.borderThickness
	x, y := s.origin.X, s.origin.Y
	w, h := s.size.WidthInDots, s.size.HeightInDots
	var boxes []BoxInstruction
	if s.border == BorderTop || s.border == BorderAll {
		boxes = append(boxes, BoxInstruction{X: x, Y: y, Width: w, Height: t, Thickness: t})
	}
	if s.border == BorderBottom || s.border == BorderAll {
		boxes = append(boxes, BoxInstruction{X: x, Y: y + h - t, Width: w, Height: t, Thickness: t})
	}
	if s.border == BorderLeft || s.border == BorderAll {
		boxes = append(boxes, BoxInstruction{X: x, Y: y, Width: t, Height: h, Thickness: t})
	}
	if s.border == BorderRight || s.border == BorderAll {
		boxes = append(boxes, BoxInstruction{X: x + w - t, Y: y, Width: t, Height: h, Thickness: t})
	}
	return boxes
}

// floorDiv 是向下取整的整数除法（extent 可能因内边距过大而为负）。
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
