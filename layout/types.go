package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/labelkit/geometry"
)

// 该文件定义区域配置的枚举值与布局结果，供排版、渲染与调试 JSON 共用。

// FontFamily 是打印机字体选择符（0-9、A-Z），原样写入 ^A 指令。
type FontFamily string

const (
	// FontScalable 是可缩放字体 0，字宽估算缩放系数为 2.0。
	FontScalable FontFamily = "0"
	// FontDefault 是其余点阵字体的代表，缩放系数为 1.25。
	FontDefault FontFamily = "A"
)

// Scale 返回字族的字宽缩放系数。
func (f FontFamily) Scale() float64 {
	if f == FontScalable {
		return 2.0
	}
	return 1.25
}

// CharWidth 返回 ^A 指令中的字符宽度：可缩放字体与字高相同，其余为 0（使用字体默认比例）。
func (f FontFamily) CharWidth(fontSize int) int {
	if f == FontScalable {
		return fontSize
	}
	return 0
}

// Valid reports whether f is a single 0-9 or A-Z selector.
func (f FontFamily) Valid() bool {
	if len(f) != 1 {
		return false
	}
	c := f[0]
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
}

// Orientation 决定文本沿哪条轴排布。
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Border 指定绘制哪条（或全部）边框。
type Border string

const (
	BorderNone   Border = "none"
	BorderTop    Border = "top"
	BorderBottom Border = "bottom"
	BorderLeft   Border = "left"
	BorderRight  Border = "right"
	BorderAll    Border = "all"
)

// Alignment 对应 ^FB 的对齐码。
type Alignment string

const (
	AlignJustify Alignment = "J"
	AlignLeft    Alignment = "L"
	AlignCenter  Alignment = "C"
	AlignRight   Alignment = "R"
)

// AllowedFontSizes 是区域默认字号的可选值。
var AllowedFontSizes = []int{10, 20, 30, 40, 50}

const (
	DefaultFontSize        = 30
	DefaultBorderThickness = 2
)

// ParseOrientation accepts portrait/landscape (case-insensitive).
func ParseOrientation(v string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(v))); o {
	case Portrait, Landscape:
		return o, nil
	case "":
		return Portrait, nil
	}
	return "", fmt.Errorf("未知的方向 %q（可选 portrait/landscape）", v)
}

// ParseBorder accepts none/top/bottom/left/right/all.
func ParseBorder(v string) (Border, error) {
	switch b := Border(strings.ToLower(strings.TrimSpace(v))); b {
	case BorderNone, BorderTop, BorderBottom, BorderLeft, BorderRight, BorderAll:
		return b, nil
	case "":
		return BorderNone, nil
	}
	return "", fmt.Errorf("未知的边框 %q（可选 none/top/bottom/left/right/all）", v)
}

// ParseAlignment accepts the ZPL codes J/L/C/R as well as justify/left/center/right.
func ParseAlignment(v string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "j", "justify", "":
		return AlignJustify, nil
	case "l", "left":
		return AlignLeft, nil
	case "c", "center":
		return AlignCenter, nil
	case "r", "right":
		return AlignRight, nil
	}
	return "", fmt.Errorf("未知的对齐方式 %q（可选 J/L/C/R）", v)
}

// Record 把区域键映射到该区域的若干行文本，对应一张标签。
type Record map[string][]string

// TextInstruction 是一条已定位的文本绘制指令。
type TextInstruction struct {
	X          int        `json:"x"`
	Y          int        `json:"y"`
	Font       FontFamily `json:"font"`
	FontSize   int        `json:"fontSize"`
	BlockWidth int        `json:"blockWidth"`
	Align      Alignment  `json:"align"`
	Text       string     `json:"text"`
}

// BoxInstruction 是一条实心细矩形（边框）绘制指令，Thickness 同时作为线宽。
type BoxInstruction struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Width     int `json:"width"`
	Height    int `json:"height"`
	Thickness int `json:"thickness"`
}

// Block 是单个区域的排版输出：先文本，后边框。
type Block struct {
	Orientation Orientation       `json:"orientation"`
	Texts       []TextInstruction `json:"texts,omitempty"`
	Boxes       []BoxInstruction  `json:"boxes,omitempty"`
	Fit         *FitDetails       `json:"fit,omitempty"`
}

// Empty reports whether the block draws nothing.
func (b Block) Empty() bool { return len(b.Texts) == 0 && len(b.Boxes) == 0 }

// FitDetails 记录字号选择过程，仅在 DebugOptions.FitDetails 开启时保留在结果中。
type FitDetails struct {
	DesiredFontSize int     `json:"desiredFontSize"`
	FitFontSize     int     `json:"fitFontSize"`
	FontSize        int     `json:"fontSize"`
	Wrapped         bool    `json:"wrapped"`
	AvailableWidth  float64 `json:"availableWidth"`
	AvailableExtent int     `json:"availableExtent"`
	InputLines      int     `json:"inputLines"`
	OutputLines     int     `json:"outputLines"`
}

// SectionLayout 是某条记录在某个区域上的排版结果。
// Present 为 false 表示记录中缺少该区域的键，此时区域输出为空。
type SectionLayout struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Block   Block  `json:"block"`
}

// Label 对应一条记录生成的一张标签。
type Label struct {
	Index    int             `json:"index"`
	Sections []SectionLayout `json:"sections"`
}

// Result 保存整批记录的排版结果，所有标签共享同一个文档框架。
type Result struct {
	Name    string                `json:"name"`
	Density geometry.PrintDensity `json:"density"`
	Size    geometry.Size         `json:"size"`
	Labels  []Label               `json:"labels"`
}
