package geometry

import (
	"errors"
	"fmt"
	"math"
)

// 该文件定义标签坐标系中的基础几何值：尺寸、原点与内边距。
// 坐标系原点位于左上角，x 向右递增，y 向下递增，单位均为打印点（dots）。

// ErrNegativeOrigin 表示原点坐标为负数。
var ErrNegativeOrigin = errors.New("origin cannot have negative values")

// Size 以打印点表示的宽高。
type Size struct {
	WidthInDots  int `json:"widthInDots"`
	HeightInDots int `json:"heightInDots"`
}

// NewSize 直接以点数构造尺寸。
func NewSize(widthInDots, heightInDots int) Size {
	return Size{WidthInDots: widthInDots, HeightInDots: heightInDots}
}

// SizeFromMM 按打印密度将毫米尺寸换算为点数（四舍五入）。
func SizeFromMM(widthMM, heightMM float64, density PrintDensity) Size {
	return Size{
		WidthInDots:  int(math.Round(widthMM * density.DotsPerMM())),
		HeightInDots: int(math.Round(heightMM * density.DotsPerMM())),
	}
}

// Origin 是区域左上角的锚点，两个坐标都不能为负。
type Origin struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewOrigin 校验并构造原点，任一坐标为负时返回 ErrNegativeOrigin。
func NewOrigin(x, y int) (Origin, error) {
	if x < 0 || y < 0 {
		return Origin{}, fmt.Errorf("%w: (%d,%d)", ErrNegativeOrigin, x, y)
	}
	return Origin{X: x, Y: y}, nil
}

// MustOrigin is like NewOrigin but panics on invalid coordinates.
func MustOrigin(x, y int) Origin {
	o, err := NewOrigin(x, y)
	if err != nil {
		panic(err)
	}
	return o
}

// Padding 描述区域四边的内边距。
type Padding struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// NewPadding 按 top/bottom/left/right 的顺序构造内边距。
func NewPadding(top, bottom, left, right int) Padding {
	return Padding{Top: top, Bottom: bottom, Left: left, Right: right}
}

// Uniform 四边使用相同的内边距。
func Uniform(n int) Padding { return Padding{Top: n, Bottom: n, Left: n, Right: n} }

// TotalX 返回水平方向内边距之和。
func (p Padding) TotalX() int { return p.Left + p.Right }

// TotalY 返回垂直方向内边距之和。
func (p Padding) TotalY() int { return p.Top + p.Bottom }
