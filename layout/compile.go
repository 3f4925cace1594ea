package layout

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/labelkit/dsl"
	"github.com/ByLCY/labelkit/fit"
	"github.com/ByLCY/labelkit/geometry"
)

// CompileOptions 配置模板编译。
type CompileOptions struct {
	// Fitter 注入到每个文本区域，为空时使用 fit.New()。
	Fitter *fit.Fitter
}

// Compile 根据 DSL AST 生成模板。标签级的 width/height/density 先解析，
// 区域中的长度随后按该密度换算为点数。
func Compile(doc *dsl.Document, opts CompileOptions) (*Template, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}

	var (
		width, height geometry.Length
		haveW, haveH  bool
		density       = geometry.DefaultDensity
	)
	for _, a := range doc.Assignments() {
		switch a.Key {
		case "width", "height":
			l, err := singleLength(a)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", a.Pos, err)
			}
			if a.Key == "width" {
				width, haveW = l, true
			} else {
				height, haveH = l, true
			}
		case "density":
			v, err := single(a)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", a.Pos, err)
			}
			if density, err = geometry.ParseDensity(v); err != nil {
				return nil, fmt.Errorf("%s: %w", a.Pos, err)
			}
		default:
			return nil, fmt.Errorf("%s: 未知的标签属性 %q", a.Pos, a.Key)
		}
	}
	if !haveW || !haveH {
		return nil, fmt.Errorf("%s: 标签 %s 缺少 width 或 height", doc.Pos, doc.Name)
	}

	tpl, err := NewTemplate(string(doc.Name), width.ToMM(density), height.ToMM(density), density)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Pos, err)
	}
	// 以点数书写的标签尺寸不经毫米往返，避免取整误差
	if width.Unit == geometry.UnitDots {
		tpl.Size.WidthInDots = width.Dots(density)
	}
	if height.Unit == geometry.UnitDots {
		tpl.Size.HeightInDots = height.Dots(density)
	}

	for _, sec := range doc.Sections() {
		s, err := compileSection(sec, density, opts)
		if err != nil {
			return nil, err
		}
		if err := tpl.Add(s); err != nil {
			return nil, fmt.Errorf("%s: %w", sec.Pos, err)
		}
	}
	return tpl, nil
}

func compileSection(sec *dsl.Section, density geometry.PrintDensity, opts CompileOptions) (*TextSection, error) {
	o := TextSectionOptions{Key: string(sec.Key), Fitter: opts.Fitter}
	var ox, oy int
	for _, a := range sec.Assignments {
		var err error
		switch a.Key {
		case "font":
			var v string
			if v, err = single(a); err == nil {
				o.Font = FontFamily(v)
			}
		case "size":
			var dots []int
			if dots, err = lengths(a, density, 2, 2); err == nil {
				o.Size = geometry.NewSize(dots[0], dots[1])
			}
		case "width", "height":
			var dots []int
			if dots, err = lengths(a, density, 1, 1); err == nil {
				if a.Key == "width" {
					o.Size.WidthInDots = dots[0]
				} else {
					o.Size.HeightInDots = dots[0]
				}
			}
		case "origin":
			var dots []int
			if dots, err = lengths(a, density, 2, 2); err == nil {
				ox, oy = dots[0], dots[1]
			}
		case "x", "y":
			var dots []int
			if dots, err = lengths(a, density, 1, 1); err == nil {
				if a.Key == "x" {
					ox = dots[0]
				} else {
					oy = dots[0]
				}
			}
		case "padding":
			o.Padding, err = padding(a, density)
		case "orientation":
			var v string
			if v, err = single(a); err == nil {
				o.Orientation, err = ParseOrientation(v)
			}
		case "border":
			var v string
			if v, err = single(a); err == nil {
				o.Border, err = ParseBorder(v)
			}
		case "border-thickness":
			var dots []int
			if dots, err = lengths(a, density, 1, 1); err == nil {
				o.BorderThickness = dots[0]
			}
		case "align":
			var v string
			if v, err = single(a); err == nil {
				o.Align, err = ParseAlignment(v)
			}
		case "font-size":
			var v string
			if v, err = single(a); err == nil {
				o.FontSize, err = strconv.Atoi(v)
			}
		default:
			err = fmt.Errorf("未知的区域属性 %q", a.Key)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: 区域 %s: %w", a.Pos, sec.Key, err)
		}
	}

	origin, err := geometry.NewOrigin(ox, oy)
	if err != nil {
		return nil, fmt.Errorf("%s: 区域 %s: %w", sec.Pos, sec.Key, err)
	}
	o.Origin = origin
	s, err := NewTextSection(o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sec.Pos, err)
	}
	return s, nil
}

func single(a *dsl.Assignment) (string, error) {
	if len(a.Values) != 1 {
		return "", fmt.Errorf("%s 需要 1 个值，实际 %d 个", a.Key, len(a.Values))
	}
	return a.Values[0].Text(), nil
}

func singleLength(a *dsl.Assignment) (geometry.Length, error) {
	v, err := single(a)
	if err != nil {
		return geometry.Length{}, err
	}
	return geometry.ParseLength(v)
}

func lengths(a *dsl.Assignment, density geometry.PrintDensity, minN, maxN int) ([]int, error) {
	if len(a.Values) < minN || len(a.Values) > maxN {
		return nil, fmt.Errorf("%s 需要 %d-%d 个长度值，实际 %d 个", a.Key, minN, maxN, len(a.Values))
	}
	out := make([]int, 0, len(a.Values))
	for _, v := range a.Values {
		l, err := geometry.ParseLength(v.Text())
		if err != nil {
			return nil, err
		}
		out = append(out, l.Dots(density))
	}
	return out, nil
}

// padding 支持 1 个值（四边相同）、2 个值（上下 左右）或 4 个值（上 下 左 右）。
func padding(a *dsl.Assignment, density geometry.PrintDensity) (geometry.Padding, error) {
	dots, err := lengths(a, density, 1, 4)
	if err != nil {
		return geometry.Padding{}, err
	}
	switch len(dots) {
	case 1:
		return geometry.Uniform(dots[0]), nil
	case 2:
		return geometry.NewPadding(dots[0], dots[0], dots[1], dots[1]), nil
	case 4:
		return geometry.NewPadding(dots[0], dots[1], dots[2], dots[3]), nil
	}
	return geometry.Padding{}, fmt.Errorf("padding 需要 1、2 或 4 个值，实际 %d 个", len(dots))
}
