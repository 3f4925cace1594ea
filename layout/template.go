package layout

import (
	"fmt"
	"slices"

	"github.com/ByLCY/labelkit/geometry"
)

// Template 是整张标签的尺寸与按顺序排列的区域集合。
// 区域只在构建阶段追加，之后只读。
type Template struct {
	Name     string
	Density  geometry.PrintDensity
	Size     geometry.Size
	sections []Section
	keys     map[string]struct{}
}

// NewTemplate 以毫米尺寸与打印密度创建模板，density 为 0 时使用 8dpmm。
func NewTemplate(name string, widthMM, heightMM float64, density geometry.PrintDensity) (*Template, error) {
	if density == 0 {
		density = geometry.DefaultDensity
	}
	if !density.Valid() {
		return nil, fmt.Errorf("不支持的打印密度 %d", int(density))
	}
	if widthMM <= 0 || heightMM <= 0 {
		return nil, fmt.Errorf("标签尺寸必须为正数 (%gmm x %gmm)", widthMM, heightMM)
	}
	return &Template{
		Name:    name,
		Density: density,
		Size:    geometry.SizeFromMM(widthMM, heightMM, density),
		keys:    map[string]struct{}{},
	}, nil
}

// Add 追加一个区域，键重复时报错。
func (t *Template) Add(s Section) error {
	if s == nil {
		return fmt.Errorf("区域为空")
	}
	if t.keys == nil {
		t.keys = map[string]struct{}{}
	}
	if _, dup := t.keys[s.Key()]; dup {
		return fmt.Errorf("区域键 %q 重复", s.Key())
	}
	t.keys[s.Key()] = struct{}{}
	t.sections = append(t.sections, s)
	return nil
}

// Sections 返回区域列表的副本，顺序与添加顺序一致。
func (t *Template) Sections() []Section { return slices.Clone(t.sections) }

// Keys 按顺序返回所有区域键。
func (t *Template) Keys() []string {
	keys := make([]string, 0, len(t.sections))
	for _, s := range t.sections {
		keys = append(keys, s.Key())
	}
	return keys
}
