// Package binding 把记录数据（解码后的 YAML/JSON）映射为各区域的文本行。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var placeholder = regexp.MustCompile(`\$\{\s*([^}]*?)\s*\}`)

// Step 是路径中的一步：按键取 map 成员，或按下标取列表元素。
type Step struct {
	Key   string
	Index int
	IsIdx bool
}

// Path 是编译后的取值路径，例如 customer.lines[0].text。
type Path struct {
	raw   string
	steps []Step
}

func (p Path) String() string { return p.raw }

var pathCache sync.Map // string -> Path

// ParsePath 编译 a.b[0].c 形式的路径。下标必须是非负整数。
func ParsePath(raw string) (Path, error) {
	if cached, ok := pathCache.Load(raw); ok {
		return cached.(Path), nil
	}
	p := Path{raw: raw}
	for _, segment := range strings.Split(raw, ".") {
		name, rest, found := strings.Cut(segment, "[")
		if name != "" {
			p.steps = append(p.steps, Step{Key: name})
		}
		if !found {
			continue
		}
		rest = "[" + rest
		for rest != "" {
			if rest[0] != '[' {
				return Path{}, fmt.Errorf("路径 %q: 下标后存在多余字符 %q", raw, rest)
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return Path{}, fmt.Errorf("路径 %q: 缺少 ]", raw)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("路径 %q: 无效的下标 %q", raw, rest[1:end])
			}
			p.steps = append(p.steps, Step{Index: idx, IsIdx: true})
			rest = rest[end+1:]
		}
	}
	pathCache.Store(raw, p)
	return p, nil
}

// Lookup 沿路径逐步取值，任何一步失败都返回 false。
func (p Path) Lookup(data any) (any, bool) {
	current := data
	for _, st := range p.steps {
		var ok bool
		if st.IsIdx {
			current, ok = element(current, st.Index)
		} else {
			current, ok = member(current, st.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Resolve 在嵌套 map/slice 中按路径查找取值。键本身包含点号或方括号时，
// 先按整个键在顶层查找，例如区域键 "order.id" 可以直接对应记录中的同名字段。
func Resolve(data any, path string) (any, bool) {
	if v, ok := member(data, path); ok {
		return v, true
	}
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	return p.Lookup(data)
}

// Interpolate 展开文本中的 ${path} 占位符。路径不存在或取值为 nil 时保留占位符原文。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(text, -1) {
		sb.WriteString(text[last:m[0]])
		last = m[1]
		path := text[m[2]:m[3]]
		if path == "" {
			sb.WriteString(text[m[0]:m[1]])
			continue
		}
		if val, ok := Resolve(data, path); ok && val != nil {
			sb.WriteString(formatScalar(val))
			continue
		}
		sb.WriteString(text[m[0]:m[1]])
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func member(current any, key string) (any, bool) {
	var (
		val any
		ok  bool
	)
	switch c := current.(type) {
	case map[string]any:
		val, ok = c[key]
	case map[any]any:
		val, ok = c[key]
	case map[string]string:
		val, ok = c[key]
	case map[string][]string:
		val, ok = c[key]
	}
	return val, ok
}

func element(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < len(c) {
			return c[idx], true
		}
	case []string:
		if idx < len(c) {
			return c[idx], true
		}
	}
	return nil, false
}

// formatScalar 把标量转为文本。浮点数使用最短表示，12.50 输出为 12.5。
func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
