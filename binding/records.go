package binding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/labelkit/layout"
)

// LoadRecords 读取 YAML 或 JSON 记录文件。支持三种形状：
// 对象列表、单个对象，或带 records 字段的对象。
func LoadRecords(r io.Reader) ([]any, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("解析记录数据失败: %w", err)
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		if list, ok := v["records"].([]any); ok {
			return list, nil
		}
		return []any{v}, nil
	default:
		return nil, fmt.Errorf("记录数据必须是对象或对象列表，实际为 %T", raw)
	}
}

// Record 按区域键从原始数据中取值，构造一条排版记录。
// 取值为 nil、空串、false 或 0 时视为缺失；空列表视为存在但没有文本行。
func Record(data any, keys []string) layout.Record {
	rec := layout.Record{}
	for _, key := range keys {
		val, ok := Resolve(data, key)
		if !ok || !truthy(val) {
			continue
		}
		rec[key] = lines(val, data)
	}
	return rec
}

// Records 对每条原始数据调用 Record。
func Records(data []any, keys []string) []layout.Record {
	out := make([]layout.Record, 0, len(data))
	for _, d := range data {
		out = append(out, Record(d, keys))
	}
	return out
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// lines 把取值展开为文本行：列表每个元素一行，多行字符串按换行拆分，
// 每行中的 ${...} 以整条记录为上下文展开。
func lines(v any, ctx any) []string {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []string:
		for _, s := range x {
			items = append(items, s)
		}
	default:
		items = []any{x}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		text := formatScalar(item)
		for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
			out = append(out, Interpolate(strings.TrimSuffix(line, "\r"), ctx))
		}
	}
	return out
}
