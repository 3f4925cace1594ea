// Package fit 为固定宽度的区域选择字号与换行方式：优先缩小字号，缩到下限仍放不下时再按词折行。
package fit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ByLCY/labelkit/metrics"
)

// MinFontSize 是缩字号的下限（点数），两种字族相同。
const MinFontSize = 20

// Strategy 决定在 [floor, desired] 区间内如何搜索字号。
type Strategy int

const (
	// Linear 从期望字号逐级减一。
	Linear Strategy = iota
	// Binary 对字号区间二分查找；行宽随字号单调，结果与 Linear 一致。
	Binary
)

func (s Strategy) String() string {
	if s == Binary {
		return "binary"
	}
	return "linear"
}

// ParseStrategy accepts linear or binary; empty selects Linear.
func ParseStrategy(v string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "linear":
		return Linear, nil
	case "binary":
		return Binary, nil
	}
	return Linear, fmt.Errorf("未知的字号搜索策略 %q（可选 linear/binary）", v)
}

// Result 是一次适配的结果。
type Result struct {
	Lines    []string `json:"lines"`
	FontSize int      `json:"fontSize"`
	Wrapped  bool     `json:"wrapped"`
}

// Fitter 持有宽度模型与搜索参数，零值可直接使用。
type Fitter struct {
	Metrics  *metrics.Model
	Floor    int
	Strategy Strategy
}

// New 返回使用内置宽度表与线性搜索的 Fitter。
func New() *Fitter {
	return &Fitter{Metrics: metrics.Default(), Floor: MinFontSize, Strategy: Linear}
}

func (f *Fitter) model() *metrics.Model {
	if f == nil || f.Metrics == nil {
		return metrics.Default()
	}
	return f.Metrics
}

func (f *Fitter) floor() int {
	if f != nil && f.Floor > 0 {
		return f.Floor
	}
	return MinFontSize
}

// MaxLineWidth 返回各行在给定字号下估算宽度的最大值。
func (f *Fitter) MaxLineWidth(lines []string, fontSize int, scale float64) float64 {
	m := f.model()
	return lo.Max(lo.Map(lines, func(line string, _ int) float64 {
		return m.Width(line, fontSize, scale)
	}))
}

// Fit 寻找 [floor, desired] 内能让所有行放进 availableWidth 的最大字号。
// 到达下限仍溢出时，按下限字号的估算宽度重新按词折行。
// 期望字号低于下限时不缩小，返回期望字号，但折行宽度仍按下限字号计算。
func (f *Fitter) Fit(lines []string, availableWidth float64, desired int, scale float64) Result {
	if len(lines) == 0 {
		return Result{Lines: lines, FontSize: desired}
	}
	floor := f.floor()
	searchFloor := min(floor, desired)
	fits := func(size int) bool { return f.MaxLineWidth(lines, size, scale) <= availableWidth }

	var size int
	if f != nil && f.Strategy == Binary {
		size = binarySearch(searchFloor, desired, fits)
	} else {
		size = linearSearch(searchFloor, desired, fits)
	}

	if !fits(size) {
		return Result{
			Lines:    f.BreakUpLines(lines, availableWidth, floor, scale),
			FontSize: size,
			Wrapped:  true,
		}
	}
	return Result{Lines: lines, FontSize: size}
}

func linearSearch(floor, desired int, fits func(int) bool) int {
	size := desired
	for size > floor && !fits(size) {
		size--
	}
	return size
}

func binarySearch(floor, desired int, fits func(int) bool) int {
	if desired <= floor || fits(desired) {
		return desired
	}
	// 在 [floor, desired) 中找最大的可容纳字号，没有则返回 floor
	n := desired - floor
	i := sort.Search(n, func(i int) bool { return !fits(floor + i) })
	if i == 0 {
		return floor
	}
	return floor + i - 1
}

// BreakUpLines 按单个空格切词，贪心地把词累积到当前行，放不下时另起一行。
// 词序保持不变，单词永不拆开；单个超长词独占一行并允许溢出。
func (f *Fitter) BreakUpLines(lines []string, availableWidth float64, fontSize int, scale float64) []string {
	m := f.model()
	var out []string
	for _, line := range lines {
		current := ""
		for _, word := range strings.Split(line, " ") {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.Width(candidate, fontSize, scale) <= availableWidth {
				current = candidate
				continue
			}
			if current != "" {
				out = append(out, current)
			}
			current = word
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return out
}
