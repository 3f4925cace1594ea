package geometry

import (
	"math"
	"testing"
)

// TestParseLength 覆盖模板中常见的长度写法。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
	}{
		{"40", Length{Value: 40, Unit: UnitDots}},
		{"40dots", Length{Value: 40, Unit: UnitDots}},
		{"12.5mm", Length{Value: 12.5, Unit: UnitMM}},
		{"2cm", Length{Value: 2, Unit: UnitCM}},
		{"1in", Length{Value: 1, Unit: UnitIN}},
		{" 3MM ", Length{Value: 3, Unit: UnitMM}},
	}
	for _, tc := range cases {
		got, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) 出错: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLength(%q) = %+v，期望 %+v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "mm", "abc", "1.2.3mm"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) 应当失败", bad)
		}
	}
}

// TestLengthDots 验证各单位在不同密度下换算为点数。
func TestLengthDots(t *testing.T) {
	if got := (Length{Value: 10, Unit: UnitMM}).Dots(Density8); got != 80 {
		t.Fatalf("10mm@8dpmm 期望 80，实际 %d", got)
	}
	if got := (Length{Value: 1, Unit: UnitCM}).Dots(Density12); got != 120 {
		t.Fatalf("1cm@12dpmm 期望 120，实际 %d", got)
	}
	if got := (Length{Value: 1, Unit: UnitIN}).Dots(Density8); got != 203 {
		t.Fatalf("1in@8dpmm 期望 203，实际 %d", got)
	}
	if got := (Length{Value: 33, Unit: UnitDots}).Dots(Density24); got != 33 {
		t.Fatalf("33dots 期望保持 33，实际 %d", got)
	}
	if mm := (Length{Value: 80, Unit: UnitDots}).ToMM(Density8); math.Abs(mm-10) > 1e-9 {
		t.Fatalf("80dots@8dpmm 期望 10mm，实际 %g", mm)
	}
}

func TestParseDensity(t *testing.T) {
	cases := map[string]PrintDensity{
		"8":      Density8,
		"8dpmm":  Density8,
		"203dpi": Density8,
		"300DPI": Density12,
		"24dpmm": Density24,
		"6":      Density6,
	}
	for in, want := range cases {
		got, err := ParseDensity(in)
		if err != nil {
			t.Fatalf("ParseDensity(%q) 出错: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDensity(%q) = %v，期望 %v", in, got, want)
		}
	}
	for _, bad := range []string{"7", "100dpi", "x"} {
		if _, err := ParseDensity(bad); err == nil {
			t.Fatalf("ParseDensity(%q) 应当失败", bad)
		}
	}
	if Density12.DPI() != 300 || Density8.String() != "8dpmm" {
		t.Fatalf("density 描述不正确")
	}
}
