package zpl

import (
	"fmt"
	"strings"

	"github.com/ByLCY/labelkit/layout"
)

const (
	testBorderThickness = 5
	testFontSize        = 50
)

// TestLabel 生成校准用标签：沿整张标签绘制一个边框，并以旋转方向打印 TEST，
// 用于确认介质尺寸与打印密度设置正确。
func TestLabel(tpl *layout.Template) (string, error) {
	if tpl == nil {
		return "", fmt.Errorf("模板为空")
	}
	w, h := tpl.Size.WidthInDots, tpl.Size.HeightInDots
	var sb strings.Builder
	sb.WriteString(StartFormat + crlf)
	writePreamble(&sb, w, h)
	sb.WriteString("^FWR" + crlf)
	fmt.Fprintf(&sb, "^FO0,0%s^GB%d,%d,%d^FS%s", crlf, w, h, testBorderThickness, crlf)
	margin := testBorderThickness * 4
	fmt.Fprintf(&sb, "^FO%d,%d%s^A%s,%d,%d%s^FDTEST^FS%s",
		margin, margin, crlf, layout.FontScalable, testFontSize, testFontSize, crlf, crlf)
	sb.WriteString(EndFormat)
	return sb.String(), nil
}
