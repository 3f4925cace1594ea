package renderer

import "github.com/ByLCY/labelkit/layout"

// Renderer 将排版结果输出为最终文件，例如 ZPL 指令或 PDF 校样。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
