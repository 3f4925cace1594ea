package layout

import (
	"fmt"

	"github.com/flanksource/commons/logger"
)

// Build 将每条记录映射到模板的各个区域，生成逐标签的排版结果。
// 记录中缺少某区域的键不是错误：该区域输出为空。
func Build(tpl *Template, records []Record, opts BuildOptions) (*Result, error) {
	if tpl == nil {
		return nil, fmt.Errorf("模板为空")
	}
	sections := tpl.Sections()
	res := &Result{
		Name:    tpl.Name,
		Density: tpl.Density,
		Size:    tpl.Size,
		Labels:  make([]Label, 0, len(records)),
	}
	for i, record := range records {
		label := Label{Index: i, Sections: make([]SectionLayout, 0, len(sections))}
		for _, s := range sections {
			label.Sections = append(label.Sections, layoutSection(s, record, i, opts))
		}
		res.Labels = append(res.Labels, label)
	}
	logger.Debugf("layout %s: %d records x %d sections", tpl.Name, len(records), len(sections))
	return res, nil
}

func layoutSection(s Section, record Record, index int, opts BuildOptions) SectionLayout {
	values, ok := record[s.Key()]
	if !ok {
		logger.Debugf("record %d: no value for section %q, skipped", index, s.Key())
		return SectionLayout{Key: s.Key()}
	}
	block := s.Layout(values)
	if fd := block.Fit; fd != nil && (fd.Wrapped || fd.FontSize != fd.DesiredFontSize) {
		logger.Debugf("record %d: section %q font %d -> %d (wrapped=%v, lines %d -> %d)",
			index, s.Key(), fd.DesiredFontSize, fd.FontSize, fd.Wrapped, fd.InputLines, fd.OutputLines)
	}
	if !opts.Debug.FitDetails {
		block.Fit = nil
	}
	return SectionLayout{Key: s.Key(), Present: true, Block: block}
}
