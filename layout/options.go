package layout

// BuildOptions 配置装配阶段的可选行为。
type BuildOptions struct {
	Debug DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	FitDetails bool // 在结果中保留每个区域的字号选择过程（block.fit）
}
