package components

// VisualComponent 可淡入淡出的界面元素外观
//
// 用于开箱按钮（显示精灵图帧）和奖品标签（显示文字）。
// 透明度由 TransitionScheduler 插值修改，Visible 为 false 时元素不参与渲染。
type VisualComponent struct {
	// FrameIndex 当前显示的帧下标，-1 表示不显示帧图像
	FrameIndex int

	// Opacity 不透明度（0.0 - 1.0）
	Opacity float64

	// Visible 是否参与渲染（false 时无论透明度多少都不绘制）
	Visible bool

	// Width, Height 元素尺寸（像素）
	Width, Height float64

	// Text 元素上显示的文字（可选）
	Text string

	// Color 背景颜色（RGBA），A 为 0 时不绘制背景
	Color [4]uint8
}
