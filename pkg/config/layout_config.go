package config

// 布局配置常量
// 本文件定义了开箱场景的窗口尺寸和界面元素位置（屏幕坐标，左上角为原点）

const (
	// DefaultWindowWidth 默认窗口宽度（像素）
	DefaultWindowWidth = 800

	// DefaultWindowHeight 默认窗口高度（像素）
	DefaultWindowHeight = 600

	// DefaultButtonX 开箱按钮左上角X坐标
	// 256 像素宽的帧居中：(800-256)/2 = 272
	DefaultButtonX = 272.0

	// DefaultButtonY 开箱按钮左上角Y坐标
	DefaultButtonY = 120.0

	// LabelWidth 奖品标签宽度
	LabelWidth = 320.0

	// LabelHeight 奖品标签高度
	LabelHeight = 48.0

	// LabelOffsetY 奖品标签相对开箱按钮底部的垂直间距
	LabelOffsetY = 24.0

	// ResetButtonWidth 重置按钮宽度
	ResetButtonWidth = 120.0

	// ResetButtonHeight 重置按钮高度
	ResetButtonHeight = 36.0

	// ResetButtonMargin 重置按钮距离窗口右下角的边距
	ResetButtonMargin = 16.0

	// BoxSize 礼盒的边长（像素）
	BoxSize = 96.0

	// BoxMarginX 礼盒距离窗口左边的距离
	BoxMarginX = 48.0

	// EventObjectSize 开箱事件对象（彩带粒子）的边长
	EventObjectSize = 12.0

	// EventObjectCount 开箱事件对象数量
	EventObjectCount = 8
)

// LabelPosition 返回奖品标签左上角位置，标签在开箱按钮下方水平居中
func LabelPosition(windowWidth int, buttonY, buttonHeight float64) (x, y float64) {
	x = (float64(windowWidth) - LabelWidth) / 2
	y = buttonY + buttonHeight + LabelOffsetY
	return x, y
}

// ResetButtonPosition 返回重置按钮左上角位置（窗口右下角）
func ResetButtonPosition(windowWidth, windowHeight int) (x, y float64) {
	x = float64(windowWidth) - ResetButtonWidth - ResetButtonMargin
	y = float64(windowHeight) - ResetButtonHeight - ResetButtonMargin
	return x, y
}
