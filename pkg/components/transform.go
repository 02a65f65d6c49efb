package components

// PositionComponent 实体在屏幕上的位置（左上角，像素）
type PositionComponent struct {
	X, Y float64
}

// ScaleComponent 缩放组件
// 礼盒绕 Y 轴旋转时，渲染层通过 ScaleX 投影出"翻转"效果
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小）
	ScaleX float64

	// ScaleY Y轴缩放因子（1.0 = 原始大小）
	ScaleY float64
}
