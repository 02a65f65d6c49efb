package components

// RotationComponent 让场景对象按固定角速度持续旋转
type RotationComponent struct {
	// Speed 各轴角速度（度/秒），顺序为 X、Y、Z
	Speed [3]float64

	// Angle 各轴当前角度（度），始终在 [0, 360) 内
	Angle [3]float64
}
