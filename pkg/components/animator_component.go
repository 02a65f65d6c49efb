package components

// AnimatorComponent 礼盒的触发器状态机
//
// 外部通过触发器名称（如 "TrOpen"、"TrReset"）驱动状态切换，
// Transitions 为 触发器 -> 目标状态 的映射。
type AnimatorComponent struct {
	// State 当前状态，如 "closed"、"opened"
	State string

	// Transitions 触发器到目标状态的映射
	Transitions map[string]string

	// LastTrigger 最近一次收到的触发器名称
	LastTrigger string

	// StateTime 进入当前状态后经过的时间（秒）
	StateTime float64
}
