package components

// SceneObjectComponent 标识一个具名的场景对象
//
// 如奖品（名字以 "Item" 开头）、
// 开箱事件对象组等。Active 为 false 时对象不参与渲染。
type SceneObjectComponent struct {
	// Name 对象名称，如 "Item1"、"ButtonOpenBox"
	Name string

	// Group 所属分组，如 "Prizes"、"OpenBoxEventObjects"
	Group string

	// Active 是否激活（显示）
	Active bool
}
