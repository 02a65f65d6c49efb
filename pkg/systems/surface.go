package systems

import (
	"image"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
)

// Surface 可显示帧图像、可淡入淡出的界面元素（开箱按钮、奖品标签）
type Surface interface {
	// SetFrame 设置显示的帧
	SetFrame(index int, frame image.Image)
	// SetOpacity 设置不透明度（0.0 - 1.0）
	SetOpacity(v float64)
	// Opacity 返回当前不透明度
	Opacity() float64
	// SetVisible 设置是否显示
	SetVisible(visible bool)
	// IsVisible 返回是否显示
	IsVisible() bool
}

// SceneGroup 一组可整体显示/隐藏的场景对象
type SceneGroup interface {
	SetActive(active bool)
}

// TriggerHook 接收具名触发器（如 "TrOpen"），触发即返回
type TriggerHook interface {
	Trigger(name string)
}

// opacityProperty 将 Surface 的不透明度适配为可插值属性
type opacityProperty struct {
	surface Surface
}

func (p opacityProperty) Value() float64 { return p.surface.Opacity() }

func (p opacityProperty) SetValue(v float64) { p.surface.SetOpacity(v) }

// OpacityOf 返回 surface 不透明度对应的 Property
func OpacityOf(surface Surface) Property {
	return opacityProperty{surface: surface}
}

// MemorySurface 纯内存实现的 Surface，用于无界面运行和测试
type MemorySurface struct {
	Frame   int
	Alpha   float64
	Visible bool
}

// SetFrame 实现 Surface
func (s *MemorySurface) SetFrame(index int, frame image.Image) { s.Frame = index }

// SetOpacity 实现 Surface
func (s *MemorySurface) SetOpacity(v float64) { s.Alpha = v }

// Opacity 实现 Surface
func (s *MemorySurface) Opacity() float64 { return s.Alpha }

// SetVisible 实现 Surface
func (s *MemorySurface) SetVisible(visible bool) { s.Visible = visible }

// IsVisible 实现 Surface
func (s *MemorySurface) IsVisible() bool { return s.Visible }

// ===== ECS 适配 =====

// EntitySurface 以带 VisualComponent 的实体作为 Surface
type EntitySurface struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// NewEntitySurface 包装实体
func NewEntitySurface(em *ecs.EntityManager, id ecs.EntityID) *EntitySurface {
	return &EntitySurface{em: em, id: id}
}

func (s *EntitySurface) visual() *components.VisualComponent {
	vis, ok := ecs.GetComponentTyped[*components.VisualComponent](s.em, s.id)
	if !ok {
		return nil
	}
	return vis
}

// SetFrame 实现 Surface
func (s *EntitySurface) SetFrame(index int, frame image.Image) {
	if vis := s.visual(); vis != nil {
		vis.FrameIndex = index
	}
}

// SetOpacity 实现 Surface
func (s *EntitySurface) SetOpacity(v float64) {
	if vis := s.visual(); vis != nil {
		vis.Opacity = v
	}
}

// Opacity 实现 Surface
func (s *EntitySurface) Opacity() float64 {
	if vis := s.visual(); vis != nil {
		return vis.Opacity
	}
	return 0
}

// SetVisible 实现 Surface
func (s *EntitySurface) SetVisible(visible bool) {
	if vis := s.visual(); vis != nil {
		vis.Visible = visible
	}
}

// IsVisible 实现 Surface
func (s *EntitySurface) IsVisible() bool {
	vis := s.visual()
	return vis != nil && vis.Visible
}

// EntityGroup 按分组名批量显示/隐藏场景对象
type EntityGroup struct {
	em    *ecs.EntityManager
	group string
}

// NewEntityGroup 创建分组适配器
func NewEntityGroup(em *ecs.EntityManager, group string) *EntityGroup {
	return &EntityGroup{em: em, group: group}
}

// SetActive 实现 SceneGroup
func (g *EntityGroup) SetActive(active bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.SceneObjectComponent](g.em) {
		obj, _ := ecs.GetComponentTyped[*components.SceneObjectComponent](g.em, id)
		if obj.Group == g.group {
			obj.Active = active
		}
	}
}

// IsActive 返回分组内是否有激活的对象
func (g *EntityGroup) IsActive() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.SceneObjectComponent](g.em) {
		obj, _ := ecs.GetComponentTyped[*components.SceneObjectComponent](g.em, id)
		if obj.Group == g.group && obj.Active {
			return true
		}
	}
	return false
}
