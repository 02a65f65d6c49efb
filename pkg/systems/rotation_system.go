package systems

import (
	"math"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
)

// RotationSystem 让带 RotationComponent 的场景对象按角速度持续旋转
type RotationSystem struct {
	entityManager *ecs.EntityManager
}

// NewRotationSystem 创建旋转系统
func NewRotationSystem(em *ecs.EntityManager) *RotationSystem {
	return &RotationSystem{
		entityManager: em,
	}
}

// Update 按 deltaTime 推进所有旋转对象的角度，角度保持在 [0, 360)
// 同时拥有 ScaleComponent 的对象，把 Y 轴旋转投影为水平缩放
func (s *RotationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.RotationComponent](s.entityManager)

	for _, id := range entities {
		rot, ok := ecs.GetComponentTyped[*components.RotationComponent](s.entityManager, id)
		if !ok {
			continue
		}

		for axis := 0; axis < 3; axis++ {
			rot.Angle[axis] = wrapDegrees(rot.Angle[axis] + rot.Speed[axis]*deltaTime)
		}

		if scale, ok := ecs.GetComponentTyped[*components.ScaleComponent](s.entityManager, id); ok {
			scale.ScaleX = math.Cos(rot.Angle[1] * math.Pi / 180)
		}
	}
}

// wrapDegrees 将角度规范到 [0, 360)
func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
