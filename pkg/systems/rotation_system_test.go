package systems

import (
	"math"
	"testing"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
)

// TestRotationSystemUpdate 测试角度推进与回绕
func TestRotationSystemUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewRotationSystem(em)

	id := em.CreateEntity()
	rot := &components.RotationComponent{Speed: [3]float64{0, 100, -90}}
	em.AddComponent(id, rot)

	system.Update(1.0)
	if !approxEqual(rot.Angle[1], 100) {
		t.Errorf("Y 角度 = %v, 期望 100", rot.Angle[1])
	}
	if !approxEqual(rot.Angle[2], 270) {
		t.Errorf("Z 角度 = %v, 期望 270（负角度回绕）", rot.Angle[2])
	}

	system.Update(3.0)
	if !approxEqual(rot.Angle[1], 40) {
		t.Errorf("Y 角度 = %v, 期望 40（400 回绕）", rot.Angle[1])
	}
	if rot.Angle[0] != 0 {
		t.Errorf("X 角度 = %v, 期望 0", rot.Angle[0])
	}
}

// TestRotationSystemScaleProjection 测试 Y 轴旋转投影为水平缩放
func TestRotationSystemScaleProjection(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewRotationSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.RotationComponent{Speed: [3]float64{0, 90, 0}})
	scale := &components.ScaleComponent{ScaleX: 1, ScaleY: 1}
	em.AddComponent(id, scale)

	system.Update(1.0)
	if math.Abs(scale.ScaleX) > 1e-9 {
		t.Errorf("旋转 90 度后 ScaleX = %v, 期望 0", scale.ScaleX)
	}

	system.Update(1.0)
	if !approxEqual(scale.ScaleX, -1) {
		t.Errorf("旋转 180 度后 ScaleX = %v, 期望 -1", scale.ScaleX)
	}
	if scale.ScaleY != 1 {
		t.Errorf("ScaleY 不应改变, got %v", scale.ScaleY)
	}
}
