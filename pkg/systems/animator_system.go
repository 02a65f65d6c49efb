package systems

import (
	"log"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
)

// AnimatorSystem 礼盒触发器状态机
//
// 作为 TriggerHook 接收开箱/重置触发器，并按 AnimatorComponent.Transitions
// 切换状态；Update 累计当前状态的持续时间，供渲染层做开盖等效果。
type AnimatorSystem struct {
	entityManager *ecs.EntityManager
	target        ecs.EntityID
}

// NewAnimatorSystem 创建触发器系统，target 为接收触发器的实体
func NewAnimatorSystem(em *ecs.EntityManager, target ecs.EntityID) *AnimatorSystem {
	return &AnimatorSystem{
		entityManager: em,
		target:        target,
	}
}

// Trigger 实现 TriggerHook
// 目标实体没有 AnimatorComponent 或触发器未注册时记录日志并忽略
func (s *AnimatorSystem) Trigger(name string) {
	anim, ok := ecs.GetComponentTyped[*components.AnimatorComponent](s.entityManager, s.target)
	if !ok {
		log.Printf("[AnimatorSystem] Warning: 实体 %d 没有 AnimatorComponent，忽略触发器 %q", s.target, name)
		return
	}

	anim.LastTrigger = name
	next, ok := anim.Transitions[name]
	if !ok {
		log.Printf("[AnimatorSystem] Warning: 未注册的触发器 %q (当前状态: %s)", name, anim.State)
		return
	}
	if next == anim.State {
		return
	}

	log.Printf("[AnimatorSystem] %s -> %s (触发器: %s)", anim.State, next, name)
	anim.State = next
	anim.StateTime = 0
}

// Update 累计所有 Animator 当前状态的持续时间
func (s *AnimatorSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.AnimatorComponent](s.entityManager) {
		anim, _ := ecs.GetComponentTyped[*components.AnimatorComponent](s.entityManager, id)
		anim.StateTime += deltaTime
	}
}
