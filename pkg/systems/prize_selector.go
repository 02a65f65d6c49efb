package systems

import (
	"log"
	"math/rand"
	"strings"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
)

// DefaultPrizePrefix 奖品对象名称的默认前缀
const DefaultPrizePrefix = "Item"

// PrizeItem 奖池中的一个奖品
type PrizeItem interface {
	Name() string
	SetActive(active bool)
	IsActive() bool
}

// PrizeSelector 奖池：每次开箱从中均匀随机选出一个奖品显示
//
// 不变量：任意时刻最多一个奖品处于激活状态。
// RevealRandom 先隐藏所有奖品再选择，不依赖调用方提前调用 HideAll。
type PrizeSelector struct {
	items []PrizeItem
	rng   *rand.Rand
}

// NewPrizeSelector 创建奖池
// rng 为 nil 时使用以当前时间为种子的随机源
func NewPrizeSelector(rng *rand.Rand) *PrizeSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &PrizeSelector{rng: rng}
}

// Initialize 替换奖池内容，并隐藏所有奖品
func (ps *PrizeSelector) Initialize(items []PrizeItem) {
	ps.items = make([]PrizeItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		item.SetActive(false)
		ps.items = append(ps.items, item)
	}
	log.Printf("[PrizeSelector] 初始化 %d 个奖品", len(ps.items))
}

// Len 返回奖品数量
func (ps *PrizeSelector) Len() int {
	return len(ps.items)
}

// Items 返回奖品列表的副本
func (ps *PrizeSelector) Items() []PrizeItem {
	items := make([]PrizeItem, len(ps.items))
	copy(items, ps.items)
	return items
}

// RevealRandom 隐藏所有奖品后均匀随机激活其中一个
// 奖池为空时返回 ok=false
func (ps *PrizeSelector) RevealRandom() (PrizeItem, bool) {
	if len(ps.items) == 0 {
		return nil, false
	}

	ps.HideAll()
	item := ps.items[ps.rng.Intn(len(ps.items))]
	item.SetActive(true)

	log.Printf("[PrizeSelector] 抽中奖品: %s", item.Name())
	return item, true
}

// HideAll 隐藏所有奖品
func (ps *PrizeSelector) HideAll() {
	for _, item := range ps.items {
		item.SetActive(false)
	}
}

// Active 返回当前激活的奖品
func (ps *PrizeSelector) Active() (PrizeItem, bool) {
	for _, item := range ps.items {
		if item.IsActive() {
			return item, true
		}
	}
	return nil, false
}

// ActiveCount 返回当前激活的奖品数量
func (ps *PrizeSelector) ActiveCount() int {
	n := 0
	for _, item := range ps.items {
		if item.IsActive() {
			n++
		}
	}
	return n
}

// ===== ECS 适配 =====

// EntityPrizeItem 以场景对象实体作为奖品
type EntityPrizeItem struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// NewEntityPrizeItem 包装一个带 SceneObjectComponent 的实体
func NewEntityPrizeItem(em *ecs.EntityManager, id ecs.EntityID) *EntityPrizeItem {
	return &EntityPrizeItem{em: em, id: id}
}

// EntityID 返回实体ID
func (p *EntityPrizeItem) EntityID() ecs.EntityID {
	return p.id
}

// Name 实现 PrizeItem
func (p *EntityPrizeItem) Name() string {
	if obj, ok := ecs.GetComponentTyped[*components.SceneObjectComponent](p.em, p.id); ok {
		return obj.Name
	}
	return ""
}

// SetActive 实现 PrizeItem
func (p *EntityPrizeItem) SetActive(active bool) {
	if obj, ok := ecs.GetComponentTyped[*components.SceneObjectComponent](p.em, p.id); ok {
		obj.Active = active
	}
}

// IsActive 实现 PrizeItem
func (p *EntityPrizeItem) IsActive() bool {
	obj, ok := ecs.GetComponentTyped[*components.SceneObjectComponent](p.em, p.id)
	return ok && obj.Active
}

// CollectPrizeItems 收集名称以 prefix 开头的场景对象作为奖品
//
// group 非空时只在该分组内查找。结果按实体ID排序，
// 保证相同场景和随机种子下抽奖结果可复现。
func CollectPrizeItems(em *ecs.EntityManager, group, prefix string) []PrizeItem {
	if prefix == "" {
		prefix = DefaultPrizePrefix
	}

	items := make([]PrizeItem, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.SceneObjectComponent](em) {
		obj, _ := ecs.GetComponentTyped[*components.SceneObjectComponent](em, id)
		if group != "" && obj.Group != group {
			continue
		}
		if strings.HasPrefix(obj.Name, prefix) {
			items = append(items, NewEntityPrizeItem(em, id))
		}
	}
	return items
}
