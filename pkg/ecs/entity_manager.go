package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是场景对象的唯一标识符
type EntityID uint64

// EntityManager 管理开箱场景中的所有实体和组件
// (控制按钮、奖品标签、奖品、开箱事件对象、礼盒)
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// Exists 检查实体是否存在(已标记删除但尚未清理的实体仍视为存在)
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 返回当前实体数量
func (em *EntityManager) Count() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent 为实体添加组件,同类型组件会被覆盖
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
//
// 返回的ID按升序排列。map 遍历顺序是随机的,
// 而奖品目录依赖稳定的下标做均匀随机选择,所以这里必须排序。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ===== 泛型辅助函数 =====

// AddComponentTyped 以泛型方式添加组件
func AddComponentTyped[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponentTyped 以泛型方式获取组件,省去调用方的类型断言
//
//	vis, ok := ecs.GetComponentTyped[*components.VisualComponent](em, id)
func GetComponentTyped[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// GetEntitiesWith1 查询拥有组件 T 的所有实体
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeOf((*T)(nil)).Elem())
}

// GetEntitiesWith2 查询同时拥有组件 T1 和 T2 的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(
		reflect.TypeOf((*T1)(nil)).Elem(),
		reflect.TypeOf((*T2)(nil)).Elem(),
	)
}
