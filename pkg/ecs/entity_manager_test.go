package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testNameComponent struct {
	Name string
}

type testOpacityComponent struct {
	Opacity float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}

	if em.Count() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testNameComponent{Name: "ButtonOpenBox"})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testNameComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	if got := comp.(*testNameComponent).Name; got != "ButtonOpenBox" {
		t.Errorf("Name = %q, want %q", got, "ButtonOpenBox")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体不会被隐式创建
	em.AddComponent(EntityID(42), &testNameComponent{})
	if em.Exists(EntityID(42)) {
		t.Error("AddComponent should not create entities")
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponentTyped(em, id, &testOpacityComponent{Opacity: 0.5})

	op, ok := GetComponentTyped[*testOpacityComponent](em, id)
	if !ok {
		t.Fatal("GetComponentTyped should find the component")
	}
	if op.Opacity != 0.5 {
		t.Errorf("Opacity = %v, want 0.5", op.Opacity)
	}

	if _, ok := GetComponentTyped[*testNameComponent](em, id); ok {
		t.Error("GetComponentTyped should not find a component that was never added")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testNameComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) || em.HasComponent(id, reflect.TypeOf(&testNameComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testNameComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testOpacityComponent{})
		}
		ids = append(ids, id)
	}

	all := GetEntitiesWith1[*testNameComponent](em)
	if len(all) != 20 {
		t.Fatalf("Expected 20 entities, got %d", len(all))
	}
	for i := range all {
		if all[i] != ids[i] {
			t.Fatalf("Result not sorted at %d: got %d, want %d", i, all[i], ids[i])
		}
	}

	both := GetEntitiesWith2[*testNameComponent, *testOpacityComponent](em)
	if len(both) != 10 {
		t.Errorf("Expected 10 entities with both components, got %d", len(both))
	}
	for i := 1; i < len(both); i++ {
		if both[i-1] >= both[i] {
			t.Errorf("Result not sorted: %v", both)
			break
		}
	}
}
