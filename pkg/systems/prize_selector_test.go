package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
)

// testPrize 测试用奖品
type testPrize struct {
	name   string
	active bool
}

func (p *testPrize) Name() string          { return p.name }
func (p *testPrize) SetActive(active bool) { p.active = active }
func (p *testPrize) IsActive() bool        { return p.active }

func newTestPrizes(n int) []PrizeItem {
	items := make([]PrizeItem, n)
	for i := range items {
		items[i] = &testPrize{name: string(rune('A' + i)), active: true}
	}
	return items
}

// TestPrizeSelectorExactlyOneActive 测试对所有奖池大小，抽奖后恰好一个激活，HideAll 后全部隐藏
func TestPrizeSelectorExactlyOneActive(t *testing.T) {
	for size := 0; size <= 6; size++ {
		ps := NewPrizeSelector(rand.New(rand.NewSource(int64(size))))
		ps.Initialize(newTestPrizes(size))

		if ps.ActiveCount() != 0 {
			t.Errorf("size=%d: Initialize 后 ActiveCount = %d, 期望 0", size, ps.ActiveCount())
		}

		for round := 0; round < 20; round++ {
			item, ok := ps.RevealRandom()
			if size == 0 {
				if ok || item != nil {
					t.Errorf("空奖池 RevealRandom 应返回 ok=false")
				}
				continue
			}
			if !ok {
				t.Fatalf("size=%d: RevealRandom ok = false", size)
			}
			if ps.ActiveCount() != 1 {
				t.Fatalf("size=%d round=%d: ActiveCount = %d, 期望 1", size, round, ps.ActiveCount())
			}
			if active, _ := ps.Active(); active != item {
				t.Errorf("Active() 与 RevealRandom 返回值不一致")
			}
		}

		ps.HideAll()
		if ps.ActiveCount() != 0 {
			t.Errorf("size=%d: HideAll 后 ActiveCount = %d, 期望 0", size, ps.ActiveCount())
		}
	}
}

// TestPrizeSelectorUniform 测试每个奖品都有机会被抽中
func TestPrizeSelectorUniform(t *testing.T) {
	ps := NewPrizeSelector(rand.New(rand.NewSource(42)))
	items := newTestPrizes(3)
	ps.Initialize(items)

	counts := make(map[string]int)
	const rounds = 3000
	for i := 0; i < rounds; i++ {
		item, _ := ps.RevealRandom()
		counts[item.Name()]++
	}

	for _, item := range items {
		c := counts[item.Name()]
		// 期望约 1000 次，允许较宽的误差
		if c < 800 || c > 1200 {
			t.Errorf("奖品 %s 被抽中 %d 次，分布明显不均匀", item.Name(), c)
		}
	}
}

// TestPrizeSelectorDeterministicSeed 测试相同种子结果相同
func TestPrizeSelectorDeterministicSeed(t *testing.T) {
	pick := func() []string {
		ps := NewPrizeSelector(rand.New(rand.NewSource(7)))
		ps.Initialize(newTestPrizes(5))
		names := make([]string, 0, 10)
		for i := 0; i < 10; i++ {
			item, _ := ps.RevealRandom()
			names = append(names, item.Name())
		}
		return names
	}

	a, b := pick(), pick()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("相同种子第 %d 次结果不同: %s vs %s", i, a[i], b[i])
		}
	}
}

// TestPrizeSelectorSkipsNilItems 测试忽略空奖品
func TestPrizeSelectorSkipsNilItems(t *testing.T) {
	ps := NewPrizeSelector(nil)
	ps.Initialize([]PrizeItem{nil, &testPrize{name: "A"}, nil})
	if ps.Len() != 1 {
		t.Errorf("Len() = %d, 期望 1", ps.Len())
	}
}

// TestCollectPrizeItems 测试从场景对象中按名称前缀收集奖品
func TestCollectPrizeItems(t *testing.T) {
	em := ecs.NewEntityManager()
	add := func(name, group string) ecs.EntityID {
		id := em.CreateEntity()
		em.AddComponent(id, &components.SceneObjectComponent{Name: name, Group: group, Active: true})
		return id
	}

	item1 := add("Item1", "Prizes")
	add("Decoration", "Prizes")
	item2 := add("Item2", "Prizes")
	add("ItemOutside", "OpenBoxEventObjects")

	items := CollectPrizeItems(em, "Prizes", "")
	if len(items) != 2 {
		t.Fatalf("收集到 %d 个奖品, 期望 2", len(items))
	}
	if items[0].(*EntityPrizeItem).EntityID() != item1 || items[1].(*EntityPrizeItem).EntityID() != item2 {
		t.Error("奖品应按实体ID排序")
	}

	ps := NewPrizeSelector(rand.New(rand.NewSource(1)))
	ps.Initialize(items)

	// Initialize 会隐藏场景中的奖品对象
	for _, id := range []ecs.EntityID{item1, item2} {
		obj, _ := ecs.GetComponentTyped[*components.SceneObjectComponent](em, id)
		if obj.Active {
			t.Errorf("%s 初始化后应隐藏", obj.Name)
		}
	}

	picked, _ := ps.RevealRandom()
	obj, _ := ecs.GetComponentTyped[*components.SceneObjectComponent](em, picked.(*EntityPrizeItem).EntityID())
	if !obj.Active {
		t.Error("抽中的场景对象应被激活")
	}

	// 不限分组时收集所有前缀匹配的对象
	if all := CollectPrizeItems(em, "", "Item"); len(all) != 3 {
		t.Errorf("不限分组收集到 %d 个, 期望 3", len(all))
	}
}
