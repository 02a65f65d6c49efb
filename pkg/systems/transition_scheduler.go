package systems

import (
	"log"

	"github.com/decker502/unboxing/pkg/utils"
)

// Property 可被插值的数值属性（如透明度）
type Property interface {
	Value() float64
	SetValue(v float64)
}

// PropertyFuncs 用一对函数实现 Property
type PropertyFuncs struct {
	Get func() float64
	Set func(float64)
}

// Value 实现 Property
func (p PropertyFuncs) Value() float64 { return p.Get() }

// SetValue 实现 Property
func (p PropertyFuncs) SetValue(v float64) { p.Set(v) }

// TaskHandle 过渡任务句柄，0 为无效句柄
type TaskHandle uint64

// TransitionSpec 描述一次过渡（插值）
//
// Next 是完成后要启动的下一个过渡。完成回调和 Next 的启动
// 都在 Update 推进完所有任务之后统一执行，不会在插值过程中重入。
type TransitionSpec struct {
	// Key 被插值属性的标识，如 "button.opacity"
	// 同一 Key 上新启动的任务会取消旧任务；为空则不参与互斥
	Key string

	// Target 被插值的属性
	Target Property

	// To 目标值
	To float64

	// Duration 插值时长（秒），<= 0 时在首次应用时直接到达目标值
	Duration float64

	// Delay 开始插值前的延迟（秒）
	Delay float64

	// Easing 缓动函数，nil 时为线性
	Easing utils.EasingFunc

	// OnStart 延迟结束、首次应用前调用（可选）
	OnStart func()

	// OnComplete 到达目标值后调用一次（可选）
	OnComplete func()

	// Next 完成后启动的下一个过渡（可选）
	Next *TransitionSpec
}

// transitionTask 运行中的过渡任务
type transitionTask struct {
	handle    TaskHandle
	spec      TransitionSpec
	elapsed   float64 // 自调度起经过的时间（含延迟）
	start     float64 // 延迟结束时读取的起始值
	started   bool
	cancelled bool
	completed bool
}

// TransitionScheduler 管理并推进所有过渡任务
//
// 单线程、由 tick 驱动：每次 Update 每个任务最多推进一次。
// 同一 Key 同时只有一个有效任务，保证属性只有一个写入者。
type TransitionScheduler struct {
	tasks      []*transitionTask
	byKey      map[string]*transitionTask
	nextHandle TaskHandle
	updating   bool
	pending    []*transitionTask // Update 过程中新调度的任务，下一 tick 开始推进
}

// NewTransitionScheduler 创建过渡调度器
func NewTransitionScheduler() *TransitionScheduler {
	return &TransitionScheduler{
		tasks:      make([]*transitionTask, 0),
		byKey:      make(map[string]*transitionTask),
		nextHandle: 1,
	}
}

// Schedule 调度一个过渡任务并返回句柄
// Target 为 nil 时不调度，返回 0
func (ts *TransitionScheduler) Schedule(spec TransitionSpec) TaskHandle {
	if spec.Target == nil {
		log.Printf("[TransitionScheduler] Warning: 过渡目标为空 (key=%q)，忽略", spec.Key)
		return 0
	}
	if spec.Easing == nil {
		spec.Easing = utils.EaseLinear
	}

	if spec.Key != "" {
		if prev, ok := ts.byKey[spec.Key]; ok && !prev.cancelled && !prev.completed {
			prev.cancelled = true
			log.Printf("[TransitionScheduler] 取消被替代的过渡 (key=%q, handle=%d)", spec.Key, prev.handle)
		}
	}

	task := &transitionTask{handle: ts.nextHandle, spec: spec}
	ts.nextHandle++

	if spec.Key != "" {
		ts.byKey[spec.Key] = task
	}
	if ts.updating {
		ts.pending = append(ts.pending, task)
	} else {
		ts.tasks = append(ts.tasks, task)
	}
	return task.handle
}

// Cancel 取消任务：之后不再写入属性，也不触发完成回调
// 返回任务在取消前是否仍然有效
func (ts *TransitionScheduler) Cancel(handle TaskHandle) bool {
	task := ts.find(handle)
	if task == nil || task.cancelled || task.completed {
		return false
	}
	task.cancelled = true
	return true
}

// CancelKey 取消指定 Key 上的有效任务
func (ts *TransitionScheduler) CancelKey(key string) bool {
	task, ok := ts.byKey[key]
	if !ok || task.cancelled || task.completed {
		return false
	}
	task.cancelled = true
	return true
}

// IsActive 返回任务是否仍在运行（未完成且未取消）
func (ts *TransitionScheduler) IsActive(handle TaskHandle) bool {
	task := ts.find(handle)
	return task != nil && !task.cancelled && !task.completed
}

// ActiveHandle 返回指定 Key 上正在运行的任务句柄
func (ts *TransitionScheduler) ActiveHandle(key string) (TaskHandle, bool) {
	task, ok := ts.byKey[key]
	if !ok || task.cancelled || task.completed {
		return 0, false
	}
	return task.handle, true
}

// Spec 返回任务的过渡描述（任务已被清理时 ok=false）
func (ts *TransitionScheduler) Spec(handle TaskHandle) (TransitionSpec, bool) {
	task := ts.find(handle)
	if task == nil {
		return TransitionSpec{}, false
	}
	return task.spec, true
}

// ActiveCount 返回运行中的任务数量
func (ts *TransitionScheduler) ActiveCount() int {
	n := 0
	for _, task := range ts.tasks {
		if !task.cancelled && !task.completed {
			n++
		}
	}
	for _, task := range ts.pending {
		if !task.cancelled && !task.completed {
			n++
		}
	}
	return n
}

// Clear 取消所有任务
func (ts *TransitionScheduler) Clear() {
	for _, task := range ts.tasks {
		task.cancelled = true
	}
	for _, task := range ts.pending {
		task.cancelled = true
	}
}

// Update 推进所有过渡任务
//
// 流程：
//  1. 按调度顺序推进每个有效任务一次；延迟期内只累计时间
//  2. 延迟结束时读取起始值并调用 OnStart，然后按进度写入插值
//  3. 所有任务推进完后，依次执行已完成任务的 OnComplete 并启动其 Next
//
// 完成阶段新调度的任务从下一次 Update 开始推进。
func (ts *TransitionScheduler) Update(deltaTime float64) {
	ts.updating = true

	var completed []*transitionTask
	for _, task := range ts.tasks {
		if task.cancelled || task.completed {
			continue
		}
		if ts.advance(task, deltaTime) {
			task.completed = true
			completed = append(completed, task)
		}
	}

	for _, task := range completed {
		// 已到达目标值的任务回调必定触发，即使之后在本 tick 内被替代
		if task.spec.OnComplete != nil {
			task.spec.OnComplete()
		}
		if task.spec.Next != nil {
			ts.Schedule(*task.spec.Next)
		}
	}

	ts.updating = false
	ts.compact()
}

// advance 推进单个任务，返回本次是否完成
func (ts *TransitionScheduler) advance(task *transitionTask, deltaTime float64) bool {
	task.elapsed += deltaTime
	if task.elapsed < task.spec.Delay {
		return false
	}

	if !task.started {
		task.started = true
		if task.spec.OnStart != nil {
			task.spec.OnStart()
		}
		// OnStart 里可能取消自己（例如重置）
		if task.cancelled {
			return false
		}
		task.start = task.spec.Target.Value()
	}

	progress := 1.0
	if task.spec.Duration > 0 {
		progress = utils.Clamp01((task.elapsed - task.spec.Delay) / task.spec.Duration)
	}

	if progress >= 1 {
		task.spec.Target.SetValue(task.spec.To)
		return true
	}
	task.spec.Target.SetValue(utils.Lerp(task.start, task.spec.To, task.spec.Easing(progress)))
	return false
}

// compact 移除已结束的任务，并把 Update 期间新调度的任务并入
func (ts *TransitionScheduler) compact() {
	live := ts.tasks[:0]
	for _, task := range ts.tasks {
		if !task.cancelled && !task.completed {
			live = append(live, task)
		}
	}
	for _, task := range ts.pending {
		if !task.cancelled && !task.completed {
			live = append(live, task)
		}
	}
	for i := len(live); i < len(ts.tasks); i++ {
		ts.tasks[i] = nil
	}
	ts.tasks = live
	ts.pending = ts.pending[:0]

	for key, task := range ts.byKey {
		if task.cancelled || task.completed {
			delete(ts.byKey, key)
		}
	}
}

func (ts *TransitionScheduler) find(handle TaskHandle) *transitionTask {
	if handle == 0 {
		return nil
	}
	for _, task := range ts.tasks {
		if task.handle == handle {
			return task
		}
	}
	for _, task := range ts.pending {
		if task.handle == handle {
			return task
		}
	}
	return nil
}
