package systems

import (
	"image"
	"log"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/utils"
)

// 过渡任务的属性 Key
const (
	KeyButtonOpacity = "button.opacity"
	KeyLabelOpacity  = "label.opacity"
)

// RevealState 开箱流程状态
type RevealState int

const (
	// RevealIdle 待机：按钮可点击，等待开箱
	RevealIdle RevealState = iota
	// RevealOpening 开箱中：非循环动画尚未播放完
	RevealOpening
	// RevealRevealed 已开箱：奖品已揭晓
	RevealRevealed
)

// String 返回状态名称（用于日志）
func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "Idle"
	case RevealOpening:
		return "Opening"
	case RevealRevealed:
		return "Revealed"
	default:
		return "Unknown"
	}
}

// RevealTimings 开箱流程的时间与触发器参数
type RevealTimings struct {
	FadeOutDelay        float64 // 按钮淡出前的延迟（秒）
	FadeOutDuration     float64 // 按钮淡出时长（秒）
	LabelFadeInDuration float64 // 奖品标签淡入时长（秒）
	ResetFadeIn         bool    // 重置时是否再播一次按钮淡入
	ResetFadeDuration   float64 // 重置淡入时长（秒）
	OpenTrigger         string  // 开箱时发给礼盒的触发器
	ResetTrigger        string  // 重置时发给礼盒的触发器
	Easing              utils.EasingFunc
}

// DefaultRevealTimings 返回默认参数：延迟 0.5 秒淡出 1 秒，标签淡入 1 秒
func DefaultRevealTimings() RevealTimings {
	return RevealTimings{
		FadeOutDelay:        0.5,
		FadeOutDuration:     1.0,
		LabelFadeInDuration: 1.0,
		ResetFadeIn:         true,
		ResetFadeDuration:   1.0,
		OpenTrigger:         "TrOpen",
		ResetTrigger:        "TrReset",
		Easing:              utils.EaseLinear,
	}
}

// RevealDeps 开箱状态机依赖的协作者
// Hook、EventObjects、Prizes 可以为 nil（记录警告后继续）
type RevealDeps struct {
	Driver       *AnimationDriver
	Scheduler    *TransitionScheduler
	Prizes       *PrizeSelector
	Button       Surface
	Label        Surface
	Hook         TriggerHook
	EventObjects SceneGroup
}

// RevealSession 开箱会话的快照
type RevealSession struct {
	State             RevealState
	Animation         components.SpriteAnimationComponent
	ActiveTransitions int
	ActivePrize       string // 当前激活的奖品名称，没有则为空
}

// RevealSystem 开箱状态机
//
// 状态: Idle → Opening → Revealed，任意状态都可以重置回 Idle。
// 负责按顺序驱动帧动画、过渡调度、奖池和外部协作者（礼盒触发器、
// 开箱事件对象），所有操作都不返回错误。
type RevealSystem struct {
	state   RevealState
	timings RevealTimings

	driver       *AnimationDriver
	scheduler    *TransitionScheduler
	prizes       *PrizeSelector
	button       Surface
	label        Surface
	hook         TriggerHook
	eventObjects SceneGroup
}

// NewRevealSystem 创建开箱状态机并设置初始画面：
// 按钮显示首帧，奖品标签隐藏且完全透明，开箱事件对象和奖品隐藏。
func NewRevealSystem(deps RevealDeps, timings RevealTimings) *RevealSystem {
	if timings.Easing == nil {
		timings.Easing = utils.EaseLinear
	}
	rs := &RevealSystem{
		state:        RevealIdle,
		timings:      timings,
		driver:       deps.Driver,
		scheduler:    deps.Scheduler,
		prizes:       deps.Prizes,
		button:       deps.Button,
		label:        deps.Label,
		hook:         deps.Hook,
		eventObjects: deps.EventObjects,
	}

	if rs.driver == nil {
		log.Printf("[RevealSystem] Warning: 未提供动画驱动器，开箱时不播放帧动画")
		rs.driver = NewAnimationDriver(nil, 0.1, false)
	}
	if rs.scheduler == nil {
		rs.scheduler = NewTransitionScheduler()
	}
	if rs.button == nil {
		log.Printf("[RevealSystem] Warning: 未提供开箱按钮")
		rs.button = &MemorySurface{}
	}
	if rs.label == nil {
		log.Printf("[RevealSystem] Warning: 未提供奖品标签")
		rs.label = &MemorySurface{}
	}
	if rs.prizes == nil {
		log.Printf("[RevealSystem] Warning: 未提供奖池，开箱时只播放动画")
	}

	rs.driver.SetObserver(FrameObserverFunc(func(index int, frame image.Image) {
		rs.button.SetFrame(index, frame)
	}))

	rs.label.SetVisible(false)
	rs.label.SetOpacity(0)
	rs.button.SetVisible(true)
	rs.button.SetOpacity(1)
	rs.setEventObjects(false)
	if rs.prizes != nil {
		rs.prizes.HideAll()
	}
	rs.driver.Reset()

	return rs
}

// State 返回当前状态
func (rs *RevealSystem) State() RevealState {
	return rs.state
}

// Driver 返回动画驱动器
func (rs *RevealSystem) Driver() *AnimationDriver {
	return rs.driver
}

// Scheduler 返回过渡调度器
func (rs *RevealSystem) Scheduler() *TransitionScheduler {
	return rs.scheduler
}

// Session 返回当前会话快照
func (rs *RevealSystem) Session() RevealSession {
	session := RevealSession{
		State:             rs.state,
		Animation:         *rs.driver.State(),
		ActiveTransitions: rs.scheduler.ActiveCount(),
	}
	if rs.prizes != nil {
		if item, ok := rs.prizes.Active(); ok {
			session.ActivePrize = item.Name()
		}
	}
	return session
}

// OnOpenTriggered 处理"开箱"请求
//
// 仅在 Idle 状态生效，重复点击被忽略。依次执行：
//  1. 动画回到首帧
//  2. 延迟后淡出按钮；淡出完成后隐藏按钮并淡入奖品标签
//  3. 发送开箱触发器、显示开箱事件对象、抽取奖品
//  4. 从首帧开始播放帧动画
//
// 循环动画立即进入 Revealed；非循环动画在播放完后由 Update 切换到 Revealed。
func (rs *RevealSystem) OnOpenTriggered() {
	if rs.state != RevealIdle {
		log.Printf("[RevealSystem] 正在开箱 (%s)，忽略重复触发", rs.state)
		return
	}

	rs.state = RevealOpening
	log.Printf("[RevealSystem] 开始开箱")

	rs.driver.Reset()
	rs.scheduleButtonFadeOut()
	rs.fireTrigger(rs.timings.OpenTrigger)
	rs.setEventObjects(true)
	rs.revealPrize()
	rs.driver.Play(0)

	if rs.driver.State().IsLooping || !rs.driver.IsPlaying() {
		rs.enterRevealed()
	}
}

// OnResetTriggered 处理"重置"请求，任意状态下都可以调用
//
// 取消按钮和标签上的过渡任务（防止过期的完成回调在重置后重新淡出），
// 停止动画并回到首帧，恢复按钮、隐藏标签、隐藏事件对象和奖品。
func (rs *RevealSystem) OnResetTriggered() {
	log.Printf("[RevealSystem] 重置 (当前状态: %s)", rs.state)

	rs.scheduler.CancelKey(KeyButtonOpacity)
	rs.scheduler.CancelKey(KeyLabelOpacity)

	rs.driver.Reset()

	rs.label.SetVisible(false)
	rs.label.SetOpacity(0)

	rs.button.SetVisible(true)
	rs.button.SetOpacity(1)
	if rs.timings.ResetFadeIn {
		rs.scheduler.Schedule(TransitionSpec{
			Key:      KeyButtonOpacity,
			Target:   OpacityOf(rs.button),
			To:       1,
			Duration: rs.timings.ResetFadeDuration,
			Easing:   rs.timings.Easing,
		})
	}

	rs.fireTrigger(rs.timings.ResetTrigger)
	rs.setEventObjects(false)
	if rs.prizes != nil {
		rs.prizes.HideAll()
	}

	rs.state = RevealIdle
}

// Update 推进一帧：先推进过渡任务，再推进帧动画
func (rs *RevealSystem) Update(deltaTime float64) {
	rs.scheduler.Update(deltaTime)
	rs.driver.Update(deltaTime)

	if rs.state == RevealOpening && !rs.driver.IsPlaying() {
		rs.enterRevealed()
	}
}

// SetLooping 修改帧动画的循环策略
func (rs *RevealSystem) SetLooping(loop bool) {
	rs.driver.SetLooping(loop)
}

func (rs *RevealSystem) enterRevealed() {
	rs.state = RevealRevealed
	log.Printf("[RevealSystem] 奖品已揭晓")
}

func (rs *RevealSystem) scheduleButtonFadeOut() {
	button, label := rs.button, rs.label

	rs.scheduler.Schedule(TransitionSpec{
		Key:      KeyButtonOpacity,
		Target:   OpacityOf(button),
		To:       0,
		Duration: rs.timings.FadeOutDuration,
		Delay:    rs.timings.FadeOutDelay,
		Easing:   rs.timings.Easing,
		OnComplete: func() {
			button.SetVisible(false)
		},
		Next: &TransitionSpec{
			Key:      KeyLabelOpacity,
			Target:   OpacityOf(label),
			To:       1,
			Duration: rs.timings.LabelFadeInDuration,
			Easing:   rs.timings.Easing,
			OnStart: func() {
				label.SetVisible(true)
			},
		},
	})
}

func (rs *RevealSystem) fireTrigger(name string) {
	if rs.hook == nil {
		log.Printf("[RevealSystem] Warning: 未设置触发器钩子，忽略触发器 %q", name)
		return
	}
	rs.hook.Trigger(name)
}

func (rs *RevealSystem) setEventObjects(active bool) {
	if rs.eventObjects == nil {
		log.Printf("[RevealSystem] Warning: 未设置开箱事件对象")
		return
	}
	rs.eventObjects.SetActive(active)
}

func (rs *RevealSystem) revealPrize() {
	if rs.prizes == nil {
		log.Printf("[RevealSystem] Warning: 奖池为空，跳过抽奖")
		return
	}
	if _, ok := rs.prizes.RevealRandom(); !ok {
		log.Printf("[RevealSystem] Warning: 奖池中没有奖品")
	}
}
