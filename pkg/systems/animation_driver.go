package systems

import (
	"image"
	"log"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/utils"
)

// frameTimeEpsilon 换帧判断的容差，避免 0.1+0.1+... 的浮点误差导致少推进一帧
const frameTimeEpsilon = 1e-9

// FrameObserver 接收帧变化通知
type FrameObserver interface {
	// OnFrameChanged 在当前帧下标变化后调用，frame 为新帧图像
	OnFrameChanged(index int, frame image.Image)
}

// FrameObserverFunc 函数适配器
type FrameObserverFunc func(index int, frame image.Image)

// OnFrameChanged 实现 FrameObserver
func (f FrameObserverFunc) OnFrameChanged(index int, frame image.Image) {
	f(index, frame)
}

// AnimationDriver 按固定帧间隔推进精灵图帧动画
//
// 帧序列在创建时传入并由驱动器独占；播放状态保存在
// SpriteAnimationComponent 中，开箱状态机在打开/重置时直接读写它。
// 帧序列为空时所有操作都是空操作。
type AnimationDriver struct {
	frames   *utils.FrameSet
	state    *components.SpriteAnimationComponent
	observer FrameObserver
}

// NewAnimationDriver 创建动画驱动器
// frameRate 为每帧持续时间（秒）
func NewAnimationDriver(frames *utils.FrameSet, frameRate float64, loop bool) *AnimationDriver {
	if frameRate <= 0 {
		log.Printf("[AnimationDriver] Warning: 非法帧间隔 %.3f，改用 0.1 秒", frameRate)
		frameRate = 0.1
	}
	return &AnimationDriver{
		frames: frames,
		state: &components.SpriteAnimationComponent{
			FrameRate: frameRate,
			IsLooping: loop,
		},
	}
}

// SetObserver 设置帧变化观察者（可为 nil）
func (d *AnimationDriver) SetObserver(observer FrameObserver) {
	d.observer = observer
}

// State 返回播放状态组件
func (d *AnimationDriver) State() *components.SpriteAnimationComponent {
	return d.state
}

// FrameCount 返回帧数量
func (d *AnimationDriver) FrameCount() int {
	return d.frames.Len()
}

// CurrentFrame 返回当前帧下标（相对于帧序列）
func (d *AnimationDriver) CurrentFrame() int {
	return d.state.CurrentFrame
}

// SheetFrame 返回当前帧在精灵图中的序号
func (d *AnimationDriver) SheetFrame() int {
	return d.frames.StartIndex() + d.state.CurrentFrame
}

// CurrentImage 返回当前帧图像，帧序列为空时返回 nil
func (d *AnimationDriver) CurrentImage() image.Image {
	return d.frames.Frame(d.state.CurrentFrame)
}

// IsPlaying 返回是否正在播放
func (d *AnimationDriver) IsPlaying() bool {
	return d.state.IsPlaying
}

// SetLooping 修改循环策略，对当前播放立即生效
func (d *AnimationDriver) SetLooping(loop bool) {
	d.state.IsLooping = loop
}

// Play 从 fromFrame 开始播放，并清零帧计时器
// fromFrame 越界时被限制到合法范围
func (d *AnimationDriver) Play(fromFrame int) {
	count := d.frames.Len()
	if count == 0 {
		return
	}
	if fromFrame < 0 {
		fromFrame = 0
	}
	if fromFrame >= count {
		fromFrame = count - 1
	}

	changed := d.state.CurrentFrame != fromFrame
	d.state.CurrentFrame = fromFrame
	d.state.FrameTimer = 0
	d.state.IsPlaying = true

	log.Printf("[AnimationDriver] 开始播放 (帧 %d/%d, 循环: %v)", fromFrame, count, d.state.IsLooping)

	if changed {
		d.notify()
	}
}

// Stop 停止播放，保留当前帧
func (d *AnimationDriver) Stop() {
	d.state.IsPlaying = false
}

// Reset 停止播放并回到首帧，计时器清零
// 与 Play 不同，Reset 总是通知观察者，确保界面显示首帧
func (d *AnimationDriver) Reset() {
	d.state.IsPlaying = false
	d.state.FrameTimer = 0
	d.state.CurrentFrame = 0
	if d.frames.Len() > 0 {
		d.notify()
	}
}

// Update 推进动画
//
// 累计 deltaTime，每满一个帧间隔前进一帧（一次 tick 可以前进多帧）。
// 越过末帧时：循环模式回到首帧继续播放；否则停在末帧并停止。
// 本次 tick 帧下标发生变化时通知观察者一次。
func (d *AnimationDriver) Update(deltaTime float64) {
	count := d.frames.Len()
	if count == 0 || !d.state.IsPlaying {
		return
	}

	s := d.state
	before := s.CurrentFrame
	s.FrameTimer += deltaTime

	for s.FrameTimer+frameTimeEpsilon >= s.FrameRate {
		s.FrameTimer -= s.FrameRate
		s.CurrentFrame++

		if s.CurrentFrame >= count {
			if s.IsLooping {
				s.CurrentFrame = 0
				continue
			}
			s.CurrentFrame = count - 1
			s.IsPlaying = false
			s.FrameTimer = 0
			log.Printf("[AnimationDriver] 播放完成，停在最后一帧 (%d)", s.CurrentFrame)
			break
		}
	}

	if s.FrameTimer < 0 {
		s.FrameTimer = 0
	}

	if s.CurrentFrame != before {
		d.notify()
	}
}

func (d *AnimationDriver) notify() {
	if d.observer == nil {
		return
	}
	d.observer.OnFrameChanged(d.state.CurrentFrame, d.frames.Frame(d.state.CurrentFrame))
}
