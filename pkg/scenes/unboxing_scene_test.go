package scenes

import (
	"image"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/config"
	"github.com/decker502/unboxing/pkg/ecs"
	"github.com/decker502/unboxing/pkg/game"
	"github.com/decker502/unboxing/pkg/systems"
	"github.com/decker502/unboxing/pkg/utils"
)

// newTestFrames 创建 n 个 1x1 的帧
func newTestFrames(n int) *utils.FrameSet {
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return utils.NewFrameSet(frames, utils.FrameGeometry{Width: 1, Height: 1}, 0)
}

// newTestScene 用默认配置和 16 帧创建场景
func newTestScene(t *testing.T, settings *game.SettingsManager, seed int64) *UnboxingScene {
	t.Helper()
	cfg := config.DefaultUnboxingConfig()
	return newUnboxingScene(game.NewResourceManager(), settings, cfg, newTestFrames(16), rand.New(rand.NewSource(seed)))
}

// buttonCenter 返回开箱按钮中心点
func buttonCenter(s *UnboxingScene) (float64, float64) {
	pos, _ := ecs.GetComponentTyped[*components.PositionComponent](s.entityManager, s.entities.openButton)
	click, _ := ecs.GetComponentTyped[*components.ClickableComponent](s.entityManager, s.entities.openButton)
	return pos.X + click.Width/2, pos.Y + click.Height/2
}

// resetCenter 返回重置按钮中心点
func resetCenter(s *UnboxingScene) (float64, float64) {
	pos, _ := ecs.GetComponentTyped[*components.PositionComponent](s.entityManager, s.entities.resetButton)
	click, _ := ecs.GetComponentTyped[*components.ClickableComponent](s.entityManager, s.entities.resetButton)
	return pos.X + click.Width/2, pos.Y + click.Height/2
}

func visualOf(t *testing.T, s *UnboxingScene, id ecs.EntityID) *components.VisualComponent {
	t.Helper()
	vis, ok := ecs.GetComponentTyped[*components.VisualComponent](s.entityManager, id)
	if !ok {
		t.Fatalf("实体 %d 没有 VisualComponent", id)
	}
	return vis
}

func activeCount(s *UnboxingScene, ids []ecs.EntityID) int {
	n := 0
	for _, id := range ids {
		if obj, ok := ecs.GetComponentTyped[*components.SceneObjectComponent](s.entityManager, id); ok && obj.Active {
			n++
		}
	}
	return n
}

func boxState(s *UnboxingScene) string {
	anim, _ := ecs.GetComponentTyped[*components.AnimatorComponent](s.entityManager, s.entities.box)
	return anim.State
}

// TestBuildSceneEntities 验证场景实体和初始画面
func TestBuildSceneEntities(t *testing.T) {
	s := newTestScene(t, nil, 1)

	if got := len(s.entities.prizes); got != 4 {
		t.Fatalf("期望 4 个奖品，实际 %d", got)
	}
	for i, id := range s.entities.prizes {
		obj, _ := ecs.GetComponentTyped[*components.SceneObjectComponent](s.entityManager, id)
		if want := "Item" + string(rune('1'+i)); obj.Name != want {
			t.Errorf("奖品 %d 名称期望 %s，实际 %s", i, want, obj.Name)
		}
	}
	if s.prizeSelector.Len() != 4 {
		t.Errorf("期望奖池 4 个奖品，实际 %d", s.prizeSelector.Len())
	}
	if len(s.entities.eventObjects) != config.EventObjectCount {
		t.Errorf("期望 %d 个开箱事件对象，实际 %d", config.EventObjectCount, len(s.entities.eventObjects))
	}

	label := visualOf(t, s, s.entities.label)
	if label.Visible || label.Opacity != 0 {
		t.Errorf("标签初始应隐藏且透明，实际 visible=%v opacity=%f", label.Visible, label.Opacity)
	}
	button := visualOf(t, s, s.entities.openButton)
	if !button.Visible || button.Opacity != 1 || button.FrameIndex != 0 {
		t.Errorf("按钮初始应显示首帧，实际 %+v", button)
	}
	if activeCount(s, s.entities.eventObjects) != 0 || activeCount(s, s.entities.prizes) != 0 {
		t.Error("开箱事件对象和奖品初始应隐藏")
	}
	if boxState(s) != BoxStateClosed {
		t.Errorf("礼盒初始状态期望 %s，实际 %s", BoxStateClosed, boxState(s))
	}
	if s.Session().State != systems.RevealIdle {
		t.Errorf("期望初始状态 Idle，实际 %s", s.Session().State)
	}
}

// TestUnboxingSceneOpenAndReset 完整的开箱、淡出、重置流程
func TestUnboxingSceneOpenAndReset(t *testing.T) {
	s := newTestScene(t, game.NewSettingsManager(nil), 7)

	x, y := buttonCenter(s)
	if !s.handleClick(x, y) {
		t.Fatal("点击开箱按钮应命中")
	}

	if s.Session().State != systems.RevealRevealed {
		t.Errorf("循环动画开箱后期望 Revealed，实际 %s", s.Session().State)
	}
	if activeCount(s, s.entities.prizes) != 1 {
		t.Errorf("期望恰好 1 个奖品激活，实际 %d", activeCount(s, s.entities.prizes))
	}
	if activeCount(s, s.entities.eventObjects) != config.EventObjectCount {
		t.Error("开箱后事件对象应全部显示")
	}
	if boxState(s) != BoxStateOpened {
		t.Errorf("礼盒期望 %s，实际 %s", BoxStateOpened, boxState(s))
	}
	if s.activePrizeText() == "" {
		t.Error("期望有奖品显示名称")
	}

	// 0.5s 延迟 + 1s 淡出 + 1s 标签淡入
	for i := 0; i < 30; i++ {
		s.tick(0.1)
	}

	button := visualOf(t, s, s.entities.openButton)
	if button.Visible {
		t.Error("淡出完成后按钮应隐藏")
	}
	label := visualOf(t, s, s.entities.label)
	if !label.Visible || math.Abs(label.Opacity-1) > 1e-6 {
		t.Errorf("标签应完全显示，实际 visible=%v opacity=%f", label.Visible, label.Opacity)
	}

	// 隐藏的按钮不响应点击
	if s.handleClick(x, y) {
		t.Error("隐藏的开箱按钮不应响应点击")
	}

	rx, ry := resetCenter(s)
	if !s.handleClick(rx, ry) {
		t.Fatal("点击重置按钮应命中")
	}

	if s.Session().State != systems.RevealIdle {
		t.Errorf("重置后期望 Idle，实际 %s", s.Session().State)
	}
	if !button.Visible || button.Opacity != 1 || button.FrameIndex != 0 {
		t.Errorf("重置后按钮应显示首帧，实际 %+v", button)
	}
	if label.Visible || label.Opacity != 0 {
		t.Error("重置后标签应隐藏且透明")
	}
	if activeCount(s, s.entities.prizes) != 0 || activeCount(s, s.entities.eventObjects) != 0 {
		t.Error("重置后奖品和事件对象应隐藏")
	}
	if boxState(s) != BoxStateClosed {
		t.Errorf("重置后礼盒期望 %s，实际 %s", BoxStateClosed, boxState(s))
	}
}

// TestHandleClickMiss 点击空白处不触发任何事件
func TestHandleClickMiss(t *testing.T) {
	s := newTestScene(t, nil, 1)

	if s.handleClick(0, 0) {
		t.Error("点击空白处不应命中")
	}
	if s.Session().State != systems.RevealIdle {
		t.Errorf("期望状态保持 Idle，实际 %s", s.Session().State)
	}
}

// TestLoopDisabledBySettings 用户设置关闭循环时，动画播放完才进入 Revealed
func TestLoopDisabledBySettings(t *testing.T) {
	settings := game.NewSettingsManager(nil)
	settings.SetLoopAnimation(false)
	s := newTestScene(t, settings, 1)

	s.dispatch(EventOpen)
	if s.Session().State != systems.RevealOpening {
		t.Fatalf("非循环动画开箱后期望 Opening，实际 %s", s.Session().State)
	}

	for i := 0; i < 16; i++ {
		s.tick(0.1)
	}

	session := s.Session()
	if session.State != systems.RevealRevealed {
		t.Errorf("动画结束后期望 Revealed，实际 %s", session.State)
	}
	if session.Animation.CurrentFrame != 15 || session.Animation.IsPlaying {
		t.Errorf("期望停在最后一帧，实际 frame=%d playing=%v", session.Animation.CurrentFrame, session.Animation.IsPlaying)
	}
}

// TestPrizeDeterministicSeed 相同种子抽到相同奖品
func TestPrizeDeterministicSeed(t *testing.T) {
	var names []string
	for i := 0; i < 2; i++ {
		s := newTestScene(t, nil, 99)
		s.dispatch(EventOpen)
		names = append(names, s.Session().ActivePrize)
	}

	if names[0] == "" || names[0] != names[1] {
		t.Errorf("相同种子期望相同奖品，实际 %v", names)
	}
	if !strings.HasPrefix(names[0], "Item") {
		t.Errorf("奖品名称应以 Item 开头，实际 %q", names[0])
	}
}

// TestBoxRotation 礼盒按配置速度绕 Y 轴旋转
func TestBoxRotation(t *testing.T) {
	s := newTestScene(t, nil, 1)

	s.tick(1.0)

	scale, _ := ecs.GetComponentTyped[*components.ScaleComponent](s.entityManager, s.entities.box)
	want := math.Cos(45 * math.Pi / 180)
	if math.Abs(scale.ScaleX-want) > 1e-9 {
		t.Errorf("期望 ScaleX=%f，实际 %f", want, scale.ScaleX)
	}
}

// TestRevealTimingsFromConfig 配置转换为状态机参数
func TestRevealTimingsFromConfig(t *testing.T) {
	cfg := config.DefaultUnboxingConfig()
	cfg.Transitions.FadeOutDelay = 0.25
	cfg.Triggers.Open = "Open"

	timings := revealTimings(cfg)
	if timings.FadeOutDelay != 0.25 || timings.OpenTrigger != "Open" || timings.ResetTrigger != "TrReset" {
		t.Errorf("参数转换错误: %+v", timings)
	}
	if timings.Easing == nil || timings.Easing(0.5) != 0.5 {
		t.Error("默认缓动应为线性")
	}
}

// TestMissingSpriteSheet 精灵图缺失时场景仍可开箱
func TestMissingSpriteSheet(t *testing.T) {
	cfg := config.DefaultUnboxingConfig()
	cfg.SpriteSheet.Path = t.TempDir() + "/missing.png"

	s := NewUnboxingScene(game.NewResourceManager(), nil, cfg)
	if s.frames.Len() != 0 {
		t.Errorf("期望空帧序列，实际 %d", s.frames.Len())
	}

	s.dispatch(EventOpen)
	if s.Session().ActivePrize == "" {
		t.Error("精灵图缺失时仍应揭晓奖品")
	}
	if !s.SaveOnExit() {
		t.Error("没有设置管理器时 SaveOnExit 应返回 true")
	}
}

func TestRGBA(t *testing.T) {
	c := rgba([4]uint8{200, 100, 50, 255}, 0.5)
	if c.A != 127 || c.R != 100 || c.G != 50 || c.B != 25 {
		t.Errorf("预乘 alpha 结果错误: %+v", c)
	}
	if rgba([4]uint8{1, 2, 3, 255}, -1).A != 0 {
		t.Error("负透明度应被限制为 0")
	}
}
