package scenes

import (
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/config"
	"github.com/decker502/unboxing/pkg/ecs"
	"github.com/decker502/unboxing/pkg/game"
	"github.com/decker502/unboxing/pkg/systems"
	"github.com/decker502/unboxing/pkg/utils"
)

// UnboxingScene 开箱场景
//
// 场景对象（开箱按钮、奖品标签、重置按钮、礼盒、开箱事件对象、奖品）
// 都是 ECS 实体，由 RevealSystem 统一编排开箱/重置流程。
type UnboxingScene struct {
	cfg             *config.UnboxingConfig
	resourceManager *game.ResourceManager
	settings        *game.SettingsManager

	entityManager *ecs.EntityManager
	entities      sceneEntities

	frames        *utils.FrameSet
	frameTextures []*ebiten.Image // 懒加载，首次 Draw 时从 frames 生成

	prizeSelector  *systems.PrizeSelector
	revealSystem   *systems.RevealSystem
	rotationSystem *systems.RotationSystem
	animatorSystem *systems.AnimatorSystem

	renderCache sceneRenderCache
}

// NewUnboxingScene 创建开箱场景
//
// 精灵图缺失或损坏时不返回错误：按钮退化为纯色块，开箱流程照常进行。
func NewUnboxingScene(rm *game.ResourceManager, settings *game.SettingsManager, cfg *config.UnboxingConfig) *UnboxingScene {
	var sheet image.Image
	img, err := rm.LoadSourceImage(cfg.SpriteSheet.Path)
	if err != nil {
		log.Printf("[UnboxingScene] Warning: 精灵图加载失败: %v", err)
	} else {
		sheet = img
		bounds := sheet.Bounds()
		if err := cfg.ValidateSheet(bounds.Dx(), bounds.Dy()); err != nil {
			log.Printf("[UnboxingScene] Warning: %v", err)
		}
	}

	frames := utils.ExtractFrames(sheet, cfg.FrameGeometry(), cfg.SpriteSheet.StartFrame, cfg.SpriteSheet.EndFrame)
	return newUnboxingScene(rm, settings, cfg, frames, newPrizeRand(cfg.Prizes.Seed))
}

// newPrizeRand 按种子创建随机源，种子为 0 时使用当前时间
func newPrizeRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newUnboxingScene 用已切分好的帧序列组装场景
func newUnboxingScene(rm *game.ResourceManager, settings *game.SettingsManager, cfg *config.UnboxingConfig, frames *utils.FrameSet, rng *rand.Rand) *UnboxingScene {
	em := ecs.NewEntityManager()
	ents := buildSceneEntities(em, cfg)

	loop := cfg.SpriteSheet.Loop
	if settings != nil {
		loop = loop && settings.GetSettings().LoopAnimation
	}

	prizeSelector := systems.NewPrizeSelector(rng)
	prizeSelector.Initialize(systems.CollectPrizeItems(em, GroupPrizes, cfg.Prizes.Prefix))
	log.Printf("[UnboxingScene] 奖池: %d 个奖品", prizeSelector.Len())

	animatorSystem := systems.NewAnimatorSystem(em, ents.box)

	revealSystem := systems.NewRevealSystem(systems.RevealDeps{
		Driver:       systems.NewAnimationDriver(frames, cfg.SpriteSheet.FrameRate, loop),
		Scheduler:    systems.NewTransitionScheduler(),
		Prizes:       prizeSelector,
		Button:       systems.NewEntitySurface(em, ents.openButton),
		Label:        systems.NewEntitySurface(em, ents.label),
		Hook:         animatorSystem,
		EventObjects: systems.NewEntityGroup(em, GroupOpenBoxEventObjects),
	}, revealTimings(cfg))

	return &UnboxingScene{
		cfg:             cfg,
		resourceManager: rm,
		settings:        settings,
		entityManager:   em,
		entities:        ents,
		frames:          frames,
		prizeSelector:   prizeSelector,
		revealSystem:    revealSystem,
		rotationSystem:  systems.NewRotationSystem(em),
		animatorSystem:  animatorSystem,
	}
}

// revealTimings 把配置转换为状态机参数
func revealTimings(cfg *config.UnboxingConfig) systems.RevealTimings {
	tr := cfg.Transitions
	return systems.RevealTimings{
		FadeOutDelay:        tr.FadeOutDelay,
		FadeOutDuration:     tr.FadeOutDuration,
		LabelFadeInDuration: tr.LabelFadeInDuration,
		ResetFadeIn:         tr.ResetFadeIn,
		ResetFadeDuration:   tr.ResetFadeDuration,
		OpenTrigger:         cfg.Triggers.Open,
		ResetTrigger:        cfg.Triggers.Reset,
		Easing:              cfg.EasingFunc(),
	}
}

// Update 处理输入并推进所有系统
func (s *UnboxingScene) Update(deltaTime float64) {
	s.handleInput()
	s.tick(deltaTime)
}

// handleInput 读取本帧的点击和快捷键
func (s *UnboxingScene) handleInput() {
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		s.handleClick(float64(x), float64(y))
	}

	// F3 切换调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) && s.settings != nil {
		s.settings.SetShowDebugInfo(!s.settings.GetSettings().ShowDebugInfo)
	}
}

// tick 推进一帧：开箱状态机（过渡 + 帧动画）、礼盒旋转、礼盒触发器
func (s *UnboxingScene) tick(deltaTime float64) {
	s.revealSystem.Update(deltaTime)
	s.rotationSystem.Update(deltaTime)
	s.animatorSystem.Update(deltaTime)
}

// handleClick 把点击分发给命中的可点击元素
// 隐藏或禁用的元素不响应点击；返回是否命中
func (s *UnboxingScene) handleClick(x, y float64) bool {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.ClickableComponent, *components.PositionComponent](em) {
		click, _ := ecs.GetComponentTyped[*components.ClickableComponent](em, id)
		pos, _ := ecs.GetComponentTyped[*components.PositionComponent](em, id)
		if !click.IsEnabled {
			continue
		}
		if vis, ok := ecs.GetComponentTyped[*components.VisualComponent](em, id); ok && !vis.Visible {
			continue
		}
		if !utils.PointInRect(x, y, pos.X, pos.Y, click.Width, click.Height) {
			continue
		}

		s.dispatch(click.Event)
		return true
	}
	return false
}

// dispatch 处理按钮事件
func (s *UnboxingScene) dispatch(event string) {
	switch event {
	case EventOpen:
		s.revealSystem.OnOpenTriggered()
	case EventReset:
		s.revealSystem.OnResetTriggered()
	default:
		log.Printf("[UnboxingScene] Warning: 未知的按钮事件 %q", event)
	}
}

// Session 返回当前开箱会话快照
func (s *UnboxingScene) Session() systems.RevealSession {
	return s.revealSystem.Session()
}

// SaveOnExit 实现 game.Saveable，退出时保存用户设置
func (s *UnboxingScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[UnboxingScene] Warning: 保存设置失败: %v", err)
		return false
	}
	return true
}
