package scenes

import (
	"fmt"
	"math"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/config"
	"github.com/decker502/unboxing/pkg/ecs"
)

// 场景对象分组
const (
	GroupPrizes              = "Prizes"
	GroupOpenBoxEventObjects = "OpenBoxEventObjects"
)

// 可点击元素产生的事件
const (
	EventOpen  = "open"
	EventReset = "reset"
)

// 礼盒 Animator 状态
const (
	BoxStateClosed = "closed"
	BoxStateOpened = "opened"
)

// 场景对象名称
const (
	nameOpenButton  = "ButtonOpenBox"
	nameResetButton = "ButtonReset"
	namePrizeLabel  = "PrizeLabel"
	namePresentBox  = "PF_PresentBox"
)

// confettiColors 开箱彩带的颜色，按序号循环使用
var confettiColors = [][4]uint8{
	{239, 71, 111, 255},
	{255, 209, 102, 255},
	{6, 214, 160, 255},
	{17, 138, 178, 255},
}

// sceneEntities 开箱场景中各对象的实体ID
type sceneEntities struct {
	openButton   ecs.EntityID
	resetButton  ecs.EntityID
	label        ecs.EntityID
	box          ecs.EntityID
	eventObjects []ecs.EntityID
	prizes       []ecs.EntityID
}

// buildSceneEntities 按配置创建开箱场景的全部实体
//
// 实体创建顺序决定了奖品的下标：Item1..ItemN 按 Labels 的顺序依次创建。
func buildSceneEntities(em *ecs.EntityManager, cfg *config.UnboxingConfig) sceneEntities {
	layout := cfg.Layout
	buttonW := float64(cfg.SpriteSheet.FrameWidth) * layout.ButtonScale
	buttonH := float64(cfg.SpriteSheet.FrameHeight) * layout.ButtonScale

	var ents sceneEntities

	// 开箱按钮：显示帧动画，点击触发开箱
	ents.openButton = em.CreateEntity()
	em.AddComponent(ents.openButton, &components.SceneObjectComponent{Name: nameOpenButton, Active: true})
	em.AddComponent(ents.openButton, &components.PositionComponent{X: layout.ButtonX, Y: layout.ButtonY})
	em.AddComponent(ents.openButton, &components.VisualComponent{
		FrameIndex: 0,
		Opacity:    1,
		Visible:    true,
		Width:      buttonW,
		Height:     buttonH,
		Text:       "OPEN",
		Color:      [4]uint8{120, 72, 160, 255},
	})
	em.AddComponent(ents.openButton, &components.ClickableComponent{
		Width:     buttonW,
		Height:    buttonH,
		IsEnabled: true,
		Event:     EventOpen,
	})

	// 奖品标签：初始隐藏且完全透明
	labelX, labelY := config.LabelPosition(layout.WindowWidth, layout.ButtonY, buttonH)
	ents.label = em.CreateEntity()
	em.AddComponent(ents.label, &components.SceneObjectComponent{Name: namePrizeLabel, Active: true})
	em.AddComponent(ents.label, &components.PositionComponent{X: labelX, Y: labelY})
	em.AddComponent(ents.label, &components.VisualComponent{
		FrameIndex: -1,
		Opacity:    0,
		Visible:    false,
		Width:      config.LabelWidth,
		Height:     config.LabelHeight,
		Text:       "You got:",
		Color:      [4]uint8{30, 30, 40, 220},
	})

	// 重置按钮：固定在右下角
	resetX, resetY := config.ResetButtonPosition(layout.WindowWidth, layout.WindowHeight)
	ents.resetButton = em.CreateEntity()
	em.AddComponent(ents.resetButton, &components.SceneObjectComponent{Name: nameResetButton, Active: true})
	em.AddComponent(ents.resetButton, &components.PositionComponent{X: resetX, Y: resetY})
	em.AddComponent(ents.resetButton, &components.VisualComponent{
		FrameIndex: -1,
		Opacity:    1,
		Visible:    true,
		Width:      config.ResetButtonWidth,
		Height:     config.ResetButtonHeight,
		Text:       "RESET",
		Color:      [4]uint8{70, 70, 90, 255},
	})
	em.AddComponent(ents.resetButton, &components.ClickableComponent{
		Width:     config.ResetButtonWidth,
		Height:    config.ResetButtonHeight,
		IsEnabled: true,
		Event:     EventReset,
	})

	// 礼盒：持续绕 Y 轴旋转，由触发器切换开合状态
	boxY := (float64(layout.WindowHeight) - config.BoxSize) / 2
	ents.box = em.CreateEntity()
	em.AddComponent(ents.box, &components.SceneObjectComponent{Name: namePresentBox, Active: true})
	em.AddComponent(ents.box, &components.PositionComponent{X: config.BoxMarginX, Y: boxY})
	em.AddComponent(ents.box, &components.ScaleComponent{ScaleX: 1, ScaleY: 1})
	em.AddComponent(ents.box, &components.RotationComponent{Speed: cfg.Rotation.Speed})
	em.AddComponent(ents.box, &components.AnimatorComponent{
		State: BoxStateClosed,
		Transitions: map[string]string{
			cfg.Triggers.Open:  BoxStateOpened,
			cfg.Triggers.Reset: BoxStateClosed,
		},
	})
	em.AddComponent(ents.box, &components.VisualComponent{
		FrameIndex: -1,
		Opacity:    1,
		Visible:    true,
		Width:      config.BoxSize,
		Height:     config.BoxSize,
		Color:      [4]uint8{176, 48, 48, 255},
	})

	// 开箱事件对象：围绕按钮一圈的彩带，开箱时显示
	centerX := layout.ButtonX + buttonW/2
	centerY := layout.ButtonY + buttonH/2
	radius := math.Max(buttonW, buttonH)/2 + 20
	for i := 0; i < config.EventObjectCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(config.EventObjectCount)
		id := em.CreateEntity()
		em.AddComponent(id, &components.SceneObjectComponent{
			Name:  fmt.Sprintf("Confetti%d", i+1),
			Group: GroupOpenBoxEventObjects,
		})
		em.AddComponent(id, &components.PositionComponent{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		})
		em.AddComponent(id, &components.RotationComponent{Speed: [3]float64{0, 0, 180 + 30*float64(i)}})
		em.AddComponent(id, &components.VisualComponent{
			FrameIndex: -1,
			Opacity:    1,
			Visible:    true,
			Width:      config.EventObjectSize,
			Height:     config.EventObjectSize,
			Color:      confettiColors[i%len(confettiColors)],
		})
		ents.eventObjects = append(ents.eventObjects, id)
	}

	// 奖品：Item1..ItemN，初始隐藏，激活时显示在礼盒下方
	for i, label := range cfg.Prizes.Labels {
		id := em.CreateEntity()
		em.AddComponent(id, &components.SceneObjectComponent{
			Name:  fmt.Sprintf("%s%d", cfg.Prizes.Prefix, i+1),
			Group: GroupPrizes,
		})
		em.AddComponent(id, &components.PositionComponent{
			X: config.BoxMarginX,
			Y: boxY + config.BoxSize + 16,
		})
		em.AddComponent(id, &components.VisualComponent{
			FrameIndex: -1,
			Opacity:    1,
			Visible:    true,
			Width:      config.BoxSize,
			Height:     24,
			Text:       label,
			Color:      [4]uint8{255, 215, 0, 255},
		})
		ents.prizes = append(ents.prizes, id)
	}

	return ents
}
