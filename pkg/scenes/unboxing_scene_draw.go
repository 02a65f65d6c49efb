package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/unboxing/pkg/components"
	"github.com/decker502/unboxing/pkg/ecs"
	"github.com/decker502/unboxing/pkg/systems"
)

var backgroundColor = color.RGBA{R: 24, G: 20, B: 37, A: 255}

// sceneRenderCache 渲染用的缓存图像
type sceneRenderCache struct {
	pixel *ebiten.Image // 1x1 白色像素，用于绘制可旋转的色块

	// 奖品标签的离屏图像：文字不支持透明度，先画到离屏再整体淡入
	labelImage *ebiten.Image
	labelText  string
}

// Draw 绘制开箱场景
func (s *UnboxingScene) Draw(screen *ebiten.Image) {
	if s.frameTextures == nil && s.frames.Len() > 0 {
		s.frameTextures = s.resourceManager.FrameTextures(s.frames)
	}
	if s.renderCache.pixel == nil {
		s.renderCache.pixel = ebiten.NewImage(1, 1)
		s.renderCache.pixel.Fill(color.White)
	}

	screen.Fill(backgroundColor)

	s.drawBox(screen)
	s.drawEventObjects(screen)
	s.drawOpenButton(screen)
	s.drawPrizes(screen)
	s.drawLabel(screen)
	s.drawResetButton(screen)

	if s.settings != nil && s.settings.GetSettings().ShowDebugInfo {
		s.drawDebugInfo(screen)
	}
}

// drawBox 绘制旋转的礼盒：Y 轴旋转投影为水平缩放，打开后盖子上移
func (s *UnboxingScene) drawBox(screen *ebiten.Image) {
	em := s.entityManager
	pos, ok := ecs.GetComponentTyped[*components.PositionComponent](em, s.entities.box)
	if !ok {
		return
	}
	vis, ok := ecs.GetComponentTyped[*components.VisualComponent](em, s.entities.box)
	if !ok || !vis.Visible {
		return
	}

	scaleX := 1.0
	if scale, ok := ecs.GetComponentTyped[*components.ScaleComponent](em, s.entities.box); ok {
		scaleX = math.Abs(scale.ScaleX)
	}
	width := vis.Width * math.Max(scaleX, 0.05)
	x := pos.X + (vis.Width-width)/2

	lidOffset := 0.0
	if anim, ok := ecs.GetComponentTyped[*components.AnimatorComponent](em, s.entities.box); ok && anim.State == BoxStateOpened {
		lidOffset = math.Min(anim.StateTime*60, 20)
	}

	body := rgba(vis.Color, vis.Opacity)
	vector.DrawFilledRect(screen, float32(x), float32(pos.Y+vis.Height*0.3), float32(width), float32(vis.Height*0.7), body, true)

	lid := color.RGBA{R: 220, G: 180, B: 60, A: body.A}
	vector.DrawFilledRect(screen, float32(x-4), float32(pos.Y+vis.Height*0.15-lidOffset), float32(width+8), float32(vis.Height*0.15), lid, true)
}

// drawEventObjects 绘制开箱事件对象（彩带）
func (s *UnboxingScene) drawEventObjects(screen *ebiten.Image) {
	em := s.entityManager
	for _, id := range s.entities.eventObjects {
		obj, ok := ecs.GetComponentTyped[*components.SceneObjectComponent](em, id)
		if !ok || !obj.Active {
			continue
		}
		pos, _ := ecs.GetComponentTyped[*components.PositionComponent](em, id)
		vis, _ := ecs.GetComponentTyped[*components.VisualComponent](em, id)
		if pos == nil || vis == nil {
			continue
		}

		angle := 0.0
		if rot, ok := ecs.GetComponentTyped[*components.RotationComponent](em, id); ok {
			angle = rot.Angle[2] * math.Pi / 180
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(vis.Width, vis.Height)
		op.GeoM.Rotate(angle)
		op.GeoM.Translate(pos.X, pos.Y)
		op.ColorScale.ScaleWithColor(rgba(vis.Color, 1))
		op.ColorScale.ScaleAlpha(float32(vis.Opacity))
		screen.DrawImage(s.renderCache.pixel, op)
	}
}

// drawOpenButton 绘制开箱按钮的当前帧；没有帧图像时退化为纯色块
func (s *UnboxingScene) drawOpenButton(screen *ebiten.Image) {
	em := s.entityManager
	pos, _ := ecs.GetComponentTyped[*components.PositionComponent](em, s.entities.openButton)
	vis, _ := ecs.GetComponentTyped[*components.VisualComponent](em, s.entities.openButton)
	if pos == nil || vis == nil || !vis.Visible || vis.Opacity <= 0 {
		return
	}

	if vis.FrameIndex >= 0 && vis.FrameIndex < len(s.frameTextures) && s.frameTextures[vis.FrameIndex] != nil {
		frame := s.frameTextures[vis.FrameIndex]
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.cfg.Layout.ButtonScale, s.cfg.Layout.ButtonScale)
		op.GeoM.Translate(pos.X, pos.Y)
		op.ColorScale.ScaleAlpha(float32(vis.Opacity))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(frame, op)
		return
	}

	vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(vis.Width), float32(vis.Height), rgba(vis.Color, vis.Opacity), true)
	if vis.Opacity > 0.5 {
		ebitenutil.DebugPrintAt(screen, vis.Text, int(pos.X+vis.Width/2)-len(vis.Text)*3, int(pos.Y+vis.Height/2)-8)
	}
}

// drawPrizes 绘制已激活的奖品
func (s *UnboxingScene) drawPrizes(screen *ebiten.Image) {
	em := s.entityManager
	for _, id := range s.entities.prizes {
		obj, ok := ecs.GetComponentTyped[*components.SceneObjectComponent](em, id)
		if !ok || !obj.Active {
			continue
		}
		pos, _ := ecs.GetComponentTyped[*components.PositionComponent](em, id)
		vis, _ := ecs.GetComponentTyped[*components.VisualComponent](em, id)
		if pos == nil || vis == nil {
			continue
		}
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(vis.Width), float32(vis.Height), rgba(vis.Color, vis.Opacity), true)
		ebitenutil.DebugPrintAt(screen, vis.Text, int(pos.X)+4, int(pos.Y)+4)
	}
}

// drawLabel 绘制奖品标签（淡入）
func (s *UnboxingScene) drawLabel(screen *ebiten.Image) {
	em := s.entityManager
	pos, _ := ecs.GetComponentTyped[*components.PositionComponent](em, s.entities.label)
	vis, _ := ecs.GetComponentTyped[*components.VisualComponent](em, s.entities.label)
	if pos == nil || vis == nil || !vis.Visible || vis.Opacity <= 0 {
		return
	}

	text := vis.Text
	if name := s.activePrizeText(); name != "" {
		text = fmt.Sprintf("%s %s", vis.Text, name)
	}

	cache := &s.renderCache
	if cache.labelImage == nil || cache.labelText != text {
		if cache.labelImage == nil {
			cache.labelImage = ebiten.NewImage(int(vis.Width), int(vis.Height))
		}
		cache.labelImage.Fill(rgba(vis.Color, 1))
		ebitenutil.DebugPrintAt(cache.labelImage, text, 12, int(vis.Height/2)-8)
		cache.labelText = text
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleAlpha(float32(vis.Opacity))
	screen.DrawImage(cache.labelImage, op)
}

// drawResetButton 绘制重置按钮
func (s *UnboxingScene) drawResetButton(screen *ebiten.Image) {
	em := s.entityManager
	pos, _ := ecs.GetComponentTyped[*components.PositionComponent](em, s.entities.resetButton)
	vis, _ := ecs.GetComponentTyped[*components.VisualComponent](em, s.entities.resetButton)
	if pos == nil || vis == nil || !vis.Visible {
		return
	}
	vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(vis.Width), float32(vis.Height), rgba(vis.Color, vis.Opacity), true)
	vector.StrokeRect(screen, float32(pos.X), float32(pos.Y), float32(vis.Width), float32(vis.Height), 1, color.White, true)
	ebitenutil.DebugPrintAt(screen, vis.Text, int(pos.X+vis.Width/2)-len(vis.Text)*3, int(pos.Y+vis.Height/2)-8)
}

// drawDebugInfo 绘制状态调试信息（F3 切换）
func (s *UnboxingScene) drawDebugInfo(screen *ebiten.Image) {
	session := s.Session()
	lines := []string{
		fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()),
		fmt.Sprintf("State: %s", session.State),
		fmt.Sprintf("Frame: %d/%d playing=%v loop=%v", session.Animation.CurrentFrame, s.frames.Len(), session.Animation.IsPlaying, session.Animation.IsLooping),
		fmt.Sprintf("Transitions: %d", session.ActiveTransitions),
		fmt.Sprintf("Prize: %s", session.ActivePrize),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
	}
}

// activePrizeText 返回当前激活奖品的显示名称
func (s *UnboxingScene) activePrizeText() string {
	item, ok := s.prizeSelector.Active()
	if !ok {
		return ""
	}
	if entityItem, ok := item.(*systems.EntityPrizeItem); ok {
		if vis, ok := ecs.GetComponentTyped[*components.VisualComponent](s.entityManager, entityItem.EntityID()); ok && vis.Text != "" {
			return vis.Text
		}
	}
	return item.Name()
}

// rgba 把 [4]uint8 颜色和不透明度转换为预乘 alpha 的 color.RGBA
func rgba(c [4]uint8, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := float64(c[3]) / 255 * opacity
	return color.RGBA{
		R: uint8(float64(c[0]) * a),
		G: uint8(float64(c[1]) * a),
		B: uint8(float64(c[2]) * a),
		A: uint8(255 * a),
	}
}
