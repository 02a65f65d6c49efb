package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在窗口关闭时被调用 SaveOnExit()
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
