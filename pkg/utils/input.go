// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// PointInRect 检查点 (px, py) 是否落在以 (x, y) 为左上角、w×h 的矩形内
// 左边和上边包含在内，右边和下边不包含
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
