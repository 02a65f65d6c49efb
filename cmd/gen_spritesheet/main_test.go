package main

import (
	"image/color"
	"testing"

	"github.com/decker502/unboxing/pkg/utils"
)

// TestRenderSheetMatchesExtractor 生成的精灵图经切分后帧顺序正确
// 进度条宽度随帧序号增长：第 i 帧底部进度条覆盖 (i+1)/total 的宽度
func TestRenderSheetMatchesExtractor(t *testing.T) {
	const fw, fh, columns, rows = 32, 32, 4, 4
	sheet := renderSheet(fw, fh, columns, rows)

	frames := utils.ExtractFrames(sheet, utils.FrameGeometry{Width: fw, Height: fh}, 0, columns*rows-1)
	if frames.Len() != columns*rows {
		t.Fatalf("期望 %d 帧，实际 %d", columns*rows, frames.Len())
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < frames.Len(); i++ {
		frame := frames.Frame(i)
		barWidth := fw * (i + 1) / (columns * rows)

		// 进度条最后一个像素为白色，紧邻的下一个像素不是
		if got := color.RGBAModel.Convert(frame.At(barWidth-1, fh-1)); got != white {
			t.Errorf("帧 %d: 进度条末端期望白色，实际 %v", i, got)
		}
		if barWidth < fw {
			if got := color.RGBAModel.Convert(frame.At(barWidth, fh-1)); got == white {
				t.Errorf("帧 %d: 进度条不应超过 %d 像素", i, barWidth)
			}
		}
	}
}

func TestHueColorOpaque(t *testing.T) {
	for i := 0; i < 16; i++ {
		if c := hueColor(float64(i) / 16); c.A != 255 {
			t.Errorf("hueColor(%d/16) 应不透明，实际 A=%d", i, c.A)
		}
	}
}
