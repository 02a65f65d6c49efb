// gen_spritesheet 生成开箱按钮的占位精灵图
//
// 帧按自下而上的顺序排列：第 0 帧位于左下角，最后一行位于图像顶部。
// 每帧使用不同色相的背景，底部进度条长度随帧序号增长，便于肉眼检查帧顺序。
//
// 用法：
//
//	go run ./cmd/gen_spritesheet -out assets/images/unboxing_sheet.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"golang.org/x/image/draw"
)

var (
	outPath     = flag.String("out", "assets/images/unboxing_sheet.png", "输出 PNG 路径")
	frameWidth  = flag.Int("frame-width", 256, "单帧宽度（像素）")
	frameHeight = flag.Int("frame-height", 256, "单帧高度（像素）")
	columns     = flag.Int("columns", 4, "列数")
	rows        = flag.Int("rows", 4, "行数")
)

func main() {
	flag.Parse()

	if *frameWidth <= 0 || *frameHeight <= 0 || *columns <= 0 || *rows <= 0 {
		log.Fatalf("frame size and grid must be positive")
	}

	sheet := renderSheet(*frameWidth, *frameHeight, *columns, *rows)

	file, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *outPath, err)
	}
	defer file.Close()

	if err := png.Encode(file, sheet); err != nil {
		log.Fatalf("failed to encode PNG: %v", err)
	}
	fmt.Printf("Wrote %dx%d sheet (%d frames) to %s\n",
		sheet.Bounds().Dx(), sheet.Bounds().Dy(), *columns**rows, *outPath)
}

// renderSheet 绘制整张精灵图
func renderSheet(fw, fh, columns, rows int) *image.RGBA {
	sheet := image.NewRGBA(image.Rect(0, 0, fw*columns, fh*rows))
	total := columns * rows

	for i := 0; i < total; i++ {
		col := i % columns
		row := i / columns
		// 自下而上：第 0 行在图像底部
		x0 := col * fw
		y0 := (rows - row - 1) * fh
		renderFrame(sheet, image.Rect(x0, y0, x0+fw, y0+fh), i, total)
	}
	return sheet
}

// renderFrame 在 rect 内绘制第 index 帧
func renderFrame(dst *image.RGBA, rect image.Rectangle, index, total int) {
	bg := hueColor(float64(index) / float64(total))
	draw.Draw(dst, rect, image.NewUniform(bg), image.Point{}, draw.Src)

	// 中央的礼盒
	inset := rect.Dx() / 4
	box := image.Rect(rect.Min.X+inset, rect.Min.Y+inset, rect.Max.X-inset, rect.Max.Y-inset)
	draw.Draw(dst, box, image.NewUniform(color.RGBA{R: 40, G: 24, B: 60, A: 255}), image.Point{}, draw.Src)

	// 底部进度条
	barHeight := rect.Dy() / 16
	barWidth := rect.Dx() * (index + 1) / total
	bar := image.Rect(rect.Min.X, rect.Max.Y-barHeight, rect.Min.X+barWidth, rect.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(color.White), image.Point{}, draw.Src)
}

// hueColor 返回色相 h（0..1）对应的饱和颜色
func hueColor(h float64) color.RGBA {
	r := channel(h + 1.0/3)
	g := channel(h)
	b := channel(h - 1.0/3)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func channel(h float64) uint8 {
	h -= math.Floor(h)
	v := math.Max(0, math.Min(1, math.Abs(h*6-3)-1))
	return uint8(80 + v*160)
}
