package utils

import (
	"image"
	"log"

	"golang.org/x/image/draw"
)

// FrameGeometry 描述精灵图中单帧的尺寸（像素）
type FrameGeometry struct {
	Width  int
	Height int
}

// Valid 返回帧尺寸是否为正数
func (g FrameGeometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// SheetLayout 返回精灵图按帧尺寸切分后的列数和行数
// 不能整除的剩余像素被忽略
func SheetLayout(sheetWidth, sheetHeight int, geom FrameGeometry) (columns, rows int) {
	if !geom.Valid() {
		return 0, 0
	}
	return sheetWidth / geom.Width, sheetHeight / geom.Height
}

// FrameOrigin 返回第 index 帧在精灵图中的原点（自下而上的坐标系）
//
// 帧序号先从左到右、再从下到上递增：
//
//	col = index % columns
//	row = index / columns
//	origin = (col*fw, (rows-row-1)*fh)
//
// columns 为 0 时返回 ok=false。
func FrameOrigin(index, columns, rows int, geom FrameGeometry) (x, y int, ok bool) {
	if columns <= 0 || rows <= 0 {
		return 0, 0, false
	}
	col := index % columns
	row := index / columns
	return col * geom.Width, (rows - row - 1) * geom.Height, true
}

// FrameRect 返回第 index 帧在图像坐标系（自上而下）中的矩形
//
// Go 的 image 包以左上角为原点，因此自下而上的原点 y 需要翻转：
// y0 = sheetHeight - originY - fh
func FrameRect(sheetBounds image.Rectangle, index int, geom FrameGeometry) (image.Rectangle, bool) {
	columns, rows := SheetLayout(sheetBounds.Dx(), sheetBounds.Dy(), geom)
	if index < 0 || index >= columns*rows {
		return image.Rectangle{}, false
	}
	ox, oy, ok := FrameOrigin(index, columns, rows, geom)
	if !ok {
		return image.Rectangle{}, false
	}
	y0 := sheetBounds.Dy() - oy - geom.Height
	topLeft := sheetBounds.Min.Add(image.Pt(ox, y0))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(geom.Width, geom.Height))}, true
}

// FrameSet 从一张精灵图中切出的有序帧序列
// 创建后不可修改；所有帧尺寸都等于 Geometry()
type FrameSet struct {
	frames     []image.Image
	geometry   FrameGeometry
	startIndex int
}

// NewFrameSet 用已有的帧构建 FrameSet（拷贝切片，调用方之后的修改不影响结果）
func NewFrameSet(frames []image.Image, geom FrameGeometry, startIndex int) *FrameSet {
	copied := make([]image.Image, len(frames))
	copy(copied, frames)
	return &FrameSet{frames: copied, geometry: geom, startIndex: startIndex}
}

// Len 返回帧数量
func (fs *FrameSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.frames)
}

// Frame 返回第 i 帧（0-based），越界返回 nil
func (fs *FrameSet) Frame(i int) image.Image {
	if fs == nil || i < 0 || i >= len(fs.frames) {
		return nil
	}
	return fs.frames[i]
}

// Geometry 返回帧尺寸
func (fs *FrameSet) Geometry() FrameGeometry {
	if fs == nil {
		return FrameGeometry{}
	}
	return fs.geometry
}

// StartIndex 返回第 0 帧在精灵图中的序号
func (fs *FrameSet) StartIndex() int {
	if fs == nil {
		return 0
	}
	return fs.startIndex
}

// ExtractFrames 将精灵图按帧尺寸切分为 [start, end] 闭区间内的帧序列
//
// 返回的帧数量为 end-start+1，每一帧都是独立的像素拷贝。
//
// 错误处理（均不返回 error，只记录日志）：
//   - sheet 为 nil：返回空序列（缺失资源，界面跳过帧更新）
//   - 帧尺寸非法或 end < start：返回空序列
//   - 超出精灵图范围的帧序号：生成同尺寸的透明帧，保持序列长度和尺寸不变
func ExtractFrames(sheet image.Image, geom FrameGeometry, start, end int) *FrameSet {
	fs := &FrameSet{geometry: geom, startIndex: start}

	if sheet == nil {
		log.Printf("[SpriteSheet] Warning: 精灵图为空，跳过帧切分")
		return fs
	}
	if !geom.Valid() {
		log.Printf("[SpriteSheet] Warning: 非法帧尺寸 %dx%d", geom.Width, geom.Height)
		return fs
	}
	if end < start {
		log.Printf("[SpriteSheet] Warning: 帧区间非法 [%d, %d]", start, end)
		return fs
	}

	bounds := sheet.Bounds()
	fs.frames = make([]image.Image, 0, end-start+1)

	for i := start; i <= end; i++ {
		frame := image.NewRGBA(image.Rect(0, 0, geom.Width, geom.Height))
		rect, ok := FrameRect(bounds, i, geom)
		if !ok {
			log.Printf("[SpriteSheet] Warning: 帧 %d 超出精灵图范围 (%dx%d)，使用透明帧",
				i, bounds.Dx(), bounds.Dy())
		} else {
			draw.Copy(frame, image.Point{}, sheet, rect, draw.Src, nil)
		}
		fs.frames = append(fs.frames, frame)
	}

	log.Printf("[SpriteSheet] 切分完成: %d 帧 (%dx%d)", len(fs.frames), geom.Width, geom.Height)
	return fs
}
