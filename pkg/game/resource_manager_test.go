package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG 写入一张 w×h 的纯色 PNG
func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode error: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
}

// TestLoadSourceImage 测试从磁盘加载并缓存源图像
func TestLoadSourceImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.png")
	writeTestPNG(t, path, 8, 4)

	rm := NewResourceManager()
	img, err := rm.LoadSourceImage(path)
	if err != nil {
		t.Fatalf("LoadSourceImage error: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("Unexpected size %v", img.Bounds())
	}

	// 删除文件后仍应命中缓存
	os.Remove(path)
	cached, err := rm.LoadSourceImage(path)
	if err != nil {
		t.Fatalf("Expected cached image, got error: %v", err)
	}
	if cached != img {
		t.Error("Expected the same cached image instance")
	}
}

// TestLoadSourceImageErrors 测试缺失和损坏的图像文件
func TestLoadSourceImageErrors(t *testing.T) {
	dir := t.TempDir()
	rm := NewResourceManager()

	if _, err := rm.LoadSourceImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := rm.LoadSourceImage(bad); err == nil {
		t.Error("Expected error for corrupted image")
	}
}
