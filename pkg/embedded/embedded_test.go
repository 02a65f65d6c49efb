package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"assets/config/unboxing.yaml": &fstest.MapFile{Data: []byte("spriteSheet:\n  frameWidth: 64\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	defer Reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestReadFileNotInitialized 测试未初始化时读取
func TestReadFileNotInitialized(t *testing.T) {
	Reset()

	_, err := ReadFile("assets/config/unboxing.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("assets/config/unboxing.yaml") {
		t.Error("Exists should be false before Init()")
	}
}

// TestReadFile 测试读取嵌入文件与路径标准化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Reset()

	for _, path := range []string{"assets/config/unboxing.yaml", "./assets/config/unboxing.yaml"} {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) error: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("ReadFile(%q) returned empty data", path)
		}
	}

	if _, err := ReadFile("data/other.yaml"); err == nil {
		t.Error("Expected error for unknown prefix")
	}
	if Exists("assets/missing.png") {
		t.Error("Exists should be false for missing file")
	}
	if !Exists("assets/config/unboxing.yaml") {
		t.Error("Exists should be true for embedded file")
	}
}

// TestReadFileOrDisk 测试嵌入资源缺失时回退到磁盘
func TestReadFileOrDisk(t *testing.T) {
	Reset()
	defer Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.yaml")
	if err := os.WriteFile(path, []byte("frameRate: 0.2\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := ReadFileOrDisk(path)
	if err != nil {
		t.Fatalf("ReadFileOrDisk error: %v", err)
	}
	if string(data) != "frameRate: 0.2\n" {
		t.Errorf("Unexpected content: %q", data)
	}

	if _, err := ReadFileOrDisk(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	// 嵌入资源优先
	Init(testFS())
	data, err = ReadFileOrDisk("assets/config/unboxing.yaml")
	if err != nil || len(data) == 0 {
		t.Errorf("Expected embedded content, got %q, %v", data, err)
	}
}
