// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，并在资源未嵌入时回退到磁盘读取，
// 方便开发时直接修改 assets/ 下的文件。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init 之前访问嵌入资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	assetsFS    fs.FS
	initialized bool
)

// Init 设置嵌入的资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets fs.FS) {
	assetsFS = assets
	initialized = assets != nil
}

// Reset 清除已设置的文件系统（用于测试）
func Reset() {
	assetsFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径：正斜杠、去掉 "./" 前缀
func normalize(path string) (string, error) {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, "assets/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/')", path)
	}
	return path, nil
}

// Open 打开嵌入的文件，路径必须以 "assets/" 开头
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return assetsFS.Open(p)
}

// ReadFile 读取嵌入的文件内容，路径必须以 "assets/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(assetsFS, p)
}

// Exists 检查文件是否存在于嵌入资源中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// ReadFileOrDisk 优先读取嵌入资源，不存在时从磁盘读取
func ReadFileOrDisk(path string) ([]byte, error) {
	if data, err := ReadFile(path); err == nil {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
