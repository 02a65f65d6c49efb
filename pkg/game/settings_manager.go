package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// UserSettings 用户偏好设置
// 只保存显示和播放偏好，不保存开箱结果
type UserSettings struct {
	// 显示设置
	Fullscreen    bool `yaml:"fullscreen"`    // 启动时是否全屏
	ShowDebugInfo bool `yaml:"showDebugInfo"` // 是否显示状态调试信息

	// 播放设置
	LoopAnimation bool `yaml:"loopAnimation"` // 开箱按钮帧动画是否循环
}

// DefaultSettings 返回默认设置
func DefaultSettings() *UserSettings {
	return &UserSettings{
		Fullscreen:    false,
		ShowDebugInfo: false,
		LoopAnimation: true,
	}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *UserSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，记录警告后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// OpenSettingsStorage 打开 gdata 存储
// 失败时返回 nil 和错误，调用方可以继续以降级模式运行
func OpenSettingsStorage(appName string) (*gdata.Manager, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings storage: %w", err)
	}
	return manager, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 文件中缺失的字段保留默认值。
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 返回设置是否可以持久化（非降级模式）
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *UserSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetLoopAnimation 设置帧动画是否循环
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLoopAnimation(enabled bool) {
	sm.settings.LoopAnimation = enabled
}

// SetShowDebugInfo 设置是否显示调试信息
func (sm *SettingsManager) SetShowDebugInfo(enabled bool) {
	sm.settings.ShowDebugInfo = enabled
}
