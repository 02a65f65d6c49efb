package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/decker502/unboxing/pkg/embedded"
	"github.com/decker502/unboxing/pkg/utils"
)

// DefaultConfigPath 默认的开箱配置文件路径
const DefaultConfigPath = "assets/config/unboxing.yaml"

// UnboxingConfig 开箱场景配置
// 包括精灵图切分、过渡时间、触发器名称和奖品前缀
type UnboxingConfig struct {
	SpriteSheet SpriteSheetConfig `yaml:"spriteSheet"` // 按钮帧动画精灵图
	Transitions TransitionConfig  `yaml:"transitions"` // 按钮/标签过渡时间
	Triggers    TriggerConfig     `yaml:"triggers"`    // 礼盒触发器名称
	Prizes      PrizeConfig       `yaml:"prizes"`      // 奖池配置
	Rotation    RotationConfig    `yaml:"rotation"`    // 礼盒旋转
	Layout      LayoutConfig      `yaml:"layout"`      // 窗口与元素布局
}

// SpriteSheetConfig 精灵图切分与播放参数
type SpriteSheetConfig struct {
	Path        string  `yaml:"path"`        // 精灵图路径，如 "assets/images/unboxing_sheet.png"
	FrameWidth  int     `yaml:"frameWidth"`  // 单帧宽度（像素），默认 256
	FrameHeight int     `yaml:"frameHeight"` // 单帧高度（像素），默认 256
	StartFrame  int     `yaml:"startFrame"`  // 起始帧序号（含），默认 0
	EndFrame    int     `yaml:"endFrame"`    // 结束帧序号（含），默认 15
	FrameRate   float64 `yaml:"frameRate"`   // 每帧持续时间（秒），默认 0.1
	Loop        bool    `yaml:"loop"`        // 是否循环播放，默认 true
}

// TransitionConfig 过渡参数（秒）
type TransitionConfig struct {
	FadeOutDelay        float64 `yaml:"fadeOutDelay"`        // 开箱后按钮淡出前的延迟，默认 0.5
	FadeOutDuration     float64 `yaml:"fadeOutDuration"`     // 按钮淡出时长，默认 1
	LabelFadeInDuration float64 `yaml:"labelFadeInDuration"` // 奖品标签淡入时长，默认 1
	ResetFadeIn         bool    `yaml:"resetFadeIn"`         // 重置时是否播放按钮淡入，默认 true
	ResetFadeDuration   float64 `yaml:"resetFadeDuration"`   // 重置淡入时长，默认 1
	Easing              string  `yaml:"easing"`              // 缓动函数名："linear", "inQuad", "outQuad", "outCubic", "inOutCubic"
}

// TriggerConfig 礼盒动画触发器名称
type TriggerConfig struct {
	Open  string `yaml:"open"`  // 开箱触发器，默认 "TrOpen"
	Reset string `yaml:"reset"` // 重置触发器，默认 "TrReset"
}

// PrizeConfig 奖池配置
type PrizeConfig struct {
	Prefix string   `yaml:"prefix"` // 奖品对象名前缀，默认 "Item"
	Seed   int64    `yaml:"seed"`   // 随机种子，0 表示每次运行随机
	Labels []string `yaml:"labels"` // 奖品显示名称，按顺序生成 Item1..ItemN
}

// RotationConfig 礼盒旋转速度（度/秒），按 X/Y/Z 轴
type RotationConfig struct {
	Speed [3]float64 `yaml:"speed"`
}

// LayoutConfig 窗口与界面元素布局（像素）
type LayoutConfig struct {
	WindowWidth  int     `yaml:"windowWidth"`  // 默认 800
	WindowHeight int     `yaml:"windowHeight"` // 默认 600
	Title        string  `yaml:"title"`        // 窗口标题
	ButtonX      float64 `yaml:"buttonX"`      // 开箱按钮左上角
	ButtonY      float64 `yaml:"buttonY"`
	ButtonScale  float64 `yaml:"buttonScale"` // 帧图像缩放，默认 1
}

// DefaultUnboxingConfig 返回默认配置：256x256 帧、第 0-15 帧、每帧 0.1 秒、循环播放
func DefaultUnboxingConfig() *UnboxingConfig {
	return &UnboxingConfig{
		SpriteSheet: SpriteSheetConfig{
			Path:        "assets/images/unboxing_sheet.png",
			FrameWidth:  256,
			FrameHeight: 256,
			StartFrame:  0,
			EndFrame:    15,
			FrameRate:   0.1,
			Loop:        true,
		},
		Transitions: TransitionConfig{
			FadeOutDelay:        0.5,
			FadeOutDuration:     1.0,
			LabelFadeInDuration: 1.0,
			ResetFadeIn:         true,
			ResetFadeDuration:   1.0,
			Easing:              "linear",
		},
		Triggers: TriggerConfig{
			Open:  "TrOpen",
			Reset: "TrReset",
		},
		Prizes: PrizeConfig{
			Prefix: "Item",
			Labels: []string{"Golden Key", "Ruby", "Old Map", "Lucky Coin"},
		},
		Rotation: RotationConfig{
			Speed: [3]float64{0, 45, 0},
		},
		Layout: LayoutConfig{
			WindowWidth:  DefaultWindowWidth,
			WindowHeight: DefaultWindowHeight,
			Title:        "Unboxing",
			ButtonX:      DefaultButtonX,
			ButtonY:      DefaultButtonY,
			ButtonScale:  1.0,
		},
	}
}

// LoadUnboxingConfig 从 YAML 文件加载开箱配置
//
// 优先读取嵌入资源，不存在时从磁盘读取。文件中缺失的字段保留默认值。
func LoadUnboxingConfig(path string) (*UnboxingConfig, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unboxing config file %s: %w", path, err)
	}

	cfg, err := ParseUnboxingConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid unboxing config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseUnboxingConfig 解析 YAML 数据，应用默认值并验证
func ParseUnboxingConfig(data []byte) (*UnboxingConfig, error) {
	cfg := DefaultUnboxingConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse unboxing config YAML: %w", err)
	}

	applyUnboxingDefaults(cfg)

	if err := validateUnboxingConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyUnboxingDefaults 为显式写成零值的可选字段恢复默认值
func applyUnboxingDefaults(cfg *UnboxingConfig) {
	if cfg.SpriteSheet.FrameRate == 0 {
		cfg.SpriteSheet.FrameRate = 0.1
	}
	if cfg.Transitions.Easing == "" {
		cfg.Transitions.Easing = "linear"
	}
	if cfg.Triggers.Open == "" {
		cfg.Triggers.Open = "TrOpen"
	}
	if cfg.Triggers.Reset == "" {
		cfg.Triggers.Reset = "TrReset"
	}
	if cfg.Prizes.Prefix == "" {
		cfg.Prizes.Prefix = "Item"
	}
	if cfg.Layout.WindowWidth == 0 {
		cfg.Layout.WindowWidth = DefaultWindowWidth
	}
	if cfg.Layout.WindowHeight == 0 {
		cfg.Layout.WindowHeight = DefaultWindowHeight
	}
	if cfg.Layout.ButtonScale == 0 {
		cfg.Layout.ButtonScale = 1.0
	}
}

// validateUnboxingConfig 验证配置的合法性
func validateUnboxingConfig(cfg *UnboxingConfig) error {
	sheet := cfg.SpriteSheet
	if sheet.FrameWidth <= 0 || sheet.FrameHeight <= 0 {
		return fmt.Errorf("spriteSheet: frame size must be positive, got %dx%d", sheet.FrameWidth, sheet.FrameHeight)
	}
	if sheet.StartFrame < 0 {
		return fmt.Errorf("spriteSheet: startFrame cannot be negative (%d)", sheet.StartFrame)
	}
	if sheet.EndFrame < sheet.StartFrame {
		return fmt.Errorf("spriteSheet: endFrame (%d) must not be less than startFrame (%d)", sheet.EndFrame, sheet.StartFrame)
	}
	if sheet.FrameRate < 0 {
		return fmt.Errorf("spriteSheet: frameRate must be positive (%f)", sheet.FrameRate)
	}

	tr := cfg.Transitions
	if tr.FadeOutDelay < 0 || tr.FadeOutDuration < 0 || tr.LabelFadeInDuration < 0 || tr.ResetFadeDuration < 0 {
		return fmt.Errorf("transitions: delays and durations cannot be negative")
	}
	if _, err := utils.ParseEasing(tr.Easing); err != nil {
		return fmt.Errorf("transitions: %w", err)
	}

	if cfg.Layout.WindowWidth < 0 || cfg.Layout.WindowHeight < 0 {
		return fmt.Errorf("layout: window size cannot be negative")
	}
	if cfg.Layout.ButtonScale < 0 {
		return fmt.Errorf("layout: buttonScale cannot be negative")
	}
	return nil
}

// ValidateSheet 检查帧区间是否落在实际精灵图尺寸内
// 精灵图加载后调用；越界时 ExtractFrames 仍会用透明帧补齐，这里只负责提前报告
func (cfg *UnboxingConfig) ValidateSheet(sheetWidth, sheetHeight int) error {
	geom := cfg.FrameGeometry()
	columns, rows := utils.SheetLayout(sheetWidth, sheetHeight, geom)
	if columns == 0 || rows == 0 {
		return fmt.Errorf("sprite sheet %dx%d is smaller than one %dx%d frame",
			sheetWidth, sheetHeight, geom.Width, geom.Height)
	}
	if cfg.SpriteSheet.EndFrame >= columns*rows {
		return fmt.Errorf("endFrame %d out of range: sheet %dx%d holds %d frames",
			cfg.SpriteSheet.EndFrame, sheetWidth, sheetHeight, columns*rows)
	}
	return nil
}

// FrameGeometry 返回配置的帧尺寸
func (cfg *UnboxingConfig) FrameGeometry() utils.FrameGeometry {
	return utils.FrameGeometry{Width: cfg.SpriteSheet.FrameWidth, Height: cfg.SpriteSheet.FrameHeight}
}

// EasingFunc 返回配置的缓动函数（已在加载时验证）
func (cfg *UnboxingConfig) EasingFunc() utils.EasingFunc {
	fn, err := utils.ParseEasing(cfg.Transitions.Easing)
	if err != nil {
		return utils.EaseLinear
	}
	return fn
}
