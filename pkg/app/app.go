// Package app 提供开箱应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开用户设置存储、
// 创建资源管理器和开箱场景。main.go 只负责解析命令行参数和启动游戏循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/unboxing/pkg/config"
	"github.com/decker502/unboxing/pkg/game"
	"github.com/decker502/unboxing/pkg/scenes"
)

// settingsAppName gdata 存储使用的应用名
const settingsAppName = "unboxing"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 开箱配置文件路径，为空则使用 config.DefaultConfigPath
	ConfigPath string
	// Seed 覆盖配置中的奖品随机种子（0 表示不覆盖）
	Seed int64
	// NoLoop 强制关闭按钮帧动画循环
	NoLoop bool
}

// App 是开箱应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	cfg                      *config.UnboxingConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化开箱应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时所有资源都从磁盘读取。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	unboxingConfig, err := config.LoadUnboxingConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("开箱配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载开箱配置: %s", configPath)

	if cfg.Seed != 0 {
		unboxingConfig.Prizes.Seed = cfg.Seed
	}
	if cfg.NoLoop {
		unboxingConfig.SpriteSheet.Loop = false
	}

	// 用户设置：存储不可用时降级为内存设置
	storage, err := game.OpenSettingsStorage(settingsAppName)
	if err != nil {
		log.Printf("[App] Warning: %v (settings will not be saved)", err)
	}
	settings := game.NewSettingsManager(storage)

	resourceManager := game.NewResourceManager()

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewUnboxingScene(resourceManager, settings, unboxingConfig))

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		cfg:          unboxingConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭：保存设置后正常退出（需要 main 中开启 SetWindowClosingHandled）
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Layout.WindowWidth, a.cfg.Layout.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Layout.WindowWidth, a.cfg.Layout.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记入用户设置
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Layout.WindowWidth, a.cfg.Layout.WindowHeight
}

// WindowConfig 返回窗口尺寸和标题
func (a *App) WindowConfig() (width, height int, title string) {
	return a.cfg.Layout.WindowWidth, a.cfg.Layout.WindowHeight, a.cfg.Layout.Title
}

// SaveOnExit 在窗口关闭时让当前场景保存状态
func (a *App) SaveOnExit() {
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[App] Warning: 退出时保存失败")
		}
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
