package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/unboxing/pkg/app"
	"github.com/decker502/unboxing/pkg/config"
	"github.com/decker502/unboxing/pkg/embedded"
)

var (
	// 命令行参数
	configPath = flag.String("config", config.DefaultConfigPath, "开箱配置文件路径（嵌入资源优先，其次磁盘）")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	seed       = flag.Int64("seed", 0, "奖品随机种子（0 表示使用配置文件中的值）")
	noLoop     = flag.Bool("no-loop", false, "关闭按钮帧动画循环")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，必须在任何资源加载之前
	embedded.Init(assetsFS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		NoLoop:     *noLoop,
	})
	if err != nil {
		log.Fatal(err)
	}

	width, height, title := game.WindowConfig()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
