package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/automoto/doomerang-spectator/assets"
	"github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/scenes"
	"github.com/automoto/doomerang-spectator/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if c.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	mapName := flag.String("map", "", "name of the map to replay (default: first embedded map)")
	mapDir := flag.String("maps", "", "directory of .tmx maps to use instead of the embedded ones")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadOverrides(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	logger, err := newLogger(config.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loader := assets.NewMapLoader()
	if *mapDir != "" {
		loader = assets.NewMapLoaderFS(os.DirFS(*mapDir), ".")
	}
	layout, err := loader.Load(*mapName)
	if err != nil {
		logger.Fatal("load map", zap.Error(err))
	}

	// Key bindings survive between runs; failures fall back to the defaults.
	if err := systems.InitPersistence(logger); err == nil {
		if err := systems.LoadBindings(logger); err != nil {
			logger.Warn("saved bindings ignored", zap.Error(err))
		}
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("doomerang replay: " + layout.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	replay := scenes.NewReplayScene(layout, logger)
	g := &Game{scene: replay}
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
	replay.Close()

	if err := systems.SaveBindings(); err != nil {
		logger.Warn("could not save bindings", zap.Error(err))
	}
}
