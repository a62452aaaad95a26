package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/anima-scene/engine/assets"
	"github.com/spaghettifunk/anima-scene/engine/containers"
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/geometry"
	"github.com/spaghettifunk/anima-scene/engine/loader"
	"github.com/spaghettifunk/anima-scene/engine/renderer"
	"github.com/spaghettifunk/anima-scene/engine/renderer/headless"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

// Asset changes remembered between two reloads.
const pendingChanges = 32

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently watching assets and reloading the scene
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

/**
 * @brief Wires the renderer, mesh importer, scene loader and asset watcher
 * around one asset root. Every load fills its own renderer, which replaces
 * the current one only when the document was read successfully.
 */
type Engine struct {
	currentStage atomic.Uint32
	config       *core.Config
	dataSource   fs.FS

	renderer     *renderer.Renderer
	importer     *geometry.OBJImporter
	assetManager *assets.AssetManager

	mutex   sync.Mutex
	current *loader.Result
}

// New creates an engine reading assets from dataSource. A nil dataSource
// uses the configured base path on disk.
func New(cfg *core.Config, dataSource fs.FS) (*Engine, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if dataSource == nil {
		if _, err := os.Stat(cfg.Assets.BasePath); err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		dataSource = os.DirFS(cfg.Assets.BasePath)
	}
	return &Engine{
		config:     cfg,
		dataSource: dataSource,
	}, nil
}

func (e *Engine) Initialize() error {
	if !e.currentStage.CompareAndSwap(uint32(EngineStageUninitialized), uint32(EngineStageInitializing)) {
		return fmt.Errorf("engine already initialized")
	}

	core.SetLogLevel(e.config.Log.Level)
	e.renderer = renderer.New(headless.New(), e.dataSource)
	e.importer = geometry.NewOBJImporter(e.dataSource)

	e.setStage(EngineStageInitialized)
	return nil
}

func (e *Engine) Stage() Stage {
	return Stage(e.currentStage.Load())
}

func (e *Engine) setStage(s Stage) {
	e.currentStage.Store(uint32(s))
}

// Renderer returns the renderer owning the resources of the current scene.
func (e *Engine) Renderer() *renderer.Renderer {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.renderer
}

// Current returns the last successfully loaded scene.
func (e *Engine) Current() *loader.Result {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.current
}

/**
 * @brief Loads the scene document name from the data source into a new
 * renderer. On success the new scene and renderer replace the current ones
 * and the old renderer releases its resources. On a malformed document the
 * partial renderer is released and the current scene stays untouched.
 */
func (e *Engine) LoadScene(name string) (*loader.Result, error) {
	if e.Stage() < EngineStageInitialized {
		return nil, fmt.Errorf("engine not initialized")
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()

	next := renderer.New(headless.New(), e.dataSource)
	l := loader.New(next, e.importer, loader.WithConfig(e.config))
	res, err := l.LoadFS(e.dataSource, name)
	if err != nil {
		_ = next.Shutdown()
		return nil, err
	}

	previous := e.renderer
	e.renderer = next
	e.current = res
	if previous != nil {
		if err := previous.Shutdown(); err != nil {
			core.LogWarn("releasing previous scene resources: %s", err.Error())
		}
	}
	return res, nil
}

/**
 * @brief Loads the scene and reloads it whenever a file below the configured
 * base path changes, until ctx is done or the engine shuts down. onLoad is called after every successful
 * load. Bursts of changes are collapsed using the configured debounce.
 */
func (e *Engine) Watch(ctx context.Context, sceneName string, onLoad func(*loader.Result)) error {
	if e.Stage() < EngineStageInitialized {
		return fmt.Errorf("engine not initialized")
	}
	if res, err := e.LoadScene(sceneName); err == nil {
		onLoad(res)
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := am.Initialize(e.config.Assets.BasePath); err != nil {
		core.LogError(err.Error())
		return err
	}
	e.mutex.Lock()
	e.assetManager = am
	e.mutex.Unlock()
	e.setStage(EngineStageRunning)
	defer am.Shutdown()

	pending := containers.NewRingQueue[assets.AssetEvent](pendingChanges)
	var timer *time.Timer
	var fire <-chan time.Time
	watchErrors := am.Errors()
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-am.Events():
			if !ok {
				return nil
			}
			if ev.Type == resources.ResourceTypeConfig {
				continue
			}
			if ev.Type == resources.ResourceTypeModel {
				e.importer.Forget(ev.Path)
			}
			if pending.Push(ev) {
				core.LogDebug("Too many pending asset changes, dropping the oldest")
			}
			if timer == nil {
				timer = time.NewTimer(e.config.Watch.Debounce())
			} else {
				timer.Reset(e.config.Watch.Debounce())
			}
			fire = timer.C
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			core.LogWarn("watching %s: %s", e.config.Assets.BasePath, err.Error())
		case <-fire:
			fire = nil
			for _, ev := range pending.Drain() {
				action := "changed"
				if ev.Removed {
					action = "removed"
				}
				core.LogInfo("Asset %s %s", ev.Path, action)
			}
			core.LogInfo("Reloading %s", sceneName)
			if res, err := e.LoadScene(sceneName); err == nil {
				onLoad(res)
			}
		}
	}
}

func (e *Engine) Shutdown() error {
	e.setStage(EngineStageShuttingDown)
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.assetManager != nil {
		if err := e.assetManager.Shutdown(); err != nil {
			return err
		}
	}
	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}
