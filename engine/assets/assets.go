package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

type AssetInfo struct {
	// Path relative to the asset root, slash separated like fs.FS paths.
	Path     string
	Type     resources.ResourceType
	Modified time.Time
}

// AssetEvent reports a change to an indexed asset.
type AssetEvent struct {
	AssetInfo
	Removed bool
}

/**
 * @brief Indexes the files below an asset root by resource type and
 * watches the tree for changes. Changes to known asset types are
 * published on Events.
 */
type AssetManager struct {
	root   string
	assets map[string]AssetInfo

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed atomic.Bool
	events   chan AssetEvent
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		fsnotify: fsWatch,
		events:   make(chan AssetEvent, 64),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir and starts watching it.
func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	if err := am.addRecursive(root); err != nil {
		return err
	}
	am.wg.Add(1)
	go am.start()

	core.LogInfo("Asset manager watching %s (%d assets)", root, am.Len())
	return nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// Events delivers asset changes until Shutdown.
func (am *AssetManager) Events() <-chan AssetEvent {
	return am.events
}

// Errors delivers watcher errors until Shutdown. Errors that do not fit in
// its buffer are logged instead.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Shutdown stops the watcher and closes the event channels.
func (am *AssetManager) Shutdown() error {
	if !am.isClosed.CompareAndSwap(false, true) {
		return nil
	}
	close(am.done)
	am.wg.Wait()
	return nil
}

// Lookup returns the indexed asset at path (relative to the root).
func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	a, ok := am.assets[path]
	return a, ok
}

// Assets lists the indexed assets of one type, sorted by path.
func (am *AssetManager) Assets(rt resources.ResourceType) []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	var out []AssetInfo
	for _, a := range am.assets {
		if a.Type == rt {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed.Load() {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			// logged here only when nobody drains Errors
			select {
			case am.errors <- e:
			default:
				core.LogError(e.Error())
			}

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("cannot watch %s: %s", e.Name, err.Error())
			}
		}
		return
	}

	var (
		info    AssetInfo
		ok      bool
		removed bool
	)
	switch {
	case e.Has(fsnotify.Create), e.Has(fsnotify.Write):
		info, ok = am.handleFileEvent(e.Name)
	case e.Has(fsnotify.Remove), e.Has(fsnotify.Rename):
		//Can't stat a deleted directory, so just pretend that it's always a directory and
		//try to remove from the watch list...  we really have no clue if it's a directory or not...
		_ = am.fsnotify.Remove(e.Name)
		info, ok = am.removeAsset(e.Name)
		removed = true
	}
	if !ok {
		return
	}
	core.LogDebug("asset %s changed (%s)", info.Path, e.Op)
	select {
	case am.events <- AssetEvent{AssetInfo: info, Removed: removed}:
	case <-am.done:
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it finds.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) relative(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return AssetInfo{}, false
	}
	rel, ok := am.relative(path)
	if !ok {
		return AssetInfo{}, false
	}
	info := AssetInfo{
		Path:     rel,
		Type:     assetType,
		Modified: time.Now(),
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[rel] = info
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) (AssetInfo, bool) {
	rel, ok := am.relative(path)
	if !ok {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info, ok := am.assets[rel]
	delete(am.assets, rel)
	return info, ok
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case ".xml":
		return resources.ResourceTypeScene
	case ".vert", ".frag", ".geom", ".glsl":
		return resources.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp":
		return resources.ResourceTypeImage
	case ".obj":
		return resources.ResourceTypeModel
	case ".toml":
		return resources.ResourceTypeConfig
	default:
		return resources.ResourceTypeNone
	}
}
