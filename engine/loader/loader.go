package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/net/html/charset"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/geometry"
	"github.com/spaghettifunk/anima-scene/engine/material"
	"github.com/spaghettifunk/anima-scene/engine/renderer"
	"github.com/spaghettifunk/anima-scene/engine/scene"
)

/**
 * @brief Reads scene documents into a scene graph. Shaders and textures
 * are created through the renderer and stay in its tables; meshes named
 * by an import attribute go through the importer.
 */
type Loader struct {
	renderer *renderer.Renderer
	importer geometry.MeshImporter
	config   *core.Config
}

type Option func(l *Loader)

// WithConfig replaces the default configuration.
func WithConfig(cfg *core.Config) Option {
	return func(l *Loader) {
		if cfg != nil {
			l.config = cfg
		}
	}
}

func New(r *renderer.Renderer, importer geometry.MeshImporter, opts ...Option) *Loader {
	l := &Loader{
		renderer: r,
		importer: importer,
		config:   core.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is everything a successful load produced.
type Result struct {
	Scene       *scene.Scene
	Materials   *material.Registry
	Diagnostics []Diagnostic
}

// Errors returns the diagnostics of error level.
func (r *Result) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Level == LevelError {
			out = append(out, d)
		}
	}
	return out
}

func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

/**
 * @brief Reads one scene document.
 *
 * @return The loaded scene; nil and an error wrapping ErrMalformedDocument
 * when the document cannot be tokenized. Anything created in the renderer
 * before that point stays there.
 */
func (l *Loader) Load(r io.Reader) (*Result, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	p := &parser{
		loader:    l,
		decoder:   decoder,
		scene:     scene.NewScene(),
		materials: material.NewRegistry(),
		links:     scene.NewParentLinks(),
	}
	sawRoot := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			err = fmt.Errorf("%w: %v", core.ErrMalformedDocument, err)
			core.LogError(err.Error())
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			sawRoot = true
			p.start(t)
		case xml.EndElement:
			p.end(t)
		}
	}
	if !sawRoot {
		err := fmt.Errorf("%w: no root element", core.ErrMalformedDocument)
		core.LogError(err.Error())
		return nil, err
	}
	p.linkErrors("scenegraph", p.links.Drain())

	if l.config.Loader.MaterialBindings {
		if err := p.scene.BindMaterials(); err != nil {
			p.report(LevelError, "scene", StateDocument, err, "%s", err.Error())
		}
	}
	core.LogInfo("Loaded scene: %d objects, %d materials, %d diagnostics", p.scene.Len(), p.materials.Len(), len(p.diagnostics))
	return &Result{
		Scene:       p.scene,
		Materials:   p.materials,
		Diagnostics: p.diagnostics,
	}, nil
}

func (l *Loader) LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		core.LogError("cannot open scene '%s': %s", path, err.Error())
		return nil, err
	}
	defer f.Close()
	return l.Load(f)
}

func (l *Loader) LoadFS(fsys fs.FS, name string) (*Result, error) {
	f, err := fsys.Open(name)
	if err != nil {
		core.LogError("cannot open scene '%s': %s", name, err.Error())
		return nil, err
	}
	defer f.Close()
	return l.Load(f)
}

type parser struct {
	loader  *Loader
	decoder *xml.Decoder

	stack       []*frame
	scene       *scene.Scene
	materials   *material.Registry
	links       *scene.ParentLinks
	diagnostics []Diagnostic
}

func (p *parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) start(el xml.StartElement) {
	tag := el.Name.Local
	parent := p.top()
	if parent == nil {
		// The root element only opens the document.
		p.stack = append(p.stack, &frame{state: StateScene, tag: tag})
		return
	}

	child := &frame{
		state:    StateIgnored,
		tag:      tag,
		material: parent.material,
		object:   parent.object,
	}
	switch parent.state {
	case StateIgnored:
	case StateComponent:
		p.report(LevelWarn, tag, parent.state, core.ErrInvalidAttribute, "unexpected element inside <%s>, skipped", parent.tag)
	default:
		t, ok := transitions[parent.state][tag]
		if !ok {
			p.report(LevelError, tag, parent.state, core.ErrInvalidAttribute, "unknown tag %s state %s", tag, parent.state)
			break
		}
		child.state = t.next
		if t.handle != nil {
			t.handle(p, parent, child, el.Attr)
		}
	}
	p.stack = append(p.stack, child)
}

func (p *parser) end(el xml.EndElement) {
	f := p.top()
	if f == nil {
		// encoding/xml rejects unbalanced end tags, so this is unreachable for its tokens.
		return
	}
	p.stack = p.stack[:len(p.stack)-1]
	if exit, ok := exits[f.state]; ok {
		exit(p, f)
	}
}

// report records a diagnostic at the decoder's current position and logs it.
func (p *parser) report(level Level, tag string, state State, err error, format string, args ...interface{}) {
	line, _ := p.decoder.InputPos()
	d := Diagnostic{
		Level:   level,
		Tag:     tag,
		State:   state,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
	d.log()
	p.diagnostics = append(p.diagnostics, d)
}
