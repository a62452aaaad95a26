package loader

import (
	"encoding/xml"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/geometry"
	"github.com/spaghettifunk/anima-scene/engine/resources"
	"github.com/spaghettifunk/anima-scene/engine/scene"
)

func (p *parser) attach(f *frame, state State, c scene.Component) {
	if err := f.object.AddComponent(c); err != nil {
		p.report(LevelError, f.tag, state, err, "%s", err.Error())
	}
}

func (p *parser) parseCamera(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	cfg := p.loader.config.Camera
	cam := scene.NewCamera(cfg)

	orthographic := false
	fov, aspect, near, far := cfg.FieldOfView, cfg.Aspect, cfg.NearPlane, cfg.FarPlane
	left, right, bottom, top := cfg.Left, cfg.Right, cfg.Bottom, cfg.Top
	var target *resources.Texture
	buffer := scene.RenderBufferColor
	for _, attr := range attrs {
		key, value := attr.Name.Local, attr.Value
		switch key {
		case "type":
			orthographic = value == "orthographic"
		case "renderToTexture":
			target = p.loader.renderer.GetTexture(value)
			if target == nil {
				p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Cannot find texture %s", value)
			}
		case "renderBuffer":
			b, err := scene.RenderBufferFromString(value)
			if err != nil {
				p.report(LevelError, child.tag, parent.state, err, "%s", err.Error())
				continue
			}
			buffer = b
		case "fieldOfView":
			fov = a.Float(key, value)
		case "aspect":
			aspect = a.Float(key, value)
		case "nearPlane":
			near = a.Float(key, value)
		case "farPlane":
			far = a.Float(key, value)
		case "left":
			left = a.Float(key, value)
		case "right":
			right = a.Float(key, value)
		case "bottom":
			bottom = a.Float(key, value)
		case "top":
			top = a.Float(key, value)
		case "clearColor":
			cam.ClearColor = a.Vec4(key, value)
		default:
			a.unknown(key)
		}
	}
	if orthographic {
		cam.SetOrthographic(left, right, bottom, top, near, far)
	} else {
		cam.SetPerspective(fov, aspect, near, far)
	}
	if target != nil {
		cam.SetRenderToTexture(buffer, target.Handle())
	}
	p.attach(child, parent.state, cam)
}

// parseMaterialRef attaches an instance of a registered material, never
// the registered material itself.
func (p *parser) parseMaterialRef(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var ref string
	for _, attr := range attrs {
		if attr.Name.Local == "ref" {
			ref = attr.Value
			continue
		}
		a.unknown(attr.Name.Local)
	}
	if ref == "" {
		p.report(LevelWarn, child.tag, parent.state, core.ErrInvalidAttribute, "material ref not set")
		return
	}
	instance, err := p.materials.Instance(ref)
	if err != nil || instance == nil {
		p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Cannot find material %s", ref)
		return
	}
	p.attach(child, parent.state, scene.NewMaterialComponent(instance))
}

func (p *parser) parseMesh(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var primitive, importPath string
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "primitive":
			primitive = attr.Value
		case "import":
			importPath = attr.Value
		default:
			a.unknown(attr.Name.Local)
		}
	}

	switch {
	case primitive != "":
		mesh, err := geometry.Primitive(primitive, p.loader.config.Loader.SphereSubdivisions)
		if err != nil {
			p.report(LevelError, child.tag, parent.state, err, "Unknown mesh.primitive name %s", primitive)
			return
		}
		if err := mesh.Validate(); err != nil {
			p.report(LevelError, child.tag, parent.state, err, "%s", err.Error())
			return
		}
		p.attach(child, parent.state, scene.NewMeshComponent(mesh))
	case importPath != "":
		if p.loader.importer == nil {
			p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "no mesh importer for %s", importPath)
			return
		}
		mesh, err := p.loader.importer.LoadMeshComponent(importPath)
		if err != nil || mesh == nil {
			p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Cannot find mesh in %s", importPath)
			return
		}
		p.attach(child, parent.state, scene.NewMeshComponent(mesh))
	default:
		p.report(LevelWarn, child.tag, parent.state, core.ErrInvalidAttribute, "mesh has neither primitive nor import")
	}
}

func (p *parser) parseLight(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	light := scene.NewLight()
	for _, attr := range attrs {
		key, value := attr.Name.Local, attr.Value
		switch key {
		case "name":
			light.Name = value
		case "type":
			lt, err := scene.LightTypeFromString(value)
			if err != nil {
				p.report(LevelError, child.tag, parent.state, err, "Unknown lighttype %s", value)
				continue
			}
			light.LightType = lt
		case "ambient":
			light.Ambient = a.Vec4(key, value)
		case "diffuse":
			light.Diffuse = a.Vec4(key, value)
		case "specular":
			light.Specular = a.Vec4(key, value)
		case "constantAttenuation":
			light.ConstantAttenuation = a.Float(key, value)
		case "linearAttenuation":
			light.LinearAttenuation = a.Float(key, value)
		case "quadraticAttenuation":
			light.QuadraticAttenuation = a.Float(key, value)
		case "spotDirection":
			light.SpotDirection = a.Vec3(key, value)
		case "spotCutoff":
			light.SpotCutoff = a.Int(key, value)
		default:
			a.unknown(key)
		}
	}
	p.attach(child, parent.state, light)
}
