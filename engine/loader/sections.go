package loader

import (
	"encoding/xml"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/material"
	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/resources"
	"github.com/spaghettifunk/anima-scene/engine/scene"
)

func (p *parser) parseShader(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var name, file string
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "file":
			file = attr.Value
		default:
			a.unknown(attr.Name.Local)
		}
	}
	r := p.loader.renderer
	if _, status := r.CreateShader(file, name, r.ShaderDataSource()); status != resources.ShaderOK {
		p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Cannot load shader %s from %s: %s", name, file, status)
		return
	}
	core.LogInfo("Loaded shader %s", name)
}

func (p *parser) parseTexture2D(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var name, file, format string
	var width, height int32
	hasWidth, hasHeight := false, false
	clamp := true
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "file":
			file = attr.Value
		case "type":
			format = attr.Value
		case "width":
			width, hasWidth = a.Int("width", attr.Value), true
		case "height":
			height, hasHeight = a.Int("height", attr.Value), true
		case "clamp":
			clamp = attr.Value == "clamp"
		default:
			a.unknown(attr.Name.Local)
		}
	}

	r := p.loader.renderer
	if file != "" {
		core.LogInfo("Loading texture %s", file)
		if _, status := r.LoadTexture2D(name, file, clamp); status != resources.TextureOK {
			p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Error loading texture %s filename %s: %s", name, file, status)
		}
		return
	}
	if !hasWidth || !hasHeight || width <= 0 || height <= 0 {
		p.report(LevelError, child.tag, parent.state, core.ErrInvalidAttribute, "texture %s has no file and no positive width and height", name)
		return
	}
	if _, status := r.CreateTexture2D(name, uint32(width), uint32(height), resources.TextureFormatFromString(format), clamp); status != resources.TextureOK {
		p.report(LevelError, child.tag, parent.state, core.ErrInvalidAttribute, "Error creating texture %s: %s", name, status)
	}
}

func (p *parser) parseCubeTexture(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var name string
	var faces [6]string
	for _, attr := range attrs {
		if attr.Name.Local == "name" {
			name = attr.Value
			continue
		}
		known := false
		for i, face := range resources.CubeFaceNames {
			if attr.Name.Local == face {
				faces[i] = attr.Value
				known = true
				break
			}
		}
		if !known {
			a.unknown(attr.Name.Local)
		}
	}
	for i, f := range faces {
		if f == "" {
			p.report(LevelError, child.tag, parent.state, core.ErrInvalidAttribute, "cube texture %s has no %s face", name, resources.CubeFaceNames[i])
			return
		}
	}
	if _, status := p.loader.renderer.LoadCubeTexture(name, faces); status != resources.TextureOK {
		p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Error loading cube texture %s filename %s: %s", name, faces[0], status)
	}
}

// parseMaterial creates and registers a material. It also becomes the
// section's current material, so following sibling parameter tags apply
// to it as well as nested ones.
func (p *parser) parseMaterial(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var name, shaderName string
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "shader":
			shaderName = attr.Value
		default:
			a.unknown(attr.Name.Local)
		}
	}

	parent.material, child.material = nil, nil
	shader := p.loader.renderer.GetShader(shaderName)
	if shader == nil {
		p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Cannot find shader %s for material %s", shaderName, name)
		return
	}
	m := material.NewMaterial(shader, name)
	if err := p.materials.Register(m); err != nil {
		p.report(LevelError, child.tag, parent.state, err, "%s", err.Error())
		return
	}
	parent.material, child.material = m, m
}

func (p *parser) parseParameter(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	m := parent.material
	if m == nil {
		p.report(LevelError, child.tag, parent.state, core.ErrUnresolved, "parameter outside of a material")
		return
	}

	var name string
	for _, attr := range attrs {
		if attr.Name.Local == "name" {
			name = attr.Value
		}
	}
	if name == "" {
		p.report(LevelError, child.tag, parent.state, core.ErrInvalidAttribute, "parameter of material %s has no name", m.Name)
		return
	}

	for _, attr := range attrs {
		key, value := attr.Name.Local, attr.Value
		ok := true
		switch key {
		case "name":
			continue
		case "vector2":
			ok = m.SetVector2(name, a.Vec2(key, value))
		case "vector3":
			ok = m.SetVector3(name, a.Vec3(key, value))
		case "vector4":
			ok = m.SetVector4(name, a.Vec4(key, value))
		case "float":
			ok = m.SetFloat(name, a.Float(key, value))
		case "int":
			ok = m.SetInt(name, a.Int(key, value))
		case "cameraRef":
			ok = m.SetShadowSetup(name, value)
		case "texture":
			texture := p.loader.renderer.GetTexture(value)
			if texture == nil {
				p.report(LevelError, child.tag, parent.state, core.ErrNotFound, "Cannot find texture %s", value)
				continue
			}
			ok = m.SetTexture(name, texture.Handle())
		default:
			a.unknown(key)
			continue
		}
		if !ok {
			p.report(LevelWarn, child.tag, parent.state, core.ErrNotFound, "shader %s of material %s has no uniform %s", m.Shader().Name, m.Name, name)
		}
	}
}

func (p *parser) parseObject(parent, child *frame, attrs []xml.Attr) {
	a := p.attrs(child.tag, parent.state)
	var name, parentName string
	position := math.NewVec3Zero()
	rotation := math.NewVec3Zero()
	scale := math.NewVec3One()
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "position":
			position = a.Vec3(attr.Name.Local, attr.Value)
		case "rotation", "rotate":
			rotation = a.Vec3(attr.Name.Local, attr.Value).MulScalar(math.KDeg2RadMultiplier)
		case "scale":
			scale = a.Vec3(attr.Name.Local, attr.Value)
		case "parent":
			parentName = attr.Value
		default:
			a.unknown(attr.Name.Local)
		}
	}

	obj := scene.NewSceneObject(name)
	obj.Transform.SetPositionRotationScale(position, rotation, scale)
	child.object = obj
	if parentName == "" {
		return
	}
	if name == "" {
		p.report(LevelWarn, child.tag, parent.state, core.ErrInvalidAttribute, "object without name cannot be parented to %s", parentName)
		return
	}
	p.links.Record(name, parentName)
}

func (p *parser) finishObject(f *frame) {
	if f.object == nil {
		return
	}
	if name := f.object.Name; name != "" && p.scene.Find(name) != nil {
		p.report(LevelWarn, f.tag, StateSceneObjects, core.ErrDuplicate, "object name %s is not unique, lookups return the first one", name)
	}
	if err := p.scene.AddSceneObject(f.object); err != nil {
		p.report(LevelError, f.tag, StateSceneObjects, err, "%s", err.Error())
	}
}

// finishSceneGraph links what it can. Links to parents not declared yet wait
// for a later scenegraph section and are reported when the document ends.
func (p *parser) finishSceneGraph(f *frame) {
	p.linkErrors(f.tag, p.links.Resolve(p.scene))
}

// linkErrors records hierarchy failures, which ParentLinks already logged.
func (p *parser) linkErrors(tag string, errs []error) {
	line, _ := p.decoder.InputPos()
	for _, err := range errs {
		p.diagnostics = append(p.diagnostics, Diagnostic{
			Level:   LevelError,
			Tag:     tag,
			State:   StateSceneObjects,
			Line:    line,
			Message: err.Error(),
			Err:     err,
		})
	}
}
