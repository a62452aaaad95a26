package loader

import (
	"encoding/xml"

	"github.com/spaghettifunk/anima-scene/engine/material"
	"github.com/spaghettifunk/anima-scene/engine/scene"
)

// State is the nesting context that decides how the next start tag is read.
type State int

const (
	StateDocument State = iota
	StateScene
	StateShaders
	StateTextures
	StateMaterials
	StateSceneObjects
	StateSceneObject
	StateComponent
	// StateIgnored covers unknown elements and everything below them.
	StateIgnored
)

func (s State) String() string {
	switch s {
	case StateDocument:
		return "document"
	case StateScene:
		return "scene"
	case StateShaders:
		return "shaders"
	case StateTextures:
		return "textures"
	case StateMaterials:
		return "materials"
	case StateSceneObjects:
		return "scenegraph"
	case StateSceneObject:
		return "object"
	case StateComponent:
		return "component"
	case StateIgnored:
		return "ignored"
	}
	return "unknown"
}

// frame is one entry of the parser stack. Besides the state it carries
// the cursor of the section it belongs to.
type frame struct {
	state State
	tag   string
	// material is the material the next parameter tag applies to.
	material *material.Material
	// object is the scene object being populated.
	object *scene.SceneObject
}

// handler applies a start tag. parent is the frame on top of the stack,
// child the frame about to be pushed; child starts with the parent's cursor.
type handler func(p *parser, parent, child *frame, attrs []xml.Attr)

type transition struct {
	handle handler
	next   State
}

var transitions = map[State]map[string]transition{
	StateScene: {
		"shaders":    {next: StateShaders},
		"textures":   {next: StateTextures},
		"materials":  {next: StateMaterials},
		"scenegraph": {next: StateSceneObjects},
	},
	StateShaders: {
		"shader": {handle: (*parser).parseShader, next: StateShaders},
	},
	StateTextures: {
		"texture2d":   {handle: (*parser).parseTexture2D, next: StateTextures},
		"cubetexture": {handle: (*parser).parseCubeTexture, next: StateTextures},
	},
	StateMaterials: {
		"material":  {handle: (*parser).parseMaterial, next: StateMaterials},
		"parameter": {handle: (*parser).parseParameter, next: StateMaterials},
	},
	StateSceneObjects: {
		"object": {handle: (*parser).parseObject, next: StateSceneObject},
	},
	StateSceneObject: {
		"camera":   {handle: (*parser).parseCamera, next: StateComponent},
		"material": {handle: (*parser).parseMaterialRef, next: StateComponent},
		"mesh":     {handle: (*parser).parseMesh, next: StateComponent},
		"light":    {handle: (*parser).parseLight, next: StateComponent},
	},
}

// exits run when a frame of the given state is popped.
var exits = map[State]func(p *parser, f *frame){
	StateSceneObject:  (*parser).finishObject,
	StateSceneObjects: (*parser).finishSceneGraph,
}

// Lookup returns the transition for tag in state s. It exists so the
// grammar can be inspected without a document.
func Lookup(s State, tag string) (next State, ok bool) {
	t, ok := transitions[s][tag]
	return t.next, ok
}
