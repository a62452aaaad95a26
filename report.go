package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spaghettifunk/anima-scene/engine/loader"
	"github.com/spaghettifunk/anima-scene/engine/scene"
)

// printResult writes the object tree followed by the diagnostics.
func printResult(w io.Writer, res *loader.Result) {
	fmt.Fprintf(w, "scene: %d object(s), %d material(s)\n", res.Scene.Len(), res.Materials.Len())
	res.Scene.Walk(func(o *scene.SceneObject, depth int) bool {
		fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth+1), o.Name, describe(o))
		return true
	})
	for _, d := range res.Diagnostics {
		fmt.Fprintln(w, d.String())
	}
}

func describe(o *scene.SceneObject) string {
	var parts []string
	if c := o.Camera(); c != nil {
		parts = append(parts, "camera")
	}
	if l := o.Light(); l != nil {
		parts = append(parts, "light:"+l.LightType.String())
	}
	if m := o.Mesh(); m != nil && m.Mesh != nil {
		parts = append(parts, fmt.Sprintf("mesh:%s(%d tris)", m.Mesh.Name, m.Mesh.TriangleCount()))
	}
	if m := o.Material(); m != nil && m.Material != nil {
		parts = append(parts, "material:"+m.Material.Name)
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}
