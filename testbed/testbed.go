/*
Package testbed ships a small demo scene together with every asset it
references, so the loader can be exercised without a checkout of real
content.
*/
package testbed

import (
	"embed"
	"io/fs"
)

// DemoScene is the path of the demo document inside Assets.
const DemoScene = "scenes/demo.xml"

//go:embed assets
var embedded embed.FS

// Assets returns the demo asset tree rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
