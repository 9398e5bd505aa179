// Package assets holds files shipped inside the binary.
package assets

import "embed"

// ModelFile is the path of the bundled classification model inside FS.
const ModelFile = "model/pets.json"

//go:embed model/pets.json
var FS embed.FS
