// Package content embeds the default battle catalog.
package content

import "embed"

// FS holds actions.yaml, effects.yaml, items.yaml, enemies.yaml and player.yaml.
//
//go:embed *.yaml
var FS embed.FS
