package assets

import (
	"embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// Web holds the single-page front end served by `sensi serve`.
//
//go:embed web
var Web embed.FS
