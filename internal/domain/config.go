package domain

// Config mirrors ~/.sensi/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Storage             StorageSettings   `yaml:"storage"`
	History             HistorySettings   `yaml:"history"`
	Server              ServerSettings    `yaml:"server"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	TipsLanguage   string `yaml:"tips_language"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// StorageSettings selects the durable key-value backend.
type StorageSettings struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// HistorySettings bounds the lookup history.
type HistorySettings struct {
	Capacity int `yaml:"capacity"`
}

// ServerSettings configures the web front end.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// Storage backends.
const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
)
