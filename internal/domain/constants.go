package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the transport-level timeout for provider requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultServerShutdownTimeout bounds graceful shutdown of the web server
	DefaultServerShutdownTimeout = 5 * time.Second
)

// History constants
const (
	// DefaultHistoryCapacity is the number of lookups kept in history
	DefaultHistoryCapacity = 10
	// HistoryStoreKey is the fixed key holding the serialized history
	HistoryStoreKey = "sensi_history"
	// MuteStoreKey is the fixed key holding the mute preference
	MuteStoreKey = "sensi_mute"
)

// Defaults
const (
	DefaultTipsLanguage = "Bengali"
	DefaultServerAddr   = "127.0.0.1:8080"
	DefaultMaxTokens    = 1024
)

// Time formats
const (
	// TimestampFormat is used when listing history entries
	TimestampFormat = "2006-01-02 15:04:05"
)
