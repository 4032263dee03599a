package config

import "time"

const AppName = "kpad"
const Version = "0.1.0"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "kpad.log"

// UI Layout
const StatusBarHeight = 1

// Event loop
const PollInterval = 50 * time.Millisecond

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultUndoLimit = 1000
const DefaultRopeThreshold = 1 << 20 // bytes
const DefaultPluginTimeout = 2 * time.Second

// Storage strategies accepted by editor.storage.
const (
	StorageAuto  = "auto"
	StorageLines = "lines"
	StorageRope  = "rope"
)
