package config

import "time"

// ConfigName is the base name of the per-directory config file.
const ConfigName = "loadingbar"

// Bar defaults
const (
	DefaultRTL   = false
	DefaultWidth = 0
)

// Demo defaults
const (
	DefaultSteps    = 42
	DefaultInterval = 100 * time.Millisecond
)
