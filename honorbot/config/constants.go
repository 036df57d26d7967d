package config

import "time"

// UI and Display Constants
const (
	HistoryPerPage     = 10
	HistoryLimit       = 50
	LeaderboardDefault = 10
	LeaderboardMax     = 25

	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31

	ProgressBarWidth = 12
)

// Timeouts
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	ReflectTimeout          = 15 * time.Second
	RemoteCheckTimeout      = 3 * time.Second
	ArchiveTimeout          = 2 * time.Minute
	PresenceTimeout         = 5 * time.Second
)

// Cache settings
const (
	VerdictCacheSize   = 1024
	BadWordRefreshTTL  = 5 * time.Minute
	AutocompleteLimit  = 25
	HelpConfirmTimeout = 24 * time.Hour
)
