package constants

import "time"

// SessionState represents the current tab or modal of the TUI
type SessionState int

// TrendOrder selects which entry ordering the mood trend windows are cut from
type TrendOrder string

const (
	AppName            = "heybuddy"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/heybuddy"
	DefaultConfigPath  = "~/.config/heybuddy/heybuddy.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LegacyDateFormat matches JavaScript's Date.toDateString() output, which older
	// stores used for the last check-in date.
	LegacyDateFormat = "Mon Jan 02 2006"

	// MonthFormat is the format accepted by the calendar command (YYYY-MM)
	MonthFormat = "2006-01"

	// Mood intensity domain
	MinIntensity = 1
	MaxIntensity = 10

	// Derived statistics
	WeeklyWindowDays = 7
	TrendWindowSize  = 3
	TrendThreshold   = 0.5

	// Persistence
	DefaultWriteTimeout = 5 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "heybuddy-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockfileName = "heybuddy.lock"

	// Trend orders
	TrendOrderInsertion TrendOrder = "insertion"
	TrendOrderDate      TrendOrder = "date"
)

// Session States
const (
	StateHome SessionState = iota
	StateMood
	StateBuddy
	StateStats
	StatePickMood
)
