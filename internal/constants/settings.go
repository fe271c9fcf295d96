package constants

const (
	// General Settings
	SettingTimezone   = "timezone"
	SettingTrendOrder = "trend_order"

	// Default Settings Values
	DefaultTimezone   = "Local" // Use system local timezone by default
	DefaultTrendOrder = TrendOrderInsertion
)
