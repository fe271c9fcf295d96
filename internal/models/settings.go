package models

import "github.com/julianstephens/heybuddy/internal/constants"

// Settings represents user preferences persisted alongside the wellness state
type Settings struct {
	Timezone   string               `json:"timezone"`    // IANA timezone name, or "Local" for system timezone
	TrendOrder constants.TrendOrder `json:"trend_order"` // entry ordering used for trend windows
}
