package models

import (
	"fmt"

	"github.com/julianstephens/heybuddy/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingTrendOrder:
			order := constants.TrendOrder(value)
			if order != constants.TrendOrderInsertion && order != constants.TrendOrderDate {
				return Settings{}, fmt.Errorf("parsing trend_order: unknown value %q", value)
			}
			settings.TrendOrder = order
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:   settings.Timezone,
		constants.SettingTrendOrder: string(settings.TrendOrder),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.TrendOrder == "" {
		settings.TrendOrder = constants.DefaultTrendOrder
	}
}
