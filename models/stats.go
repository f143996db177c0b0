package models

import "github.com/shopspring/decimal"

// UsageStats is a point-in-time snapshot of the process-wide usage counters
type UsageStats struct {
	TotalLifetime    int64            `json:"total_lifetime"`
	TotalThisMinute  int64            `json:"total_this_minute"`
	MinutesPassed    int64            `json:"minutes_passed"`
	AveragePerMinute decimal.Decimal  `json:"average_per_minute"`
	CommandsMinute   map[string]int64 `json:"commands_minute"`
	CommandsLifetime map[string]int64 `json:"commands_lifetime"`
	Succeeded        int64            `json:"succeeded"`
	Failed           int64            `json:"failed"`
}
