package common

import "fmt"

// RedisKeyDailyCommissionLock is held while the daily commission processor
// runs for the given date.
func RedisKeyDailyCommissionLock(date string) string {
	return fmt.Sprintf("dailycommission:lock:%s", date)
}
