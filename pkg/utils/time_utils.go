package utils

import "time"

// NowUnixMillis matches the unit of the models' CreatedAt/UpdatedAt columns.
func NowUnixMillis() int64 { return time.Now().UnixMilli() }
