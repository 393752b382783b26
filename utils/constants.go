// File: utils/constants.go
package utils

// SessionKeyPrefix namespaces long-lived session tier keys in Redis.
const SessionKeyPrefix = "doclink:session:"

// ClientCookieName carries the per-browser client id.
const ClientCookieName = "doclink_client"

// Date and time-of-day layouts used by the REST backend.
const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"
)
