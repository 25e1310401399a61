// internal/domain/log_entry.go
package domain

// LogEntry is one exercise embedded in a User's log. It has no identity of its own.
type LogEntry struct {
	Description string  `bson:"description" json:"description"`
	Duration    float64 `bson:"duration" json:"duration"` // minutes
	Date        string  `bson:"date" json:"date"`         // canonical calendar date, see FormatDate
}
