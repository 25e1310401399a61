package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one tracked person together with their embedded exercise log.
// Count always equals len(Log) once persisted.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Count     int                `bson:"count" json:"count"`
	Log       []LogEntry         `bson:"log" json:"log"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"-"`
}

// NewUser builds a record with an empty log. The ID is assigned by the repository.
func NewUser(username string) *User {
	return &User{
		Username: username,
		Count:    0,
		Log:      []LogEntry{},
	}
}

// Latest returns the most recently appended log entry.
// ok is false while the log is empty.
func (u *User) Latest() (entry LogEntry, ok bool) {
	if u == nil || len(u.Log) == 0 {
		return LogEntry{}, false
	}
	return u.Log[len(u.Log)-1], true
}
