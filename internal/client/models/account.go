// Package models defines the typed, unit-normalized view of remote account,
// device, sleep-session and journal state.
package models

import (
	"encoding/json"
	"time"
)

// Account is the signed-in user's identity. It is only replaced on an
// explicit re-fetch.
type Account struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	GivenName string `json:"givenName"`
	Surname   string `json:"surname"`
	Region    string `json:"region"`
}

// Baby is a baby profile attached to the account.
type Baby struct {
	ID        string `json:"_id"`
	Name      string `json:"babyName"`
	BirthDate string `json:"birthDate,omitempty"`
	Sex       string `json:"sex,omitempty"`
	Preemie   bool   `json:"preemie,omitempty"`
}

// SessionLevel is one state segment of a sleep session.
type SessionLevel struct {
	Type          string `json:"type"`
	StateDuration int    `json:"stateDuration"`
	IsActive      bool   `json:"isActive,omitempty"`
}

// SleepSession is the last (or requested) SNOO sleep session. Raw keeps the
// full payload for fields this client does not model.
type SleepSession struct {
	StartTime             time.Time       `json:"startTime"`
	EndTime               *time.Time      `json:"endTime,omitempty"`
	CurrentStatus         string          `json:"currentStatus,omitempty"`
	CurrentStatusDuration int             `json:"currentStatusDuration,omitempty"`
	Levels                []SessionLevel  `json:"levels,omitempty"`
	Raw                   json.RawMessage `json:"-"`
}

func (s *SleepSession) UnmarshalJSON(b []byte) error {
	type plain SleepSession
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = SleepSession(p)
	s.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// SessionStats is an aggregated statistics document returned as-is.
type SessionStats = json.RawMessage
