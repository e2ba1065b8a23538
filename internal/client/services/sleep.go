package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

const (
	statsTimeLayout = "2006-01-02T15:04:05.000Z"
	dailyTimeLayout = "2006-01-02 15:04:05.000"

	DefaultTimezone      = "America/New_York"
	DefaultStatsInterval = "week"
)

// GetLastSession returns the account's last sleep session, or nil when there
// is none. The service reports sessions per account, not per device.
func (s *Session) GetLastSession(ctx context.Context) (*models.SleepSession, error) {
	var session *models.SleepSession
	if err := s.api.Get(ctx, common.SessionURI, nil, &session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionLast returns the last session of a baby from the v10 endpoint.
func (s *Session) GetSessionLast(ctx context.Context, babyID string) (*models.SleepSession, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	var session *models.SleepSession
	if err := s.api.Get(ctx, fmt.Sprintf(common.SessionLastV10URI, url.PathEscape(babyID)), nil, &session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionDaily returns one day of sessions from the v11 endpoint. start
// is expressed in timezone, which defaults to DefaultTimezone.
func (s *Session) GetSessionDaily(ctx context.Context, babyID string, start time.Time, timezone string, detailedLevels, levels bool) (json.RawMessage, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", common.ErrSnoo, timezone, err)
	}

	q := url.Values{
		"detailedLevels": {strconv.FormatBool(detailedLevels)},
		"levels":         {strconv.FormatBool(levels)},
		"startTime":      {start.In(loc).Format(dailyTimeLayout)},
		"timezone":       {timezone},
	}
	var out json.RawMessage
	if err := s.api.Get(ctx, fmt.Sprintf(common.SessionDailyV11URI, url.PathEscape(babyID)), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetSessionStatsDaily(ctx context.Context, babyID string, start time.Time, detailedLevels, levels bool) (models.SessionStats, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"detailedLevels": {strconv.FormatBool(detailedLevels)},
		"levels":         {strconv.FormatBool(levels)},
		"startTime":      {start.UTC().Format(statsTimeLayout)},
	}
	var out models.SessionStats
	if err := s.api.Get(ctx, fmt.Sprintf(common.SessionStatsDailyURI, url.PathEscape(babyID)), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSessionStatsAvg returns averaged statistics per interval ("week" by
// default).
func (s *Session) GetSessionStatsAvg(ctx context.Context, babyID string, start time.Time, days bool, interval string) (models.SessionStats, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	if interval == "" {
		interval = DefaultStatsInterval
	}
	q := url.Values{
		"days":      {strconv.FormatBool(days)},
		"interval":  {interval},
		"startTime": {start.UTC().Format(statsTimeLayout)},
	}
	var out models.SessionStats
	if err := s.api.Get(ctx, fmt.Sprintf(common.SessionStatsAvgURI, url.PathEscape(babyID)), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// babyID returns id, or the baby of the current snapshot, or the account's
// first baby.
func (s *Session) babyID(ctx context.Context, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if p := s.snapshot.Load(); p != nil && p.Baby != nil && p.Baby.ID != "" {
		return p.Baby.ID, nil
	}
	b, err := s.GetBaby(ctx)
	if err != nil {
		return "", err
	}
	if b == nil || b.ID == "" {
		return "", fmt.Errorf("%w: account has no baby", common.ErrUnexpectedResponse)
	}
	return b.ID, nil
}
