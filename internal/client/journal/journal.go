// Package journal maps journal requests to the service's wire shapes. It
// validates inputs, completes imperial/metric pairs and builds endpoint
// paths and queries. It performs no I/O.
package journal

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// MillisLayout is the timestamp format of the grouped and pumping feeds.
const MillisLayout = "2006-01-02T15:04:05.000Z"

// DefaultGroup is the grouping of the grouped-tracking feed.
const DefaultGroup = "activity"

// ValidateUpdate checks that e is a complete entry. The service replaces the
// stored record, so partial patches are refused.
func ValidateUpdate(e models.JournalEntry) error {
	var missing []string
	if e.Type == "" {
		missing = append(missing, "type")
	}
	if e.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	if e.BabyID == "" {
		missing = append(missing, "babyId")
	}
	if e.UserID == "" {
		missing = append(missing, "userId")
	}
	if e.Data == nil {
		missing = append(missing, "data")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: partial updates are not supported, missing %v", common.ErrInvalidEntry, missing)
	}

	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", common.ErrInvalidEntry, e.Type)
	}
	if e.Data.JournalType() != e.Type {
		return fmt.Errorf("%w: type %q does not match %s data", common.ErrInvalidEntry, e.Type, e.Data.JournalType())
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return fmt.Errorf("%w: endTime is before startTime", common.ErrInvalidEntry)
	}
	return nil
}

// Payload encodes e as a create or update body. The id is never sent.
func Payload(e models.JournalEntry) ([]byte, error) {
	e.ID = ""
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidEntry, err)
	}
	return b, nil
}

// FeedingType checks that t names one of the feeding variants.
func FeedingType(t models.JournalType) error {
	switch t {
	case models.JournalBottleFeeding, models.JournalBreastFeeding:
		return nil
	}
	return fmt.Errorf("%w: %q is not a feeding type", common.ErrInvalidEntry, t)
}

func CreatePath() string {
	return common.JournalsURI
}

func EntryPath(id string) string {
	return common.JournalsURI + "/" + url.PathEscape(id)
}

func TrackingPath(babyID string) string {
	return fmt.Sprintf(common.JournalsTrackingURI, url.PathEscape(babyID))
}

func GroupedTrackingPath(babyID string) string {
	return fmt.Sprintf(common.JournalsGroupedTrackingURI, url.PathEscape(babyID))
}

func LastJournalsPath(babyID string) string {
	return fmt.Sprintf(common.LastJournalsURI, url.PathEscape(babyID))
}

func PumpingTrackingPath() string {
	return common.PumpingJournalsTrackingURI
}

func LastPumpingPath() string {
	return common.LastPumpingJournalURI
}

// TrackingQuery selects one journal type within [from, to].
func TrackingQuery(from, to time.Time, t models.JournalType) (url.Values, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", common.ErrInvalidEntry, t)
	}
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	return url.Values{
		"fromDateTime": {models.FormatTime(from)},
		"toDateTime":   {models.FormatTime(to)},
		"journalType":  {string(t)},
	}, nil
}

// GroupedQuery selects the grouped feed within [from, to].
func GroupedQuery(from, to time.Time, group string) (url.Values, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	if group == "" {
		group = DefaultGroup
	}
	return url.Values{
		"fromDateTime": {formatMillis(from)},
		"toDateTime":   {formatMillis(to)},
		"group":        {group},
	}, nil
}

// PumpingQuery selects pumping sessions within [from, to].
func PumpingQuery(from, to time.Time) (url.Values, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	return url.Values{
		"fromDateTime": {formatMillis(from)},
		"toDateTime":   {formatMillis(to)},
	}, nil
}

func formatMillis(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(MillisLayout)
}

func checkRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: both ends of the time range are required", common.ErrInvalidEntry)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: time range ends before it starts", common.ErrInvalidEntry)
	}
	return nil
}
