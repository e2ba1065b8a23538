package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/journal"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// userLookupWindow bounds the diaper history searched for a user id.
const userLookupWindow = 7 * 24 * time.Hour

func (s *Session) CreateDiaperEntry(ctx context.Context, in journal.DiaperInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreateBottleFeedingEntry(ctx context.Context, in journal.BottleFeedingInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreateBreastFeedingEntry(ctx context.Context, in journal.BreastFeedingInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreateSolidFoodEntry(ctx context.Context, in journal.SolidFoodInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreateWeightEntry(ctx context.Context, in journal.WeightInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreateHeightEntry(ctx context.Context, in journal.HeightInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreateHeadEntry(ctx context.Context, in journal.HeadInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

func (s *Session) CreatePumpingEntry(ctx context.Context, in journal.PumpingInput) (models.JournalEntry, error) {
	return s.create(ctx, &in)
}

// create validates before any network call, resolves a missing user id and
// posts the entry. in is the caller's copy and may be modified.
func (s *Session) create(ctx context.Context, in journal.Input) (models.JournalEntry, error) {
	if err := journal.Validate(in); err != nil {
		return models.JournalEntry{}, err
	}
	if journal.UserID(in) == "" {
		uid, err := s.userID(ctx, journal.BabyID(in))
		if err != nil {
			return models.JournalEntry{}, err
		}
		journal.SetUserID(in, uid)
	}

	entry, err := journal.Build(in)
	if err != nil {
		return models.JournalEntry{}, err
	}
	body, err := journal.Payload(entry)
	if err != nil {
		return models.JournalEntry{}, err
	}

	s.log.Debug(ctx, "creating journal entry", "type", entry.Type, "baby_id", entry.BabyID)

	var created models.JournalEntry
	if err := s.api.Post(ctx, journal.CreatePath(), body, &created); err != nil {
		return models.JournalEntry{}, err
	}
	if created.Type == "" {
		return entry, nil
	}
	return created, nil
}

// UpdateJournalEntry replaces entry id with e, which must be complete.
func (s *Session) UpdateJournalEntry(ctx context.Context, id string, e models.JournalEntry) (models.JournalEntry, error) {
	if id == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: entry id is required", common.ErrInvalidEntry)
	}
	if err := journal.ValidateUpdate(e); err != nil {
		return models.JournalEntry{}, err
	}
	body, err := journal.Payload(e)
	if err != nil {
		return models.JournalEntry{}, err
	}

	s.log.Debug(ctx, "updating journal entry", "id", id, "type", e.Type)

	var updated models.JournalEntry
	if err := s.api.Put(ctx, journal.EntryPath(id), body, &updated); err != nil {
		return models.JournalEntry{}, err
	}
	if updated.Type == "" {
		e.ID = id
		return e, nil
	}
	return updated, nil
}

func (s *Session) DeleteJournalEntry(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: entry id is required", common.ErrInvalidEntry)
	}
	s.log.Debug(ctx, "deleting journal entry", "id", id)
	return s.api.Delete(ctx, journal.EntryPath(id))
}

// GetJournalTracking lists entries of one type recorded within [from, to].
func (s *Session) GetJournalTracking(ctx context.Context, babyID string, from, to time.Time, t models.JournalType) ([]models.JournalEntry, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	q, err := journal.TrackingQuery(from, to, t)
	if err != nil {
		return nil, err
	}
	var entries []models.JournalEntry
	if err := s.api.Get(ctx, journal.TrackingPath(babyID), q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Session) GetDiaperTracking(ctx context.Context, babyID string, from, to time.Time) ([]models.JournalEntry, error) {
	return s.GetJournalTracking(ctx, babyID, from, to, models.JournalDiaper)
}

// GetFeedingTracking accepts JournalBottleFeeding or JournalBreastFeeding.
func (s *Session) GetFeedingTracking(ctx context.Context, babyID string, from, to time.Time, t models.JournalType) ([]models.JournalEntry, error) {
	if err := journal.FeedingType(t); err != nil {
		return nil, err
	}
	return s.GetJournalTracking(ctx, babyID, from, to, t)
}

func (s *Session) GetSolidFoodTracking(ctx context.Context, babyID string, from, to time.Time) ([]models.JournalEntry, error) {
	return s.GetJournalTracking(ctx, babyID, from, to, models.JournalSolidFood)
}

func (s *Session) GetWeightTracking(ctx context.Context, babyID string, from, to time.Time) ([]models.JournalEntry, error) {
	return s.GetJournalTracking(ctx, babyID, from, to, models.JournalWeight)
}

func (s *Session) GetHeightTracking(ctx context.Context, babyID string, from, to time.Time) ([]models.JournalEntry, error) {
	return s.GetJournalTracking(ctx, babyID, from, to, models.JournalHeight)
}

func (s *Session) GetHeadTracking(ctx context.Context, babyID string, from, to time.Time) ([]models.JournalEntry, error) {
	return s.GetJournalTracking(ctx, babyID, from, to, models.JournalHead)
}

// GetPumpingTracking lists the account's pumping sessions within [from, to].
func (s *Session) GetPumpingTracking(ctx context.Context, from, to time.Time) ([]models.JournalEntry, error) {
	q, err := journal.PumpingQuery(from, to)
	if err != nil {
		return nil, err
	}
	var entries []models.JournalEntry
	if err := s.api.Get(ctx, journal.PumpingTrackingPath(), q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetGroupedTracking returns the mixed activity feed of a baby.
func (s *Session) GetGroupedTracking(ctx context.Context, babyID string, from, to time.Time, group string) ([]models.GroupedEntry, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	q, err := journal.GroupedQuery(from, to, group)
	if err != nil {
		return nil, err
	}
	var entries []models.GroupedEntry
	if err := s.api.Get(ctx, journal.GroupedTrackingPath(babyID), q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetLastPumpingJournal returns nil when no pumping session was recorded.
func (s *Session) GetLastPumpingJournal(ctx context.Context) (*models.JournalEntry, error) {
	var e *models.JournalEntry
	if err := s.api.Get(ctx, journal.LastPumpingPath(), nil, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetLastJournals returns the latest entry per journal type, undecoded.
func (s *Session) GetLastJournals(ctx context.Context, babyID string) (json.RawMessage, error) {
	babyID, err := s.babyID(ctx, babyID)
	if err != nil {
		return nil, err
	}
	var out json.RawMessage
	if err := s.api.Get(ctx, journal.LastJournalsPath(babyID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
