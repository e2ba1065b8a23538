package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// JournalType is the discriminant of a journal entry.
type JournalType string

const (
	JournalDiaper        JournalType = "diaper"
	JournalBottleFeeding JournalType = "bottlefeeding"
	JournalBreastFeeding JournalType = "breastfeeding"
	JournalSolidFood     JournalType = "solidfood"
	JournalWeight        JournalType = "weight"
	JournalHeight        JournalType = "height"
	JournalHead          JournalType = "head"
	JournalPumping       JournalType = "pumping"
)

// JournalTypes lists every supported variant.
var JournalTypes = []JournalType{
	JournalDiaper, JournalBottleFeeding, JournalBreastFeeding, JournalSolidFood,
	JournalWeight, JournalHeight, JournalHead, JournalPumping,
}

func (t JournalType) Valid() bool {
	for _, v := range JournalTypes {
		if v == t {
			return true
		}
	}
	return false
}

type DiaperType string

const (
	DiaperPee DiaperType = "pee"
	DiaperPoo DiaperType = "poo"
)

type MilkType string

const (
	MilkBreastmilk MilkType = "breastmilk"
	MilkFormula    MilkType = "formula"
)

type Breast string

const (
	BreastLeft  Breast = "left"
	BreastRight Breast = "right"
)

// TimeLayout is the wire format of journal timestamps.
const TimeLayout = "2006-01-02T15:04:05Z"

// JournalData is the variant payload of a journal entry. The set of
// implementations is closed; see JournalTypes.
type JournalData interface {
	JournalType() JournalType
	isJournalData()
}

type DiaperData struct {
	Types []DiaperType `json:"types"`
}

type BottleFeedingData struct {
	MilkType       MilkType `json:"type"`
	AmountImperial float64  `json:"amountImperial"`
	AmountMetric   float64  `json:"amountMetric"`
}

// BreastSide holds the time spent on one side, in seconds.
type BreastSide struct {
	Duration int `json:"duration"`
}

type BreastFeedingData struct {
	LastUsedBreast Breast      `json:"lastUsedBreast"`
	TotalDuration  int         `json:"totalDuration"`
	Left           *BreastSide `json:"left,omitempty"`
	Right          *BreastSide `json:"right,omitempty"`
}

type SolidFoodData struct {
	Foods    []string `json:"foods"`
	Reaction string   `json:"reaction,omitempty"`
}

// WeightData is in ounces / grams.
type WeightData struct {
	WeightImperial float64 `json:"weightImperial"`
	WeightMetric   float64 `json:"weightMetric"`
}

// HeightData is in inches / centimeters.
type HeightData struct {
	HeightImperial float64 `json:"heightImperial"`
	HeightMetric   float64 `json:"heightMetric"`
}

// HeadData is in inches / centimeters.
type HeadData struct {
	CircumferenceImperial float64 `json:"circumferenceImperial"`
	CircumferenceMetric   float64 `json:"circumferenceMetric"`
}

// PumpingData is in fluid ounces / milliliters; Duration is in seconds.
type PumpingData struct {
	AmountImperial float64 `json:"amountImperial"`
	AmountMetric   float64 `json:"amountMetric"`
	Duration       int     `json:"duration,omitempty"`
}

func (DiaperData) JournalType() JournalType        { return JournalDiaper }
func (BottleFeedingData) JournalType() JournalType { return JournalBottleFeeding }
func (BreastFeedingData) JournalType() JournalType { return JournalBreastFeeding }
func (SolidFoodData) JournalType() JournalType     { return JournalSolidFood }
func (WeightData) JournalType() JournalType        { return JournalWeight }
func (HeightData) JournalType() JournalType        { return JournalHeight }
func (HeadData) JournalType() JournalType          { return JournalHead }
func (PumpingData) JournalType() JournalType       { return JournalPumping }

func (DiaperData) isJournalData()        {}
func (BottleFeedingData) isJournalData() {}
func (BreastFeedingData) isJournalData() {}
func (SolidFoodData) isJournalData()     {}
func (WeightData) isJournalData()        {}
func (HeightData) isJournalData()        {}
func (HeadData) isJournalData()          {}
func (PumpingData) isJournalData()       {}

// JournalEntry is a transient copy of one remote journal record.
type JournalEntry struct {
	ID        string
	Type      JournalType
	BabyID    string
	UserID    string
	StartTime time.Time
	EndTime   *time.Time
	Note      string
	Data      JournalData
}

type journalWire struct {
	ID        string          `json:"_id,omitempty"`
	AltID     string          `json:"id,omitempty"`
	Type      JournalType     `json:"type"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime,omitempty"`
	BabyID    string          `json:"babyId"`
	UserID    string          `json:"userId"`
	Data      json.RawMessage `json:"data"`
	Note      string          `json:"note,omitempty"`
}

// FormatTime renders t in the journal wire format (UTC, second precision).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func (e JournalEntry) MarshalJSON() ([]byte, error) {
	w := journalWire{
		ID:     e.ID,
		Type:   e.Type,
		BabyID: e.BabyID,
		UserID: e.UserID,
		Note:   e.Note,
	}
	if w.Type == "" && e.Data != nil {
		w.Type = e.Data.JournalType()
	}
	if !e.StartTime.IsZero() {
		w.StartTime = FormatTime(e.StartTime)
	}
	if e.EndTime != nil {
		w.EndTime = FormatTime(*e.EndTime)
	}
	if e.Data != nil {
		b, err := json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
		w.Data = b
	} else {
		w.Data = json.RawMessage(`{}`)
	}
	return json.Marshal(w)
}

func (e *JournalEntry) UnmarshalJSON(b []byte) error {
	var w journalWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	out := JournalEntry{
		ID:     w.ID,
		Type:   w.Type,
		BabyID: w.BabyID,
		UserID: w.UserID,
		Note:   w.Note,
	}
	if out.ID == "" {
		out.ID = w.AltID
	}

	var err error
	if w.StartTime != "" {
		if out.StartTime, err = time.Parse(time.RFC3339Nano, w.StartTime); err != nil {
			return fmt.Errorf("%w: journal startTime %q: %v", common.ErrUnexpectedResponse, w.StartTime, err)
		}
	}
	if w.EndTime != "" {
		end, err := time.Parse(time.RFC3339Nano, w.EndTime)
		if err != nil {
			return fmt.Errorf("%w: journal endTime %q: %v", common.ErrUnexpectedResponse, w.EndTime, err)
		}
		out.EndTime = &end
	}

	// An empty envelope (some write endpoints answer {}) carries no data.
	if w.Type != "" {
		if out.Data, err = DecodeJournalData(w.Type, w.Data); err != nil {
			return err
		}
	}

	*e = out
	return nil
}

// DecodeJournalData decodes a variant payload selected by its discriminant.
func DecodeJournalData(t JournalType, raw json.RawMessage) (JournalData, error) {
	switch t {
	case JournalDiaper:
		return decodeData[DiaperData](raw)
	case JournalBottleFeeding:
		return decodeData[BottleFeedingData](raw)
	case JournalBreastFeeding:
		return decodeData[BreastFeedingData](raw)
	case JournalSolidFood:
		return decodeData[SolidFoodData](raw)
	case JournalWeight:
		return decodeData[WeightData](raw)
	case JournalHeight:
		return decodeData[HeightData](raw)
	case JournalHead:
		return decodeData[HeadData](raw)
	case JournalPumping:
		return decodeData[PumpingData](raw)
	default:
		return nil, fmt.Errorf("%w: unknown journal type %q", common.ErrUnexpectedResponse, t)
	}
}

func decodeData[T JournalData](raw json.RawMessage) (JournalData, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: journal data: %v", common.ErrUnexpectedResponse, err)
	}
	return v, nil
}

// GroupedEntry is one element of the grouped-tracking feed. The feed mixes
// journal records with other activity, so only the envelope is typed.
type GroupedEntry struct {
	ID        string          `json:"_id,omitempty"`
	Type      string          `json:"type"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}
