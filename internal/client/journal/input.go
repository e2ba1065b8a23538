package journal

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/dmitrijs2005/happiestbaby/internal/units"
)

// Meta is shared by every create input. UserID may be left empty and
// filled in by the caller before Build.
type Meta struct {
	BabyID    string `validate:"required"`
	UserID    string
	StartTime time.Time
	Note      string
}

func (m *Meta) meta() *Meta { return m }

// Input is a create request for one journal variant.
type Input interface {
	meta() *Meta
	data() (models.JournalData, *time.Time)
}

// UserID returns the user id carried by in, if any.
func UserID(in Input) string { return in.meta().UserID }

// SetUserID fills in the user id of in.
func SetUserID(in Input, id string) { in.meta().UserID = id }

// BabyID returns the baby id carried by in.
func BabyID(in Input) string { return in.meta().BabyID }

type DiaperInput struct {
	Meta
	Types []models.DiaperType `validate:"required,min=1,dive,oneof=pee poo"`
}

// BottleFeedingInput amounts are fluid ounces and milliliters. MilkType
// defaults to breast milk.
type BottleFeedingInput struct {
	Meta
	MilkType       models.MilkType `validate:"omitempty,oneof=breastmilk formula"`
	AmountImperial *float64        `validate:"required_without=AmountMetric,omitempty,gte=0"`
	AmountMetric   *float64        `validate:"required_without=AmountImperial,omitempty,gte=0"`
}

// BreastFeedingInput durations are in seconds. A nil duration means the
// side was not used. EndTime defaults to StartTime plus the total duration;
// LastUsedBreast defaults to left.
type BreastFeedingInput struct {
	Meta
	EndTime        time.Time
	LeftDuration   *int          `validate:"omitempty,gte=0"`
	RightDuration  *int          `validate:"omitempty,gte=0"`
	LastUsedBreast models.Breast `validate:"omitempty,oneof=left right"`
}

type SolidFoodInput struct {
	Meta
	Foods    []string `validate:"required,min=1,dive,required"`
	Reaction string
}

// WeightInput is in ounces / grams.
type WeightInput struct {
	Meta
	Imperial *float64 `validate:"required_without=Metric,omitempty,gte=0"`
	Metric   *float64 `validate:"required_without=Imperial,omitempty,gte=0"`
}

// HeightInput is in inches / centimeters.
type HeightInput struct {
	Meta
	Imperial *float64 `validate:"required_without=Metric,omitempty,gte=0"`
	Metric   *float64 `validate:"required_without=Imperial,omitempty,gte=0"`
}

// HeadInput is the head circumference in inches / centimeters.
type HeadInput struct {
	Meta
	Imperial *float64 `validate:"required_without=Metric,omitempty,gte=0"`
	Metric   *float64 `validate:"required_without=Imperial,omitempty,gte=0"`
}

// PumpingInput amounts are fluid ounces and milliliters; Duration is in
// seconds.
type PumpingInput struct {
	Meta
	AmountImperial *float64 `validate:"required_without=AmountMetric,omitempty,gte=0"`
	AmountMetric   *float64 `validate:"required_without=AmountImperial,omitempty,gte=0"`
	Duration       int      `validate:"gte=0"`
}

func (in *DiaperInput) data() (models.JournalData, *time.Time) {
	types := make([]models.DiaperType, len(in.Types))
	copy(types, in.Types)
	return models.DiaperData{Types: types}, nil
}

func (in *BottleFeedingInput) data() (models.JournalData, *time.Time) {
	p, _ := units.Complete(in.AmountImperial, in.AmountMetric, units.OuncesToMilliliters, units.MillilitersToOunces)
	milk := in.MilkType
	if milk == "" {
		milk = models.MilkBreastmilk
	}
	return models.BottleFeedingData{MilkType: milk, AmountImperial: p.Imperial, AmountMetric: p.Metric}, nil
}

func (in *BreastFeedingInput) data() (models.JournalData, *time.Time) {
	d := models.BreastFeedingData{LastUsedBreast: in.LastUsedBreast}
	if d.LastUsedBreast == "" {
		d.LastUsedBreast = models.BreastLeft
	}
	if in.LeftDuration != nil {
		d.Left = &models.BreastSide{Duration: *in.LeftDuration}
		d.TotalDuration += *in.LeftDuration
	}
	if in.RightDuration != nil {
		d.Right = &models.BreastSide{Duration: *in.RightDuration}
		d.TotalDuration += *in.RightDuration
	}

	end := in.EndTime
	if end.IsZero() {
		end = in.StartTime.Add(time.Duration(d.TotalDuration) * time.Second)
	}
	return d, &end
}

func (in *SolidFoodInput) data() (models.JournalData, *time.Time) {
	foods := make([]string, len(in.Foods))
	copy(foods, in.Foods)
	return models.SolidFoodData{Foods: foods, Reaction: in.Reaction}, nil
}

func (in *WeightInput) data() (models.JournalData, *time.Time) {
	p, _ := units.Complete(in.Imperial, in.Metric, units.OuncesToGrams, units.GramsToOunces)
	return models.WeightData{WeightImperial: p.Imperial, WeightMetric: p.Metric}, nil
}

func (in *HeightInput) data() (models.JournalData, *time.Time) {
	p, _ := units.Complete(in.Imperial, in.Metric, units.InchesToCentimeters, units.CentimetersToInches)
	return models.HeightData{HeightImperial: p.Imperial, HeightMetric: p.Metric}, nil
}

func (in *HeadInput) data() (models.JournalData, *time.Time) {
	p, _ := units.Complete(in.Imperial, in.Metric, units.InchesToCentimeters, units.CentimetersToInches)
	return models.HeadData{CircumferenceImperial: p.Imperial, CircumferenceMetric: p.Metric}, nil
}

func (in *PumpingInput) data() (models.JournalData, *time.Time) {
	p, _ := units.Complete(in.AmountImperial, in.AmountMetric, units.OuncesToMilliliters, units.MillilitersToOunces)
	return models.PumpingData{AmountImperial: p.Imperial, AmountMetric: p.Metric, Duration: in.Duration}, nil
}

// Validate checks in without contacting the service. The user id is not
// required here; Build requires it.
func Validate(in Input) error {
	if in == nil {
		return fmt.Errorf("%w: nil input", common.ErrInvalidEntry)
	}
	if err := validateStruct(in); err != nil {
		return err
	}
	m := in.meta()
	if m.StartTime.IsZero() {
		return fmt.Errorf("%w: StartTime is required", common.ErrInvalidEntry)
	}
	if bf, ok := in.(*BreastFeedingInput); ok && !bf.EndTime.IsZero() && bf.EndTime.Before(bf.StartTime) {
		return fmt.Errorf("%w: EndTime is before StartTime", common.ErrInvalidEntry)
	}
	return nil
}

// Build validates in and returns the entry to create, with both unit
// systems populated.
func Build(in Input) (models.JournalEntry, error) {
	if err := Validate(in); err != nil {
		return models.JournalEntry{}, err
	}
	m := in.meta()
	if m.UserID == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: UserID is required", common.ErrInvalidEntry)
	}

	data, end := in.data()
	return models.JournalEntry{
		Type:      data.JournalType(),
		BabyID:    m.BabyID,
		UserID:    m.UserID,
		StartTime: m.StartTime,
		EndTime:   end,
		Note:      m.Note,
		Data:      data,
	}, nil
}
