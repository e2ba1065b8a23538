package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/journal"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
)

// listWindow is how far back list looks.
const listWindow = 24 * time.Hour

func (a *App) meta() (journal.Meta, error) {
	babyID, err := a.babyID()
	if err != nil {
		return journal.Meta{}, err
	}
	return journal.Meta{BabyID: babyID, StartTime: a.now()}, nil
}

func (a *App) printEntry(e models.JournalEntry) {
	id := e.ID
	if id == "" {
		id = "-"
	}
	printf(a.out, "%s  %s  %s  ", id, e.StartTime.Local().Format("2006-01-02 15:04"), e.Type)
	printJSON(a.out, e.Data)
}

func (a *App) AddDiaper(ctx context.Context) error {
	m, err := a.meta()
	if err != nil {
		return err
	}
	types, err := GetList(a.reader, "Diaper contents (pee, poo)", a.out)
	if err != nil {
		return err
	}
	in := journal.DiaperInput{Meta: m}
	for _, t := range types {
		in.Types = append(in.Types, models.DiaperType(t))
	}

	e, err := a.session.CreateDiaperEntry(ctx, in)
	if err != nil {
		return err
	}
	a.printEntry(e)
	return nil
}

func (a *App) AddBottle(ctx context.Context) error {
	m, err := a.meta()
	if err != nil {
		return err
	}
	milk, err := getSimpleText(a.reader, "Milk type (breastmilk, formula) [breastmilk]", a.out)
	if err != nil {
		return err
	}
	oz, err := GetOptionalFloat(a.reader, "Amount in fl oz (empty to enter ml)", a.out)
	if err != nil {
		return err
	}
	in := journal.BottleFeedingInput{Meta: m, MilkType: models.MilkType(milk), AmountImperial: oz}
	if oz == nil {
		if in.AmountMetric, err = GetOptionalFloat(a.reader, "Amount in ml", a.out); err != nil {
			return err
		}
	}

	e, err := a.session.CreateBottleFeedingEntry(ctx, in)
	if err != nil {
		return err
	}
	a.printEntry(e)
	return nil
}

func (a *App) AddBreast(ctx context.Context) error {
	m, err := a.meta()
	if err != nil {
		return err
	}
	left, err := GetOptionalInt(a.reader, "Left side, seconds (empty if unused)", a.out)
	if err != nil {
		return err
	}
	right, err := GetOptionalInt(a.reader, "Right side, seconds (empty if unused)", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last used breast (left, right) [left]", a.out)
	if err != nil {
		return err
	}

	e, err := a.session.CreateBreastFeedingEntry(ctx, journal.BreastFeedingInput{
		Meta:           m,
		LeftDuration:   left,
		RightDuration:  right,
		LastUsedBreast: models.Breast(last),
	})
	if err != nil {
		return err
	}
	a.printEntry(e)
	return nil
}

func (a *App) AddWeight(ctx context.Context) error {
	m, err := a.meta()
	if err != nil {
		return err
	}
	oz, err := GetOptionalFloat(a.reader, "Weight in oz (empty to enter grams)", a.out)
	if err != nil {
		return err
	}
	in := journal.WeightInput{Meta: m, Imperial: oz}
	if oz == nil {
		if in.Metric, err = GetOptionalFloat(a.reader, "Weight in grams", a.out); err != nil {
			return err
		}
	}

	e, err := a.session.CreateWeightEntry(ctx, in)
	if err != nil {
		return err
	}
	a.printEntry(e)
	return nil
}

// List prints the entries of one type from the last day.
func (a *App) List(ctx context.Context) error {
	babyID, err := a.babyID()
	if err != nil {
		return err
	}
	t, err := getSimpleText(a.reader, "Entry type (diaper, bottlefeeding, breastfeeding, solidfood, weight, height, head)", a.out)
	if err != nil {
		return err
	}
	jt := models.JournalType(t)
	if !jt.Valid() {
		return fmt.Errorf("unknown entry type %q", t)
	}

	to := a.now()
	entries, err := a.session.GetJournalTracking(ctx, babyID, to.Add(-listWindow), to, jt)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printf(a.out, "No entries\n")
	}
	for _, e := range entries {
		a.printEntry(e)
	}
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to delete", a.out)
	if err != nil {
		return err
	}
	if err := a.session.DeleteJournalEntry(ctx, id); err != nil {
		return err
	}
	printf(a.out, "Deleted %s\n", id)
	return nil
}
