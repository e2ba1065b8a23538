package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

var errNoBaby = errors.New("no baby on this account")

func (a *App) Account(ctx context.Context) error {
	acc, err := a.session.GetAccount(ctx)
	if err != nil {
		return err
	}
	printf(a.out, "User:  %s (%s)\n", acc.Email, acc.UserID)
	if snap, ok := a.session.Snapshot(); ok && snap.Baby != nil {
		printf(a.out, "Baby:  %s (%s)\n", snap.Baby.Name, snap.Baby.ID)
	}
	return nil
}

// Devices refreshes the snapshot and prints every device with the last
// sleep session.
func (a *App) Devices(ctx context.Context) error {
	if err := a.session.UpdateDeviceInfo(ctx); err != nil {
		return err
	}
	snap, ok := a.session.Snapshot()
	if !ok {
		return common.ErrUnexpectedResponse
	}

	serials := make([]string, 0, len(snap.Devices))
	for serial := range snap.Devices {
		serials = append(serials, serial)
	}
	sort.Strings(serials)

	for _, serial := range serials {
		d := snap.Devices[serial]
		printf(a.out, "%s  %s  firmware=%s\n", serial, d.Name, d.FirmwareVersion)
	}
	if snap.LastSession != nil {
		printf(a.out, "Last session: %s since %s\n", snap.LastSession.CurrentStatus, snap.LastSession.StartTime)
	}
	return nil
}

// Stats prints the weekly sleep averages of the current baby.
func (a *App) Stats(ctx context.Context) error {
	babyID, err := a.babyID()
	if err != nil {
		return err
	}
	stats, err := a.session.GetSessionStatsAvg(ctx, babyID, a.now().AddDate(0, 0, -7), false, "week")
	if err != nil {
		return err
	}
	printJSON(a.out, stats)
	return nil
}

func (a *App) babyID() (string, error) {
	snap, ok := a.session.Snapshot()
	if !ok || snap.Baby == nil {
		return "", errNoBaby
	}
	return snap.Baby.ID, nil
}
