package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the immutable result of one device refresh. A new value is
// built for every update and swapped in whole.
type Snapshot struct {
	Account     models.Account
	Baby        *models.Baby
	Devices     map[string]models.Device
	LastSession *models.SleepSession
	// UpdatedAt is the time of the last full refresh.
	UpdatedAt time.Time
}

// Snapshot returns the current device snapshot. The Devices map is a copy.
func (s *Session) Snapshot() (Snapshot, bool) {
	p := s.snapshot.Load()
	if p == nil {
		return Snapshot{}, false
	}
	out := *p
	out.Devices = maps.Clone(p.Devices)
	return out, true
}

// Devices returns the devices of the current snapshot keyed by serial
// number.
func (s *Session) Devices() map[string]models.Device {
	p := s.snapshot.Load()
	if p == nil {
		return map[string]models.Device{}
	}
	return maps.Clone(p.Devices)
}

// GetDevices lists the account's devices from the v11 endpoint, falling back
// to the legacy one on an HTTP error.
func (s *Session) GetDevices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	err := s.api.Get(ctx, common.DevicesV11URI, nil, &devices)
	if isRequestError(err) {
		s.log.Debug(ctx, "v11 devices endpoint failed, trying legacy", "error", err)
		devices = nil
		err = s.api.Get(ctx, common.DevicesURI, nil, &devices)
	}
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *Session) GetDeviceConfig(ctx context.Context, serial string) (json.RawMessage, error) {
	if serial == "" {
		return nil, fmt.Errorf("%w: empty serial number", common.ErrSnoo)
	}
	var cfg json.RawMessage
	if err := s.api.Get(ctx, fmt.Sprintf(common.DeviceConfigsURI, url.PathEscape(serial)), nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateDeviceInfo refreshes the account, baby, devices, device configs and
// last session, then publishes them as one new snapshot. On any error the
// previous snapshot stays in place. Within the device update interval of
// the last full refresh only the session is re-read.
func (s *Session) UpdateDeviceInfo(ctx context.Context) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	prev := s.snapshot.Load()
	if prev != nil && s.now().Sub(prev.UpdatedAt) < s.opts.DeviceUpdateInterval {
		s.log.Debug(ctx, "within device update interval, refreshing session only")
		return s.refreshSession(ctx, prev)
	}

	s.log.Debug(ctx, "updating device information")

	account, err := s.GetAccount(ctx)
	if err != nil {
		return err
	}
	baby, err := s.GetBaby(ctx)
	if err != nil {
		return err
	}
	list, err := s.GetDevices(ctx)
	if err != nil {
		return err
	}
	session, err := s.GetLastSession(ctx)
	if err != nil {
		return err
	}

	devices := make([]models.Device, 0, len(list))
	for _, d := range list {
		if d.SerialNumber == "" {
			s.log.Debug(ctx, "skipping device without serial number", "baby", d.BabyRef)
			continue
		}
		devices = append(devices, d)
	}

	configs := make([]json.RawMessage, len(devices))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range devices {
		g.Go(func() error {
			cfg, err := s.GetDeviceConfig(gctx, d.SerialNumber)
			if err != nil {
				return fmt.Errorf("device %s config: %w", d.SerialNumber, err)
			}
			configs[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	next := &Snapshot{
		Account:     account,
		Baby:        baby,
		Devices:     make(map[string]models.Device, len(devices)),
		LastSession: session,
		UpdatedAt:   s.now(),
	}
	for i, d := range devices {
		d.Config = configs[i]
		d.LastSession = session
		if old, ok := prevDevice(prev, d.SerialNumber); ok && old.UpdatedAt != d.UpdatedAt && d.UpdatedAt != "" {
			s.log.Debug(ctx, "device state changed", "serial", d.SerialNumber, "updated_at", d.UpdatedAt)
		}
		next.Devices[d.SerialNumber] = d
	}

	s.snapshot.Store(next)
	s.log.Info(ctx, "device information updated", "devices", len(next.Devices))
	return nil
}

func (s *Session) refreshSession(ctx context.Context, prev *Snapshot) error {
	session, err := s.GetLastSession(ctx)
	if err != nil {
		return err
	}

	next := *prev
	next.LastSession = session
	next.Devices = make(map[string]models.Device, len(prev.Devices))
	for serial, d := range prev.Devices {
		d.LastSession = session
		next.Devices[serial] = d
	}
	s.snapshot.Store(&next)
	return nil
}

func prevDevice(prev *Snapshot, serial string) (models.Device, bool) {
	if prev == nil {
		return models.Device{}, false
	}
	d, ok := prev.Devices[serial]
	return d, ok
}
