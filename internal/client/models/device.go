package models

import "encoding/json"

// Device is a SNOO bassinet keyed by serial number. Config and LastSession
// are fetched separately and attached during a device refresh.
type Device struct {
	SerialNumber    string          `json:"serialNumber"`
	AccountRef      string          `json:"account,omitempty"`
	BabyRef         string          `json:"baby,omitempty"`
	Name            string          `json:"deviceName,omitempty"`
	FirmwareVersion string          `json:"firmwareVersion,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
	Config          json.RawMessage `json:"config,omitempty"`
	LastSession     *SleepSession   `json:"lastSession,omitempty"`
}
