package app

import (
	"context"
	"errors"
	"fmt"
)

// Well-known system_settings keys.
const (
	SettingMaintenanceMode    = "maintenance_mode"
	SettingMaintenanceMessage = "maintenance_message"
)

// ErrMaintenance is returned when mutating operations are short-circuited
// because the maintenance flag is set.
var ErrMaintenance = errors.New("service is in maintenance mode")

// MaintenanceError carries the operator-configured message alongside
// ErrMaintenance.
type MaintenanceError struct {
	Message string
}

func (e *MaintenanceError) Error() string {
	if e.Message == "" {
		return ErrMaintenance.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMaintenance.Error(), e.Message)
}

func (e *MaintenanceError) Unwrap() error {
	return ErrMaintenance
}

// SettingsStore is the key lookup contract over the system_settings
// collaborator. The second return reports whether the key exists.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// checkMaintenance returns a MaintenanceError when the maintenance flag is
// set. A nil store means maintenance checks are disabled.
func checkMaintenance(ctx context.Context, store SettingsStore) error {
	if store == nil {
		return nil
	}
	mode, ok, err := store.Get(ctx, SettingMaintenanceMode)
	if err != nil {
		return fmt.Errorf("read maintenance flag: %w", err)
	}
	if !ok || (mode != "on" && mode != "true" && mode != "1") {
		return nil
	}

	msg, _, err := store.Get(ctx, SettingMaintenanceMessage)
	if err != nil {
		return fmt.Errorf("read maintenance message: %w", err)
	}
	return &MaintenanceError{Message: msg}
}
