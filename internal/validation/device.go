package validation

import (
	"context"
	"fmt"

	"github.com/nerrad567/hasp-designer/internal/discovery"
)

// DeviceRegistry resolves plate devices from a point-in-time snapshot.
// Implemented by discovery.Engine; a config-driven registry can stand in
// without the pipeline noticing.
type DeviceRegistry interface {
	ListDevices(ctx context.Context) ([]discovery.Device, error)
}

// resolveDevice finds the target device in the registry snapshot.
// A nil device with a nil error means the ID resolved to nothing.
func resolveDevice(devices []discovery.Device, deviceID string) *discovery.Device {
	for i := range devices {
		if devices[i].DeviceID == deviceID {
			return &devices[i]
		}
	}
	return nil
}

// checkDevice gates the pipeline: the target must resolve and be online.
// A registry failure is reported the same way as an unknown device since
// both leave the target unidentified.
func checkDevice(device *discovery.Device, deviceID string, lookupErr error) *Error {
	if lookupErr != nil {
		return &Error{
			Kind:    KindDevice,
			Message: fmt.Sprintf("failed to validate device %q: %v", deviceID, lookupErr),
		}
	}
	if device == nil {
		return &Error{
			Kind:    KindDevice,
			Message: fmt.Sprintf("device %q not found in Home Assistant", deviceID),
		}
	}
	if !device.Online {
		name := device.DisplayName
		if name == "" {
			name = deviceID
		}
		return &Error{
			Kind:    KindDevice,
			Message: fmt.Sprintf("device %q is offline", name),
		}
	}
	return nil
}
