package source

// Device error codes mirror the platform geolocation error classes a
// client reports when its location watch fails.
const (
	DeviceErrPermissionDenied    = 1
	DeviceErrPositionUnavailable = 2
	DeviceErrTimeout             = 3
)

// ClassifyDeviceError maps a device error code to a user-facing message.
// These are the only errors that surface to the user, since they need
// user action to resolve.
func ClassifyDeviceError(code int) string {
	switch code {
	case DeviceErrPermissionDenied:
		return "Location access denied. Please enable location permissions."
	case DeviceErrPositionUnavailable:
		return "Location information is unavailable. Check your device settings."
	case DeviceErrTimeout:
		return "Location request timed out. Please try again."
	default:
		return "Failed to get location"
	}
}
