package domain

// Device types, operating systems and statuses.
const (
	DeviceEmulator = "emulator"
	DevicePhysical = "physical"

	OSAndroid = "android"
	OSIOS     = "ios"

	DeviceAvailable = "available"
	DeviceInUse     = "in_use"
	DeviceOffline   = "offline"
)

// Device is a test device (emulator or physical) that users lock while testing.
type Device struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	DeviceID        string     `json:"device_id"`
	Type            string     `json:"type"`
	OS              string     `json:"os"`
	OSVersion       *string    `json:"os_version"`
	AppiumURL       *string    `json:"appium_url"`
	Status          string     `json:"status"`
	CurrentUserID   *int       `json:"current_user_id"`
	CurrentUserName *string    `json:"current_user_name"`
	LockedAt        *Timestamp `json:"locked_at"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       Timestamp  `json:"created_at"`
}

// DeviceList is the body of GET /devices and GET /devices/available.
type DeviceList struct {
	Total     int      `json:"total"`
	Available int      `json:"available"`
	InUse     int      `json:"in_use"`
	Devices   []Device `json:"devices"`
}

// DeviceCreate is the body of POST /devices.
type DeviceCreate struct {
	Name      string  `json:"name"`
	DeviceID  string  `json:"device_id"`
	Type      string  `json:"type"`
	OS        string  `json:"os"`
	OSVersion *string `json:"os_version,omitempty"`
	AppiumURL *string `json:"appium_url,omitempty"`
}

// DeviceUpdate is the body of PUT /devices/{id}. Nil fields are left unchanged.
type DeviceUpdate struct {
	Name      *string `json:"name,omitempty"`
	OSVersion *string `json:"os_version,omitempty"`
	AppiumURL *string `json:"appium_url,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// DeviceLock is the body of the lock and unlock endpoints.
type DeviceLock struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Device  *Device `json:"device"`
}
