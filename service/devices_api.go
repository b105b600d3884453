package service

import (
	"context"
	"fmt"
	"net/url"

	"myclient/domain"
	"myclient/helpers"
)

// DevicesAPI wraps the /devices endpoints.
type DevicesAPI struct {
	client *APIClient
}

// NewDevicesAPI creates a DevicesAPI. Panics on nil client.
func NewDevicesAPI(client *APIClient) *DevicesAPI {
	return &DevicesAPI{client: helpers.NilPanic(client, "service.devices_api.go: client is required")}
}

// List returns the devices, filtered by type (emulator|physical) when deviceType is not empty.
func (d *DevicesAPI) List(ctx context.Context, deviceType string) (domain.DeviceList, error) {
	endpoint := "/devices"
	if deviceType != "" {
		endpoint += "?type=" + url.QueryEscape(deviceType)
	}
	return decodeAs[domain.DeviceList](d.client.Get(ctx, endpoint))
}

// Available returns the devices nobody holds a lock on.
func (d *DevicesAPI) Available(ctx context.Context) (domain.DeviceList, error) {
	return decodeAs[domain.DeviceList](d.client.Get(ctx, "/devices/available"))
}

// Mine returns the device locked by the current user, nil when there is none.
func (d *DevicesAPI) Mine(ctx context.Context) (*domain.Device, error) {
	return decodeAs[*domain.Device](d.client.Get(ctx, "/devices/my"))
}

func (d *DevicesAPI) Get(ctx context.Context, id int) (domain.Device, error) {
	return decodeAs[domain.Device](d.client.Get(ctx, fmt.Sprintf("/devices/%d", id)))
}

func (d *DevicesAPI) Create(ctx context.Context, req domain.DeviceCreate) (domain.Device, error) {
	return decodeAs[domain.Device](d.client.Post(ctx, "/devices", req))
}

func (d *DevicesAPI) Update(ctx context.Context, id int, req domain.DeviceUpdate) (domain.Device, error) {
	return decodeAs[domain.Device](d.client.Put(ctx, fmt.Sprintf("/devices/%d", id), req))
}

func (d *DevicesAPI) Delete(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](d.client.Delete(ctx, fmt.Sprintf("/devices/%d", id)))
}

// Duplicate asks the backend to copy device id.
func (d *DevicesAPI) Duplicate(ctx context.Context, id int) (domain.Device, error) {
	return decodeAs[domain.Device](d.client.Post(ctx, fmt.Sprintf("/devices/%d/duplicate", id), nil))
}

// Lock reserves device id for the current user.
func (d *DevicesAPI) Lock(ctx context.Context, id int) (domain.DeviceLock, error) {
	return decodeAs[domain.DeviceLock](d.client.Post(ctx, fmt.Sprintf("/devices/%d/lock", id), map[string]any{}))
}

// Unlock releases device id.
func (d *DevicesAPI) Unlock(ctx context.Context, id int) (domain.DeviceLock, error) {
	return decodeAs[domain.DeviceLock](d.client.Post(ctx, fmt.Sprintf("/devices/%d/unlock", id), map[string]any{}))
}

// SetOffline marks device id offline (admin only).
func (d *DevicesAPI) SetOffline(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](d.client.Post(ctx, fmt.Sprintf("/devices/%d/offline", id), nil))
}

// SetOnline marks device id available again (admin only).
func (d *DevicesAPI) SetOnline(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](d.client.Post(ctx, fmt.Sprintf("/devices/%d/online", id), nil))
}
