package domain

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_Decode(t *testing.T) {
	t.Run("no_content_body_decodes_to_success", func(t *testing.T) {
		r := Response{Status: http.StatusNoContent, Body: NoContentBody, NoContent: true}
		var got ActionResult
		require.NoError(t, r.Decode(&got))
		assert.True(t, got.Success)
	})
	t.Run("device_lock", func(t *testing.T) {
		r := Response{Status: http.StatusOK, Body: []byte(`{"success":false,"message":"in use","device":{"id":3,"name":"Pixel","status":"in_use","locked_at":"2026-02-11T11:00:00"}}`)}
		var got DeviceLock
		require.NoError(t, r.Decode(&got))
		assert.False(t, got.Success)
		require.NotNil(t, got.Device)
		assert.Equal(t, 3, got.Device.ID)
		require.NotNil(t, got.Device.LockedAt)
		assert.Equal(t, 11, got.Device.LockedAt.Hour())
	})
	t.Run("type_mismatch_returns_error", func(t *testing.T) {
		r := Response{Status: http.StatusOK, Body: []byte(`[1,2]`)}
		var got ScenarioList
		err := r.Decode(&got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ScenarioList")
	})
}
