package service

import (
	"errors"
	"testing"

	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		delta                  float64
	}{
		{name: "same point", lat1: 6.9271, lon1: 79.8612, lat2: 6.9271, lon2: 79.8612, want: 0},
		{name: "one millidegree of latitude", lat1: 0, lon1: 0, lat2: 0.001, lon2: 0, want: 111},
		{name: "colombo to kandy", lat1: 6.9271, lon1: 79.8612, lat2: 7.2906, lon2: 80.6337, want: 94000, delta: 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.delta)
			assert.Equal(t, got, float64(int64(got)), "distance is rounded to whole meters")
		})
	}
}

func TestGeofenceThreshold(t *testing.T) {
	assert.Equal(t, float64(50), geofenceThreshold(0))
	assert.Equal(t, float64(50), geofenceThreshold(25))
	assert.Equal(t, float64(60), geofenceThreshold(30))
}

func TestEvaluateGeofence(t *testing.T) {
	placed := models.Bin{BinID: "BIN-1", GeoLocation: &models.GeoLocation{Latitude: 0, Longitude: 0}}
	unplaced := models.Bin{BinID: "BIN-2"}

	tests := []struct {
		name         string
		bin          models.Bin
		device       *models.DeviceLocation
		wantErr      bool
		wantDistance *float64
		wantLearned  bool
	}{
		{name: "no device location", bin: placed},
		{
			name:   "latitude only",
			bin:    placed,
			device: &models.DeviceLocation{Latitude: ptr(1.0)},
		},
		{
			name:         "inside the fence",
			bin:          placed,
			device:       &models.DeviceLocation{Latitude: ptr(0.0003), Longitude: ptr(0.0), Accuracy: ptr(10.0)},
			wantDistance: ptr(33.0),
		},
		{
			name:         "outside the fence",
			bin:          placed,
			device:       &models.DeviceLocation{Latitude: ptr(0.001), Longitude: ptr(0.0), Accuracy: ptr(10.0)},
			wantErr:      true,
			wantDistance: ptr(111.0),
		},
		{
			name:         "poor accuracy widens the fence",
			bin:          placed,
			device:       &models.DeviceLocation{Latitude: ptr(0.001), Longitude: ptr(0.0), Accuracy: ptr(60.0)},
			wantDistance: ptr(111.0),
		},
		{
			name:        "unplaced bin learns a precise fix",
			bin:         unplaced,
			device:      &models.DeviceLocation{Latitude: ptr(6.9), Longitude: ptr(79.8), Accuracy: ptr(75.0)},
			wantLearned: true,
		},
		{
			name:   "unplaced bin ignores an imprecise fix",
			bin:    unplaced,
			device: &models.DeviceLocation{Latitude: ptr(6.9), Longitude: ptr(79.8), Accuracy: ptr(75.5)},
		},
		{
			name:   "unplaced bin ignores a fix without accuracy",
			bin:    unplaced,
			device: &models.DeviceLocation{Latitude: ptr(6.9), Longitude: ptr(79.8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := evaluateGeofence(tt.bin, tt.device, testNow)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrGeofenceMismatch)
				var fence *GeofenceError
				require.True(t, errors.As(err, &fence))
				assert.Equal(t, *tt.wantDistance, fence.DistanceFromBin)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantDistance, out.distance)
			if tt.wantLearned {
				require.NotNil(t, out.learned)
				assert.Equal(t, *tt.device.Latitude, out.learned.Latitude)
				assert.Equal(t, *tt.device.Accuracy, *out.learned.Accuracy)
				assert.Equal(t, testNow, *out.learned.UpdatedAt)
			} else {
				assert.Nil(t, out.learned)
			}
		})
	}
}
