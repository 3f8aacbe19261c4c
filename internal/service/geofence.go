package service

import (
	"math"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

const (
	earthRadiusMeters = 6371000

	// MinGeofenceMeters is the smallest accepted distance between device and bin.
	MinGeofenceMeters = 50
	// MaxLearnAccuracyMeters bounds the accuracy of a fix that may seed a bin's
	// coordinates.
	MaxLearnAccuracyMeters = 75
)

// haversineMeters returns the great-circle distance between two points,
// rounded to whole meters.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(v float64) float64 { return v * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusMeters * c)
}

// geofenceThreshold widens the fence for imprecise fixes.
func geofenceThreshold(accuracy float64) float64 {
	return math.Max(MinGeofenceMeters, accuracy*2)
}

// geofenceOutcome is what a device fix means for a scan.
type geofenceOutcome struct {
	distance *float64
	learned  *models.GeoLocation
}

// evaluateGeofence checks a device fix against the bin. A bin without
// coordinates learns them from a precise enough fix; a bin with coordinates
// rejects fixes outside the threshold with a *GeofenceError.
func evaluateGeofence(bin models.Bin, device *models.DeviceLocation, now time.Time) (geofenceOutcome, error) {
	if !device.HasCoordinates() {
		return geofenceOutcome{}, nil
	}

	accuracy := device.AccuracyOrZero()

	if bin.GeoLocation == nil {
		if accuracy <= 0 || accuracy > MaxLearnAccuracyMeters {
			return geofenceOutcome{}, nil
		}
		updated := now
		return geofenceOutcome{learned: &models.GeoLocation{
			Latitude:  *device.Latitude,
			Longitude: *device.Longitude,
			Accuracy:  &accuracy,
			UpdatedAt: &updated,
		}}, nil
	}

	distance := haversineMeters(*device.Latitude, *device.Longitude, bin.GeoLocation.Latitude, bin.GeoLocation.Longitude)
	threshold := geofenceThreshold(accuracy)
	if distance > threshold {
		return geofenceOutcome{distance: &distance}, &GeofenceError{DistanceFromBin: distance, Threshold: threshold}
	}
	return geofenceOutcome{distance: &distance}, nil
}
