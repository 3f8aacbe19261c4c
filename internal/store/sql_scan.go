package store

import (
	"database/sql"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

// geoArgs flattens an optional geo location into nullable column values.
func geoArgs(geo *models.GeoLocation) (lat, lon, acc sql.NullFloat64, updated sql.NullTime) {
	if geo == nil {
		return
	}
	lat = sql.NullFloat64{Float64: geo.Latitude, Valid: true}
	lon = sql.NullFloat64{Float64: geo.Longitude, Valid: true}
	acc = nullFloat(geo.Accuracy)
	updated = nullTime(geo.UpdatedAt)
	return
}

func scanBin(row rowScanner) (models.Bin, error) {
	var (
		bin      models.Bin
		owner    sql.NullInt64
		lat, lon sql.NullFloat64
		acc      sql.NullFloat64
		geoAt    sql.NullTime
	)
	if err := row.Scan(&bin.ID, &bin.BinID, &bin.Type, &bin.Location, &bin.CurrentLevel, &owner,
		&lat, &lon, &acc, &geoAt, &bin.CreatedAt, &bin.UpdatedAt); err != nil {
		return models.Bin{}, err
	}
	if owner.Valid {
		id := owner.Int64
		bin.OwnerID = &id
	}
	if lat.Valid && lon.Valid {
		bin.GeoLocation = &models.GeoLocation{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
			Accuracy:  floatPtr(acc),
			UpdatedAt: timePtr(geoAt),
		}
	}
	return bin, nil
}

func scanPickup(row rowScanner) (models.Pickup, error) {
	var (
		p         models.Pickup
		scheduled sql.NullTime
		ref       sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.WasteType, &p.Description, &p.Status, &scheduled,
		&ref, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Pickup{}, err
	}
	p.ScheduledDate = timePtr(scheduled)
	p.ClientReference = ref.String
	return p, nil
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		t   models.Transaction
		ref sql.NullString
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Status, &ref,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Transaction{}, err
	}
	t.ClientReference = ref.String
	return t, nil
}

func scanCollection(row rowScanner) (models.CollectionRecord, error) {
	var (
		c             models.CollectionRecord
		lat, lon, acc sql.NullFloat64
		captured      sql.NullTime
		distance      sql.NullFloat64
		ref           sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Bin.ID, &c.Bin.BinID, &c.CollectedBy.ID, &c.CollectedBy.Username,
		&c.CollectedBy.Role, &c.Weight, &c.Timestamp, &lat, &lon, &acc, &captured,
		&distance, &ref, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.CollectionRecord{}, err
	}
	if lat.Valid || lon.Valid || acc.Valid || captured.Valid {
		c.Location = &models.DeviceLocation{
			Latitude:   floatPtr(lat),
			Longitude:  floatPtr(lon),
			Accuracy:   floatPtr(acc),
			CapturedAt: timePtr(captured),
		}
	}
	c.DistanceFromBin = floatPtr(distance)
	c.ClientReference = ref.String
	return c, nil
}
