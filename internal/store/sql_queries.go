package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-waste-sync/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	createUser = `INSERT INTO users (username, password, role, address, phone)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, username, password, role, address, phone, created_at, updated_at;`

	findUserByUsername = `SELECT id, username, password, role, address, phone, created_at, updated_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT id, username, password, role, address, phone, created_at, updated_at
    FROM users
    WHERE id = $1;`

	createBin = `INSERT INTO bins (id, bin_id, type, location, current_level, owner_id,
        geo_latitude, geo_longitude, geo_accuracy, geo_updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING created_at, updated_at;`

	findBinByBinID = `SELECT id, bin_id, type, location, current_level, owner_id,
        geo_latitude, geo_longitude, geo_accuracy, geo_updated_at, created_at, updated_at
    FROM bins
    WHERE bin_id = $1;`

	createPickup = `INSERT INTO pickups (id, user_id, waste_type, description, status, scheduled_date, client_reference)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING created_at, updated_at;`

	createTransaction = `INSERT INTO transactions (id, user_id, type, amount, status, client_reference)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING created_at, updated_at;`

	createCollection = `INSERT INTO collections (id, bin_id, collected_by, weight, timestamp,
        location_latitude, location_longitude, location_accuracy, location_captured_at,
        distance_from_bin, client_reference)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING created_at, updated_at;`

	// a scan empties the bin; the bin only learns coordinates when it had none
	updateBinAfterCollection = `UPDATE bins SET
        current_level  = $2,
        geo_latitude   = COALESCE($3, geo_latitude),
        geo_longitude  = COALESCE($4, geo_longitude),
        geo_accuracy   = COALESCE($5, geo_accuracy),
        geo_updated_at = COALESCE($6, geo_updated_at),
        updated_at     = NOW()
    WHERE id = $1;`

	collectionTotals = `SELECT COALESCE(SUM(weight), 0), COUNT(*)
    FROM collections
    WHERE timestamp >= $1;`

	collectionSeries = `SELECT to_char(c.timestamp AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
        b.type, COALESCE(SUM(c.weight), 0), COUNT(*)
    FROM collections c
    JOIN bins b ON b.id = c.bin_id
    WHERE c.timestamp >= $1
    GROUP BY day, b.type
    ORDER BY day, b.type;`

	collectorTotals = `SELECT c.collected_by, u.username, u.role,
        COALESCE(SUM(c.weight), 0), COUNT(*), MAX(c.timestamp)
    FROM collections c
    JOIN users u ON u.id = c.collected_by
    WHERE c.timestamp >= $1
    GROUP BY c.collected_by, u.username, u.role
    ORDER BY 4 DESC;`

	binHotspots = `SELECT b.bin_id, b.location, b.geo_latitude, b.geo_longitude, b.geo_accuracy, b.geo_updated_at,
        COALESCE(SUM(c.weight), 0), COUNT(*), MAX(c.timestamp), AVG(c.distance_from_bin)
    FROM collections c
    JOIN bins b ON b.id = c.bin_id
    WHERE c.timestamp >= $1
    GROUP BY b.id, b.bin_id, b.location, b.geo_latitude, b.geo_longitude, b.geo_accuracy, b.geo_updated_at
    ORDER BY 7 DESC
    LIMIT 12;`

	pickupStatusCounts = `SELECT status, COUNT(*)
    FROM pickups
    WHERE created_at >= $1
    GROUP BY status
    ORDER BY status;`

	transactionStatusCounts = `SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
    FROM transactions
    WHERE created_at >= $1
    GROUP BY status
    ORDER BY status;`
)

var (
	binColumns = []string{
		"id", "bin_id", "type", "location", "current_level", "owner_id",
		"geo_latitude", "geo_longitude", "geo_accuracy", "geo_updated_at", "created_at", "updated_at",
	}
	pickupColumns = []string{
		"id", "user_id", "waste_type", "description", "status", "scheduled_date",
		"client_reference", "created_at", "updated_at",
	}
	transactionColumns = []string{
		"id", "user_id", "type", "amount", "status", "client_reference", "created_at", "updated_at",
	}
	collectionColumns = []string{
		"c.id", "c.bin_id", "b.bin_id", "c.collected_by", "u.username", "u.role", "c.weight", "c.timestamp",
		"c.location_latitude", "c.location_longitude", "c.location_accuracy", "c.location_captured_at",
		"c.distance_from_bin", "c.client_reference", "c.created_at", "c.updated_at",
	}
)

// scopedByUser narrows a query to rows owned by the caller unless the role
// sees every row.
func scopedByUser(q sq.SelectBuilder, column string, req models.SyncRequest) sq.SelectBuilder {
	if !req.Role.SeesEverything() {
		q = q.Where(sq.Eq{column: req.UserID})
	}
	return q
}

func buildSelectBinsQuery(req models.SyncRequest) (string, []any, error) {
	q := scopedByUser(psql.Select(binColumns...).From("bins"), "owner_id", req)
	if req.Since != nil {
		q = q.Where(sq.Gt{"updated_at": *req.Since})
	}
	return q.OrderBy("updated_at DESC").ToSql()
}

func buildSelectPickupsQuery(req models.SyncRequest) (string, []any, error) {
	q := scopedByUser(psql.Select(pickupColumns...).From("pickups"), "user_id", req)
	if req.Since != nil {
		q = q.Where(sq.Gt{"updated_at": *req.Since})
	}
	return q.OrderBy("updated_at DESC").ToSql()
}

func buildSelectTransactionsQuery(req models.SyncRequest) (string, []any, error) {
	q := scopedByUser(psql.Select(transactionColumns...).From("transactions"), "user_id", req)
	if req.Since != nil {
		q = q.Where(sq.Gt{"updated_at": *req.Since})
	}
	return q.OrderBy("updated_at DESC").ToSql()
}

// collections are visible to every role; a record counts as changed when
// either of its timestamps moved past the watermark
func buildSelectCollectionsQuery(since *time.Time) (string, []any, error) {
	q := psql.Select(collectionColumns...).
		From("collections c").
		Join("bins b ON b.id = c.bin_id").
		Join("users u ON u.id = c.collected_by")
	if since != nil {
		q = q.Where(sq.Or{sq.Gt{"c.updated_at": *since}, sq.Gt{"c.created_at": *since}})
	}
	return q.OrderBy("c.updated_at DESC").ToSql()
}

func buildFindCollectionByReferenceQuery(ref string) (string, []any, error) {
	return psql.Select(collectionColumns...).
		From("collections c").
		Join("bins b ON b.id = c.bin_id").
		Join("users u ON u.id = c.collected_by").
		Where(sq.Eq{"c.client_reference": ref}).
		ToSql()
}

func buildFindPickupByReferenceQuery(ref string) (string, []any, error) {
	return psql.Select(pickupColumns...).From("pickups").Where(sq.Eq{"client_reference": ref}).ToSql()
}

func buildFindTransactionByReferenceQuery(ref string) (string, []any, error) {
	return psql.Select(transactionColumns...).From("transactions").Where(sq.Eq{"client_reference": ref}).ToSql()
}

func buildBulkUpdatePickupsQuery(update models.BulkPickupUpdate) (string, []any, error) {
	q := psql.Update("pickups").Set("updated_at", sq.Expr("NOW()"))
	if update.Status != nil {
		q = q.Set("status", string(*update.Status))
	}
	if update.ScheduledDate != nil {
		q = q.Set("scheduled_date", *update.ScheduledDate)
	}
	return q.Where(sq.Eq{"id": update.IDs}).
		Suffix("RETURNING " + strings.Join(pickupColumns, ", ")).
		ToSql()
}

func buildBulkUpdateTransactionsQuery(update models.BulkTransactionUpdate) (string, []any, error) {
	q := psql.Update("transactions").Set("updated_at", sq.Expr("NOW()"))
	if update.Status != nil {
		q = q.Set("status", string(*update.Status))
	}
	return q.Where(sq.Eq{"id": update.IDs}).
		Suffix("RETURNING " + strings.Join(transactionColumns, ", ")).
		ToSql()
}

func buildBulkUpdateBinsQuery(update models.BulkBinUpdate) (string, []any, error) {
	q := psql.Update("bins").Set("updated_at", sq.Expr("NOW()"))
	if update.CurrentLevel != nil {
		q = q.Set("current_level", *update.CurrentLevel)
	}
	return q.Where(sq.Eq{"id": update.IDs}).
		Suffix("RETURNING " + strings.Join(binColumns, ", ")).
		ToSql()
}
