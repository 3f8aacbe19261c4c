package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/validators"
	"github.com/MKhiriev/go-waste-sync/models"
)

const (
	DefaultStatsDays = 7
	MaxStatsDays     = 90

	// CriticalFillLevel marks a bin as due for collection in the stats.
	CriticalFillLevel = 80
)

type collectionService struct {
	bins        store.BinRepository
	users       store.UserRepository
	collections store.CollectionRepository
	stats       store.StatsRepository
	ledger      *idempotencyLedger[models.CollectionRecord]
	classifier  store.ErrorClassificator
	validator   validators.Validator
	ids         IDGenerator
	clock       Clock
	logger      *logger.Logger
}

func NewCollectionService(storages *store.Storages, validator validators.Validator, ids IDGenerator, clock Clock, logger *logger.Logger) CollectionService {
	if clock == nil {
		clock = time.Now
	}
	return &collectionService{
		bins:        storages.BinRepository,
		users:       storages.UserRepository,
		collections: storages.CollectionRepository,
		stats:       storages.StatsRepository,
		ledger: newIdempotencyLedger("collection",
			storages.CollectionRepository.FindCollectionByClientReference, store.ErrCollectionNotFound),
		classifier: store.NewPostgresErrorClassifier(),
		validator:  validator,
		ids:        ids,
		clock:      clock,
		logger:     logger,
	}
}

// Scan records that a collector emptied a bin. The bin lookup comes first so
// that an unknown bin is a 404 even for a replayed reference.
func (s *collectionService) Scan(ctx context.Context, req models.ScanRequest) (models.ScanResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ScanResult{}, invalid(err)
	}

	bin, err := s.bins.FindBinByBinID(ctx, req.BinID)
	if err != nil {
		log.Err(err).Str("func", "*collectionService.Scan").Str("bin_id", req.BinID).Msg("bin lookup failed")
		return models.ScanResult{}, unavailableIfRetryable(s.classifier, err)
	}

	existing, found, err := s.ledger.Lookup(ctx, req.ClientReference)
	if err != nil {
		return models.ScanResult{}, unavailableIfRetryable(s.classifier, err)
	}
	if found {
		return models.ScanResult{Record: existing, DistanceFromBin: existing.DistanceFromBin, Duplicate: true}, nil
	}

	now := s.clock().UTC()
	location := sanitizeLocation(req.Location, now)

	fence, err := evaluateGeofence(bin, location, now)
	if err != nil {
		log.Warn().Str("func", "*collectionService.Scan").Str("bin_id", req.BinID).
			Float64("distance", *fence.distance).Msg("scan rejected by geofence")
		return models.ScanResult{DistanceFromBin: fence.distance}, err
	}

	collector, err := s.users.FindUserByID(ctx, req.CollectorID)
	if err != nil {
		log.Err(err).Str("func", "*collectionService.Scan").Int64("user_id", req.CollectorID).Msg("collector lookup failed")
		return models.ScanResult{}, unavailableIfRetryable(s.classifier, err)
	}

	timestamp := now
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	record := models.CollectionRecord{
		ID:              s.ids.Generate(),
		Bin:             models.BinRef{ID: bin.ID, BinID: bin.BinID},
		CollectedBy:     models.UserRef{ID: collector.UserID, Username: collector.Username, Role: collector.Role},
		Weight:          *req.Weight,
		Timestamp:       timestamp,
		DistanceFromBin: fence.distance,
		ClientReference: req.ClientReference,
	}
	if location.HasCoordinates() {
		record.Location = location
	}

	stored, duplicate, err := s.ledger.Create(ctx, req.ClientReference, func(ctx context.Context) (models.CollectionRecord, error) {
		return s.collections.RecordCollection(ctx, record, models.BinUpdate{ID: bin.ID, CurrentLevel: 0, GeoLocation: fence.learned})
	})
	if err != nil {
		log.Err(err).Str("func", "*collectionService.Scan").Str("bin_id", req.BinID).
			Str("client_reference", req.ClientReference).Msg("recording collection failed")
		return models.ScanResult{}, unavailableIfRetryable(s.classifier, err)
	}

	log.Info().Str("func", "*collectionService.Scan").Str("bin_id", req.BinID).Str("record_id", stored.ID).
		Bool("duplicate", duplicate).Bool("learned_location", fence.learned != nil).Msg("collection recorded")

	if duplicate {
		return models.ScanResult{Record: stored, DistanceFromBin: stored.DistanceFromBin, Duplicate: true}, nil
	}
	return models.ScanResult{Record: stored, DistanceFromBin: fence.distance}, nil
}

// sanitizeLocation copies the device fix and stamps a missing capture time.
func sanitizeLocation(loc *models.DeviceLocation, now time.Time) *models.DeviceLocation {
	if loc == nil {
		return nil
	}
	out := *loc
	if out.CapturedAt == nil {
		captured := now
		out.CapturedAt = &captured
	}
	return &out
}

// ClampStatsDays bounds the reporting window; non-positive input means the default.
func ClampStatsDays(days int) int {
	switch {
	case days <= 0:
		return DefaultStatsDays
	case days > MaxStatsDays:
		return MaxStatsDays
	}
	return days
}

// Stats aggregates the collections of the last days days, today included.
func (s *collectionService) Stats(ctx context.Context, days int) (models.CollectionStats, error) {
	days = ClampStatsDays(days)
	now := s.clock().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	var (
		totals       models.CollectionTotals
		series       []store.SeriesRow
		collectors   []models.CollectorTotal
		hotspots     []models.BinHotspot
		pickups      []models.StatusCount
		transactions []models.StatusCount
		bins         []models.Bin
	)

	queryCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("stats %s: %w", name, err)
					cancel()
				})
			}
		}()
	}

	run("totals", func() (err error) { totals, err = s.stats.CollectionTotals(queryCtx, since); return })
	run("series", func() (err error) { series, err = s.stats.CollectionSeries(queryCtx, since); return })
	run("collectors", func() (err error) { collectors, err = s.stats.CollectorTotals(queryCtx, since); return })
	run("hotspots", func() (err error) { hotspots, err = s.stats.BinHotspots(queryCtx, since); return })
	run("pickups", func() (err error) { pickups, err = s.stats.PickupStatusCounts(queryCtx, since); return })
	run("transactions", func() (err error) { transactions, err = s.stats.TransactionStatusCounts(queryCtx, since); return })
	run("bins", func() (err error) {
		bins, err = s.bins.ListBins(queryCtx, models.SyncRequest{Role: models.RoleAdmin})
		return
	})

	wg.Wait()
	if firstErr != nil {
		logger.FromContext(ctx).Err(firstErr).Str("func", "*collectionService.Stats").Msg("stats query failed")
		return models.CollectionStats{}, unavailableIfRetryable(s.classifier, firstErr)
	}

	daySeries, byType := groupSeries(series)
	return models.CollectionStats{
		Since:  since.Format(time.DateOnly),
		Days:   days,
		Totals: totals,
		Series: daySeries,
		Breakdown: models.StatsBreakdown{
			ByType:      byType,
			ByCollector: nonNil(collectors),
			ByBin:       nonNil(hotspots),
		},
		Pickups:           nonNil(pickups),
		Transactions:      nonNil(transactions),
		FillLevelInsights: fillInsights(bins),
	}, nil
}

// groupSeries folds (day, type) rows into per-day points and a per-type
// breakdown sorted by weight.
func groupSeries(rows []store.SeriesRow) ([]models.DayTotal, []models.TypeTotal) {
	days := make([]models.DayTotal, 0)
	index := make(map[string]int)
	types := make(map[models.BinType]*models.TypeTotal)

	for _, row := range rows {
		i, ok := index[row.Day]
		if !ok {
			i = len(days)
			index[row.Day] = i
			days = append(days, models.DayTotal{Day: row.Day, ByType: []models.TypeTotal{}})
		}
		days[i].ByType = append(days[i].ByType, models.TypeTotal{Type: row.Type, TotalWeight: row.TotalWeight, Count: row.Count})
		days[i].DayTotalWeight += row.TotalWeight
		days[i].DayCount += row.Count

		t, ok := types[row.Type]
		if !ok {
			t = &models.TypeTotal{Type: row.Type}
			types[row.Type] = t
		}
		t.TotalWeight += row.TotalWeight
		t.Count += row.Count
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	byType := make([]models.TypeTotal, 0, len(types))
	for _, t := range types {
		byType = append(byType, *t)
	}
	sort.Slice(byType, func(i, j int) bool {
		if byType[i].TotalWeight != byType[j].TotalWeight {
			return byType[i].TotalWeight > byType[j].TotalWeight
		}
		return byType[i].Type < byType[j].Type
	})

	return days, byType
}

func fillInsights(bins []models.Bin) models.FillLevelInsights {
	insights := models.FillLevelInsights{CriticalBins: []models.CriticalBin{}}
	if len(bins) == 0 {
		return insights
	}

	total := 0
	for _, b := range bins {
		total += b.CurrentLevel
		if b.CurrentLevel >= CriticalFillLevel {
			insights.CriticalBins = append(insights.CriticalBins, models.CriticalBin{
				BinID:        b.BinID,
				Location:     b.Location,
				CurrentLevel: b.CurrentLevel,
				GeoLocation:  b.GeoLocation,
			})
		}
	}
	insights.AverageFill = math.Round(float64(total)/float64(len(bins))*10) / 10
	return insights
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
