package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/internal/validators"
)

type Services struct {
	AuthService        AuthService
	SyncService        SyncService
	PickupService      PickupService
	TransactionService TransactionService
	CollectionService  CollectionService
	BinService         BinService
	AppInfoService     AppInfoService
	HealthService      HealthService
	SnapshotService    SnapshotService
}

// NewServices wires every server service over the given storages. The
// snapshot service is only built when sink is not nil.
func NewServices(storages *store.Storages, sink store.SnapshotSink, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator()
	ids := utils.NewUUIDGenerator()

	syncService := NewSyncService(storages, nil, logger)

	services := &Services{
		AuthService:        NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		SyncService:        syncService,
		PickupService:      NewPickupService(storages.PickupRepository, validator, ids, logger),
		TransactionService: NewTransactionService(storages.TransactionRepository, validator, ids, logger),
		CollectionService:  NewCollectionService(storages, validator, ids, nil, logger),
		BinService:         NewBinService(storages.BinRepository, validator, ids, logger),
		AppInfoService:     appInfo,
		HealthService:      NewHealthService(storages.DB),
	}

	if sink != nil {
		services.SnapshotService = NewSnapshotService(syncService, sink, nil, logger)
	}

	return services, nil
}

// IDGenerator produces primary keys for new rows.
type IDGenerator interface {
	Generate() string
}

// invalid wraps a validator error so that handlers answer 400 with its text.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

// unavailableIfRetryable marks transient database errors so that clients
// keep the mutation queued instead of dead-lettering it.
func unavailableIfRetryable(classifier store.ErrorClassificator, err error) error {
	if err == nil || classifier == nil {
		return err
	}
	if classifier.Classify(err) == store.Retryable && !errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return err
}
