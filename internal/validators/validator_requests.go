package validators

import (
	"context"

	"github.com/MKhiriev/go-waste-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldWasteType       = "waste_type"
	FieldTransactionType = "transaction_type"
	FieldAmount          = "amount"
	FieldBinID           = "bin_id"
	FieldWeight          = "weight"
	FieldLocation        = "location"
	FieldBinType         = "bin_type"
	FieldCurrentLevel    = "current_level"
	FieldGeoLocation     = "geo_location"
	FieldClientReference = "client_reference"
	FieldIDs             = "ids"
	FieldStatus          = "status"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// maxClientReferenceLength bounds idempotency keys; generated ones are ~40 chars.
const maxClientReferenceLength = 128

// RequestValidator implements [Validator] for every write request model.
// Both value and pointer forms are accepted.
type RequestValidator struct{}

// NewRequestValidator returns a ready [Validator].
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. Returns ErrUnsupportedType
// for anything else. When fields is empty a default set is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AuthRequest:
		return v.validateAuth(value, fields...)
	case *models.AuthRequest:
		return v.validateAuth(*value, fields...)

	case models.CreatePickupRequest:
		return v.validatePickup(value, fields...)
	case *models.CreatePickupRequest:
		return v.validatePickup(*value, fields...)

	case models.PayRequest:
		return v.validatePay(value, fields...)
	case *models.PayRequest:
		return v.validatePay(*value, fields...)

	case models.ScanRequest:
		return v.validateScan(value, fields...)
	case *models.ScanRequest:
		return v.validateScan(*value, fields...)

	case models.CreateBinRequest:
		return v.validateBin(value, fields...)
	case *models.CreateBinRequest:
		return v.validateBin(*value, fields...)

	case models.BulkPickupUpdate:
		return v.validateBulkPickups(value)
	case models.BulkTransactionUpdate:
		return v.validateBulkTransactions(value)
	case models.BulkBinUpdate:
		return v.validateBulkBins(value)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateAuth(req models.AuthRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if req.Username == "" {
				return ErrInvalidUsername
			}
		case FieldPassword:
			if len(req.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldRole:
			if req.Role != "" && !req.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePickup(req models.CreatePickupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWasteType, FieldClientReference}
	}

	for _, f := range fields {
		switch f {
		case FieldWasteType:
			if !req.WasteType.Valid() {
				return ErrInvalidWasteType
			}
		case FieldClientReference:
			if len(req.ClientReference) > maxClientReferenceLength {
				return ErrClientReferenceTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePay(req models.PayRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTransactionType, FieldAmount, FieldClientReference}
	}

	for _, f := range fields {
		switch f {
		case FieldTransactionType:
			if !req.Type.Valid() {
				return ErrInvalidTransactionType
			}
		case FieldAmount:
			if req.Amount <= 0 {
				return ErrInvalidAmount
			}
		case FieldClientReference:
			if len(req.ClientReference) > maxClientReferenceLength {
				return ErrClientReferenceTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateScan(req models.ScanRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBinID, FieldWeight, FieldLocation, FieldClientReference}
	}

	for _, f := range fields {
		switch f {
		case FieldBinID:
			if req.BinID == "" {
				return ErrEmptyBinID
			}
		case FieldWeight:
			if req.Weight == nil {
				return ErrMissingWeight
			}
			if *req.Weight < 0 {
				return ErrInvalidWeight
			}
		case FieldLocation:
			if err := validateDeviceLocation(req.Location); err != nil {
				return err
			}
		case FieldClientReference:
			if len(req.ClientReference) > maxClientReferenceLength {
				return ErrClientReferenceTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateBin(req models.CreateBinRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBinID, FieldBinType, FieldCurrentLevel, FieldGeoLocation}
	}

	for _, f := range fields {
		switch f {
		case FieldBinID:
			if req.BinID == "" {
				return ErrEmptyBinID
			}
		case FieldBinType:
			if !req.Type.Valid() {
				return ErrInvalidBinType
			}
		case FieldCurrentLevel:
			if !validLevel(req.CurrentLevel) {
				return ErrInvalidLevel
			}
		case FieldGeoLocation:
			if g := req.GeoLocation; g != nil {
				if err := validateCoordinates(g.Latitude, g.Longitude); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateBulkPickups(req models.BulkPickupUpdate) error {
	if len(req.IDs) == 0 {
		return ErrEmptyIDs
	}
	if req.Status == nil && req.ScheduledDate == nil {
		return ErrNoFieldsToUpdate
	}
	if req.Status != nil && !req.Status.Valid() {
		return ErrInvalidPickupStatus
	}
	return nil
}

func (v *RequestValidator) validateBulkTransactions(req models.BulkTransactionUpdate) error {
	if len(req.IDs) == 0 {
		return ErrEmptyIDs
	}
	if req.Status == nil {
		return ErrNoFieldsToUpdate
	}
	if !req.Status.Valid() {
		return ErrInvalidTxStatus
	}
	return nil
}

func (v *RequestValidator) validateBulkBins(req models.BulkBinUpdate) error {
	if len(req.IDs) == 0 {
		return ErrEmptyIDs
	}
	if req.CurrentLevel == nil {
		return ErrNoFieldsToUpdate
	}
	if !validLevel(*req.CurrentLevel) {
		return ErrInvalidLevel
	}
	return nil
}

func validLevel(level int) bool {
	return level >= 0 && level <= 100
}

// validateDeviceLocation accepts a nil location and partial coordinates;
// the geofence only runs when both coordinates are present.
func validateDeviceLocation(loc *models.DeviceLocation) error {
	if loc == nil {
		return nil
	}
	if loc.Latitude != nil && (*loc.Latitude < -90 || *loc.Latitude > 90) {
		return ErrInvalidLatitude
	}
	if loc.Longitude != nil && (*loc.Longitude < -180 || *loc.Longitude > 180) {
		return ErrInvalidLongitude
	}
	if loc.Accuracy != nil && *loc.Accuracy < 0 {
		return ErrInvalidAccuracy
	}
	return nil
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lon < -180 || lon > 180 {
		return ErrInvalidLongitude
	}
	return nil
}
