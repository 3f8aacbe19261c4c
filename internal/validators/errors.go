package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername        = errors.New("username is required")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidWasteType       = errors.New("invalid waste type")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrEmptyBinID             = errors.New("binId is required")
	ErrMissingWeight          = errors.New("weight is required")
	ErrInvalidWeight          = errors.New("weight must not be negative")
	ErrInvalidLatitude        = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude       = errors.New("longitude must be between -180 and 180")
	ErrInvalidAccuracy        = errors.New("accuracy must not be negative")
	ErrInvalidBinType         = errors.New("invalid bin type")
	ErrInvalidLevel           = errors.New("currentLevel must be between 0 and 100")
	ErrInvalidPickupStatus    = errors.New("invalid pickup status")
	ErrInvalidTxStatus        = errors.New("invalid transaction status")
	ErrClientReferenceTooLong = errors.New("clientReference is too long")
	ErrEmptyIDs               = errors.New("IDs list cannot be empty")
	ErrNoFieldsToUpdate       = errors.New("at least one field must be provided for update")
)
