package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the service layer whether a failed write is worth
// another attempt. Retryable failures surface as 503 so that offline clients
// keep the mutation queued instead of dead-lettering it.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier classifies pgx errors by SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// retryableCodes are the connection (08), rollback (40) and operator
// intervention (57P03) states. Constraint violations are never here: a
// unique_violation on client_reference is a replay, not an outage.
var retryableCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
	pgerrcode.AdminShutdown:          {},
	pgerrcode.CrashShutdown:          {},
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return Retryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// ClassifyPgError maps a server-reported error to its classification.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := retryableCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}
