package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when registering a username that
	// is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrBinAlreadyExists is returned when a bin with the same binId exists.
	ErrBinAlreadyExists = errors.New("bin already exists")

	// ErrBinNotFound is returned when no bin matches the lookup.
	ErrBinNotFound = errors.New("bin was not found")

	// ErrPickupNotFound is returned when no pickup matches the lookup.
	ErrPickupNotFound = errors.New("pickup was not found")

	// ErrTransactionNotFound is returned when no transaction matches the lookup.
	ErrTransactionNotFound = errors.New("transaction was not found")

	// ErrCollectionNotFound is returned when no collection record matches the lookup.
	ErrCollectionNotFound = errors.New("collection record was not found")

	// ErrDuplicateClientReference is returned when an insert violates the
	// unique client_reference index. The caller lost an idempotency race and
	// should fetch the stored entity by reference.
	ErrDuplicateClientReference = errors.New("client reference already used")

	// ErrReferencedRowMissing is returned when a foreign key points nowhere,
	// e.g. a bin owner that does not exist.
	ErrReferencedRowMissing = errors.New("referenced row does not exist")

	// ErrKeyNotFound is returned by the client key-value store.
	ErrKeyNotFound = errors.New("key not found")
	// ErrCorruptDocument is returned when a stored JSON document does not decode.
	ErrCorruptDocument = errors.New("corrupt stored document")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
