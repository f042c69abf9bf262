package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query targets a user record that
	// does not exist in the database.
	ErrRecordNotFound = errors.New("water record was not found")

	// ErrRecordAlreadyExists is returned when an attempt to create a record
	// fails because a record with the same id already exists.
	ErrRecordAlreadyExists = errors.New("water record already exists")

	// ErrHistoryEntryNotFound is returned when a query targets a history entry
	// (identified by user_id and day) that does not exist in the database.
	ErrHistoryEntryNotFound = errors.New("history entry was not found")

	// ErrUnknownField is returned when an update names a record field that is
	// not in the writable column whitelist.
	ErrUnknownField = errors.New("unknown record field")

	// ErrPartnersAlreadyLinked is returned when a link attempt finds that one
	// of the two records already carries a partner id.
	ErrPartnersAlreadyLinked = errors.New("partner already linked")

	// ErrRetryable wraps driver-level failures the error classifier deems
	// transient (connection loss, deadlock rollback). Handlers map it to a
	// retry-after response instead of a hard failure.
	ErrRetryable = errors.New("retryable database error")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
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

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
