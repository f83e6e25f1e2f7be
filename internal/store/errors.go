package store

import "errors"

// Sentinel errors returned by persistence backends and blob stores.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrUnknownBackend is returned by [NewPersistenceBackend] when the configured
	// backend name is not one of file, sqlite, postgres or redis.
	ErrUnknownBackend = errors.New("unknown persistence backend")

	// ErrDocumentCorrupted is returned when the persisted roster document
	// cannot be decoded.
	ErrDocumentCorrupted = errors.New("roster document is corrupted")

	// ErrPhotoNotFound is returned by [BlobStore.Get] for an unknown id.
	ErrPhotoNotFound = errors.New("photo was not found")

	// ErrInvalidPhotoID is returned for ids that could escape the blob
	// directory or are otherwise malformed.
	ErrInvalidPhotoID = errors.New("invalid photo id")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL backend when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT/UPDATE
	// statement fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
