package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/models"
)

// saveRetryDelays are the pauses between attempts of a retryable save.
var saveRetryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}

// profileRepository stores the roster document as a single row of the
// roster_documents table. It serves both sqlite and postgres; the dialect
// lives in [DB].
type profileRepository struct {
	db     *DB
	name   string
	delays []time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewProfileRepository constructs a [PersistenceBackend] backed by db. The
// schema must already be migrated.
func NewProfileRepository(db *DB, logger *logger.Logger) PersistenceBackend {
	return &profileRepository{
		db:     db,
		name:   profilesDocument,
		delays: saveRetryDelays,
		now:    time.Now,
		logger: logger,
	}
}

func (p *profileRepository) Load(ctx context.Context) ([]models.ProfileRecord, error) {
	body, err := p.loadBody(ctx)
	if err != nil {
		return nil, err
	}
	return decodeDocument(body)
}

// Save upserts the roster document. Failures the dialect classifies as
// retryable are attempted again until the delays run out or ctx is done.
func (p *profileRepository) Save(ctx context.Context, records []models.ProfileRecord) error {
	log := logger.FromContext(ctx)

	body, err := encodeDocument(records)
	if err != nil {
		return err
	}

	query, args, err := buildSaveDocumentQuery(p.db.placeholder, p.name, body, p.now())
	if err != nil {
		log.Err(err).Str("func", "profileRepository.Save").Msg("failed to build query")
		return err
	}

	for attempt := 0; ; attempt++ {
		_, err = p.db.ExecContext(ctx, query, args...)
		if err == nil {
			return nil
		}

		if attempt >= len(p.delays) || p.db.classify(err) != Retryable {
			break
		}

		log.Warn().Err(err).
			Str("func", "profileRepository.Save").
			Int("attempt", attempt+1).
			Msg("retryable error saving roster, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrExecutingStatement, errors.Join(err, ctx.Err()))
		case <-time.After(p.delays[attempt]):
		}
	}

	log.Err(err).
		Str("func", "profileRepository.Save").
		Str("pg_code", postgresError(err)).
		Msg("failed to save roster document")
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func (p *profileRepository) Export(ctx context.Context) ([]byte, error) {
	body, err := p.loadBody(ctx)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return emptyDocument, nil
	}
	return body, nil
}

func (p *profileRepository) Close() error {
	return p.db.Close()
}

// loadBody returns the stored document, or nil when none was saved yet.
func (p *profileRepository) loadBody(ctx context.Context) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLoadDocumentQuery(p.db.placeholder, p.name)
	if err != nil {
		log.Err(err).Str("func", "profileRepository.loadBody").Msg("failed to build query")
		return nil, err
	}

	var body string
	err = p.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "profileRepository.loadBody").Msg("failed to load roster document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return []byte(body), nil
}
