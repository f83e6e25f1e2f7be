// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	rosterDocumentsTable = "roster_documents"

	// profilesDocument is the row holding the profile roster.
	profilesDocument = "profiles"

	upsertDocumentSuffix = "ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at"
)

// buildLoadDocumentQuery selects the body of the named document.
func buildLoadDocumentQuery(ph sq.PlaceholderFormat, name string) (string, []any, error) {
	query, args, err := sq.Select("body").
		From(rosterDocumentsTable).
		Where(sq.Eq{"name": name}).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSaveDocumentQuery inserts the named document or replaces its body.
func buildSaveDocumentQuery(ph sq.PlaceholderFormat, name string, body []byte, now time.Time) (string, []any, error) {
	query, args, err := sq.Insert(rosterDocumentsTable).
		Columns("name", "body", "updated_at").
		Values(name, string(body), now.UTC()).
		Suffix(upsertDocumentSuffix).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
