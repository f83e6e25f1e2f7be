package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/influence-roster/models"
)

// encodeDocument renders records as the roster document: a JSON array of
// profile records.
func encodeDocument(records []models.ProfileRecord) ([]byte, error) {
	if records == nil {
		records = []models.ProfileRecord{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode roster document: %w", err)
	}
	return payload, nil
}

// decodeDocument parses a roster document. An empty document is an empty
// roster.
func decodeDocument(payload []byte) ([]models.ProfileRecord, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return []models.ProfileRecord{}, nil
	}

	var records []models.ProfileRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentCorrupted, err)
	}
	if records == nil {
		records = []models.ProfileRecord{}
	}
	return records, nil
}

// emptyDocument is what Export returns for a backend never written to.
var emptyDocument = []byte("[]")
