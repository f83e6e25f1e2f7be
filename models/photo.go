package models

import "strings"

// Photo is an image stored in a blob store.
type Photo struct {
	ID          string
	ContentType string
	Data        []byte
}

var photoReferencePrefixes = []string{"/images/", "/static/uploads/", "images/", "static/uploads/"}

// PhotoIDFromReference reduces a photo reference (bare ID, "/images/<id>"
// URL or "static/uploads/<file>" path) to the blob identifier. The default
// placeholder image yields an empty ID.
func PhotoIDFromReference(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasSuffix(ref, "/default.png") {
		return ""
	}
	for _, prefix := range photoReferencePrefixes {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	return ref
}
