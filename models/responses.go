package models

// Response is the envelope of every roster API answer. Failures carry
// Success=false and a human-readable Error.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ProfileResponse answers a single-profile mutation.
type ProfileResponse struct {
	Response
	Index   int      `json:"index"`
	Profile *Profile `json:"profile,omitempty"`
}

// PhotoResponse answers a photo upload.
type PhotoResponse struct {
	Response
	PhotoID string `json:"photo_id"`
	URL     string `json:"url"`
}
