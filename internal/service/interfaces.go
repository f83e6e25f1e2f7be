package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/influence-roster/models"
)

// RosterService owns the ordered profile roster of the process.
//
// Reads return deep copies. Every mutation persists the whole roster before
// it becomes visible and then publishes a full snapshot; a failed save
// leaves the roster untouched and returns [ErrPersistence].
type RosterService interface {
	List(ctx context.Context) []models.Profile
	MasterView(ctx context.Context) []models.MasterProfile
	PlayerView(ctx context.Context) []models.PlayerProfile
	Get(ctx context.Context, ref models.ProfileRef) (int, models.Profile, error)

	Create(ctx context.Context, fields models.ProfileFields) (int, models.Profile, error)
	Update(ctx context.Context, ref models.ProfileRef, fields models.ProfileFields) (models.Profile, error)
	Delete(ctx context.Context, ref models.ProfileRef) error

	ToggleReveal(ctx context.Context, ref models.ProfileRef, category models.Category, itemIndex int) (models.Profile, error)
	IncrementSuccess(ctx context.Context, ref models.ProfileRef) (models.Profile, error)
	ResetSuccess(ctx context.Context, ref models.ProfileRef) (models.Profile, error)
	SetPhoto(ctx context.Context, ref models.ProfileRef, photoID string) (profile models.Profile, previousPhotoID string, err error)

	// Export returns the persisted roster document as stored.
	Export(ctx context.Context) ([]byte, error)
	Revision() uint64

	// Close flushes the roster and releases the persistence backend.
	Close(ctx context.Context) error
}

// PhotoService stores profile photos and serves them through the image
// cache.
type PhotoService interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Replace(ctx context.Context, photoID string, data []byte, contentType string) error
	AttachToProfile(ctx context.Context, ref models.ProfileRef, data []byte, contentType string) (models.Profile, error)
	Get(ctx context.Context, photoID string) (models.Photo, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
