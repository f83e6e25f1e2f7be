package store

import (
	"context"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/MKhiriev/influence-roster/models"
)

// ImageCache is a read-through cache of photos in front of a [BlobStore].
// It holds at most one entry per photo ID and never evicts on its own;
// writers call Invalidate for every ID they touch.
type ImageCache struct {
	blobs   BlobStore
	entries *xsync.MapOf[string, models.Photo]

	// generation is bumped by every Invalidate. A load that raced with an
	// invalidation is served but not cached.
	generation atomic.Uint64
}

func NewImageCache(blobs BlobStore) *ImageCache {
	return &ImageCache{
		blobs:   blobs,
		entries: xsync.NewMapOf[string, models.Photo](),
	}
}

// Get returns the photo for id, loading it from the blob store on a miss.
func (c *ImageCache) Get(ctx context.Context, id string) (models.Photo, error) {
	if photo, ok := c.entries.Load(id); ok {
		return photo, nil
	}

	gen := c.generation.Load()
	photo, err := c.blobs.Get(ctx, id)
	if err != nil {
		return models.Photo{}, err
	}

	if c.generation.Load() == gen {
		c.entries.Store(id, photo)
	}
	return photo, nil
}

// Invalidate drops the entries of ids. Empty ids are ignored.
func (c *ImageCache) Invalidate(ids ...string) {
	c.generation.Add(1)
	for _, id := range ids {
		if id != "" {
			c.entries.Delete(id)
		}
	}
}

// Len reports the number of cached photos.
func (c *ImageCache) Len() int {
	return c.entries.Size()
}
