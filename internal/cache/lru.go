package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/scribebot/pkg/blossom"
)

// VolunteerCache provides thread-safe LRU caching for volunteer lookups,
// keyed by username. Volunteer IDs are stable, so entries never expire;
// they only fall out under capacity pressure.
type VolunteerCache struct {
	cache *lru.Cache[string, *blossom.Volunteer]
}

// NewVolunteerCache creates a new LRU cache with the specified maximum number of volunteers.
func NewVolunteerCache(maxItems int) (*VolunteerCache, error) {
	c, err := lru.New[string, *blossom.Volunteer](maxItems)
	if err != nil {
		return nil, err
	}
	return &VolunteerCache{cache: c}, nil
}

// Get retrieves a volunteer from the cache by username.
// Returns the volunteer and true if found, nil and false otherwise.
func (c *VolunteerCache) Get(username string) (*blossom.Volunteer, bool) {
	return c.cache.Get(username)
}

// Put adds or updates a volunteer in the cache.
func (c *VolunteerCache) Put(username string, v *blossom.Volunteer) {
	c.cache.Add(username, v)
}

// Len returns the current number of cached volunteers.
func (c *VolunteerCache) Len() int {
	return c.cache.Len()
}
