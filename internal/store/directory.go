package store

import (
	"strings"
	"sync"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/models"
)

// Directory holds every published profile, keyed by the lower-cased display
// name. It is the leaf store: the matching engine, the conversation store and
// the message store all validate identifiers against it.
type Directory struct {
	mu    sync.RWMutex
	users map[string]*models.UserProfile
}

func NewDirectory() *Directory {
	return &Directory{users: make(map[string]*models.UserProfile)}
}

// NormalizeUsername converts any client-supplied identifier to directory key
// form. All identifier comparisons in the system go through this.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create registers a new profile. The name is unique case-insensitively.
func (d *Directory) Create(profile *models.UserProfile) error {
	key := NormalizeUsername(profile.Name)
	if key == "" {
		return apperr.BadRequest("Name is required and must be a non-empty string")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[key]; exists {
		return apperr.Conflict("User with this name already exists")
	}
	d.users[key] = profile
	return nil
}

// Get resolves an identifier to its profile.
func (d *Directory) Get(name string) (*models.UserProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	profile, ok := d.users[NormalizeUsername(name)]
	return profile, ok
}

// All returns a snapshot of every profile keyed by normalized name.
func (d *Directory) All() map[string]*models.UserProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make(map[string]*models.UserProfile, len(d.users))
	for key, profile := range d.users {
		snapshot[key] = profile
	}
	return snapshot
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}
