package service

import (
	"github.com/queueless/queueless-api/internal/cache"
	"github.com/queueless/queueless-api/internal/model"
)

// ReferenceLister is the listing surface of the reference-data store.
type ReferenceLister interface {
	ListLocations() ([]model.Location, error)
	ListOfficesByLocation(locationID string) ([]model.Office, error)
	GetOffice(officeID string) (*model.Office, error)
}

// ReferenceService serves locations and offices through the in-process
// cache. Reference data changes rarely, so a short TTL is enough to keep
// the store idle on hot paths.
type ReferenceService struct {
	repo  ReferenceLister
	cache *cache.Cache
}

// NewReferenceService creates a reference service. The cache is optional.
func NewReferenceService(repo ReferenceLister, c *cache.Cache) *ReferenceService {
	return &ReferenceService{repo: repo, cache: c}
}

// Locations returns every registered location.
func (s *ReferenceService) Locations() ([]model.Location, error) {
	const key = "reference:locations"

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if locations, ok := v.([]model.Location); ok {
				return locations, nil
			}
		}
	}

	locations, err := s.repo.ListLocations()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, locations)
	}
	return locations, nil
}

// OfficesByLocation returns the offices of a location. An unknown location
// yields an empty slice, not an error.
func (s *ReferenceService) OfficesByLocation(locationID string) ([]model.Office, error) {
	key := "reference:offices:" + locationID

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if offices, ok := v.([]model.Office); ok {
				return offices, nil
			}
		}
	}

	offices, err := s.repo.ListOfficesByLocation(locationID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, offices)
	}
	return offices, nil
}

// Office returns one office by id, or nil when it does not exist.
func (s *ReferenceService) Office(officeID string) (*model.Office, error) {
	key := "reference:office:" + officeID

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if office, ok := v.(*model.Office); ok {
				return office, nil
			}
		}
	}

	office, err := s.repo.GetOffice(officeID)
	if err != nil {
		return nil, err
	}

	// Negative results are not cached so a newly created office shows up
	// immediately.
	if s.cache != nil && office != nil {
		s.cache.Set(key, office)
	}
	return office, nil
}
