package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // zone database for minimal container images

	"github.com/ringsaturn/tzf"
)

// Service maps coordinates to IANA time zones
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	GetLocation(latitude, longitude float64) (*time.Location, error)
}

// Finder is the subset of tzf.F the service relies on
type Finder interface {
	GetTimezoneName(lng, lat float64) string
}

type service struct {
	finder Finder
	mu     sync.RWMutex
	zones  map[string]*time.Location
}

var (
	instance *service
	once     sync.Once
	initErr  error
)

// NewService creates or returns the shared timezone service.
// tzf keeps its polygon index in memory, so it is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = newService(finder)
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// NewServiceWithFinder builds a service around a custom finder
func NewServiceWithFinder(finder Finder) Service {
	return newService(finder)
}

func newService(finder Finder) *service {
	return &service{
		finder: finder,
		zones:  make(map[string]*time.Location),
	}
}

// GetTimezone returns names like "Europe/Paris" for the given coordinates
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	timezone := s.finder.GetTimezoneName(longitude, latitude)
	if timezone == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return timezone, nil
}

// GetLocation resolves the zone for the coordinates and loads it, memoizing loaded zones
func (s *service) GetLocation(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	loc, ok := s.zones[name]
	s.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err = time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone location %s: %w", name, err)
	}

	s.mu.Lock()
	s.zones[name] = loc
	s.mu.Unlock()

	return loc, nil
}
