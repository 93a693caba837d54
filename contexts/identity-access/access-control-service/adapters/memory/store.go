package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electorate/contexts/identity-access/access-control-service/domain/entities"
)

type Store struct {
	mu     sync.RWMutex
	admins map[string]entities.Administrator
}

// NewStore seeds the first administrators; seed grants are self-granted.
func NewStore(seed []string) *Store {
	admins := make(map[string]entities.Administrator, len(seed))
	now := time.Now().UTC()
	for _, address := range seed {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		admins[address] = entities.Administrator{
			Address:   address,
			GrantedBy: address,
			GrantedAt: now,
		}
	}
	return &Store{admins: admins}
}

func (s *Store) GetAdministrator(_ context.Context, address string) (entities.Administrator, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[strings.TrimSpace(address)]
	return admin, ok, nil
}

func (s *Store) SaveAdministrator(_ context.Context, admin entities.Administrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[strings.TrimSpace(admin.Address)] = admin
	return nil
}

func (s *Store) ListAdministrators(_ context.Context) ([]entities.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Administrator, 0, len(s.admins))
	for _, admin := range s.admins {
		items = append(items, admin)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Address < items[j].Address
	})
	return items, nil
}

// SystemClock satisfies the Clock port with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
