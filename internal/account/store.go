package account

import "sync"

// Info is the signed-up account persisted in the combined snapshot. The
// password field holds an Argon2id hash, never the raw credential.
type Info struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"password_hash,omitempty"`
}

// Store holds the current account, or nil while signed out.
type Store struct {
	mu   sync.Mutex
	info *Info
}

// NewStore returns a signed-out account store.
func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the current account, or nil when signed out.
func (s *Store) Get() *Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.info == nil {
		return nil
	}
	copied := *s.info
	return &copied
}

// Set replaces the current account.
func (s *Store) Set(info *Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info == nil {
		s.info = nil
		return
	}
	copied := *info
	s.info = &copied
}

// Clear signs the account out.
func (s *Store) Clear() {
	s.Set(nil)
}
