package store

import (
	"context"
	"sync"
)

// MemoryDirectory is a seedable in-process Directory for development and
// tests.
type MemoryDirectory struct {
	mu           sync.RWMutex
	clients      map[string]*Client
	users        map[string]*User
	byUsername   map[string]string
	customTokens map[string]string
	assertions   map[string]string
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		clients:      map[string]*Client{},
		users:        map[string]*User{},
		byUsername:   map[string]string{},
		customTokens: map[string]string{},
		assertions:   map[string]string{},
	}
}

// AddClient registers a client. The secret is hashed before storage.
func (d *MemoryDirectory) AddClient(c Client, secret string) error {
	if secret != "" {
		h, err := HashSecret(secret)
		if err != nil {
			return err
		}
		c.SecretHash = h
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients[c.ID] = &c
	return nil
}

// AddUser registers a user. The password is hashed before storage.
func (d *MemoryDirectory) AddUser(u User, password string) error {
	if password != "" {
		h, err := HashSecret(password)
		if err != nil {
			return err
		}
		u.PasswordHash = h
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = &u
	d.byUsername[u.Username] = u.ID
	return nil
}

// RegisterCustomToken maps a provider-issued token to a user.
func (d *MemoryDirectory) RegisterCustomToken(token, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customTokens[token] = userID
}

// RegisterAssertion maps a SAML2 bearer assertion to a user.
func (d *MemoryDirectory) RegisterAssertion(assertion, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.assertions[assertion] = userID
}

func (d *MemoryDirectory) Client(_ context.Context, clientID string) (*Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.clients[clientID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (d *MemoryDirectory) UserByID(_ context.Context, id string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyUser(d.users[id]), nil
}

func (d *MemoryDirectory) UserByUsername(_ context.Context, username string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyUser(d.users[d.byUsername[username]]), nil
}

func (d *MemoryDirectory) UserByCustomToken(_ context.Context, token string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyUser(d.users[d.customTokens[token]]), nil
}

func (d *MemoryDirectory) UserByAssertion(_ context.Context, assertion string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyUser(d.users[d.assertions[assertion]]), nil
}

func (d *MemoryDirectory) copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	up := *u
	return &up
}
