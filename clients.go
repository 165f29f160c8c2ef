/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/connstore/errors"
)

// Registry is a thread-safe collection of named Clients, for deployments that
// reach several regions or accounts from one process.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Register stores the client under the given name.
func (r *Registry) Register(name string, client *Client) error {
	if client == nil {
		return errors.NewValidationError("client", "must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("client with name %q already registered", name)
	}
	r.clients[name] = client
	return nil
}

// Get retrieves the client registered under name.
func (r *Registry) Get(name string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[name]
	if !exists {
		return nil, errors.NewNotFoundError("client", name)
	}
	return client, nil
}

// Remove deletes a client by name
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; !exists {
		return errors.NewNotFoundError("client", name)
	}
	delete(r.clients, name)
	return nil
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
