// Package directory serves enterprise policy and user identities from a YAML file.
package directory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// document is the on-disk layout.
type document struct {
	Enterprises []domain.EnterprisePolicy `yaml:"enterprises"`
	Users       []domain.User             `yaml:"users"`
}

// FileDirectory implements ports.PolicyStore and ports.IdentityLookup.
type FileDirectory struct {
	mu        sync.RWMutex
	path      string
	policies  map[uuid.UUID]domain.EnterprisePolicy
	users     map[uuid.UUID]domain.User
	byAccount map[string]uuid.UUID
}

// Load reads and validates the directory file at path.
func Load(path string) (*FileDirectory, error) {
	d := &FileDirectory{path: path}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse builds a directory from raw YAML.
func Parse(raw []byte) (*FileDirectory, error) {
	d := &FileDirectory{}
	if err := d.apply(raw); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the file. On error the previous contents are kept.
func (d *FileDirectory) Reload() error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read directory file: %w", err)
	}
	return d.apply(raw)
}

func (d *FileDirectory) apply(raw []byte) error {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse directory file: %w", err)
	}

	policies := make(map[uuid.UUID]domain.EnterprisePolicy, len(doc.Enterprises))
	for i, p := range doc.Enterprises {
		if p.EnterpriseID == uuid.Nil {
			return fmt.Errorf("enterprises[%d]: enterprise_id is required", i)
		}
		if p.TokenID == "" || p.TreasuryAccountID == "" {
			return fmt.Errorf("enterprises[%d]: token_id and treasury_account_id are required", i)
		}
		if _, dup := policies[p.EnterpriseID]; dup {
			return fmt.Errorf("enterprises[%d]: duplicate enterprise %s", i, p.EnterpriseID)
		}
		policies[p.EnterpriseID] = p
	}

	users := make(map[uuid.UUID]domain.User, len(doc.Users))
	byAccount := make(map[string]uuid.UUID, len(doc.Users))
	for i, u := range doc.Users {
		if u.ID == uuid.Nil || u.AccountID == "" {
			return fmt.Errorf("users[%d]: id and account_id are required", i)
		}
		if !u.Role.Valid() {
			return fmt.Errorf("users[%d]: unknown role %q", i, u.Role)
		}
		if _, ok := policies[u.EnterpriseID]; !ok {
			return fmt.Errorf("users[%d]: enterprise %s is not declared", i, u.EnterpriseID)
		}
		if _, dup := byAccount[u.AccountID]; dup {
			return fmt.Errorf("users[%d]: duplicate account %s", i, u.AccountID)
		}
		users[u.ID] = u
		byAccount[u.AccountID] = u.ID
	}

	d.mu.Lock()
	d.policies, d.users, d.byAccount = policies, users, byAccount
	d.mu.Unlock()
	return nil
}

func (d *FileDirectory) GetPolicy(ctx context.Context, enterpriseID uuid.UUID) (*domain.EnterprisePolicy, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.policies[enterpriseID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (d *FileDirectory) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (d *FileDirectory) GetUserByAccount(ctx context.Context, accountID string) (*domain.User, error) {
	d.mu.RLock()
	id, ok := d.byAccount[accountID]
	d.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return d.GetUser(ctx, id)
}

// Policies returns every declared policy, used to seed a database directory.
func (d *FileDirectory) Policies() []domain.EnterprisePolicy {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.EnterprisePolicy, 0, len(d.policies))
	for _, p := range d.policies {
		out = append(out, p)
	}
	return out
}

// Users returns every declared user.
func (d *FileDirectory) Users() []domain.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	return out
}
