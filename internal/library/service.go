// Package library stores named path data per user and renders it.
package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inamate/svgpath/internal/db/dbgen"
	"github.com/inamate/svgpath/internal/engine"
	"github.com/inamate/svgpath/internal/typeid"
)

var (
	ErrNotFound  = errors.New("path not found")
	ErrForbidden = errors.New("forbidden")
	ErrTooLong   = errors.New("path data too long")
)

// Store is the subset of the generated queries the service needs.
type Store interface {
	CreatePath(ctx context.Context, arg dbgen.CreatePathParams) (dbgen.Path, error)
	GetPath(ctx context.Context, id string) (dbgen.Path, error)
	ListPathsForOwner(ctx context.Context, ownerID string) ([]dbgen.Path, error)
	UpdatePath(ctx context.Context, arg dbgen.UpdatePathParams) (dbgen.Path, error)
	DeletePath(ctx context.Context, id string) error
}

type Service struct {
	store     Store
	cache     *engine.PathCache
	maxLength int
}

// NewService returns a service that rejects path data longer than
// maxLength bytes. maxLength <= 0 disables the check.
func NewService(store Store, cache *engine.PathCache, maxLength int) *Service {
	if cache == nil {
		cache = engine.NewPathCache(0)
	}
	return &Service{store: store, cache: cache, maxLength: maxLength}
}

type Path struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	D         string `json:"d"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Validate parses d. Parse failures are returned as *pathdata.ParseError.
func (s *Service) Validate(d string) error {
	if s.maxLength > 0 && len(d) > s.maxLength {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLong, len(d), s.maxLength)
	}
	_, err := s.cache.Parse(d)
	return err
}

// RenderData parses and replays d without storing it.
func (s *Service) RenderData(d string) (*engine.PathRender, error) {
	if s.maxLength > 0 && len(d) > s.maxLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLong, len(d), s.maxLength)
	}
	return s.cache.Render(d)
}

func (s *Service) Create(ctx context.Context, name, d, ownerID string) (*Path, error) {
	if err := s.Validate(d); err != nil {
		return nil, err
	}

	dbPath, err := s.store.CreatePath(ctx, dbgen.CreatePathParams{
		ID:      typeid.NewPathID(),
		OwnerID: ownerID,
		Name:    name,
		D:       d,
	})
	if err != nil {
		return nil, fmt.Errorf("create path: %w", err)
	}

	return dbPathToPath(dbPath), nil
}

func (s *Service) Get(ctx context.Context, pathID, userID string) (*Path, error) {
	dbPath, err := s.getOwned(ctx, pathID, userID)
	if err != nil {
		return nil, err
	}
	return dbPathToPath(dbPath), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Path, error) {
	dbPaths, err := s.store.ListPathsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}

	paths := make([]Path, len(dbPaths))
	for i, p := range dbPaths {
		paths[i] = *dbPathToPath(p)
	}

	return paths, nil
}

func (s *Service) Update(ctx context.Context, pathID, userID, name, d string) (*Path, error) {
	current, err := s.getOwned(ctx, pathID, userID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = current.Name
	}
	if err := s.Validate(d); err != nil {
		return nil, err
	}

	dbPath, err := s.store.UpdatePath(ctx, dbgen.UpdatePathParams{
		ID:   pathID,
		Name: name,
		D:    d,
	})
	if err != nil {
		return nil, fmt.Errorf("update path: %w", err)
	}

	return dbPathToPath(dbPath), nil
}

func (s *Service) Delete(ctx context.Context, pathID, userID string) error {
	if _, err := s.getOwned(ctx, pathID, userID); err != nil {
		return err
	}
	return s.store.DeletePath(ctx, pathID)
}

// Render replays a stored path.
func (s *Service) Render(ctx context.Context, pathID, userID string) (*engine.PathRender, error) {
	dbPath, err := s.getOwned(ctx, pathID, userID)
	if err != nil {
		return nil, err
	}
	return s.cache.Render(dbPath.D)
}

func (s *Service) getOwned(ctx context.Context, pathID, userID string) (dbgen.Path, error) {
	if err := typeid.Validate(pathID, typeid.PrefixPath); err != nil {
		return dbgen.Path{}, ErrNotFound
	}

	dbPath, err := s.store.GetPath(ctx, pathID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Path{}, ErrNotFound
		}
		return dbgen.Path{}, fmt.Errorf("get path: %w", err)
	}

	if dbPath.OwnerID != userID {
		return dbgen.Path{}, ErrForbidden
	}
	return dbPath, nil
}

func dbPathToPath(p dbgen.Path) *Path {
	return &Path{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		D:         p.D,
		CreatedAt: p.CreatedAt.Time.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.Time.Format("2006-01-02T15:04:05Z"),
	}
}
