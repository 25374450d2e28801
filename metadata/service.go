package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/viant/dbio/metadata/database"
	"sync"
)

//Service represents metadata service detecting product versions
type Service struct {
	mux    sync.Mutex
	recent map[string]*database.Product
}

//New creates metadata service
func New() *Service {
	return &Service{recent: map[string]*database.Product{}}
}

//DetectVersion detects product version with supplied version query, key identifies the data source
func (s *Service) DetectVersion(ctx context.Context, db *sql.DB, key, query string) (*database.Product, error) {
	if query == "" {
		return nil, nil
	}
	if product := s.match(key); product != nil {
		return product, nil
	}
	product, err := DetectVersion(ctx, db, query)
	if err != nil || product == nil {
		return nil, err
	}
	s.mux.Lock()
	s.recent[key] = product
	s.mux.Unlock()
	return product, nil
}

func (s *Service) match(key string) *database.Product {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.recent[key]
}

//DetectVersion runs version query and parses result, empty version yields nil product
func DetectVersion(ctx context.Context, db *sql.DB, query string) (*database.Product, error) {
	var version string
	if err := runQuery(ctx, db, query, &version); err != nil {
		return nil, fmt.Errorf("failed to detect product: %w", err)
	}
	product, err := database.Parse([]byte(version))
	if errors.Is(err, database.ErrNoVersion) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse product version: %v, %w", version, err)
	}
	return product, nil
}

func runQuery(ctx context.Context, db *sql.DB, query string, dest *string) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	var value sql.NullString
	if err = rows.Scan(&value); err != nil {
		return err
	}
	*dest = value.String
	return rows.Err()
}
