// Package store persists named plans and cached dividend yields in a bbolt
// database.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/internal/yield"
	"github.com/fiplan/goal-tracker/pkg/dateutil"
	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidName is returned when a plan name is empty.
	ErrInvalidName = errors.New("invalid plan name")
)

// Bucket names.
const (
	BucketPlans  = "plans"
	BucketYields = "yields"
)

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB

	// Now returns the current time; cached yields expire at the end of its day.
	Now func() time.Time
}

// PlanRecord is a saved plan with its bookkeeping
type PlanRecord struct {
	Name    string      `json:"name"`
	SavedAt time.Time   `json:"saved_at"`
	Plan    domain.Plan `json:"plan"`
}

type yieldEntry struct {
	Day   string      `json:"day"`
	Quote yield.Quote `json:"quote"`
}

// New opens (or creates) the database at dbPath and initializes buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketPlans, BucketYields} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, Now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func planKey(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return []byte(name), nil
}

// SavePlan stores plan under name, replacing any previous version.
func (s *Store) SavePlan(name string, plan domain.Plan) error {
	key, err := planKey(name)
	if err != nil {
		return err
	}
	rec := PlanRecord{Name: string(key), SavedAt: s.Now().UTC(), Plan: plan}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketPlans)).Put(key, data)
	})
}

// LoadPlan retrieves the plan saved under name.
func (s *Store) LoadPlan(name string) (*domain.Plan, error) {
	key, err := planKey(name)
	if err != nil {
		return nil, err
	}
	var rec PlanRecord
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(BucketPlans)).Get(key)
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec.Plan, nil
}

// ListPlans returns every saved plan record ordered by name.
func (s *Store) ListPlans() ([]PlanRecord, error) {
	records := []PlanRecord{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketPlans)).ForEach(func(k, v []byte) error {
			var rec PlanRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal plan %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// DeletePlan removes the plan saved under name.
func (s *Store) DeletePlan(name string) error {
	key, err := planKey(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketPlans))
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}

// GetYield implements yield.Cache. Entries written on an earlier day are
// treated as missing.
func (s *Store) GetYield(symbol string) (yield.Quote, bool, error) {
	key := []byte(yield.NormalizeSymbol(symbol))
	var entry yieldEntry
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(BucketYields)).Get(key)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return yield.Quote{}, false, fmt.Errorf("failed to read cached yield: %w", err)
	}
	if !found || entry.Day != s.today() {
		return yield.Quote{}, false, nil
	}
	return entry.Quote, true, nil
}

// PutYield implements yield.Cache.
func (s *Store) PutYield(q yield.Quote) error {
	q.Symbol = yield.NormalizeSymbol(q.Symbol)
	if q.Symbol == "" {
		return yield.ErrMissingSymbol
	}
	data, err := json.Marshal(yieldEntry{Day: s.today(), Quote: q})
	if err != nil {
		return fmt.Errorf("failed to marshal yield: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketYields)).Put([]byte(q.Symbol), data)
	})
}

// PurgeYields drops cached yields from earlier days and reports how many
// were removed.
func (s *Store) PurgeYields() (int, error) {
	today := s.today()
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketYields))
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var entry yieldEntry
			if err := json.Unmarshal(v, &entry); err != nil || entry.Day != today {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

func (s *Store) today() string {
	return dateutil.DayKey(s.Now())
}

var _ yield.Cache = (*Store)(nil)
