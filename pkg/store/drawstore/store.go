package drawstore

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/common/constant"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

// Record is one official contest result.
type Record struct {
	Contest int       `json:"contest"`
	Date    time.Time `json:"date"`
	Numbers []int     `json:"numbers"`
}

func drawKey(contest int) string {
	return fmt.Sprintf("%s/%06d", constant.DrawKeyPrefix, contest)
}

// Store is the historical-draw source the generator reads from.
type Store interface {
	Save(r Record) error
	SaveMany(records []Record) (int, error)
	Get(contest int) (Record, bool, error)
	// List returns every record ordered by contest ascending.
	List() ([]Record, error)
	// Latest returns the last n records, still ascending.
	Latest(n int) ([]Record, error)
	Delete(contest int) error
	Close() error
}

type drawStore struct {
	store infra.KVStore
	codec infra.Codec
}

func New(store infra.KVStore) Store {
	return &drawStore{store: store, codec: infra.JSON}
}

// Validate sorts the numbers and checks they form a valid draw.
func (r *Record) Validate() error {
	if r.Contest <= 0 {
		return errors.New("contest number is required")
	}
	slices.Sort(r.Numbers)
	if _, err := sampler.NewGrid(r.Numbers); err != nil {
		return fmt.Errorf("contest %d: %w", r.Contest, err)
	}
	return nil
}

func (s *drawStore) Save(r Record) error {
	r.Numbers = slices.Clone(r.Numbers)
	if err := r.Validate(); err != nil {
		return err
	}
	return s.store.SetAny(drawKey(r.Contest), r)
}

// SaveMany stops at the first failure and reports how many were saved.
func (s *drawStore) SaveMany(records []Record) (int, error) {
	for i, r := range records {
		if err := s.Save(r); err != nil {
			return i, err
		}
	}
	return len(records), nil
}

func (s *drawStore) Get(contest int) (Record, bool, error) {
	var r Record
	found, err := s.store.GetAny(drawKey(contest), &r)
	return r, found, err
}

func (s *drawStore) List() ([]Record, error) {
	pairs, err := s.store.List(constant.DrawKeyPrefix + "/")
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(pairs))
	for _, p := range pairs {
		var r Record
		if err := s.codec.Unmarshal(p.Value, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.Key, err)
		}
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b Record) int { return a.Contest - b.Contest })
	return records, nil
}

func (s *drawStore) Latest(n int) ([]Record, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

func (s *drawStore) Delete(contest int) error {
	return s.store.Delete(drawKey(contest))
}

func (s *drawStore) Close() error {
	return s.store.Close()
}

// Draws converts records to sampler input, preserving order.
func Draws(records []Record) []sampler.Draw {
	return lo.Map(records, func(r Record, _ int) sampler.Draw {
		return sampler.Draw(slices.Clone(r.Numbers))
	})
}
