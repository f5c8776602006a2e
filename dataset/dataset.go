// Package dataset loads the historical monthly registration counts per entity (county) that
// forecasts are seeded from. A Dataset is immutable once built and safe for concurrent reads.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aouyang1/go-evforecaster/timedataset"
)

var (
	ErrNoObservations      = errors.New("no observations")
	ErrUnknownEntity       = errors.New("entity not found in dataset")
	ErrInconsistentCode    = errors.New("entity has more than one code")
	ErrNegativeValue       = errors.New("observed count cannot be negative")
	ErrEmptyEntity         = errors.New("observation has no entity")
	ErrInsufficientHistory = errors.New("insufficient history for entity")
	ErrDuplicateDate       = errors.New("entity has more than one observation for a date")
)

// Observation is a single observed registration count for an entity in one monthly period
type Observation struct {
	Entity      string    `json:"entity"`
	Date        time.Time `json:"date"`
	Value       int       `json:"value"`
	Code        int       `json:"code"`
	PeriodIndex int       `json:"period_index"`
}

// Entity is the ordered history of a single entity
type Entity struct {
	Name string `json:"name"`
	Code int    `json:"code"`

	Series      *timedataset.TimeDataset `json:"series"`
	PeriodIndex []int                    `json:"period_index"`
}

// Len returns the number of observed periods
func (e *Entity) Len() int {
	if e == nil {
		return 0
	}
	return e.Series.Len()
}

// LastDate returns the date of the most recent observation
func (e *Entity) LastDate() time.Time {
	if e == nil || e.Series == nil {
		return time.Time{}
	}
	return timedataset.TimeSlice(e.Series.T).EndTime()
}

// MaxPeriodIndex returns the largest period index observed for the entity
func (e *Entity) MaxPeriodIndex() int {
	if e == nil || len(e.PeriodIndex) == 0 {
		return 0
	}
	maxIdx := e.PeriodIndex[0]
	for _, idx := range e.PeriodIndex[1:] {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx
}

// History returns a copy of the last n observed values. It errors if fewer than n periods
// were observed.
func (e *Entity) History(n int) ([]float64, error) {
	if e.Len() < n {
		return nil, fmt.Errorf("%s has %d periods, need %d, %w", e.Name, e.Len(), n, ErrInsufficientHistory)
	}
	tail, err := e.Series.Tail(n)
	if err != nil {
		return nil, err
	}
	return tail.Y, nil
}

// Dataset holds the history of every entity keyed by name
type Dataset struct {
	entities map[string]*Entity
	names    []string
}

// New groups observations by entity and orders each entity's observations by date
func New(obs []Observation) (*Dataset, error) {
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}

	grouped := make(map[string][]Observation)
	for i, o := range obs {
		if o.Entity == "" {
			return nil, fmt.Errorf("observation %d, %w", i, ErrEmptyEntity)
		}
		if o.Value < 0 {
			return nil, fmt.Errorf("%s at %s has %d, %w", o.Entity, o.Date.Format(time.DateOnly), o.Value, ErrNegativeValue)
		}
		grouped[o.Entity] = append(grouped[o.Entity], o)
	}

	ds := &Dataset{
		entities: make(map[string]*Entity, len(grouped)),
		names:    make([]string, 0, len(grouped)),
	}
	for name, group := range grouped {
		e, err := newEntity(name, group)
		if err != nil {
			return nil, err
		}
		ds.entities[name] = e
		ds.names = append(ds.names, name)
	}
	sort.Strings(ds.names)
	return ds, nil
}

func newEntity(name string, obs []Observation) (*Entity, error) {
	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Date.Before(obs[j].Date)
	})

	code := obs[0].Code
	t := make([]time.Time, 0, len(obs))
	y := make([]float64, 0, len(obs))
	periodIdx := make([]int, 0, len(obs))
	for i, o := range obs {
		if o.Code != code {
			return nil, fmt.Errorf("%s has codes %d and %d, %w", name, code, o.Code, ErrInconsistentCode)
		}
		if i > 0 && o.Date.Equal(obs[i-1].Date) {
			return nil, fmt.Errorf("%s at %s, %w", name, o.Date.Format(time.DateOnly), ErrDuplicateDate)
		}
		t = append(t, o.Date)
		y = append(y, float64(o.Value))
		periodIdx = append(periodIdx, o.PeriodIndex)
	}

	series, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return nil, fmt.Errorf("unable to build series for %s, %w", name, err)
	}
	if !timedataset.TimeSlice(series.T).IsMonthly() {
		slog.Warn("entity observations are not contiguous months", "entity", name, "periods", len(t))
	}

	return &Entity{
		Name:        name,
		Code:        code,
		Series:      series,
		PeriodIndex: periodIdx,
	}, nil
}

// Entities returns the sorted entity names
func (d *Dataset) Entities() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Len returns the number of entities
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Entity returns the history of a single entity
func (d *Dataset) Entity(name string) (*Entity, error) {
	if d != nil {
		if e, exists := d.entities[name]; exists {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%q, %w", name, ErrUnknownEntity)
}
