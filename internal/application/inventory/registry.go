// Package inventory owns the in-memory registry of serialized units. The
// registry is the single owner of the chassis and battery tables: it loads
// them wholesale from the backing store at startup and persists them wholesale
// after every MarkSold batch. A crash between the in-memory transition and the
// save loses that transition; at this sale volume (human-operated, a few bills
// a day) that is an accepted at-most-once gap.
package inventory

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// Search result limits.
const (
	searchCap     = 20
	emptyQueryCap = 50
)

// UnitRef identifies one unit across kinds.
type UnitRef struct {
	Kind   string
	Serial string
}

// Store is the bulk load/save port backing the registry. The registry does
// not own the file format, only the record shape.
type Store interface {
	LoadUnits(kind string) ([]*entity.InventoryUnit, error)
	SaveUnits(kind string, units []*entity.InventoryUnit) error
}

// Registry is the injected, mutex-guarded inventory table. All access goes
// through it; nothing else mutates unit status.
type Registry struct {
	mu    sync.Mutex
	store Store
	log   *logger.Logger

	// units keeps insertion order per kind; index is serial -> unit.
	units map[string][]*entity.InventoryUnit
	index map[string]map[string]*entity.InventoryUnit
}

// NewRegistry loads both unit kinds from the store.
func NewRegistry(store Store, log *logger.Logger) (*Registry, error) {
	r := &Registry{
		store: store,
		log:   log,
		units: make(map[string][]*entity.InventoryUnit),
		index: make(map[string]map[string]*entity.InventoryUnit),
	}
	for _, kind := range []string{entity.UnitKindChassis, entity.UnitKindBattery} {
		loaded, err := store.LoadUnits(kind)
		if err != nil {
			return nil, err
		}
		r.units[kind] = loaded
		r.index[kind] = make(map[string]*entity.InventoryUnit, len(loaded))
		for _, u := range loaded {
			r.index[kind][u.SerialNumber] = u
		}
		log.Info().Str("kind", kind).Int("count", len(loaded)).Msg("inventory loaded")
	}
	return r, nil
}

// Find returns the unit with the exact serial, Sold units included.
func (r *Registry) Find(kind, serial string) (*entity.InventoryUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[kind]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	u, ok := idx[serial]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// Search matches Available units of the kind against a case-insensitive
// substring of the serial or the descriptive fields (make/model). Ordering:
// serial-suffix matches first, then serial-contains, then descriptive-only
// matches, each group alphabetical by serial, capped at 20. An empty query
// lists up to 50 Available units in insertion order.
func (r *Registry) Search(kind, query string) []*entity.InventoryUnit {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.units[kind]
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "" {
		out := make([]*entity.InventoryUnit, 0, emptyQueryCap)
		for _, u := range all {
			if !u.IsAvailable() {
				continue
			}
			cp := *u
			out = append(out, &cp)
			if len(out) == emptyQueryCap {
				break
			}
		}
		return out
	}

	var suffix, contains, descriptive []*entity.InventoryUnit
	for _, u := range all {
		if !u.IsAvailable() {
			continue
		}
		serial := strings.ToLower(u.SerialNumber)
		switch {
		case strings.HasSuffix(serial, q):
			suffix = append(suffix, u)
		case strings.Contains(serial, q):
			contains = append(contains, u)
		case matchesDescriptive(u, q):
			descriptive = append(descriptive, u)
		}
	}

	bySerial := func(units []*entity.InventoryUnit) {
		sort.Slice(units, func(i, j int) bool {
			return units[i].SerialNumber < units[j].SerialNumber
		})
	}
	bySerial(suffix)
	bySerial(contains)
	bySerial(descriptive)

	out := make([]*entity.InventoryUnit, 0, searchCap)
	for _, group := range [][]*entity.InventoryUnit{suffix, contains, descriptive} {
		for _, u := range group {
			if len(out) == searchCap {
				return out
			}
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

func matchesDescriptive(u *entity.InventoryUnit, q string) bool {
	for _, f := range []string{u.MakeModel, u.Make, u.Model} {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// MarkSold transitions each referenced unit AVAILABLE -> SOLD and persists
// the affected tables wholesale. Unknown serials are logged and skipped: the
// registry may be stale relative to a longer-running catalog. Re-selling an
// already Sold serial is a no-op at the status level. A persistence error is
// returned to the caller but the in-memory transition stands until restart.
func (r *Registry) MarkSold(refs []UnitRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := map[string]bool{}
	for _, ref := range refs {
		idx, ok := r.index[ref.Kind]
		if !ok {
			r.log.Warn().Str("kind", ref.Kind).Str("serial", ref.Serial).Msg("mark sold: unknown kind, skipping")
			continue
		}
		u, ok := idx[ref.Serial]
		if !ok {
			r.log.Warn().Str("kind", ref.Kind).Str("serial", ref.Serial).Msg("mark sold: unknown serial, skipping")
			continue
		}
		if u.Status == entity.UnitStatusSold {
			r.log.Debug().Str("serial", ref.Serial).Msg("mark sold: already sold")
			continue
		}
		u.Status = entity.UnitStatusSold
		changed[ref.Kind] = true
	}

	for kind := range changed {
		if err := r.store.SaveUnits(kind, r.units[kind]); err != nil {
			return err
		}
	}
	return nil
}

// SoldCostTotal sums the cost price of every Sold unit across kinds. Used by
// the dashboard to estimate profit against pre-tax revenue.
func (r *Registry) SoldCostTotal() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	for _, units := range r.units {
		for _, u := range units {
			if u.Status == entity.UnitStatusSold {
				total = total.Add(u.CostPrice)
			}
		}
	}
	return total
}

// AvailableCounts reports how many units of each kind remain sellable.
func (r *Registry) AvailableCounts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int, len(r.units))
	for kind, units := range r.units {
		n := 0
		for _, u := range units {
			if u.IsAvailable() {
				n++
			}
		}
		counts[kind] = n
	}
	return counts
}
