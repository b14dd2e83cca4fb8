package workflow

import (
	"errors"

	"github.com/JoemMastertech/cantina/internal/catalog"
)

// ErrNotPermitted rejects a mixer increment that would break a limit.
// The caller gets a refusal, never a silently clamped count.
var ErrNotPermitted = errors.New("mixer limit reached")

// Compound-rule weights. A bottle's mixer allowance is a shared
// capacity: a juice pitcher occupies two and a half times the room of a
// soda. Kept in integers by doubling; the worked combinations are
// 1 juice + 2 sodas (fits), 0 juice + 5 sodas (fits, exactly),
// 2 juices (fits, exactly), and one step beyond any of those is over.
const (
	mixerCapacity = 10
	juiceWeight   = 5
	sodaWeight    = 2
)

// MixerRules validates counter increments against the per-category
// maximum and, for special categories, the compound juice/soda rule.
type MixerRules struct {
	table *catalog.Table
}

func NewMixerRules(table *catalog.Table) *MixerRules {
	return &MixerRules{table: table}
}

// CanIncrement reports whether one more of option fits under behavior's
// limits given the current counts. Returns ErrNotPermitted when not.
func (r *MixerRules) CanIncrement(behavior catalog.Behavior, counts map[string]int, option string) error {
	if behavior.CompoundRule {
		return r.checkCompound(counts, option)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if total >= behavior.MaxMixers {
		return ErrNotPermitted
	}
	return nil
}

func (r *MixerRules) checkCompound(counts map[string]int, option string) error {
	juices, sodas := 0, 0
	for opt, n := range counts {
		if r.table.IsJuice(opt) {
			juices += n
		} else {
			sodas += n
		}
	}
	if r.table.IsJuice(option) {
		juices++
	} else {
		sodas++
	}

	if juices*juiceWeight+sodas*sodaWeight > mixerCapacity {
		return ErrNotPermitted
	}
	return nil
}
