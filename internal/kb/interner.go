package kb

import (
	"sync"

	"github.com/hashicorp/go-set/v3"
)

// interner is the KB's symbol table: a monotonic (symbols are never removed)
// mapping supporting cheap membership queries via hashicorp/go-set, guarded
// by its own mutex rather than the KB's broader locking. Shared across KB
// clones (interning is a cache, not part of the versioned COW state).
type interner struct {
	mu   sync.RWMutex
	seen *set.Set[string]
}

func newInterner() *interner {
	return &interner{seen: set.New[string](64)}
}

// Intern registers name in the symbol table and returns it unchanged --
// MeTTaTron's Value.Symbol already carries its name as a Go string, which
// makes Go's own string interning/comparison cheap; this table exists so
// the KB can answer "have we ever seen this symbol" (exposed as
// KB.KnownSymbol) in O(1) without scanning the rule/fact stores.
func (in *interner) Intern(name string) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.seen.Insert(name)
	return name
}

func (in *interner) Known(name string) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.seen.Contains(name)
}

func (in *interner) Size() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.seen.Size()
}
