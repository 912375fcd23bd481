package kb

import "github.com/f1r3fly-io/mettatron/internal/value"

// trieNode is one node of the persistent, copy-on-write fact trie. Nodes are
// immutable once built: inserting a new fact produces new nodes only along
// the path that changed, sharing every other branch with the previous root.
// Ordinary GC reclaims abandoned branches once the last root referencing
// them is dropped, so no explicit refcount bookkeeping is needed.
type trieNode struct {
	children map[byte]*trieNode
	terminal bool
	fact     value.Value
}

// factTrie is the fact store: a canonical-key-indexed trie plus a flat,
// insertion-ordered list used for the non-ground query fallback scan (prefix
// descent only works for a ground pattern; a pattern containing variables
// falls back to a linear match over this list).
type factTrie struct {
	root *trieNode
	all  []value.Value // insertion order, for query() over non-ground patterns
}

func newFactTrie() *factTrie {
	return &factTrie{root: &trieNode{}}
}

// insert returns a new factTrie with fact added under key, sharing storage
// with the receiver wherever the path is unaffected. It is idempotent: if
// key is already present, the receiver itself is returned unchanged.
func (t *factTrie) insert(key string, fact value.Value) *factTrie {
	if t.has(key) {
		return t
	}
	newRoot := insertPath(t.root, key, 0, fact)
	all := make([]value.Value, len(t.all)+1)
	copy(all, t.all)
	all[len(t.all)] = fact
	return &factTrie{root: newRoot, all: all}
}

func insertPath(n *trieNode, key string, i int, fact value.Value) *trieNode {
	if n == nil {
		n = &trieNode{}
	}
	cp := &trieNode{terminal: n.terminal, fact: n.fact}
	if n.children != nil {
		cp.children = make(map[byte]*trieNode, len(n.children))
		for k, v := range n.children {
			cp.children[k] = v
		}
	}
	if i == len(key) {
		cp.terminal = true
		cp.fact = fact
		return cp
	}
	if cp.children == nil {
		cp.children = make(map[byte]*trieNode, 1)
	}
	cp.children[key[i]] = insertPath(cp.children[key[i]], key, i+1, fact)
	return cp
}

// has is the O(prefix-length) ground-fact membership fast path.
func (t *factTrie) has(key string) bool {
	_, ok := t.get(key)
	return ok
}

// get is the O(prefix-length) ground-fact lookup fast path, returning the
// stored fact itself rather than just its presence.
func (t *factTrie) get(key string) (value.Value, bool) {
	n := t.root
	for i := 0; i < len(key); i++ {
		if n == nil || n.children == nil {
			return value.Value{}, false
		}
		n = n.children[key[i]]
	}
	if n != nil && n.terminal {
		return n.fact, true
	}
	return value.Value{}, false
}
