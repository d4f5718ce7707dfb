package models

import (
	"fmt"
	"sort"
)

// Key is the injection identity of a parameter: its type expression plus an
// optional qualifier distinguishing bindings of the same type. Keys are
// comparable values and are matched as a set, never by position.
type Key struct {
	Type      string
	Qualifier string
}

// NewKey creates a key from a type expression and qualifier
func NewKey(typeExpr, qualifier string) Key {
	return Key{Type: typeExpr, Qualifier: qualifier}
}

// Qualified reports whether the key carries a qualifier
func (k Key) Qualified() bool {
	return k.Qualifier != ""
}

func (k Key) String() string {
	if k.Qualifier == "" {
		return k.Type
	}
	return fmt.Sprintf("%s (qualifier %q)", k.Type, k.Qualifier)
}

// KeySet is an unordered collection of distinct keys
type KeySet map[Key]struct{}

// NewKeySet builds a set from the given keys
func NewKeySet(keys ...Key) KeySet {
	set := make(KeySet, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// Contains reports whether the key is in the set
func (s KeySet) Contains(key Key) bool {
	_, ok := s[key]
	return ok
}

// Diff returns the keys present in s but absent from other, in sorted order
func (s KeySet) Diff(other KeySet) []Key {
	var keys []Key
	for key := range s {
		if !other.Contains(key) {
			keys = append(keys, key)
		}
	}
	SortKeys(keys)
	return keys
}

// Equal reports whether both sets hold exactly the same keys
func (s KeySet) Equal(other KeySet) bool {
	if len(s) != len(other) {
		return false
	}
	for key := range s {
		if !other.Contains(key) {
			return false
		}
	}
	return true
}

// SortKeys orders keys by type then qualifier for deterministic output
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Qualifier < keys[j].Qualifier
	})
}
