package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Well-known category names. The persisted file may carry additional
// user-added categories on top of these.
const (
	CategoryContexts   = "КОНТЕКСТЫ"
	CategoryRoles      = "РОЛИ"
	CategoryExtraction = "ДОБЫЧА"
	CategorySkills     = "СКИЛЫ"
	CategoryVerdicts   = "ВЕРДИКТЫ"
	CategoryGoals      = "ЦЕЛИ"
)

// Category is either a flat tag list or a two-level grouping
// (group name -> tags). Exactly one of Tags/Groups is meaningful.
type Category struct {
	Tags   []string
	Groups map[string][]string
}

// The persisted form mirrors the historical categories.json: flat
// categories are JSON arrays, grouped categories are objects whose
// group values are objects keyed by tag.
func (c Category) MarshalJSON() ([]byte, error) {
	if c.Groups != nil {
		out := make(map[string]map[string]struct{}, len(c.Groups))
		for group, tags := range c.Groups {
			m := make(map[string]struct{}, len(tags))
			for _, t := range tags {
				m[t] = struct{}{}
			}
			out[group] = m
		}
		return json.Marshal(out)
	}
	if c.Tags == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Tags)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		c.Groups = nil
		return json.Unmarshal(data, &c.Tags)
	}
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Tags = nil
	c.Groups = make(map[string][]string, len(raw))
	for group, tags := range raw {
		list := make([]string, 0, len(tags))
		for t := range tags {
			list = append(list, t)
		}
		sort.Strings(list)
		c.Groups[group] = list
	}
	return nil
}

// Store owns the category dictionary and its durable JSON form. Reads
// are frequent (every lexical classification), writes are rare and go
// through a single critical section that rewrites the whole file.
type Store struct {
	mu    sync.RWMutex
	path  string
	cats  map[string]*Category
	order []string
}

// Open loads the taxonomy from path, or initializes the default
// skeleton there when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.initDefault()
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	var raw map[string]*Category
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}

	s.cats = raw
	// Fixed categories first in canonical order, extras sorted after.
	for _, name := range defaultOrder() {
		if _, ok := raw[name]; ok {
			s.order = append(s.order, name)
		}
	}
	var extra []string
	for name := range raw {
		if !contains(s.order, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	s.order = append(s.order, extra...)

	return s, nil
}

func defaultOrder() []string {
	return []string{
		CategoryContexts,
		CategoryRoles,
		CategoryExtraction,
		CategorySkills,
		CategoryVerdicts,
		CategoryGoals,
	}
}

func (s *Store) initDefault() {
	s.cats = map[string]*Category{
		CategoryContexts: {Tags: []string{}},
		CategoryRoles: {Groups: map[string][]string{
			"Управленческие":  {},
			"Экспертные":      {},
			"Образовательные": {},
			"Социальные":      {},
		}},
		CategoryExtraction: {Groups: map[string][]string{
			"Энергия":  {},
			"Целевые":  {},
			"Проблемы": {},
		}},
		CategorySkills: {Groups: map[string][]string{
			"Базовые":         {},
			"Энергозатратные": {},
			"Энергия":         {},
			"Целевые":         {},
		}},
		CategoryVerdicts: {Groups: map[string][]string{}},
		CategoryGoals:    {Groups: map[string][]string{}},
	}
	s.order = defaultOrder()
}

// persist rewrites the whole file. Callers must hold at least a read
// lock on s.mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.cats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal taxonomy: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write taxonomy: %w", err)
	}
	return nil
}

// AddTag appends tag to a flat category if not already present and
// persists the full structure. Returns whether an addition occurred;
// false for an unrecognized or non-flat category.
func (s *Store) AddTag(category, tag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.cats[category]
	if !ok || cat.Groups != nil {
		return false, nil
	}
	if contains(cat.Tags, tag) {
		return false, nil
	}
	cat.Tags = append(cat.Tags, tag)
	return true, s.persist()
}

// AddGroupTag appends tag to a group inside a two-level category.
// Returns false when the category or group is unknown, or the tag is
// already present.
func (s *Store) AddGroupTag(category, group, tag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.cats[category]
	if !ok || cat.Groups == nil {
		return false, nil
	}
	tags, ok := cat.Groups[group]
	if !ok {
		return false, nil
	}
	if contains(tags, tag) {
		return false, nil
	}
	cat.Groups[group] = append(tags, tag)
	return true, s.persist()
}

// RoleTags returns every role tag in taxonomy traversal order (groups
// sorted by name, tags in insertion order within a group).
func (s *Store) RoleTags() []string {
	return s.categoryTags(CategoryRoles)
}

// SkillTags returns every skill tag in taxonomy traversal order.
func (s *Store) SkillTags() []string {
	return s.categoryTags(CategorySkills)
}

func (s *Store) categoryTags(category string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cat, ok := s.cats[category]
	if !ok {
		return nil
	}
	if cat.Groups == nil {
		out := make([]string, len(cat.Tags))
		copy(out, cat.Tags)
		return out
	}
	groups := make([]string, 0, len(cat.Groups))
	for g := range cat.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	var out []string
	for _, g := range groups {
		out = append(out, cat.Groups[g]...)
	}
	return out
}

// Snapshot returns a deep copy of the taxonomy for classification use,
// in traversal order.
func (s *Store) Snapshot() []NamedCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]NamedCategory, 0, len(s.order))
	for _, name := range s.order {
		cat := s.cats[name]
		nc := NamedCategory{Name: name}
		if cat.Groups == nil {
			nc.Tags = append([]string(nil), cat.Tags...)
		} else {
			nc.Groups = make(map[string][]string, len(cat.Groups))
			for g, tags := range cat.Groups {
				nc.Groups[g] = append([]string(nil), tags...)
			}
		}
		out = append(out, nc)
	}
	return out
}

// NamedCategory is a read-only view of one category.
type NamedCategory struct {
	Name   string
	Tags   []string
	Groups map[string][]string
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
