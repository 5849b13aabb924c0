// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// QuarterGroup aggregates the partitions that share a quarter label.
type QuarterGroup struct {
	Name         string      `json:"name" yaml:"name"`
	Files        []Partition `json:"files" yaml:"files"`
	TotalSizeMB  float64     `json:"total_size_mb" yaml:"total_size_mb"`
	TotalRecords int         `json:"total_records" yaml:"total_records"`
}

// QuarterIndex maps quarter labels to groups and remembers the order in
// which labels were first seen.
type QuarterIndex struct {
	order  []string
	groups map[string]*QuarterGroup
}

// NewQuarterIndex returns an empty index.
func NewQuarterIndex() *QuarterIndex {
	return &QuarterIndex{groups: make(map[string]*QuarterGroup)}
}

// Add appends p to the group for label, creating the group on first sight.
func (q *QuarterIndex) Add(label string, p Partition, sizeMB float64) {
	g, ok := q.groups[label]
	if !ok {
		g = &QuarterGroup{Name: label}
		q.groups[label] = g
		q.order = append(q.order, label)
	}
	g.Files = append(g.Files, p)
	g.TotalSizeMB += sizeMB
	g.TotalRecords += p.Records
}

// Get returns the group for name.
func (q *QuarterIndex) Get(name string) (*QuarterGroup, bool) {
	if q == nil {
		return nil, false
	}
	g, ok := q.groups[name]
	return g, ok
}

// Len returns the number of quarters.
func (q *QuarterIndex) Len() int {
	if q == nil {
		return 0
	}
	return len(q.order)
}

// Names returns the quarter labels in first-seen order.
func (q *QuarterIndex) Names() []string {
	if q == nil {
		return nil
	}
	out := make([]string, len(q.order))
	copy(out, q.order)
	return out
}

// Sorted returns the quarter labels in lexical order, newest first when desc
// is set. Labels of the form "YYYY Qn" sort chronologically.
func (q *QuarterIndex) Sorted(desc bool) []string {
	names := q.Names()
	if desc {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	} else {
		sort.Strings(names)
	}
	return names
}

// Groups returns the groups in first-seen order.
func (q *QuarterIndex) Groups() []*QuarterGroup {
	if q == nil {
		return nil
	}
	out := make([]*QuarterGroup, 0, len(q.order))
	for _, name := range q.order {
		out = append(out, q.groups[name])
	}
	return out
}
