package store

import (
	"fmt"
	"strings"
)

// DiffRuns compares two runs and reports flows present in one but not the
// other. Flows match on their full observable signature (path, context,
// element, label, action, source, mutation list); duplicates are matched by
// multiplicity. Added keeps the new run's order, Removed the old run's.
func (s *Store) DiffRuns(oldID, newID string) (*RunDiff, error) {
	for _, id := range []string{oldID, newID} {
		r, err := s.RunByID(id)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("diff runs: run %s not found", id)
		}
	}

	oldFlows, err := s.FlowsByRun(oldID)
	if err != nil {
		return nil, err
	}
	newFlows, err := s.FlowsByRun(newID)
	if err != nil {
		return nil, err
	}

	oldCounts := make(map[string]int, len(oldFlows))
	for _, f := range oldFlows {
		oldCounts[flowSignature(f)]++
	}
	newCounts := make(map[string]int, len(newFlows))
	for _, f := range newFlows {
		newCounts[flowSignature(f)]++
	}

	diff := &RunDiff{OldRun: oldID, NewRun: newID}
	seen := make(map[string]int)
	for _, f := range newFlows {
		sig := flowSignature(f)
		seen[sig]++
		if seen[sig] > oldCounts[sig] {
			diff.Added = append(diff.Added, f)
		}
	}
	seen = make(map[string]int)
	for _, f := range oldFlows {
		sig := flowSignature(f)
		seen[sig]++
		if seen[sig] > newCounts[sig] {
			diff.Removed = append(diff.Removed, f)
		}
	}
	return diff, nil
}

func flowSignature(f FlowRecord) string {
	parts := []string{
		f.Path, f.Context, f.ElementType,
		deref(f.Label), deref(f.ResponseVar),
		f.ActionType, f.Source,
	}
	for _, m := range f.Mutations {
		parts = append(parts, m.Target+"="+m.MutationType)
	}
	return strings.Join(parts, "\x1f")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
