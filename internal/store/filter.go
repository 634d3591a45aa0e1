package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/taskflow/internal/models"
)

// StatusFilter is a task status or StatusAll
type StatusFilter string

const StatusAll StatusFilter = "all"

// PriorityFilter is a task priority shifted by one, so that the zero value is PriorityAll.
// Build one with FilterPriority.
type PriorityFilter int

const PriorityAll PriorityFilter = 0

// FilterPriority returns the filter matching only priority p
func FilterPriority(p models.Priority) PriorityFilter {
	return PriorityFilter(p) + 1
}

// Priority returns the priority matched by f and false for PriorityAll
func (f PriorityFilter) Priority() (models.Priority, bool) {
	if f == PriorityAll {
		return 0, false
	}
	return models.Priority(f - 1), true
}

// Filter narrows the visible task list. All set predicates must match.
// The zero Filter matches every task, like DefaultFilter.
type Filter struct {
	Status    StatusFilter
	Priority  PriorityFilter
	ProjectID *uint64
	Search    string
}

// DefaultFilter matches every task
func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Priority: PriorityAll}
}

// Match reports whether task passes every predicate of f
func (f Filter) Match(task models.Task) bool {
	if f.Status != StatusAll && f.Status != "" && models.TaskStatus(f.Status) != task.Status {
		return false
	}
	if p, ok := f.Priority.Priority(); ok && p != task.Priority {
		return false
	}
	if f.ProjectID != nil && (task.ProjectID == nil || *task.ProjectID != *f.ProjectID) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// FilterPatch changes some predicates of a Filter. ProjectID set to null removes the project predicate.
type FilterPatch struct {
	Status    *StatusFilter
	Priority  *PriorityFilter
	ProjectID models.Optional[uint64]
	Search    *string
}

// Apply returns f merged with p
func (p FilterPatch) Apply(f Filter) Filter {
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.ProjectID.Present {
		f.ProjectID = p.ProjectID.Ptr()
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

// ParseStatusFilter accepts "all" or a task status
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == string(StatusAll) || models.TaskStatus(s).Valid() {
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// ParsePriorityFilter accepts "all", a priority number or a priority name
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(StatusAll)) {
		return PriorityAll, nil
	}
	p, err := ParsePriority(s)
	if err != nil {
		return 0, err
	}
	return FilterPriority(p), nil
}

// ParsePriority accepts a priority number (0-3) or name (low, medium, high, urgent)
func ParsePriority(s string) (models.Priority, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if p := models.Priority(n); p.Valid() {
			return p, nil
		}
		return 0, fmt.Errorf("priority %d out of range", n)
	}
	for p := models.PriorityLow; p <= models.PriorityUrgent; p++ {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}
