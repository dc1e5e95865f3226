package model

// AuditSummary is the per-tenant counter object returned by the audit
// service's summary endpoint, and also the cross-tenant accumulator shape.
type AuditSummary struct {
	TotalEvents    int            `json:"total_events"`
	EventsToday    int            `json:"events_today"`
	CriticalEvents int            `json:"critical_events"`
	BySeverity     map[string]int `json:"by_severity"`
	ByAction       map[string]int `json:"by_action"`
}

// SeverityCritical is the by-severity breakdown key backing the
// critical-events counter.
const SeverityCritical = "critical"

// Add accumulates another tenant's summary into s. Top-level counters and
// both breakdown maps are summed field-wise; new breakdown keys are inserted
// as encountered.
//
// The critical counter has dual bookkeeping upstream: some backends populate
// the direct field, some only the severity breakdown, some both. The
// breakdown is treated as the source of truth whenever it carries a critical
// key; the direct field is consulted only when it does not. A summary is
// never counted twice.
func (s *AuditSummary) Add(other AuditSummary) {
	s.TotalEvents += other.TotalEvents
	s.EventsToday += other.EventsToday

	if critical, ok := other.BySeverity[SeverityCritical]; ok {
		s.CriticalEvents += critical
	} else {
		s.CriticalEvents += other.CriticalEvents
	}

	if s.BySeverity == nil {
		s.BySeverity = make(map[string]int)
	}
	for k, v := range other.BySeverity {
		s.BySeverity[k] += v
	}

	if s.ByAction == nil {
		s.ByAction = make(map[string]int)
	}
	for k, v := range other.ByAction {
		s.ByAction[k] += v
	}
}
