// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package campaign

import (
	"sync"

	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/metrics"
)

// Run outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
	OutcomeCancelled = "cancelled"
)

// Report summarizes one orchestration pass. It is safe to read once Run
// has returned.
type Report struct {
	mu sync.Mutex

	// Total is the number of entries scheduled for dispatch.
	Total int
	// Processed counts scheduled entries that were dispatched or skipped.
	Processed int
	Succeeded int
	Failed    int
	Retracted int
	// Skipped counts entries per skip reason, including the ones never
	// scheduled.
	Skipped map[string]int
	Results map[string]*method.Result

	Aborted bool
	Reason  string
}

func newReport() *Report {
	return &Report{
		Skipped: make(map[string]int),
		Results: make(map[string]*method.Result),
	}
}

// exclude counts an entry that is not part of the progress total.
func (r *Report) exclude(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Skipped[reason]++
	metrics.EntriesSkipped.WithLabelValues(reason).Inc()
}

// skip counts a scheduled entry that was not dispatched.
func (r *Report) skip(id, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Processed++
	r.Skipped[reason]++
	metrics.EntriesSkipped.WithLabelValues(reason).Inc()
}

// finish records the result of a dispatched entry.
func (r *Report) finish(id string, res *method.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Processed++
	r.Results[id] = res
	switch {
	case res.Skipped:
		r.Skipped[SkipUnsupported]++
		metrics.EntriesSkipped.WithLabelValues(SkipUnsupported).Inc()
	case res.Success:
		r.Succeeded++
	default:
		r.Failed++
	}
	if res.Retracted {
		r.Retracted++
	}
}

func (r *Report) abort(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Aborted = true
	r.Reason = reason
}

func (r *Report) processed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Processed
}
