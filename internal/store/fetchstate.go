package store

// phase enumerates the lifecycle of a cached remote resource.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseReady
	phaseFailed
)

// fetchState is the per-resource fetch state machine:
// Idle -> Loading -> Ready(params) | Failed(params).
//
// The skip policy lives entirely in begin: a fetch is skipped iff the
// previous attempt failed, the caller did not force, and the request
// params are unchanged. Any param change re-enables fetching.
//
// Each issued attempt gets a monotonically increasing sequence number;
// completions carrying a superseded sequence are discarded so a slow
// earlier request can never overwrite the result of a later one.
type fetchState struct {
	phase  phase
	params string
	seq    uint64
}

// begin applies the skip policy for a fetch with the given params
// fingerprint. When the fetch should proceed it transitions to Loading,
// records the params, and returns the attempt's sequence number.
func (f *fetchState) begin(params string, force bool) (uint64, bool) {
	changed := params != f.params
	if f.phase == phaseFailed && !force && !changed {
		return 0, false
	}
	f.phase = phaseLoading
	f.params = params
	f.seq++
	return f.seq, true
}

// succeed records a successful completion. It reports false, with no
// state change, when the attempt has been superseded.
func (f *fetchState) succeed(seq uint64) bool {
	if seq != f.seq {
		return false
	}
	f.phase = phaseReady
	return true
}

// fail records a failed completion, subject to the same supersession
// rule as succeed.
func (f *fetchState) fail(seq uint64) bool {
	if seq != f.seq {
		return false
	}
	f.phase = phaseFailed
	return true
}

// reset returns the resource to Idle. The sequence advances so any
// attempt still in flight from before the reset is superseded.
func (f *fetchState) reset() {
	f.phase = phaseIdle
	f.params = ""
	f.seq++
}

// paramsChanged reports whether params differ from the last attempt.
func (f *fetchState) paramsChanged(params string) bool {
	return params != f.params
}

func (f *fetchState) loading() bool { return f.phase == phaseLoading }
func (f *fetchState) ready() bool   { return f.phase == phaseReady }
func (f *fetchState) failed() bool  { return f.phase == phaseFailed }
