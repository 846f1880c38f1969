package inmemory

import "sync"

type Snapshot struct {
	RunTotal         uint64            `json:"run_total"`
	RunCompleted     uint64            `json:"run_completed"`
	RunConflict      uint64            `json:"run_conflict"`
	RunFailed        uint64            `json:"run_failed"`
	FailedByStage    map[string]uint64 `json:"failed_by_stage"`
	ByClassification map[string]uint64 `json:"by_classification"`
}

type Recorder struct {
	mu       sync.Mutex
	complete uint64
	conflict uint64
	failed   uint64
	byStage  map[string]uint64
	byLabel  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byStage: map[string]uint64{},
		byLabel: map[string]uint64{},
	}
}

func (r *Recorder) RecordCompleted(classification string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complete++
	r.byLabel[classification]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailed(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
	r.byStage[stage]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		RunCompleted:     r.complete,
		RunConflict:      r.conflict,
		RunFailed:        r.failed,
		RunTotal:         r.complete + r.conflict + r.failed,
		FailedByStage:    make(map[string]uint64, len(r.byStage)),
		ByClassification: make(map[string]uint64, len(r.byLabel)),
	}
	for k, v := range r.byStage {
		out.FailedByStage[k] = v
	}
	for k, v := range r.byLabel {
		out.ByClassification[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
