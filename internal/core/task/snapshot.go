package task

// Snapshot is the full task set at one point in time, or the error that
// prevented reading it.
type Snapshot struct {
	Tasks []Task
	Err   error
}

// Result is a single task looked up from a snapshot.
type Result struct {
	Task Task
	Err  error
}

// Find returns the task with id from the snapshot.
func (s Snapshot) Find(id int64) Result {
	if s.Err != nil {
		return Result{Err: s.Err}
	}
	for _, t := range s.Tasks {
		if t.ID == id {
			return Result{Task: t}
		}
	}
	return Result{Err: ErrNotFound}
}
