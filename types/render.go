package types

// RenderStatus is the job status reported by the render service. The service
// may report intermediate statuses we do not know about; anything that is not
// a terminal value is treated as "still working".
type RenderStatus string

const (
	RenderPending    RenderStatus = "pending"
	RenderProcessing RenderStatus = "processing"
	RenderRendering  RenderStatus = "rendering"
	RenderSucceeded  RenderStatus = "succeeded"
	RenderCompleted  RenderStatus = "completed"
	RenderFailed     RenderStatus = "failed"
	RenderErrored    RenderStatus = "error"
)

// Succeeded reports whether the status is a success terminal state.
func (s RenderStatus) Succeeded() bool {
	return s == RenderSucceeded || s == RenderCompleted
}

// Failed reports whether the status is a failure terminal state.
func (s RenderStatus) Failed() bool {
	return s == RenderFailed || s == RenderErrored
}

// Terminal reports whether no further transition will occur.
func (s RenderStatus) Terminal() bool {
	return s.Succeeded() || s.Failed()
}

// RenderJob is the asynchronous unit of work that composites the selected
// assets and script into a final media file. Created by a render request,
// mutated only by polling, terminal once succeeded or failed.
type RenderJob struct {
	JobID    string       `json:"job_id"`
	Status   RenderStatus `json:"status"`
	VideoURL string       `json:"video_url,omitempty"`
	Error    string       `json:"error,omitempty"`
}
