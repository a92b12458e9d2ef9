package models

// EventVersion tags the stream protocol so consumers can validate
// structurally instead of by convention.
const EventVersion = 1

type EventType string

const (
	EventProgress EventType = "progress"
	EventResult   EventType = "result"
	EventDone     EventType = "done"
)

// StreamEvent is one element of the progress stream emitted while a batch is
// running. The variant set is closed: progress, result, done.
type StreamEvent struct {
	Type      EventType        `json:"type"`
	Version   int              `json:"v"`
	Current   int              `json:"current,omitempty"`
	Total     int              `json:"total"`
	Candidate string           `json:"candidate,omitempty"`
	Score     float64          `json:"score,omitempty"`
	Status    string           `json:"status,omitempty"`
	Data      *CandidateResult `json:"data,omitempty"`
	Results   BatchResult      `json:"results,omitempty"`
}

func NewProgressEvent(current, total int, candidate string) StreamEvent {
	return StreamEvent{
		Type:      EventProgress,
		Version:   EventVersion,
		Current:   current,
		Total:     total,
		Candidate: candidate,
		Status:    "processing",
	}
}

func NewResultEvent(current, total int, result CandidateResult) StreamEvent {
	status := "complete"
	if !result.OK {
		status = "failed"
	}
	res := result
	return StreamEvent{
		Type:      EventResult,
		Version:   EventVersion,
		Current:   current,
		Total:     total,
		Candidate: result.CandidateName,
		Score:     result.ATSScore,
		Status:    status,
		Data:      &res,
	}
}

func NewDoneEvent(results BatchResult) StreamEvent {
	return StreamEvent{
		Type:    EventDone,
		Version: EventVersion,
		Total:   len(results),
		Results: results,
	}
}
