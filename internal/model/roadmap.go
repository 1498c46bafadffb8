package model

import "time"

type Stage string

const (
	StagePlanned    Stage = "planned"
	StageInProgress Stage = "in-progress"
	StageCompleted  Stage = "completed"
)

func (s Stage) IsValid() bool {
	switch s {
	case StagePlanned, StageInProgress, StageCompleted:
		return true
	}
	return false
}

type RoadmapItem struct {
	ID             int64         `json:"id"`
	FeedbackPostID string        `json:"feedbackPostId"`
	Stage          Stage         `json:"stage"`
	Position       int           `json:"position"`
	EstimatedDate  *time.Time    `json:"estimatedDate"`
	Post           *FeedbackPost `json:"post,omitempty"`
}

// Roadmap groups joined items by stage.
type Roadmap struct {
	Planned    []RoadmapItem `json:"planned"`
	InProgress []RoadmapItem `json:"in-progress"`
	Completed  []RoadmapItem `json:"completed"`
}

func NewRoadmap() Roadmap {
	return Roadmap{
		Planned:    []RoadmapItem{},
		InProgress: []RoadmapItem{},
		Completed:  []RoadmapItem{},
	}
}

// RoadmapItemPatch updates the estimated date only when SetEstimatedDate is true; a nil date clears it.
type RoadmapItemPatch struct {
	Stage            *Stage
	Position         *int
	SetEstimatedDate bool
	EstimatedDate    *time.Time
}
