package dto

import (
	"upvote.app/relay/internal/model"
)

// DefaultRoadmapPosition is used when a stage change does not name a position.
const DefaultRoadmapPosition = 1

type UpdateStageRequest struct {
	Stage    string `json:"stage" binding:"required,oneof=planned in-progress completed"`
	Position *int   `json:"position,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateStageRequest) PositionOrDefault() int {
	if r.Position == nil {
		return DefaultRoadmapPosition
	}
	return *r.Position
}

type UpdatePositionRequest struct {
	Position *int `json:"position" binding:"required,min=0"`
}

type RoadmapItemResponse struct {
	ID             int64         `json:"id,string"`
	FeedbackPostID string        `json:"feedbackPostId"`
	Stage          string        `json:"stage"`
	Position       int           `json:"position"`
	EstimatedDate  *string       `json:"estimatedDate"`
	Post           *PostResponse `json:"post,omitempty"`
}

func ToRoadmapItemResponse(item *model.RoadmapItem) *RoadmapItemResponse {
	resp := &RoadmapItemResponse{
		ID:             item.ID,
		FeedbackPostID: item.FeedbackPostID,
		Stage:          string(item.Stage),
		Position:       item.Position,
	}
	if item.EstimatedDate != nil {
		date := item.EstimatedDate.Format("2006-01-02")
		resp.EstimatedDate = &date
	}
	if item.Post != nil {
		resp.Post = ToPostResponse(item.Post)
	}
	return resp
}

func toRoadmapItemResponses(items []model.RoadmapItem) []*RoadmapItemResponse {
	out := make([]*RoadmapItemResponse, len(items))
	for i := range items {
		out[i] = ToRoadmapItemResponse(&items[i])
	}
	return out
}

type RoadmapResponse struct {
	Planned    []*RoadmapItemResponse `json:"planned"`
	InProgress []*RoadmapItemResponse `json:"in-progress"`
	Completed  []*RoadmapItemResponse `json:"completed"`
}

func ToRoadmapResponse(r model.Roadmap) *RoadmapResponse {
	return &RoadmapResponse{
		Planned:    toRoadmapItemResponses(r.Planned),
		InProgress: toRoadmapItemResponses(r.InProgress),
		Completed:  toRoadmapItemResponses(r.Completed),
	}
}
