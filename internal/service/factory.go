package service

import (
	"upvote.app/relay/core/config"
	"upvote.app/relay/internal/store"
)

type Services struct {
	stores     *store.Stores
	roadmapCfg config.RoadmapConfig
}

func NewServices(stores *store.Stores, roadmapCfg config.RoadmapConfig) *Services {
	return &Services{
		stores:     stores,
		roadmapCfg: roadmapCfg,
	}
}

func (s *Services) Feedback() FeedbackService {
	return NewFeedbackService(s.stores.Feedback())
}

func (s *Services) Comments() CommentService {
	return NewCommentService(s.stores.Comments(), s.stores.Feedback())
}

// Roadmap returns a new service. Callers should keep one instance so stage updates stay serialized.
func (s *Services) Roadmap() RoadmapService {
	return NewRoadmapService(s.stores.Roadmap(), s.stores.Feedback(), s.roadmapCfg.JoinConcurrency)
}

func (s *Services) Changelog() ChangelogService {
	return NewChangelogService(s.stores.Changelog())
}
