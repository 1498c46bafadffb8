package store

import (
	"time"

	"upvote.app/relay/internal/mapper"
	"upvote.app/relay/internal/records"
)

// Tables lists every backend table the stores read and write.
var Tables = []string{
	mapper.FeedbackPostTable,
	mapper.CommentTable,
	mapper.RoadmapItemTable,
	mapper.ChangelogEntryTable,
}

type Stores struct {
	client records.Client
	now    func() time.Time
}

func NewStores(client records.Client) *Stores {
	return &Stores{client: client, now: time.Now}
}

// WithClock returns stores that stamp timestamps from now.
func (s *Stores) WithClock(now func() time.Time) *Stores {
	return &Stores{client: s.client, now: now}
}

func (s *Stores) Feedback() FeedbackStore {
	return newFeedbackStore(s.client, s.now)
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.client, s.now)
}

func (s *Stores) Roadmap() RoadmapStore {
	return newRoadmapStore(s.client)
}

func (s *Stores) Changelog() ChangelogStore {
	return newChangelogStore(s.client, s.now)
}
