package mapper_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"upvote.app/relay/internal/mapper"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

var now = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

var _ = Describe("FeedbackPost", func() {
	It("fills defaults for an empty record", func() {
		post := mapper.FeedbackPostFromRecord(records.Record{records.FieldID: int64(3)})

		Expect(post.ID).To(Equal(int64(3)))
		Expect(post.Status).To(Equal(model.PostStatusUnderReview))
		Expect(post.AuthorName).To(Equal("Anonymous"))
		Expect(post.VoteCount).To(BeZero())
		Expect(post.Images).NotTo(BeNil())
		Expect(post.Images).To(BeEmpty())
		Expect(post.CreatedAt).NotTo(BeZero())
	})

	It("parses stored values", func() {
		post := mapper.FeedbackPostFromRecord(records.Record{
			records.FieldID:             int64(1),
			mapper.FeedbackTitle:        "Dark mode",
			mapper.FeedbackStatus:       "planned",
			mapper.FeedbackVoteCount:    float64(5),
			mapper.FeedbackCommentCount: float64(2),
			mapper.FeedbackIsAnonymous:  true,
			mapper.FeedbackCreatedAt:    "2024-03-10T14:30:00Z",
			mapper.FeedbackImages:       `["a.png","b.png"]`,
		})

		Expect(post.Title).To(Equal("Dark mode"))
		Expect(post.Status).To(Equal(model.PostStatusPlanned))
		Expect(post.VoteCount).To(Equal(5))
		Expect(post.CommentCount).To(Equal(2))
		Expect(post.IsAnonymous).To(BeTrue())
		Expect(post.CreatedAt).To(BeTemporally("==", now))
		Expect(post.Images).To(Equal([]string{"a.png", "b.png"}))
	})

	It("falls back to no images when the stored JSON is malformed", func() {
		post := mapper.FeedbackPostFromRecord(records.Record{mapper.FeedbackImages: "not json"})
		Expect(post.Images).To(Equal([]string{}))
	})

	It("builds a create record with fixed initial state", func() {
		r := mapper.NewFeedbackPostRecord(model.CreateFeedbackPost{Description: "d"}, now)

		Expect(r).To(HaveKeyWithValue(records.FieldName, "Untitled"))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackStatus, "under-review"))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackVoteCount, 0))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackCommentCount, 0))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackAuthorName, "Anonymous"))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackImages, "[]"))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackCreatedAt, "2024-03-10T14:30:00.000000000Z"))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackUpdatedAt, "2024-03-10T14:30:00.000000000Z"))
	})

	It("only sends set patch fields plus updated_at_c", func() {
		title := "New title"
		r := mapper.FeedbackPostPatchRecord(9, model.FeedbackPostPatch{Title: &title}, now)

		Expect(r).To(HaveLen(3))
		Expect(r).To(HaveKeyWithValue(records.FieldID, int64(9)))
		Expect(r).To(HaveKeyWithValue(mapper.FeedbackTitle, "New title"))
		Expect(r).To(HaveKey(mapper.FeedbackUpdatedAt))
	})
})

var _ = Describe("Comment", func() {
	It("treats empty references as absent", func() {
		c := mapper.CommentFromRecord(records.Record{
			records.FieldID:             int64(2),
			mapper.CommentParentID:      "",
			mapper.CommentPostID:        "17",
			mapper.CommentRoadmapItemID: "",
		})

		Expect(c.ParentID).To(BeNil())
		Expect(c.RoadmapItemID).To(BeNil())
		Expect(c.PostID).To(Equal("17"))
		Expect(c.AuthorName).To(Equal("Anonymous"))
	})

	It("names the record after its author", func() {
		parent := "4"
		r := mapper.NewCommentRecord(model.CreateComment{AuthorName: "Ada", PostID: "17", ParentID: &parent}, now)

		Expect(r).To(HaveKeyWithValue(records.FieldName, "Comment by Ada"))
		Expect(r).To(HaveKeyWithValue(mapper.CommentParentID, "4"))
		Expect(r).To(HaveKeyWithValue(mapper.CommentRoadmapItemID, ""))
	})
})

var _ = Describe("RoadmapItem", func() {
	It("defaults stage and reads the estimated date", func() {
		item := mapper.RoadmapItemFromRecord(records.Record{
			records.FieldID:              int64(5),
			mapper.RoadmapFeedbackPostID: "17",
			mapper.RoadmapEstimatedDate:  "2024-06-08",
		})

		Expect(item.Stage).To(Equal(model.StagePlanned))
		Expect(item.Position).To(BeZero())
		Expect(item.EstimatedDate).NotTo(BeNil())
		Expect(*item.EstimatedDate).To(BeTemporally("==", time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)))
	})

	It("stores the estimated date as a calendar date", func() {
		date := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
		r := mapper.NewRoadmapItemRecord(17, model.StageInProgress, 1, &date)

		Expect(r).To(HaveKeyWithValue(records.FieldName, "Roadmap Item for Post 17"))
		Expect(r).To(HaveKeyWithValue(mapper.RoadmapFeedbackPostID, "17"))
		Expect(r).To(HaveKeyWithValue(mapper.RoadmapEstimatedDate, "2024-06-08"))
	})

	It("clears the estimated date when asked to", func() {
		r := mapper.RoadmapItemPatchRecord(5, model.RoadmapItemPatch{SetEstimatedDate: true})

		Expect(r).To(HaveKey(mapper.RoadmapEstimatedDate))
		Expect(r[mapper.RoadmapEstimatedDate]).To(BeNil())
	})
})

var _ = Describe("ChangelogEntry", func() {
	It("splits related post ids and drops empty segments", func() {
		e := mapper.ChangelogEntryFromRecord(records.Record{mapper.ChangelogRelatedPostIDs: "1,,3,"})
		Expect(e.RelatedPostIDs).To(Equal([]string{"1", "3"}))
	})

	It("joins related post ids on create", func() {
		r := mapper.NewChangelogEntryRecord(model.CreateChangelogEntry{Title: "v2", RelatedPostIDs: []string{"1", "3"}}, now)

		Expect(r).To(HaveKeyWithValue(records.FieldName, "v2"))
		Expect(r).To(HaveKeyWithValue(mapper.ChangelogRelatedPostIDs, "1,3"))
		Expect(r).To(HaveKeyWithValue(mapper.ChangelogReleaseDate, "2024-03-10T14:30:00.000000000Z"))
	})
})

var _ = Describe("FormatTime", func() {
	It("keeps sub-second timestamps in lexical time order", func() {
		base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		earlier := mapper.FormatTime(base.Add(120 * time.Millisecond))
		later := mapper.FormatTime(base.Add(123 * time.Millisecond))

		Expect(earlier).To(Equal("2024-03-10T12:00:00.120000000Z"))
		Expect(earlier < later).To(BeTrue())
	})
})
