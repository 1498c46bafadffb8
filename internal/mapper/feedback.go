package mapper

import (
	"time"

	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const (
	FeedbackPostTable = "feedback_post_c"

	FeedbackTitle        = "title_c"
	FeedbackDescription  = "description_c"
	FeedbackCategory     = "category_c"
	FeedbackStatus       = "status_c"
	FeedbackVoteCount    = "vote_count_c"
	FeedbackCommentCount = "comment_count_c"
	FeedbackAuthorName   = "author_name_c"
	FeedbackIsAnonymous  = "is_anonymous_c"
	FeedbackCreatedAt    = "created_at_c"
	FeedbackUpdatedAt    = "updated_at_c"
	FeedbackImages       = "images_c"
)

var FeedbackPostFields = []string{
	records.FieldID,
	FeedbackTitle,
	FeedbackDescription,
	FeedbackCategory,
	FeedbackStatus,
	FeedbackVoteCount,
	FeedbackCommentCount,
	FeedbackAuthorName,
	FeedbackIsAnonymous,
	FeedbackCreatedAt,
	FeedbackUpdatedAt,
	FeedbackImages,
}

func FeedbackPostFromRecord(r records.Record) model.FeedbackPost {
	return model.FeedbackPost{
		ID:           r.ID(),
		Title:        r.String(FeedbackTitle),
		Description:  r.String(FeedbackDescription),
		Category:     r.String(FeedbackCategory),
		Status:       model.PostStatus(orDefault(r.String(FeedbackStatus), string(model.PostStatusUnderReview))),
		VoteCount:    r.Int(FeedbackVoteCount),
		CommentCount: r.Int(FeedbackCommentCount),
		AuthorName:   orDefault(r.String(FeedbackAuthorName), model.DefaultAuthorName),
		IsAnonymous:  r.Bool(FeedbackIsAnonymous),
		CreatedAt:    timeOrNow(r.String(FeedbackCreatedAt)),
		UpdatedAt:    timeOrNow(r.String(FeedbackUpdatedAt)),
		Images:       decodeImages(r.String(FeedbackImages)),
	}
}

// NewFeedbackPostRecord builds the create payload. New posts always start under review with no votes or comments.
func NewFeedbackPostRecord(in model.CreateFeedbackPost, now time.Time) records.Record {
	ts := FormatTime(now)
	return records.Record{
		records.FieldName:    orDefault(in.Title, "Untitled"),
		FeedbackTitle:        in.Title,
		FeedbackDescription:  in.Description,
		FeedbackCategory:     in.Category,
		FeedbackStatus:       string(model.PostStatusUnderReview),
		FeedbackVoteCount:    0,
		FeedbackCommentCount: 0,
		FeedbackAuthorName:   orDefault(in.AuthorName, model.DefaultAuthorName),
		FeedbackIsAnonymous:  in.IsAnonymous,
		FeedbackCreatedAt:    ts,
		FeedbackUpdatedAt:    ts,
		FeedbackImages:       encodeImages(in.Images),
	}
}

// FeedbackPostPatchRecord always stamps updated_at_c.
func FeedbackPostPatchRecord(postID int64, p model.FeedbackPostPatch, now time.Time) records.Record {
	r := records.Record{
		records.FieldID:   postID,
		FeedbackUpdatedAt: FormatTime(now),
	}
	if p.Title != nil {
		r[FeedbackTitle] = *p.Title
	}
	if p.Description != nil {
		r[FeedbackDescription] = *p.Description
	}
	if p.Category != nil {
		r[FeedbackCategory] = *p.Category
	}
	if p.Status != nil {
		r[FeedbackStatus] = string(*p.Status)
	}
	if p.VoteCount != nil {
		r[FeedbackVoteCount] = *p.VoteCount
	}
	if p.CommentCount != nil {
		r[FeedbackCommentCount] = *p.CommentCount
	}
	if p.Images != nil {
		r[FeedbackImages] = encodeImages(*p.Images)
	}
	return r
}
