package mapper

import (
	"time"

	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const (
	CommentTable = "comment_c"

	CommentAuthorName    = "author_name_c"
	CommentContent       = "content_c"
	CommentCreatedAt     = "created_at_c"
	CommentIsAnonymous   = "is_anonymous_c"
	CommentParentID      = "parent_id_c"
	CommentPostID        = "post_id_c"
	CommentRoadmapItemID = "roadmap_item_id_c"
	CommentImages        = "images_c"
)

var CommentFields = []string{
	records.FieldID,
	CommentAuthorName,
	CommentContent,
	CommentCreatedAt,
	CommentIsAnonymous,
	CommentParentID,
	CommentPostID,
	CommentRoadmapItemID,
	CommentImages,
}

// CommentFromRecord treats empty parent and roadmap references as absent.
func CommentFromRecord(r records.Record) model.Comment {
	return model.Comment{
		ID:            r.ID(),
		AuthorName:    orDefault(r.String(CommentAuthorName), model.DefaultAuthorName),
		Content:       r.String(CommentContent),
		CreatedAt:     timeOrNow(r.String(CommentCreatedAt)),
		IsAnonymous:   r.Bool(CommentIsAnonymous),
		ParentID:      optional(r.String(CommentParentID)),
		PostID:        r.String(CommentPostID),
		RoadmapItemID: optional(r.String(CommentRoadmapItemID)),
		Images:        decodeImages(r.String(CommentImages)),
	}
}

func NewCommentRecord(in model.CreateComment, now time.Time) records.Record {
	author := orDefault(in.AuthorName, model.DefaultAuthorName)
	r := records.Record{
		records.FieldName:    "Comment by " + author,
		CommentAuthorName:    author,
		CommentContent:       in.Content,
		CommentCreatedAt:     FormatTime(now),
		CommentIsAnonymous:   in.IsAnonymous,
		CommentParentID:      "",
		CommentPostID:        in.PostID,
		CommentRoadmapItemID: "",
		CommentImages:        encodeImages(in.Images),
	}
	if in.ParentID != nil {
		r[CommentParentID] = *in.ParentID
	}
	if in.RoadmapItemID != nil {
		r[CommentRoadmapItemID] = *in.RoadmapItemID
	}
	return r
}

func CommentPatchRecord(commentID int64, p model.CommentPatch) records.Record {
	r := records.Record{records.FieldID: commentID}
	if p.Content != nil {
		r[CommentContent] = *p.Content
	}
	if p.Images != nil {
		r[CommentImages] = encodeImages(*p.Images)
	}
	return r
}
