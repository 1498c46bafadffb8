package mapper

import (
	"strconv"
	"time"

	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const (
	RoadmapItemTable = "roadmap_item_c"

	RoadmapEstimatedDate  = "estimated_date_c"
	RoadmapFeedbackPostID = "feedback_post_id_c"
	RoadmapPosition       = "position_c"
	RoadmapStage          = "stage_c"
)

var RoadmapItemFields = []string{
	records.FieldID,
	RoadmapEstimatedDate,
	RoadmapFeedbackPostID,
	RoadmapPosition,
	RoadmapStage,
}

func RoadmapItemFromRecord(r records.Record) model.RoadmapItem {
	item := model.RoadmapItem{
		ID:             r.ID(),
		FeedbackPostID: r.String(RoadmapFeedbackPostID),
		Stage:          model.Stage(orDefault(r.String(RoadmapStage), string(model.StagePlanned))),
		Position:       r.Int(RoadmapPosition),
	}
	if t, ok := parseTime(r.String(RoadmapEstimatedDate)); ok {
		item.EstimatedDate = &t
	}
	return item
}

func NewRoadmapItemRecord(feedbackPostID int64, stage model.Stage, position int, estimated *time.Time) records.Record {
	postID := strconv.FormatInt(feedbackPostID, 10)
	return records.Record{
		records.FieldName:     "Roadmap Item for Post " + postID,
		RoadmapFeedbackPostID: postID,
		RoadmapStage:          string(stage),
		RoadmapPosition:       position,
		RoadmapEstimatedDate:  dateOrNil(estimated),
	}
}

func RoadmapItemPatchRecord(itemID int64, p model.RoadmapItemPatch) records.Record {
	r := records.Record{records.FieldID: itemID}
	if p.Stage != nil {
		r[RoadmapStage] = string(*p.Stage)
	}
	if p.Position != nil {
		r[RoadmapPosition] = *p.Position
	}
	if p.SetEstimatedDate {
		r[RoadmapEstimatedDate] = dateOrNil(p.EstimatedDate)
	}
	return r
}

func dateOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatDate(*t)
}
