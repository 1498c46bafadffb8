package mapper

import (
	"time"

	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
)

const (
	ChangelogEntryTable = "changelog_entry_c"

	ChangelogTitle          = "title_c"
	ChangelogDescription    = "description_c"
	ChangelogCategory       = "category_c"
	ChangelogReleaseDate    = "release_date_c"
	ChangelogRelatedPostIDs = "related_post_ids_c"
)

var ChangelogEntryFields = []string{
	records.FieldID,
	ChangelogTitle,
	ChangelogDescription,
	ChangelogCategory,
	ChangelogReleaseDate,
	ChangelogRelatedPostIDs,
}

func ChangelogEntryFromRecord(r records.Record) model.ChangelogEntry {
	return model.ChangelogEntry{
		ID:             r.ID(),
		Title:          r.String(ChangelogTitle),
		Description:    r.String(ChangelogDescription),
		Category:       r.String(ChangelogCategory),
		ReleaseDate:    timeOrNow(r.String(ChangelogReleaseDate)),
		RelatedPostIDs: splitIDs(r.String(ChangelogRelatedPostIDs)),
	}
}

// NewChangelogEntryRecord releases the entry at now.
func NewChangelogEntryRecord(in model.CreateChangelogEntry, now time.Time) records.Record {
	return records.Record{
		records.FieldName:       orDefault(in.Title, "Untitled"),
		ChangelogTitle:          in.Title,
		ChangelogDescription:    in.Description,
		ChangelogCategory:       in.Category,
		ChangelogReleaseDate:    FormatTime(now),
		ChangelogRelatedPostIDs: joinIDs(in.RelatedPostIDs),
	}
}

func ChangelogEntryPatchRecord(entryID int64, p model.ChangelogEntryPatch) records.Record {
	r := records.Record{records.FieldID: entryID}
	if p.Title != nil {
		r[ChangelogTitle] = *p.Title
	}
	if p.Description != nil {
		r[ChangelogDescription] = *p.Description
	}
	if p.Category != nil {
		r[ChangelogCategory] = *p.Category
	}
	if p.ReleaseDate != nil {
		r[ChangelogReleaseDate] = FormatTime(*p.ReleaseDate)
	}
	if p.RelatedPostIDs != nil {
		r[ChangelogRelatedPostIDs] = joinIDs(*p.RelatedPostIDs)
	}
	return r
}
