package learning

import (
	"sort"

	"vocab-service/internal/models"
)

// RankWrongWords orders unresolved records most-urgent-first. The urgency
// score depends on the current time, so the ranking is recomputed on every
// call and never persisted. limit <= 0 returns the whole queue.
func (e *Engine) RankWrongWords(records []*models.WrongWordRecord, limit int) []*models.WrongWordRecord {
	now := e.now()

	ranked := make([]*models.WrongWordRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.IsResolved {
			continue
		}
		ranked = append(ranked, rec)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].UrgencyScore(now), ranked[j].UrgencyScore(now)
		if si != sj {
			return si > sj
		}
		// Ties go to the most recent mistake.
		return ranked[i].LastWrongDate.After(ranked[j].LastWrongDate)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// QueueProjection renders ranked records into the read-only review-queue view.
func (e *Engine) QueueProjection(records []*models.WrongWordRecord) []models.ReviewQueueItem {
	now := e.now()
	items := make([]models.ReviewQueueItem, 0, len(records))
	for _, rec := range records {
		items = append(items, models.ReviewQueueItem{
			Word:                 rec.Word,
			WordIndex:            rec.WordIndex,
			DictionaryID:         rec.DictionaryID,
			ErrorCount:           rec.ErrorCount,
			ReviewPriority:       rec.ReviewPriority,
			UrgencyScore:         rec.UrgencyScore(now),
			ReviewStatus:         rec.ReviewStatus(),
			SuccessfulReviewRate: rec.SuccessfulReviewRate(),
			DaysSinceLastError:   rec.DaysSinceLastError(now),
		})
	}
	return items
}
