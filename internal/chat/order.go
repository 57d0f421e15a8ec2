package chat

import (
	"math"
	"sort"
)

// SortConversations orders a directory most-recent-first: updated_at
// descending, then id descending. A missing timestamp sorts below every
// present one, so untitled-by-time conversations fall back to id order
// (ids are assigned in creation order). Pairwise comparison on optional
// timestamps is not transitive; ranking by a composite key keeps the
// result a strict total order no matter what the server sends.
func SortConversations(convs []Conversation) {
	sort.Slice(convs, func(i, j int) bool {
		at, ai := sortKey(convs[i])
		bt, bi := sortKey(convs[j])
		if at != bt {
			return at > bt
		}
		return ai > bi
	})
}

func sortKey(c Conversation) (int64, int64) {
	if c.UpdatedAt == nil {
		return math.MinInt64, c.ID
	}
	return c.UpdatedAt.UnixNano(), c.ID
}
