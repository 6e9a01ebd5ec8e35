// Package creators resolves the accountable creator identities for a work
// Sentinels are ordinary values with a fixed sort priority so the merge
// needs no special casing beyond the comparator
package creators

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// SentinelOrphaned stands in for creators who orphaned the work
	SentinelOrphaned = "orphanedwork"

	// SentinelDeleted stands in for a work that no longer exists
	SentinelDeleted = "deletedwork"
)

// Creator is one creatorship row on a work
type Creator struct {
	PseudID int64
	UserID  int64

	// Pending marks an invited co-creator who has not accepted
	Pending bool

	// Orphan marks the placeholder account that holds orphaned works
	Orphan bool
}

// Ownership is the collaborator supplied authorship record for one work
// OriginalCreatorIDs lists user ids recorded at orphaning time, they
// disappear independently when those records are destroyed
type Ownership struct {
	WorkID             string
	Creators           []Creator
	OriginalCreatorIDs []int64
}

// Resolve produces the sorted, comma separated accountable identity list
// A nil ownership means the work is gone and resolves to the deleted
// sentinel. Anonymous and unrevealed works resolve like any other, the
// record itself carries no visibility flags
func Resolve(own *Ownership) string {
	if own == nil {
		return SentinelDeleted
	}

	users := map[int64]bool{}
	orphaned := false
	for _, c := range own.Creators {
		if c.Pending {
			continue
		}
		if c.Orphan {
			orphaned = true
			continue
		}
		users[c.UserID] = true
	}
	if orphaned {
		for _, id := range own.OriginalCreatorIDs {
			users[id] = true
		}
	}

	ids := make([]int64, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids)+1)
	if orphaned {
		parts = append(parts, SentinelOrphaned)
	}
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
