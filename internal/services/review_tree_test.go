package services

import (
	"testing"
	"time"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint {
	return &v
}

func replyRow(id uint, parentID *uint, createdAt time.Time) models.ReviewReply {
	return models.ReviewReply{
		ID:        id,
		ReviewID:  1,
		UserID:    id,
		ParentID:  parentID,
		Content:   "reply",
		CreatedAt: createdAt,
	}
}

func TestBuildReplyTreeNesting(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// 1
	// ├── 2
	// │   └── 4
	// └── 3
	// 5
	replies := []models.ReviewReply{
		replyRow(4, uintPtr(2), base.Add(3*time.Minute)),
		replyRow(1, nil, base),
		replyRow(3, uintPtr(1), base.Add(2*time.Minute)),
		replyRow(2, uintPtr(1), base.Add(1*time.Minute)),
		replyRow(5, nil, base.Add(4*time.Minute)),
	}

	roots := buildReplyTree(replies)
	require.Len(t, roots, 2)

	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(5), roots[1].ID)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, uint(2), roots[0].Children[0].ID)
	assert.Equal(t, uint(3), roots[0].Children[1].ID)

	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, uint(4), roots[0].Children[0].Children[0].ID)
}

func TestBuildReplyTreeDepthAnnotation(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	replies := []models.ReviewReply{
		replyRow(1, nil, base),
		replyRow(2, uintPtr(1), base.Add(time.Minute)),
		replyRow(3, uintPtr(2), base.Add(2*time.Minute)),
	}

	roots := buildReplyTree(replies)
	require.Len(t, roots, 1)

	assert.Equal(t, 1, roots[0].Depth)
	assert.Equal(t, 2, roots[0].Children[0].Depth)
	assert.Equal(t, 3, roots[0].Children[0].Children[0].Depth)
}

func TestBuildReplyTreeDeepChain(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// A linear chain far deeper than any recursive walk would survive.
	const chainLen = 10000
	replies := make([]models.ReviewReply, 0, chainLen)
	replies = append(replies, replyRow(1, nil, base))
	for i := uint(2); i <= chainLen; i++ {
		parent := i - 1
		replies = append(replies, replyRow(i, &parent, base.Add(time.Duration(i)*time.Second)))
	}

	roots := buildReplyTree(replies)
	require.Len(t, roots, 1)

	// Walk down to the pruning ceiling.
	node := roots[0]
	depth := 1
	for len(node.Children) > 0 {
		node = node.Children[0]
		depth++
	}
	assert.Equal(t, maxReplyDepth, depth)
	assert.Equal(t, maxReplyDepth, node.Depth)
}

func TestBuildReplyTreeSiblingOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Same timestamp: id breaks the tie. Otherwise oldest first.
	replies := []models.ReviewReply{
		replyRow(7, nil, base.Add(time.Hour)),
		replyRow(3, nil, base),
		replyRow(2, nil, base),
		replyRow(5, nil, base.Add(time.Minute)),
	}

	roots := buildReplyTree(replies)
	require.Len(t, roots, 4)

	ids := []uint{roots[0].ID, roots[1].ID, roots[2].ID, roots[3].ID}
	assert.Equal(t, []uint{2, 3, 5, 7}, ids)
}

func TestBuildReplyTreeHiddenSubtree(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	hidden := replyRow(2, uintPtr(1), base.Add(time.Minute))
	hidden.IsHidden = true

	// 3 is visible but hangs off the hidden 2, so it must not surface.
	replies := []models.ReviewReply{
		replyRow(1, nil, base),
		hidden,
		replyRow(3, uintPtr(2), base.Add(2*time.Minute)),
		replyRow(4, uintPtr(1), base.Add(3*time.Minute)),
	}

	roots := buildReplyTree(replies)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, uint(4), roots[0].Children[0].ID)
}

func TestBuildReplyTreeOrphanDropped(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Parent 99 does not exist in the row set.
	replies := []models.ReviewReply{
		replyRow(1, nil, base),
		replyRow(2, uintPtr(99), base.Add(time.Minute)),
	}

	roots := buildReplyTree(replies)
	require.Len(t, roots, 1)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Empty(t, roots[0].Children)
}

func TestBuildReplyTreeEmpty(t *testing.T) {
	roots := buildReplyTree(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuildReplyTreeIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	rows := func() []models.ReviewReply {
		return []models.ReviewReply{
			replyRow(1, nil, base),
			replyRow(2, uintPtr(1), base.Add(time.Minute)),
			replyRow(3, nil, base.Add(2*time.Minute)),
		}
	}

	first := buildReplyTree(rows())
	second := buildReplyTree(rows())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, len(first[i].Children), len(second[i].Children))
	}
}

func TestCollectSubtreeIDs(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// 1
	// ├── 10
	// │   └── 11
	// └── 20
	// 2 (unrelated root)
	replies := []models.ReviewReply{
		replyRow(1, nil, base),
		replyRow(10, uintPtr(1), base.Add(time.Minute)),
		replyRow(11, uintPtr(10), base.Add(2*time.Minute)),
		replyRow(20, uintPtr(1), base.Add(3*time.Minute)),
		replyRow(2, nil, base.Add(4*time.Minute)),
	}

	ids := collectSubtreeIDs(replies, 10)
	assert.ElementsMatch(t, []uint{10, 11}, ids)

	ids = collectSubtreeIDs(replies, 1)
	assert.ElementsMatch(t, []uint{1, 10, 11, 20}, ids)
}

func TestCollectSubtreeIDsIncludesHidden(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	hidden := replyRow(11, uintPtr(10), base.Add(time.Minute))
	hidden.IsHidden = true

	replies := []models.ReviewReply{
		replyRow(10, nil, base),
		hidden,
		replyRow(12, uintPtr(11), base.Add(2*time.Minute)),
	}

	// Deletion must reach rows that moderation has hidden.
	ids := collectSubtreeIDs(replies, 10)
	assert.ElementsMatch(t, []uint{10, 11, 12}, ids)
}

func TestCollectSubtreeIDsLeaf(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	replies := []models.ReviewReply{
		replyRow(1, nil, base),
		replyRow(2, uintPtr(1), base.Add(time.Minute)),
	}

	ids := collectSubtreeIDs(replies, 2)
	assert.Equal(t, []uint{2}, ids)
}
