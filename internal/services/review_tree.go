package services

import (
	"sort"

	"github.com/nhatrovn/rental-backend/internal/models"
)

// maxReplyDepth is a safety ceiling for the depth annotation walk.
// Nothing legitimate gets anywhere near it; replies below the ceiling
// are pruned instead of overflowing the response.
const maxReplyDepth = 512

// ReplyNode is a reply together with its resolved children, ready for
// rendering. Depth is the distance from the root review (direct
// replies are 1).
type ReplyNode struct {
	models.ReviewReply
	Depth    int          `json:"depth"`
	Children []*ReplyNode `json:"children"`
}

// ReviewTree is a root review with its fully reconstructed reply
// forest.
type ReviewTree struct {
	models.Review
	Replies []*ReplyNode `json:"replies"`
}

// sortReplies orders flat rows by creation time ascending, id as a
// tiebreak. Building the tree from rows in this order keeps every
// sibling group ordered without a per-group sort.
func sortReplies(replies []models.ReviewReply) {
	sort.SliceStable(replies, func(i, j int) bool {
		if replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].ID < replies[j].ID
		}
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
}

// buildReplyTree reconstructs a review's reply forest from flat rows in
// a single grouping pass over an id-keyed map, so reconstruction is
// O(n) with no per-node queries and no call-stack recursion regardless
// of nesting depth.
//
// Hidden rows are left out of the node map entirely. A row whose parent
// is missing from the map is dropped, and a visible subtree hanging off
// a hidden node never becomes reachable from the roots, so hiding a
// node hides its whole subtree.
func buildReplyTree(replies []models.ReviewReply) []*ReplyNode {
	sortReplies(replies)

	nodes := make(map[uint]*ReplyNode, len(replies))
	for i := range replies {
		if replies[i].IsHidden {
			continue
		}
		nodes[replies[i].ID] = &ReplyNode{
			ReviewReply: replies[i],
			Children:    []*ReplyNode{},
		}
	}

	roots := []*ReplyNode{}
	for i := range replies {
		node, ok := nodes[replies[i].ID]
		if !ok {
			continue
		}
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	annotateDepth(roots)
	return roots
}

// annotateDepth stamps each node with its depth using an explicit work
// stack instead of recursion.
func annotateDepth(roots []*ReplyNode) {
	type frame struct {
		node  *ReplyNode
		depth int
	}

	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f.node.Depth = f.depth
		if f.depth >= maxReplyDepth {
			f.node.Children = []*ReplyNode{}
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
}

// collectSubtreeIDs returns rootID plus the ids of every descendant
// reply, hidden ones included, for cascade deletion. The walk is an
// iterative BFS over an adjacency map built from the flat rows of one
// review.
func collectSubtreeIDs(replies []models.ReviewReply, rootID uint) []uint {
	children := make(map[uint][]uint, len(replies))
	for i := range replies {
		if replies[i].ParentID != nil {
			children[*replies[i].ParentID] = append(children[*replies[i].ParentID], replies[i].ID)
		}
	}

	ids := []uint{rootID}
	queue := []uint{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, childID := range children[current] {
			ids = append(ids, childID)
			queue = append(queue, childID)
		}
	}
	return ids
}
