package services

import "github.com/google/uuid"

// DefaultMaxThreadDepth is the number of nesting levels shown when the
// caller does not choose one.
const DefaultMaxThreadDepth = 3

// CommentNode is a comment with the replies shown beneath it.
type CommentNode struct {
	CommentView
	Depth   int            `json:"depth"`
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentThreads groups a flat page of comments by parent, depth first,
// keeping the order of flat within each level. Replies below maxDepth levels
// are folded into the deepest visible level. A reply whose parent is not in
// flat is shown as a top-level comment.
func BuildCommentThreads(flat []CommentView, maxDepth int) []*CommentNode {
	if maxDepth < 1 {
		maxDepth = 1
	}

	onPage := make(map[uuid.UUID]bool, len(flat))
	for _, c := range flat {
		onPage[c.ID] = true
	}

	children := make(map[uuid.UUID][]CommentView)
	var roots []CommentView
	for _, c := range flat {
		if p := c.ParentCommentID; p != nil && *p != c.ID && onPage[*p] {
			children[*p] = append(children[*p], c)
			continue
		}
		roots = append(roots, c)
	}

	visited := make(map[uuid.UUID]bool, len(flat))
	var attach func(c CommentView, depth int, into *[]*CommentNode)
	attach = func(c CommentView, depth int, into *[]*CommentNode) {
		if visited[c.ID] {
			return
		}
		visited[c.ID] = true

		node := &CommentNode{CommentView: c, Depth: depth, Replies: []*CommentNode{}}
		*into = append(*into, node)
		for _, child := range children[c.ID] {
			if depth+1 < maxDepth {
				attach(child, depth+1, &node.Replies)
			} else {
				attach(child, depth, into)
			}
		}
	}

	threads := []*CommentNode{}
	for _, c := range roots {
		attach(c, 0, &threads)
	}
	// parent links that loop never reach a root
	for _, c := range flat {
		attach(c, 0, &threads)
	}
	return threads
}
