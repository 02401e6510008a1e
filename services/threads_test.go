package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(id uuid.UUID, parent *uuid.UUID) CommentView {
	return CommentView{ID: id, ParentCommentID: parent}
}

func TestBuildCommentThreads(t *testing.T) {
	a, b, c, d, e := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	// a
	// └ b
	//   └ c
	//     └ d
	// e
	flat := []CommentView{view(a, nil), view(b, &a), view(c, &b), view(d, &c), view(e, nil)}

	t.Run("nests up to the depth limit", func(t *testing.T) {
		threads := BuildCommentThreads(flat, 3)
		require.Len(t, threads, 2)
		assert.Equal(t, a, threads[0].ID)
		assert.Equal(t, e, threads[1].ID)

		require.Len(t, threads[0].Replies, 1)
		bNode := threads[0].Replies[0]
		assert.Equal(t, b, bNode.ID)
		assert.Equal(t, 1, bNode.Depth)

		// c sits on the last visible level and d is folded beside it
		require.Len(t, bNode.Replies, 2)
		assert.Equal(t, c, bNode.Replies[0].ID)
		assert.Equal(t, d, bNode.Replies[1].ID)
		assert.Equal(t, 2, bNode.Replies[1].Depth)
		assert.Empty(t, bNode.Replies[0].Replies)
	})

	t.Run("depth one flattens everything", func(t *testing.T) {
		threads := BuildCommentThreads(flat, 1)
		assert.Len(t, threads, 5)
		for _, node := range threads {
			assert.Zero(t, node.Depth)
		}
	})

	t.Run("reply without its parent on the page is top level", func(t *testing.T) {
		threads := BuildCommentThreads([]CommentView{view(c, &b), view(d, &c)}, 3)
		require.Len(t, threads, 1)
		assert.Equal(t, c, threads[0].ID)
		require.Len(t, threads[0].Replies, 1)
		assert.Equal(t, d, threads[0].Replies[0].ID)
	})

	t.Run("looping parent links still render every comment once", func(t *testing.T) {
		threads := BuildCommentThreads([]CommentView{view(a, &b), view(b, &a), view(c, &c)}, 3)
		total := 0
		var count func(nodes []*CommentNode)
		count = func(nodes []*CommentNode) {
			for _, n := range nodes {
				total++
				count(n.Replies)
			}
		}
		count(threads)
		assert.Equal(t, 3, total)
	})

	t.Run("empty page", func(t *testing.T) {
		threads := BuildCommentThreads(nil, 3)
		assert.NotNil(t, threads)
		assert.Empty(t, threads)
	})
}
