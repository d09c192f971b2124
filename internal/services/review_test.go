package services

import (
	"testing"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestOwnerOf(t *testing.T) {
	t.Run("flat column wins", func(t *testing.T) {
		owner, ok := ownerOf(7, models.User{ID: 9})
		assert.True(t, ok)
		assert.Equal(t, uint(7), owner)
	})

	t.Run("falls back to preloaded user", func(t *testing.T) {
		owner, ok := ownerOf(0, models.User{ID: 9})
		assert.True(t, ok)
		assert.Equal(t, uint(9), owner)
	})

	t.Run("no owner at all", func(t *testing.T) {
		_, ok := ownerOf(0, models.User{})
		assert.False(t, ok)
	})
}

func TestCanModify(t *testing.T) {
	assert.True(t, canModify(5, 5))
	assert.False(t, canModify(5, 6))
	assert.False(t, canModify(0, 0), "anonymous actor never matches")
	assert.False(t, canModify(0, 5))
}

// The guard clauses below run before any query, so a nil DB proves the
// request never reaches storage.

func TestMutationsRequireSignIn(t *testing.T) {
	s := NewReviewService(nil)

	_, err := s.CreateReview(0, 1, CreateReviewRequest{Rating: 5, Content: "great place"})
	assert.ErrorIs(t, err, ErrSignInRequired)

	_, err = s.ReplyToReview(0, 1, ReplyRequest{Content: "agreed"})
	assert.ErrorIs(t, err, ErrSignInRequired)

	_, err = s.ReplyToReply(0, 1, ReplyRequest{Content: "agreed"})
	assert.ErrorIs(t, err, ErrSignInRequired)

	_, err = s.UpdateReview(0, 1, UpdateNodeRequest{Content: "edited"})
	assert.ErrorIs(t, err, ErrSignInRequired)

	assert.ErrorIs(t, s.DeleteReview(0, 1), ErrSignInRequired)
	assert.ErrorIs(t, s.DeleteReply(0, 1), ErrSignInRequired)
}

func TestWhitespaceContentRejected(t *testing.T) {
	s := NewReviewService(nil)

	_, err := s.CreateReview(1, 1, CreateReviewRequest{Rating: 5, Content: "   \n\t "})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = s.ReplyToReview(1, 1, ReplyRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = s.ReplyToReply(1, 1, ReplyRequest{Content: ""})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	s := NewReviewService(nil)

	_, err := s.CreateReview(1, 1, CreateReviewRequest{Rating: 0, Content: "fine"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = s.CreateReview(1, 1, CreateReviewRequest{Rating: 6, Content: "fine"})
	assert.ErrorIs(t, err, ErrInvalidRating)
}
