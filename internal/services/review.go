package services

import (
	"errors"
	"strings"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/nhatrovn/rental-backend/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrSignInRequired = errors.New("you must sign in to perform this action")
	ErrNotOwner       = errors.New("only the owner can modify this entry")
	ErrPostNotFound   = errors.New("post not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrReplyNotFound  = errors.New("reply not found")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

type ReplyRequest struct {
	Content string `json:"content"`
}

type UpdateNodeRequest struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating,omitempty"`
}

// ownerOf resolves the authoritative owner id of a node. The flat
// user_id column wins; the id of the preloaded user record is only a
// fallback for rows serialized without it.
func ownerOf(userID uint, user models.User) (uint, bool) {
	if userID != 0 {
		return userID, true
	}
	if user.ID != 0 {
		return user.ID, true
	}
	return 0, false
}

// canModify gates edit and delete: the actor must be authenticated and
// must be the owner. Both ids are canonical uints by the time they get
// here, so this is strict typed equality.
func canModify(actorID, ownerID uint) bool {
	return actorID != 0 && actorID == ownerID
}

// GetPostReviews assembles every root review of a post together with
// its reply tree. Two queries total: one for the reviews, one for all
// replies of those reviews, each with the author eagerly loaded.
func (s *ReviewService) GetPostReviews(postID uint) ([]ReviewTree, error) {
	var post models.Post
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var reviews []models.Review
	if err := s.db.Preload("User").
		Where("post_id = ? AND is_hidden = ?", postID, false).
		Order("created_at ASC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	trees := make([]ReviewTree, 0, len(reviews))
	if len(reviews) == 0 {
		return trees, nil
	}

	reviewIDs := make([]uint, len(reviews))
	for i, review := range reviews {
		reviewIDs[i] = review.ID
	}

	var replies []models.ReviewReply
	if err := s.db.Preload("User").
		Where("review_id IN ? AND is_hidden = ?", reviewIDs, false).
		Find(&replies).Error; err != nil {
		return nil, err
	}

	byReview := make(map[uint][]models.ReviewReply, len(reviews))
	for _, reply := range replies {
		byReview[reply.ReviewID] = append(byReview[reply.ReviewID], reply)
	}

	for _, review := range reviews {
		trees = append(trees, ReviewTree{
			Review:  review,
			Replies: buildReplyTree(byReview[review.ID]),
		})
	}
	return trees, nil
}

func (s *ReviewService) CreateReview(actorID, postID uint, req CreateReviewRequest) (*models.Review, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}
	if !utils.IsValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var post models.Post
	if err := s.db.Where("id = ? AND status = ?", postID, models.PostStatusPublished).First(&post).Error; err != nil {
		return nil, ErrPostNotFound
	}

	review := models.Review{
		PostID:  postID,
		UserID:  actorID,
		Rating:  req.Rating,
		Content: content,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&review, review.ID)
	return &review, nil
}

// ReplyToReview creates a depth-1 reply directly under a root review.
func (s *ReviewService) ReplyToReview(actorID, reviewID uint, req ReplyRequest) (*models.ReviewReply, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var review models.Review
	if err := s.db.Where("id = ? AND is_hidden = ?", reviewID, false).First(&review).Error; err != nil {
		return nil, ErrReviewNotFound
	}

	reply := models.ReviewReply{
		ReviewID: review.ID,
		UserID:   actorID,
		Content:  content,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&reply, reply.ID)
	return &reply, nil
}

// ReplyToReply creates a nested reply. The new row inherits review_id
// from its parent so the whole subtree stays attached to one root
// review.
func (s *ReviewService) ReplyToReply(actorID, parentReplyID uint, req ReplyRequest) (*models.ReviewReply, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var parent models.ReviewReply
	if err := s.db.Where("id = ? AND is_hidden = ?", parentReplyID, false).First(&parent).Error; err != nil {
		return nil, ErrReplyNotFound
	}

	reply := models.ReviewReply{
		ReviewID: parent.ReviewID,
		UserID:   actorID,
		ParentID: &parent.ID,
		Content:  content,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&reply, reply.ID)
	return &reply, nil
}

func (s *ReviewService) UpdateReview(actorID, reviewID uint, req UpdateNodeRequest) (*models.Review, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}

	var review models.Review
	if err := s.db.Preload("User").First(&review, reviewID).Error; err != nil {
		return nil, ErrReviewNotFound
	}

	ownerID, ok := ownerOf(review.UserID, review.User)
	if !ok || !canModify(actorID, ownerID) {
		return nil, ErrNotOwner
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	updates := map[string]interface{}{"content": content}
	if req.Rating != nil {
		if !utils.IsValidRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *req.Rating
	}

	// Only content and rating change; created_at and post linkage stay
	// untouched.
	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&review, review.ID)
	return &review, nil
}

func (s *ReviewService) UpdateReply(actorID, replyID uint, req UpdateNodeRequest) (*models.ReviewReply, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}

	var reply models.ReviewReply
	if err := s.db.Preload("User").First(&reply, replyID).Error; err != nil {
		return nil, ErrReplyNotFound
	}

	ownerID, ok := ownerOf(reply.UserID, reply.User)
	if !ok || !canModify(actorID, ownerID) {
		return nil, ErrNotOwner
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	updates := map[string]interface{}{"content": content}
	if req.Rating != nil {
		if !utils.IsValidRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *req.Rating
	}

	if err := s.db.Model(&reply).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&reply, reply.ID)
	return &reply, nil
}

// DeleteReview removes a root review together with every reply under
// it.
func (s *ReviewService) DeleteReview(actorID, reviewID uint) error {
	if actorID == 0 {
		return ErrSignInRequired
	}

	var review models.Review
	if err := s.db.Preload("User").First(&review, reviewID).Error; err != nil {
		return ErrReviewNotFound
	}

	ownerID, ok := ownerOf(review.UserID, review.User)
	if !ok || !canModify(actorID, ownerID) {
		return ErrNotOwner
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("review_id = ?", review.ID).Delete(&models.ReviewReply{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&review).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// DeleteReply removes a reply and cascades to its whole descendant
// subtree, hidden descendants included.
func (s *ReviewService) DeleteReply(actorID, replyID uint) error {
	if actorID == 0 {
		return ErrSignInRequired
	}

	var reply models.ReviewReply
	if err := s.db.Preload("User").First(&reply, replyID).Error; err != nil {
		return ErrReplyNotFound
	}

	ownerID, ok := ownerOf(reply.UserID, reply.User)
	if !ok || !canModify(actorID, ownerID) {
		return ErrNotOwner
	}

	var siblings []models.ReviewReply
	if err := s.db.Select("id", "parent_id").
		Where("review_id = ?", reply.ReviewID).
		Find(&siblings).Error; err != nil {
		return err
	}

	ids := collectSubtreeIDs(siblings, reply.ID)
	return s.db.Where("id IN ?", ids).Delete(&models.ReviewReply{}).Error
}

// ModerateReview toggles the moderation flag on a root review. Hiding
// a review takes its entire tree out of public reads.
func (s *ReviewService) ModerateReview(reviewID uint, action string) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	switch action {
	case "hide":
		return s.db.Model(&review).Update("is_hidden", true).Error
	case "show":
		return s.db.Model(&review).Update("is_hidden", false).Error
	default:
		return errors.New("invalid action, use 'hide' or 'show'")
	}
}

// ModerateReply toggles the moderation flag on a reply. Its visible
// descendants disappear from reads along with it.
func (s *ReviewService) ModerateReply(replyID uint, action string) error {
	var reply models.ReviewReply
	if err := s.db.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return err
	}

	switch action {
	case "hide":
		return s.db.Model(&reply).Update("is_hidden", true).Error
	case "show":
		return s.db.Model(&reply).Update("is_hidden", false).Error
	default:
		return errors.New("invalid action, use 'hide' or 'show'")
	}
}
