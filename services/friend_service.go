package services

import (
	"errors"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendService manages friend requests between users.
type FriendService struct {
	DB *gorm.DB
}

func NewFriendService(db *gorm.DB) *FriendService {
	return &FriendService{DB: db}
}

// RequestFriend opens a pending request. Self-requests and duplicate
// requests in either direction are rejected.
func (s *FriendService) RequestFriend(requesterID, recipientID string) (*models.FriendRelation, error) {
	if requesterID == recipientID {
		return nil, ErrSelfFriendRequest
	}

	var relation *models.FriendRelation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.FriendRelation{}).
			Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
				requesterID, recipientID, recipientID, requesterID).
			Where("status <> ?", models.FriendStatusRejected).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrFriendRequestExists
		}

		// The (requester, recipient) pair is unique, so a rejected
		// request in the same direction is reopened rather than
		// inserted again.
		var prior models.FriendRelation
		err := tx.Where("requester_id = ? AND recipient_id = ?", requesterID, recipientID).
			First(&prior).Error
		if err == nil {
			prior.Status = models.FriendStatusPending
			relation = &prior
			return tx.Save(&prior).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		relation = &models.FriendRelation{
			ID:          uuid.NewString(),
			RequesterID: requesterID,
			RecipientID: recipientID,
			Status:      models.FriendStatusPending,
		}
		return tx.Create(relation).Error
	})
	if err != nil {
		return nil, err
	}
	return relation, nil
}

// respond moves a pending request to a terminal status; only the
// recipient may respond.
func (s *FriendService) respond(requestID, actorID string, status models.FriendStatus) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var relation models.FriendRelation
		if err := tx.First(&relation, "id = ?", requestID).Error; err != nil {
			return err
		}
		if relation.Status != models.FriendStatusPending {
			return ErrRequestNotPending
		}
		if relation.RecipientID != actorID {
			return ErrNotAuthorized
		}
		relation.Status = status
		return tx.Save(&relation).Error
	})
}

func (s *FriendService) AcceptFriend(requestID, actorID string) error {
	return s.respond(requestID, actorID, models.FriendStatusAccepted)
}

func (s *FriendService) RejectFriend(requestID, actorID string) error {
	return s.respond(requestID, actorID, models.FriendStatusRejected)
}

// ListFriends returns the user ids of accepted friends, both
// directions.
func (s *FriendService) ListFriends(userID string) ([]string, error) {
	var relations []models.FriendRelation
	err := s.DB.Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
		userID, userID, models.FriendStatusAccepted).
		Find(&relations).Error
	if err != nil {
		return nil, err
	}

	friends := make([]string, 0, len(relations))
	for _, r := range relations {
		if r.RequesterID == userID {
			friends = append(friends, r.RecipientID)
		} else {
			friends = append(friends, r.RequesterID)
		}
	}
	return friends, nil
}

// ListPendingRequests returns requests awaiting the user's response.
func (s *FriendService) ListPendingRequests(userID string) ([]models.FriendRelation, error) {
	var relations []models.FriendRelation
	err := s.DB.Where("recipient_id = ? AND status = ?", userID, models.FriendStatusPending).
		Find(&relations).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return relations, nil
}
