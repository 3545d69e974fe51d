package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	reviews ReviewRepository
	rooms   RoomReader
	log     *logrus.Logger
}

func NewService(reviews ReviewRepository, rooms RoomReader, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{reviews: reviews, rooms: rooms, log: log}
}

func (s *Service) Create(ctx context.Context, userID int64, slug string, req ReviewRequest) (*Result, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		RoomID:     room.ID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsFeatured: true,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.WithFields(logrus.Fields{"review_id": rv.ID, "room_id": room.ID, "user_id": userID}).Info("review created")
	return s.result(ctx, rv)
}

func (s *Service) Get(ctx context.Context, id int64) (*Result, error) {
	rv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, rv)
}

// Update rewrites rating and comment. Only the author or an admin may.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, req ReviewRequest) (*Result, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	rv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(rv) {
		return nil, ErrForbidden
	}

	rv.Rating = req.Rating
	rv.Comment = req.Comment
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if rv, err = s.load(ctx, id); err != nil {
		return nil, err
	}
	return s.result(ctx, rv)
}

// Delete removes a review and returns the room's rating without it.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) (*Result, error) {
	rv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(rv) {
		return nil, ErrForbidden
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	s.log.WithFields(logrus.Fields{"review_id": id, "room_id": rv.RoomID, "user_id": actor.UserID}).Info("review deleted")

	counts, err := s.reviews.RatingCounts(ctx, rv.RoomID)
	if err != nil {
		return nil, fmt.Errorf("rating counts: %w", err)
	}
	return &Result{RatingSummary: domain.SummarizeRatings(counts)}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Review, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) result(ctx context.Context, rv *domain.Review) (*Result, error) {
	counts, err := s.reviews.RatingCounts(ctx, rv.RoomID)
	if err != nil {
		return nil, fmt.Errorf("rating counts: %w", err)
	}
	return &Result{Review: toView(rv), RatingSummary: domain.SummarizeRatings(counts)}, nil
}

func validate(req *ReviewRequest) error {
	req.Comment = strings.TrimSpace(req.Comment)
	if fields := validator.Validate(req); len(fields) > 0 {
		return &InvalidError{Fields: fields}
	}
	return nil
}
