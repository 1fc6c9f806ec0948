package services

import (
	"context"
	"errors"
	"log"

	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
	"gorm.io/gorm"
)

// OutcomeKind is the result of a reaction submission.
type OutcomeKind int

const (
	// OutcomeCreated means no reaction existed and one was inserted.
	OutcomeCreated OutcomeKind = iota
	// OutcomeSwitched means an existing reaction had its type flipped in place.
	OutcomeSwitched
	// OutcomeToggledOff means an identical reaction existed and was removed.
	OutcomeToggledOff
)

// ReactionOutcome is returned from Submit as a plain result, never signalled
// through errors. Reaction is set for Created and Switched; RemovedID for
// ToggledOff.
type ReactionOutcome struct {
	Kind      OutcomeKind
	Reaction  *models.Reaction
	RemovedID uint
}

// ReactionService implements the toggle state machine over the reaction store.
type ReactionService struct {
	reactions repositories.ReactionRepository
	comments  repositories.CommentRepository
	posts     repositories.PostRepository
}

// NewReactionService creates a new ReactionService
func NewReactionService(reactions repositories.ReactionRepository, comments repositories.CommentRepository, posts repositories.PostRepository) *ReactionService {
	return &ReactionService{reactions: reactions, comments: comments, posts: posts}
}

// Submit applies one reaction submission for (user, target):
//
//	no existing reaction        -> insert, Created
//	existing with same type     -> delete, ToggledOff
//	existing with another type  -> update in place, Switched
//
// A duplicate-key rejection from the store means an identical submission won a
// race between our lookup and insert; the loser re-reads the surviving row and
// retries as an update, so concurrent duplicates can never produce a second
// row or toggle each other off.
func (s *ReactionService) Submit(ctx context.Context, userID uint, req models.SubmitReactionRequest) (ReactionOutcome, error) {
	target, err := ResolveReactionTarget(req.PostID, req.CommentID)
	if err != nil {
		return ReactionOutcome{}, err
	}

	if err := s.verifyTargetExists(ctx, target); err != nil {
		return ReactionOutcome{}, err
	}

	existing, err := s.getForTarget(userID, target)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ReactionOutcome{}, err
	}

	if existing != nil {
		if existing.Type == req.Type {
			if err := s.reactions.DeleteReaction(existing.ID); err != nil {
				return ReactionOutcome{}, err
			}
			s.adjustLikesCount(ctx, existing, -1)
			return ReactionOutcome{Kind: OutcomeToggledOff, RemovedID: existing.ID}, nil
		}

		if err := s.reactions.UpdateReactionType(existing.ID, req.Type); err != nil {
			return ReactionOutcome{}, err
		}
		s.adjustLikesCountOnSwitch(ctx, existing, req.Type)
		existing.Type = req.Type
		return ReactionOutcome{Kind: OutcomeSwitched, Reaction: existing}, nil
	}

	reaction := &models.Reaction{
		UserID:    userID,
		PostID:    target.PostID,
		CommentID: target.CommentID,
		Type:      req.Type,
	}
	if err := s.reactions.CreateReaction(reaction); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReaction) {
			return s.recoverFromDuplicate(ctx, userID, target, req.Type)
		}
		return ReactionOutcome{}, err
	}
	if reaction.Type == models.ReactionLike {
		s.adjustLikesCount(ctx, reaction, 1)
	}
	return ReactionOutcome{Kind: OutcomeCreated, Reaction: reaction}, nil
}

// recoverFromDuplicate handles the losing side of a concurrent insert race.
// The winner's row survives: same requested type reads as Created against
// that row (both callers asked for the same state, so both get it), a
// different type becomes an in-place update, Switched. The winner's row may
// itself vanish before we re-read it, so the re-read and re-insert loop a few
// times before giving up.
func (s *ReactionService) recoverFromDuplicate(ctx context.Context, userID uint, target ReactionTarget, t models.ReactionType) (ReactionOutcome, error) {
	for attempt := 0; attempt < 5; attempt++ {
		existing, err := s.getForTarget(userID, target)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The winner was removed before we could re-read; take its place.
				reaction := &models.Reaction{
					UserID:    userID,
					PostID:    target.PostID,
					CommentID: target.CommentID,
					Type:      t,
				}
				if err := s.reactions.CreateReaction(reaction); err != nil {
					if errors.Is(err, repositories.ErrDuplicateReaction) {
						continue
					}
					return ReactionOutcome{}, err
				}
				if reaction.Type == models.ReactionLike {
					s.adjustLikesCount(ctx, reaction, 1)
				}
				return ReactionOutcome{Kind: OutcomeCreated, Reaction: reaction}, nil
			}
			return ReactionOutcome{}, err
		}

		if existing.Type == t {
			return ReactionOutcome{Kind: OutcomeCreated, Reaction: existing}, nil
		}

		if err := s.reactions.UpdateReactionType(existing.ID, t); err != nil {
			return ReactionOutcome{}, err
		}
		s.adjustLikesCountOnSwitch(ctx, existing, t)
		existing.Type = t
		return ReactionOutcome{Kind: OutcomeSwitched, Reaction: existing}, nil
	}
	return ReactionOutcome{}, repositories.ErrDuplicateReaction
}

// Remove deletes a reaction on behalf of its owner or a moderator.
func (s *ReactionService) Remove(ctx context.Context, callerID uint, callerRole models.Role, reactionID uint) error {
	reaction, err := s.reactions.GetReactionByID(reactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if reaction.UserID != callerID && !callerRole.CanModerate() {
		return ErrForbidden
	}

	if err := s.reactions.DeleteReaction(reaction.ID); err != nil {
		return err
	}
	s.adjustLikesCount(ctx, reaction, -1)
	return nil
}

// List returns reactions matching the filter.
func (s *ReactionService) List(filter repositories.ReactionFilter) ([]models.Reaction, error) {
	return s.reactions.ListReactions(filter)
}

func (s *ReactionService) getForTarget(userID uint, target ReactionTarget) (*models.Reaction, error) {
	if target.Kind == TargetPost {
		return s.reactions.GetForPost(userID, *target.PostID)
	}
	return s.reactions.GetForComment(userID, *target.CommentID)
}

func (s *ReactionService) verifyTargetExists(ctx context.Context, target ReactionTarget) error {
	if target.Kind == TargetPost {
		if _, err := s.posts.GetPostByID(ctx, *target.PostID); err != nil {
			if errors.Is(err, repositories.ErrPostNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	}
	if _, err := s.comments.GetCommentByID(*target.CommentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// adjustLikesCount keeps the denormalized likes counter on the post in step
// with like reactions. Best effort: counter drift is tolerable, reaction rows
// are not.
func (s *ReactionService) adjustLikesCount(ctx context.Context, reaction *models.Reaction, delta int) {
	if reaction.PostID == nil || reaction.Type != models.ReactionLike {
		return
	}
	var err error
	if delta > 0 {
		err = s.posts.IncrementLikesCount(ctx, *reaction.PostID)
	} else {
		err = s.posts.DecrementLikesCount(ctx, *reaction.PostID)
	}
	if err != nil {
		log.Printf("failed to adjust likes count for post %s: %v", *reaction.PostID, err)
	}
}

func (s *ReactionService) adjustLikesCountOnSwitch(ctx context.Context, old *models.Reaction, newType models.ReactionType) {
	if old.PostID == nil {
		return
	}
	var err error
	switch {
	case old.Type == models.ReactionLike && newType == models.ReactionDislike:
		err = s.posts.DecrementLikesCount(ctx, *old.PostID)
	case old.Type == models.ReactionDislike && newType == models.ReactionLike:
		err = s.posts.IncrementLikesCount(ctx, *old.PostID)
	}
	if err != nil {
		log.Printf("failed to adjust likes count for post %s: %v", *old.PostID, err)
	}
}
