package service

import (
	"context"
	"errors"
	"fmt"

	"party-score-tracker/internal/model"
	"party-score-tracker/internal/repository"
)

// GroupService handles group and member administration. The intake layer
// calls it to set up the records matches and votes reference.
type GroupService struct {
	groups  *repository.GroupRepository
	members *repository.MemberRepository
}

// NewGroupService creates a new GroupService instance.
func NewGroupService(
	groups *repository.GroupRepository,
	members *repository.MemberRepository,
) *GroupService {
	return &GroupService{
		groups:  groups,
		members: members,
	}
}

// CreateGroup creates a group with the given rule set. The rule set is
// fixed for the group's lifetime.
func (s *GroupService) CreateGroup(ctx context.Context, name string, ruleSet model.RuleSet) (*model.Group, error) {
	if name == "" {
		return nil, ErrGroupNameRequired
	}
	if !ruleSet.Valid() {
		return nil, ErrInvalidRuleSet
	}

	group, err := s.groups.Create(ctx, name, ruleSet)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// GetGroup retrieves a group by id.
func (s *GroupService) GetGroup(ctx context.Context, groupID int64) (*model.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// AddMember adds a member to a group. Humans must carry a linked external
// account id; CPU placeholders must not.
func (s *GroupService) AddMember(ctx context.Context, groupID int64, kind model.MemberKind, displayName string, accountID *int64) (*model.Member, error) {
	if kind != model.MemberHuman && kind != model.MemberCPU {
		return nil, ErrInvalidMemberKind
	}
	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}
	if kind == model.MemberHuman && accountID == nil {
		return nil, ErrAccountRequired
	}
	if kind == model.MemberCPU && accountID != nil {
		return nil, ErrAccountNotAllowed
	}

	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	member, err := s.members.Create(ctx, groupID, kind, displayName, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// RemoveMember marks a group member as left. The member row survives so
// historical matches keep valid references; removing an already-left
// member is a no-op.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, memberID int64) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member.GroupID != groupID {
		return ErrMemberNotFound
	}

	if err := s.members.MarkLeft(ctx, memberID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers retrieves all members of a group, including those who left.
func (s *GroupService) ListMembers(ctx context.Context, groupID int64) ([]model.Member, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
