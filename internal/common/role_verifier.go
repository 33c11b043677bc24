package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	memberRepo repository.MemberRepository
}

func NewGlobalRoleVerifier(memberRepo repository.MemberRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{memberRepo: memberRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	member, err := verifier.memberRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("member is not valid")
	}

	if !slices.Contains(requiredRoles, member.Role) {
		return errors.New("member role does not have permission")
	}

	return nil
}

// OrgRoleVerifier gates staff operations. Admins pass for any organization;
// npo_staff pass only for their own.
type OrgRoleVerifier struct {
	memberRepo repository.MemberRepository
}

func NewOrgRoleVerifier(memberRepo repository.MemberRepository) *OrgRoleVerifier {
	return &OrgRoleVerifier{memberRepo: memberRepo}
}

func (verifier *OrgRoleVerifier) Verify(ctx context.Context, organizationID string) error {
	userID := xcontext.RequestUserID(ctx)
	member, err := verifier.memberRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("member is not valid")
	}

	if member.Role == entity.RoleAdmin {
		return nil
	}

	if member.Role != entity.RoleNpoStaff {
		return errors.New("member role does not have permission")
	}

	if !member.OrganizationID.Valid || member.OrganizationID.String != organizationID {
		return errors.New("member does not belong to this organization")
	}

	return nil
}
