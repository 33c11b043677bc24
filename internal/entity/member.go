package entity

import (
	"database/sql"

	"github.com/voluntree-lab/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleMember     = enum.New(GlobalRole("member"))
	RoleNpoStaff   = enum.New(GlobalRole("npo_staff"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleAmbassador = enum.New(GlobalRole("ambassador"))
)

var GlobalAdminRoles = []GlobalRole{RoleAdmin}

type Member struct {
	Base

	DisplayName string
	Email       string `gorm:"uniqueIndex"`
	Country     string
	Languages   Array[string]
	Skills      Array[string]

	Role GlobalRole

	// OrganizationID scopes npo_staff members to the organization whose
	// activities they may mutate.
	OrganizationID sql.NullString
	Organization   *Organization `gorm:"foreignKey:OrganizationID"`

	// XP and badge rows are written only by the reward commit.
	XP int

	ReferralCode string `gorm:"uniqueIndex"`
	ReferredBy   sql.NullString
}
