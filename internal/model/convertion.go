package model

import (
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertMember(member *entity.Member) Member {
	if member == nil {
		return Member{}
	}

	return Member{
		ID:           member.ID,
		DisplayName:  member.DisplayName,
		Email:        member.Email,
		Country:      member.Country,
		Languages:    member.Languages,
		Skills:       member.Skills,
		Role:         string(member.Role),
		XP:           member.XP,
		ReferralCode: member.ReferralCode,
	}
}

func ConvertOrganization(org *entity.Organization) Organization {
	if org == nil {
		return Organization{}
	}

	return Organization{
		ID:        org.ID,
		Name:      org.Name,
		LogoURL:   org.LogoURL,
		Country:   org.Country,
		Languages: org.Languages,
		SDGs:      org.SDGs,
	}
}

func ConvertActivity(activity *entity.Activity) Activity {
	if activity == nil {
		return Activity{}
	}

	endDate := ""
	if activity.EndDate.Valid {
		endDate = activity.EndDate.Time.Format(DefaultTimeLayout)
	}

	return Activity{
		ID:             activity.ID,
		OrganizationID: activity.OrganizationID,
		Type:           string(activity.Type),
		Category:       activity.Category,
		Title:          activity.Title,
		Description:    activity.Description,
		Skills:         activity.Skills,
		Frequency:      string(activity.Frequency),
		Country:        activity.Country,
		SDG:            activity.SDG,
		Languages:      activity.Languages,
		XpReward:       activity.XpReward,
		Status:         string(activity.Status),
		StartDate:      activity.StartDate.Format(DefaultTimeLayout),
		EndDate:        endDate,
		Applicants:     activity.Applicants,
		CreatedAt:      activity.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertApplication(application *entity.Application) Application {
	if application == nil {
		return Application{}
	}

	return Application{
		ID:                  application.ID,
		ActivityID:          application.ActivityID,
		ApplicantID:         application.ApplicantID,
		Status:              string(application.Status),
		Message:             application.Message,
		NpoResponse:         application.NpoResponse.String,
		CancellationMessage: application.CancellationMessage.String,
		CreatedAt:           application.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:           application.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertMemberApplication(application *entity.MemberApplication) Application {
	if application == nil {
		return Application{}
	}

	return Application{
		ID:                  application.ID,
		ActivityID:          application.ActivityID,
		ApplicantID:         application.MemberID,
		Status:              string(application.Status),
		Message:             application.Message,
		NpoResponse:         application.NpoResponse.String,
		CancellationMessage: application.CancellationMessage.String,
		CreatedAt:           application.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:           application.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertValidation(validation *entity.Validation) Validation {
	if validation == nil {
		return Validation{}
	}

	return Validation{
		ActivityID: validation.ActivityID,
		UserID:     validation.UserID,
		Status:     string(validation.Status),
		Source:     string(validation.Source),
		CreatedAt:  validation.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertBadgeCategory(category *entity.BadgeCategory) BadgeCategory {
	if category == nil {
		return BadgeCategory{}
	}

	return BadgeCategory{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
		Order:       category.Order,
	}
}

func ConvertBadge(badge *entity.Badge) Badge {
	if badge == nil {
		return Badge{}
	}

	return Badge{
		ID:          badge.ID,
		CategoryID:  badge.CategoryID,
		Title:       badge.Title,
		Description: badge.Description,
		XP:          badge.XP,
		ImageRef:    badge.ImageRef,
		RuleType:    string(badge.RuleType),
		RuleData:    badge.RuleData,
	}
}

func ConvertMemberBadge(memberBadge *entity.MemberBadge) MemberBadge {
	if memberBadge == nil {
		return MemberBadge{}
	}

	return MemberBadge{
		CategoryID: memberBadge.CategoryID,
		BadgeID:    memberBadge.BadgeID,
		UnlockedAt: memberBadge.UnlockedAt.Format(DefaultTimeLayout),
	}
}

func ConvertNotification(notification *entity.Notification) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:          notification.ID,
		RecipientID: notification.RecipientID,
		Type:        string(notification.Type),
		Title:       notification.Title,
		Body:        notification.Body,
		Link:        notification.Link.String,
		Metadata:    notification.Metadata,
		CreatedAt:   notification.CreatedAt.Format(DefaultTimeLayout),
		Read:        notification.ReadAt.Valid,
	}
}

func ConvertXpHistoryEntry(entry *entity.XpHistoryEntry) XpHistoryEntry {
	if entry == nil {
		return XpHistoryEntry{}
	}

	return XpHistoryEntry{
		ID:        entry.ID,
		Title:     entry.Title,
		Points:    entry.Points,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt.Format(DefaultTimeLayout),
	}
}
