package domain

import (
	"context"
	"time"

	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

type XpHistoryDomain interface {
	GetMyHistory(context.Context, *model.GetXpHistoryRequest) (*model.GetXpHistoryResponse, error)
}

type xpHistoryDomain struct {
	xpHistoryRepo repository.XpHistoryRepository
}

func NewXpHistoryDomain(xpHistoryRepo repository.XpHistoryRepository) *xpHistoryDomain {
	return &xpHistoryDomain{xpHistoryRepo: xpHistoryRepo}
}

func (d *xpHistoryDomain) GetMyHistory(
	ctx context.Context, req *model.GetXpHistoryRequest,
) (*model.GetXpHistoryResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and %d", cfg.MaxLimit)
	}

	filterCreatedAt := time.Time{}
	filterID := ""
	if req.Cursor != "" {
		createdAt, id, err := model.DecodeCursor(req.Cursor)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid cursor")
		}

		filterCreatedAt, filterID = createdAt, id
	}

	entries, err := d.xpHistoryRepo.GetList(
		ctx, xcontext.RequestUserID(ctx), filterCreatedAt, filterID, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get xp history: %v", err)
		return nil, errorx.Unknown
	}

	clientEntries := []model.XpHistoryEntry{}
	for i := range entries {
		clientEntries = append(clientEntries, model.ConvertXpHistoryEntry(&entries[i]))
	}

	nextCursor := ""
	if len(entries) == req.Limit {
		last := entries[len(entries)-1]
		nextCursor = model.EncodeCursor(last.CreatedAt, last.ID)
	}

	return &model.GetXpHistoryResponse{
		Entries:    clientEntries,
		NextCursor: nextCursor,
	}, nil
}
