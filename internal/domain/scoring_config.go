package domain

import (
	"context"
	"errors"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hungercard/backend/internal/domain/scoring"
	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/internal/model"
	"github.com/hungercard/backend/internal/repository"
	"github.com/hungercard/backend/pkg/errorx"
	"github.com/hungercard/backend/pkg/xcontext"
)

type ScoringConfigDomain interface {
	Create(ctx context.Context, req *model.CreateScoringConfigRequest) (*model.CreateScoringConfigResponse, error)
	Update(ctx context.Context, req *model.UpdateScoringConfigRequest) (*model.UpdateScoringConfigResponse, error)
	GetList(ctx context.Context, req *model.GetListScoringConfigRequest) (*model.GetListScoringConfigResponse, error)
	UpsertNFTBoost(ctx context.Context, req *model.UpsertNFTBoostRequest) (*model.UpsertNFTBoostResponse, error)
	UpsertTokenBoost(ctx context.Context, req *model.UpsertTokenBoostRequest) (*model.UpsertTokenBoostResponse, error)
	GetBoosts(ctx context.Context, req *model.GetListBoostConfigRequest) (*model.GetListBoostConfigResponse, error)
}

type scoringConfigDomain struct {
	scoringConfigRepo repository.ScoringConfigRepository
}

func NewScoringConfigDomain(scoringConfigRepo repository.ScoringConfigRepository) ScoringConfigDomain {
	return &scoringConfigDomain{scoringConfigRepo: scoringConfigRepo}
}

func (d *scoringConfigDomain) Create(
	ctx context.Context, req *model.CreateScoringConfigRequest,
) (*model.CreateScoringConfigResponse, error) {
	config := entity.ScoringConfig{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Weight:      req.Weight,
		Enabled:     req.Enabled,
		Metadata:    entity.Map(req.Metadata),
	}

	metadata, err := scoring.NormalizedMetadata(config)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid scoring config: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid rule name or parameters")
	}

	_, err = d.scoringConfigRepo.GetByName(ctx, req.Name)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Rule %s already exists", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get scoring config: %v", err)
		return nil, errorx.Unknown
	}

	config.ID = uuid.NewString()
	config.Metadata = metadata
	if err := d.scoringConfigRepo.Create(ctx, &config); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create scoring config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateScoringConfigResponse{ID: config.ID}, nil
}

func (d *scoringConfigDomain) Update(
	ctx context.Context, req *model.UpdateScoringConfigRequest,
) (*model.UpdateScoringConfigResponse, error) {
	config, err := d.scoringConfigRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found rule %s", req.Name)
		}

		xcontext.Logger(ctx).Errorf("Cannot get scoring config: %v", err)
		return nil, errorx.Unknown
	}

	changes := map[string]any{}
	if req.Category != "" {
		changes["category"] = req.Category
	}

	if req.Description != "" {
		changes["description"] = req.Description
	}

	if req.Weight != nil {
		changes["weight"] = *req.Weight
	}

	if req.Enabled != nil {
		changes["enabled"] = *req.Enabled
	}

	if req.Metadata != nil {
		config.Metadata = entity.Map(req.Metadata)
		metadata, err := scoring.NormalizedMetadata(*config)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid scoring config: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid rule parameters")
		}

		changes["metadata"] = metadata
	}

	if len(changes) == 0 {
		return &model.UpdateScoringConfigResponse{}, nil
	}

	if err := d.scoringConfigRepo.Update(ctx, req.Name, changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update scoring config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateScoringConfigResponse{}, nil
}

func (d *scoringConfigDomain) GetList(
	ctx context.Context, req *model.GetListScoringConfigRequest,
) (*model.GetListScoringConfigResponse, error) {
	configs, err := d.scoringConfigRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get scoring configs: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetListScoringConfigResponse{Configs: []model.ScoringConfig{}}
	for _, config := range configs {
		resp.Configs = append(resp.Configs, model.ScoringConfig{
			Name:        config.Name,
			Category:    config.Category,
			Description: config.Description,
			Weight:      config.Weight,
			Enabled:     config.Enabled,
			Metadata:    config.Metadata,
		})
	}

	return &resp, nil
}

func (d *scoringConfigDomain) UpsertNFTBoost(
	ctx context.Context, req *model.UpsertNFTBoostRequest,
) (*model.UpsertNFTBoostResponse, error) {
	if !ethcommon.IsHexAddress(req.ContractAddress) {
		return nil, errorx.New(errorx.BadRequest, "Invalid contract address %s", req.ContractAddress)
	}

	if req.BoostPoints < 0 || req.MinBalance < 0 || req.MaxBoost < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative boost parameters")
	}

	err := d.scoringConfigRepo.UpsertNFTBoost(ctx, &entity.NFTBoostConfig{
		Base:            entity.Base{ID: uuid.NewString()},
		ContractAddress: req.ContractAddress,
		Name:            req.Name,
		Symbol:          req.Symbol,
		BoostPoints:     req.BoostPoints,
		MinBalance:      req.MinBalance,
		MaxBoost:        req.MaxBoost,
		Enabled:         req.Enabled,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert nft boost: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertNFTBoostResponse{}, nil
}

func (d *scoringConfigDomain) UpsertTokenBoost(
	ctx context.Context, req *model.UpsertTokenBoostRequest,
) (*model.UpsertTokenBoostResponse, error) {
	if !ethcommon.IsHexAddress(req.ContractAddress) {
		return nil, errorx.New(errorx.BadRequest, "Invalid contract address %s", req.ContractAddress)
	}

	if req.BoostPoints < 0 || req.MinBalanceUSD < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative boost parameters")
	}

	err := d.scoringConfigRepo.UpsertTokenBoost(ctx, &entity.TokenBoostConfig{
		Base:            entity.Base{ID: uuid.NewString()},
		ContractAddress: req.ContractAddress,
		Name:            req.Name,
		Symbol:          req.Symbol,
		BoostPoints:     req.BoostPoints,
		MinBalanceUSD:   req.MinBalanceUSD,
		Enabled:         req.Enabled,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert token boost: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertTokenBoostResponse{}, nil
}

func (d *scoringConfigDomain) GetBoosts(
	ctx context.Context, req *model.GetListBoostConfigRequest,
) (*model.GetListBoostConfigResponse, error) {
	nftBoosts, err := d.scoringConfigRepo.GetNFTBoosts(ctx, false)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nft boosts: %v", err)
		return nil, errorx.Unknown
	}

	tokenBoosts, err := d.scoringConfigRepo.GetTokenBoosts(ctx, false)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get token boosts: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetListBoostConfigResponse{
		NFTBoosts:   []model.NFTBoostConfig{},
		TokenBoosts: []model.TokenBoostConfig{},
	}
	for _, boost := range nftBoosts {
		resp.NFTBoosts = append(resp.NFTBoosts, model.NFTBoostConfig{
			ContractAddress: boost.ContractAddress,
			Name:            boost.Name,
			Symbol:          boost.Symbol,
			BoostPoints:     boost.BoostPoints,
			MinBalance:      boost.MinBalance,
			MaxBoost:        boost.MaxBoost,
			Enabled:         boost.Enabled,
		})
	}

	for _, boost := range tokenBoosts {
		resp.TokenBoosts = append(resp.TokenBoosts, model.TokenBoostConfig{
			ContractAddress: boost.ContractAddress,
			Name:            boost.Name,
			Symbol:          boost.Symbol,
			BoostPoints:     boost.BoostPoints,
			MinBalanceUSD:   boost.MinBalanceUSD,
			Enabled:         boost.Enabled,
		})
	}

	return &resp, nil
}
