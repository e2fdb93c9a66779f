package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"

	"github.com/hungercard/backend/internal/client"
	"github.com/hungercard/backend/internal/common"
	"github.com/hungercard/backend/internal/domain/card"
	"github.com/hungercard/backend/internal/domain/scoring"
	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/internal/model"
	"github.com/hungercard/backend/internal/repository"
	"github.com/hungercard/backend/pkg/api/pinata"
	"github.com/hungercard/backend/pkg/enum"
	"github.com/hungercard/backend/pkg/errorx"
	"github.com/hungercard/backend/pkg/pubsub"
	"github.com/hungercard/backend/pkg/xcontext"
)

// Social fields the duplicate registry probes, in priority order. An earlier
// collision masks every later one in the user-facing error.
var duplicateSocialFields = []struct {
	field string
	label string
	value func(req *model.CreateApplicationRequest) string
}{
	{"twitter", "Twitter", func(req *model.CreateApplicationRequest) string { return req.Twitter }},
	{"discord", "Discord", func(req *model.CreateApplicationRequest) string { return req.Discord }},
	{"github", "Github", func(req *model.CreateApplicationRequest) string { return req.Github }},
	{"email", "Email", func(req *model.CreateApplicationRequest) string { return req.Email }},
}

type ApplicationDomain interface {
	Create(ctx context.Context, req *model.CreateApplicationRequest) (*model.CreateApplicationResponse, error)
	Get(ctx context.Context, req *model.GetApplicationRequest) (*model.GetApplicationResponse, error)
	GetList(ctx context.Context, req *model.GetListApplicationRequest) (*model.GetListApplicationResponse, error)
	Approve(ctx context.Context, req *model.ApproveApplicationRequest) (*model.ApproveApplicationResponse, error)
	Reject(ctx context.Context, req *model.RejectApplicationRequest) (*model.RejectApplicationResponse, error)
}

type applicationDomain struct {
	applicationRepo   repository.ApplicationRepository
	snapshotRepo      repository.WalletSnapshotRepository
	cardRepo          repository.GeneratedCardRepository
	scoringConfigRepo repository.ScoringConfigRepository
	walletCaller      client.WalletCaller
	cardGenerator     card.Generator
	pinataEndpoint    pinata.IEndpoint
	publisher         pubsub.Publisher

	// approveLocks serializes Approve calls per application. The conditional
	// update in the repository is the real guard, the lock just keeps a lost
	// race from running the whole pipeline for nothing.
	approveLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	snapshotRepo repository.WalletSnapshotRepository,
	cardRepo repository.GeneratedCardRepository,
	scoringConfigRepo repository.ScoringConfigRepository,
	walletCaller client.WalletCaller,
	cardGenerator card.Generator,
	pinataEndpoint pinata.IEndpoint,
	publisher pubsub.Publisher,
) ApplicationDomain {
	return &applicationDomain{
		applicationRepo:   applicationRepo,
		snapshotRepo:      snapshotRepo,
		cardRepo:          cardRepo,
		scoringConfigRepo: scoringConfigRepo,
		walletCaller:      walletCaller,
		cardGenerator:     cardGenerator,
		pinataEndpoint:    pinataEndpoint,
		publisher:         publisher,
		approveLocks:      xsync.NewMapOf[*sync.Mutex](),
	}
}

func (d *applicationDomain) Create(
	ctx context.Context, req *model.CreateApplicationRequest,
) (*model.CreateApplicationResponse, error) {
	if err := d.validateCreate(req); err != nil {
		return nil, err
	}

	// Every conflict check runs before the row is created.
	if err := d.checkConflict(ctx, req); err != nil {
		return nil, err
	}

	hungerLevel, _ := enum.ToEnum[entity.HungerLevel](req.HungerLevel)
	application := &entity.Application{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        req.UserID,
		Username:      req.Username,
		WalletAddress: req.WalletAddress,
		Twitter:       req.Twitter,
		Discord:       req.Discord,
		Telegram:      req.Telegram,
		Github:        req.Github,
		Email:         req.Email,
		HungerLevel:   hungerLevel,
		Dependents:    req.Dependents,
		ZipCode:       req.ZipCode,
		Status:        entity.ApplicationPending,
	}

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.CreateApplicationResponse(common.ConvertApplication(application))
	return &resp, nil
}

func (d *applicationDomain) validateCreate(req *model.CreateApplicationRequest) error {
	if req.UserID == "" || req.Username == "" {
		return errorx.New(errorx.BadRequest, "Not allow an empty user id or username")
	}

	if _, err := enum.ToEnum[entity.HungerLevel](req.HungerLevel); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid hunger level %s", req.HungerLevel)
	}

	if req.Dependents < 0 {
		return errorx.New(errorx.BadRequest, "Not allow a negative dependents count")
	}

	if req.WalletAddress != "" && !ethcommon.IsHexAddress(req.WalletAddress) {
		return errorx.New(errorx.BadRequest, "Invalid wallet address %s", req.WalletAddress)
	}

	return nil
}

func (d *applicationDomain) checkConflict(ctx context.Context, req *model.CreateApplicationRequest) error {
	existing, err := d.applicationRepo.GetByUserID(ctx, req.UserID)
	if err == nil {
		return duplicateIdentityError(existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get application by user id: %v", err)
		return errorx.Unknown
	}

	existing, err = d.applicationRepo.GetByUsername(ctx, req.Username)
	if err == nil {
		return duplicateIdentityError(existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get application by username: %v", err)
		return errorx.Unknown
	}

	for _, social := range duplicateSocialFields {
		value := social.value(req)
		if value == "" {
			continue
		}

		existing, err = d.applicationRepo.GetBySocial(ctx, social.field, value)
		if err == nil {
			return errorx.New(errorx.SocialAlreadyLinked,
				"%s already linked to another application", social.label).
				WithData(model.DuplicateDetail{
					ExistingApplication: existingApplicationOf(existing),
					DuplicateSocial:     social.field,
				})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get application by %s: %v", social.field, err)
			return errorx.Unknown
		}
	}

	return nil
}

func duplicateIdentityError(existing *entity.Application) error {
	return errorx.New(errorx.AlreadyApplied, "You have already applied").
		WithData(model.DuplicateDetail{ExistingApplication: existingApplicationOf(existing)})
}

func existingApplicationOf(app *entity.Application) model.ExistingApplication {
	return model.ExistingApplication{
		UserID:   app.UserID,
		Username: app.Username,
		Status:   string(app.Status),
	}
}

func (d *applicationDomain) Get(
	ctx context.Context, req *model.GetApplicationRequest,
) (*model.GetApplicationResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	application, err := d.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetApplicationResponse(common.ConvertApplication(application))
	return &resp, nil
}

func (d *applicationDomain) GetList(
	ctx context.Context, req *model.GetListApplicationRequest,
) (*model.GetListApplicationResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit %d", req.Limit)
	}

	var status entity.ApplicationStatus
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.ApplicationStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	applications, err := d.applicationRepo.GetList(ctx, status, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get application list: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetListApplicationResponse{Applications: []model.Application{}}
	for i := range applications {
		resp.Applications = append(resp.Applications, common.ConvertApplication(&applications[i]))
	}

	return &resp, nil
}

func (d *applicationDomain) Approve(
	ctx context.Context, req *model.ApproveApplicationRequest,
) (*model.ApproveApplicationResponse, error) {
	lock, _ := d.approveLocks.LoadOrStore(req.UserID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	application, err := d.applicationRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	switch application.Status {
	case entity.ApplicationApproved, entity.ApplicationMinted:
		return nil, errorx.New(errorx.AlreadyApproved, "This application was already approved")
	case entity.ApplicationRejected:
		return nil, errorx.New(errorx.NotApprovable, "Cannot approve a rejected application")
	}

	nftBoosts, err := d.scoringConfigRepo.GetNFTBoosts(ctx, true)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nft boost configs: %v", err)
		return nil, errorx.Unknown
	}

	tokenBoosts, err := d.scoringConfigRepo.GetTokenBoosts(ctx, true)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get token boost configs: %v", err)
		return nil, errorx.Unknown
	}

	snapshot, err := d.ensureSnapshot(ctx, application, nftBoosts, tokenBoosts)
	if err != nil {
		return nil, err
	}

	configs, err := d.scoringConfigRepo.GetEnabled(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get scoring configs: %v", err)
		return nil, errorx.Unknown
	}

	result, err := scoring.Score(configs, scoring.Input{
		App:         application,
		Snapshot:    snapshot,
		NFTBoosts:   nftBoosts,
		TokenBoosts: tokenBoosts,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot score application %s: %v", application.ID, err)
		return nil, errorx.Unknown
	}

	output, err := d.cardGenerator.Generate(ctx, card.Input{
		App:       application,
		Score:     result.TotalScore,
		Breakdown: result.Breakdown,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate card: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot generate the card, please retry")
	}

	// The image is pinned first so the metadata can embed its real gateway
	// URL. Metadata must never point at an unpinned image.
	gateway := xcontext.Configs(ctx).Pinata.Gateway
	imageCid, err := d.pinataEndpoint.PinFile(
		ctx, fmt.Sprintf("%s.png", application.Username), bytes.NewReader(output.Image))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pin card image: %v", err)
		common.PromCounters[common.PinningFailureTotal].WithLabelValues("image").Inc()
		return nil, errorx.New(errorx.Unavailable, "Cannot pin the card image, please retry")
	}

	output.Metadata["image"] = pinata.GatewayURL(gateway, imageCid)
	metadataCid, err := d.pinataEndpoint.PinJSON(
		ctx, fmt.Sprintf("%s.json", application.Username), output.Metadata)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pin card metadata: %v", err)
		common.PromCounters[common.PinningFailureTotal].WithLabelValues("metadata").Inc()
		return nil, errorx.New(errorx.Unavailable, "Cannot pin the card metadata, please retry")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	updated, err := d.applicationRepo.Approve(ctx, req.UserID, result.TotalScore, result.Breakdown)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot approve application: %v", err)
		return nil, errorx.Unknown
	}

	if !updated {
		return nil, errorx.New(errorx.AlreadyApproved, "This application was already approved")
	}

	generatedCard := &entity.GeneratedCard{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		ApplicationID: application.ID,
		ImageCid:      imageCid,
		MetadataCid:   metadataCid,
		ImageUrl:      pinata.IpfsURL(imageCid),
		MetadataUrl:   pinata.IpfsURL(metadataCid),
		Prompt:        output.Prompt,
		Theme:         output.Theme,
	}
	if err := d.cardRepo.Upsert(ctx, generatedCard); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert generated card: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.ApplicationApprovedTotal].
		WithLabelValues(string(application.HungerLevel)).Inc()
	d.publishApproved(ctx, application, result.TotalScore)

	return &model.ApproveApplicationResponse{
		UserID:             application.UserID,
		Score:              result.TotalScore,
		ScoreBreakdown:     common.ConvertBreakdown(result.Breakdown),
		ImageCid:           imageCid,
		MetadataCid:        metadataCid,
		ImageUrl:           pinata.IpfsURL(imageCid),
		MetadataUrl:        pinata.IpfsURL(metadataCid),
		ImageGatewayUrl:    pinata.GatewayURL(gateway, imageCid),
		MetadataGatewayUrl: pinata.GatewayURL(gateway, metadataCid),
	}, nil
}

// ensureSnapshot reuses a persisted snapshot and only calls the chain when
// none exists yet. A retried approval never re-snapshots.
func (d *applicationDomain) ensureSnapshot(
	ctx context.Context,
	application *entity.Application,
	nftBoosts []entity.NFTBoostConfig,
	tokenBoosts []entity.TokenBoostConfig,
) (*entity.WalletSnapshot, error) {
	snapshot, err := d.snapshotRepo.GetByApplicationID(ctx, application.ID)
	if err == nil {
		return snapshot, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get wallet snapshot: %v", err)
		return nil, errorx.Unknown
	}

	if application.WalletAddress == "" {
		return nil, nil
	}

	snapshot, err = d.walletCaller.Snapshot(ctx, application.WalletAddress, nftBoosts, tokenBoosts)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot snapshot wallet %s: %v", application.WalletAddress, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot read the wallet, please retry")
	}

	snapshot.ID = uuid.NewString()
	snapshot.ApplicationID = application.ID
	if err := d.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist wallet snapshot: %v", err)
		return nil, errorx.Unknown
	}

	return snapshot, nil
}

func (d *applicationDomain) publishApproved(
	ctx context.Context, application *entity.Application, score int,
) {
	if d.publisher == nil {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"user_id":  application.UserID,
		"username": application.Username,
		"score":    score,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal approved event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.ApprovedTopic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(application.UserID), Msg: msg})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish approved event: %v", err)
	}
}

func (d *applicationDomain) Reject(
	ctx context.Context, req *model.RejectApplicationRequest,
) (*model.RejectApplicationResponse, error) {
	updated, err := d.applicationRepo.Reject(ctx, req.UserID, req.Reason)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reject application: %v", err)
		return nil, errorx.Unknown
	}

	if !updated {
		application, err := d.applicationRepo.GetByUserID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found application")
			}

			xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.NotApprovable,
			"Cannot reject an application in status %s", application.Status)
	}

	return &model.RejectApplicationResponse{
		UserID: req.UserID,
		Status: string(entity.ApplicationRejected),
	}, nil
}
