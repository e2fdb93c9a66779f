package domain

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hungercard/backend/internal/domain/card"
	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/internal/model"
	"github.com/hungercard/backend/internal/repository"
	"github.com/hungercard/backend/pkg/errorx"
	"github.com/hungercard/backend/pkg/testutil"
)

type approveHarness struct {
	domain      ApplicationDomain
	wallet      *testutil.MockWalletCaller
	pinata      *testutil.MockPinataEndpoint
	pinnedJSON  []map[string]any
	walletCalls int
}

func newApproveHarness() *approveHarness {
	h := &approveHarness{}

	h.wallet = &testutil.MockWalletCaller{
		SnapshotFunc: func(
			ctx context.Context, walletAddress string,
			nftConfigs []entity.NFTBoostConfig, tokenConfigs []entity.TokenBoostConfig,
		) (*entity.WalletSnapshot, error) {
			h.walletCalls++
			return &entity.WalletSnapshot{
				EthBalance: "2000000000000000000",
				SnapshotAt: time.Now(),
			}, nil
		},
	}

	h.pinata = &testutil.MockPinataEndpoint{
		PinFileFunc: func(ctx context.Context, name string, f io.Reader) (string, error) {
			return "image-cid", nil
		},
		PinJSONFunc: func(ctx context.Context, name string, obj any) (string, error) {
			h.pinnedJSON = append(h.pinnedJSON, obj.(map[string]any))
			return "metadata-cid", nil
		},
	}

	generator := &testutil.MockCardGenerator{
		GenerateFunc: func(ctx context.Context, input card.Input) (*card.Output, error) {
			return &card.Output{
				Image:    []byte("png-bytes"),
				Metadata: map[string]any{"name": "Hunger Card of " + input.App.Username},
				Prompt:   "test prompt",
				Theme:    "gold",
			}, nil
		},
	}

	h.domain = NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewWalletSnapshotRepository(),
		repository.NewGeneratedCardRepository(),
		repository.NewScoringConfigRepository(),
		h.wallet,
		generator,
		h.pinata,
		&testutil.MockPublisher{},
	)

	return h
}

func errorCodeOf(t *testing.T, err error) errorx.Code {
	t.Helper()
	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	return errx.Code
}

func Test_applicationDomain_Create(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	domain := newApproveHarness().domain

	resp, err := domain.Create(ctx, &model.CreateApplicationRequest{
		UserID:      "user3",
		Username:    "carol",
		Twitter:     "carol",
		HungerLevel: "hungry",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)
	require.Equal(t, "carol", resp.Username)
}

func Test_applicationDomain_Create_InvalidRequest(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	domain := newApproveHarness().domain

	_, err := domain.Create(ctx, &model.CreateApplicationRequest{
		UserID: "user3", Username: "carol", HungerLevel: "borderline",
	})
	require.Equal(t, errorx.BadRequest, errorCodeOf(t, err))

	_, err = domain.Create(ctx, &model.CreateApplicationRequest{
		UserID: "user3", Username: "carol", HungerLevel: "hungry", Dependents: -1,
	})
	require.Equal(t, errorx.BadRequest, errorCodeOf(t, err))

	_, err = domain.Create(ctx, &model.CreateApplicationRequest{
		UserID: "user3", Username: "carol", HungerLevel: "hungry", WalletAddress: "not-hex",
	})
	require.Equal(t, errorx.BadRequest, errorCodeOf(t, err))
}

func Test_applicationDomain_Create_DuplicatePriority(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	domain := newApproveHarness().domain

	// The user id collides with application1 and the twitter handle also
	// collides; the identity conflict must mask the social one.
	_, err := domain.Create(ctx, &model.CreateApplicationRequest{
		UserID:      "user1",
		Username:    "someone-else",
		Twitter:     "alice",
		HungerLevel: "hungry",
	})
	require.Equal(t, errorx.AlreadyApplied, errorCodeOf(t, err))

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	detail := errx.Data.(model.DuplicateDetail)
	require.Equal(t, "user1", detail.ExistingApplication.UserID)
	require.Empty(t, detail.DuplicateSocial)
}

func Test_applicationDomain_Create_SocialPriority(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	domain := newApproveHarness().domain

	// The twitter handle collides with application1, the discord handle with
	// application2. Twitter has higher priority and must win.
	_, err := domain.Create(ctx, &model.CreateApplicationRequest{
		UserID:      "user3",
		Username:    "carol",
		Twitter:     "alice",
		Discord:     "bob#1234",
		HungerLevel: "hungry",
	})
	require.Equal(t, errorx.SocialAlreadyLinked, errorCodeOf(t, err))

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	detail := errx.Data.(model.DuplicateDetail)
	require.Equal(t, "twitter", detail.DuplicateSocial)
	require.Equal(t, "alice", detail.ExistingApplication.Username)
}

func Test_applicationDomain_Approve(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	resp, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.NoError(t, err)

	// twitter_connected(30) + eth_balance_tier1(100) from the fixtures.
	require.Equal(t, 130, resp.Score)
	require.Len(t, resp.ScoreBreakdown, 2)
	require.Equal(t, "image-cid", resp.ImageCid)
	require.Equal(t, "ipfs://metadata-cid", resp.MetadataUrl)
	require.Equal(t, "https://gateway.pinata.cloud/ipfs/image-cid", resp.ImageGatewayUrl)

	stored, err := repository.NewApplicationRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationApproved, stored.Status)
	require.Equal(t, 130, stored.Score)
	require.True(t, stored.ApprovedAt.Valid)

	generatedCard, err := repository.NewGeneratedCardRepository().GetByApplicationID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, "image-cid", generatedCard.ImageCid)
	require.Equal(t, "gold", generatedCard.Theme)
}

func Test_applicationDomain_Approve_PinOrdering(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	_, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.NoError(t, err)

	// The pinned metadata must embed the gateway URL of the already pinned
	// image, never a placeholder.
	require.Len(t, h.pinnedJSON, 1)
	require.Equal(t, "https://gateway.pinata.cloud/ipfs/image-cid", h.pinnedJSON[0]["image"])
}

func Test_applicationDomain_Approve_Idempotent(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	first, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.NoError(t, err)

	_, err = h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.Equal(t, errorx.AlreadyApproved, errorCodeOf(t, err))

	stored, err := repository.NewApplicationRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, first.Score, stored.Score)

	generatedCard, err := repository.NewGeneratedCardRepository().GetByApplicationID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, first.ImageCid, generatedCard.ImageCid)
	require.Equal(t, first.MetadataCid, generatedCard.MetadataCid)
}

func Test_applicationDomain_Approve_NotFound(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	_, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "ghost"})
	require.Equal(t, errorx.NotFound, errorCodeOf(t, err))
}

func Test_applicationDomain_Approve_RetryAfterPinFailure(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	pinJSON := h.pinata.PinJSONFunc
	h.pinata.PinJSONFunc = func(ctx context.Context, name string, obj any) (string, error) {
		return "", errors.New("pinata is down")
	}

	_, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.Equal(t, errorx.Unavailable, errorCodeOf(t, err))

	stored, err := repository.NewApplicationRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationPending, stored.Status)
	require.Equal(t, 0, stored.Score)

	// The application stays pending and a retry completes the pipeline. The
	// persisted snapshot is reused, the wallet is not read again.
	h.pinata.PinJSONFunc = pinJSON
	resp, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, 130, resp.Score)
	require.Equal(t, 1, h.walletCalls)
}

func Test_applicationDomain_Approve_MissingSnapshot(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	// application2 declares no wallet address: wallet rules earn nothing and
	// no snapshot is taken.
	resp, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Score)
	require.Equal(t, 0, h.walletCalls)
}

func Test_applicationDomain_Reject(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	resp, err := h.domain.Reject(ctx, &model.RejectApplicationRequest{
		UserID: "user1", Reason: "incomplete information",
	})
	require.NoError(t, err)
	require.Equal(t, "rejected", resp.Status)

	// Rejecting again is a no-op in effect.
	_, err = h.domain.Reject(ctx, &model.RejectApplicationRequest{UserID: "user1"})
	require.NoError(t, err)

	stored, err := repository.NewApplicationRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationRejected, stored.Status)
}

func Test_applicationDomain_Reject_CannotDemote(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	_, err := h.domain.Approve(ctx, &model.ApproveApplicationRequest{UserID: "user1"})
	require.NoError(t, err)

	_, err = h.domain.Reject(ctx, &model.RejectApplicationRequest{UserID: "user1"})
	require.Equal(t, errorx.NotApprovable, errorCodeOf(t, err))

	_, err = h.domain.Reject(ctx, &model.RejectApplicationRequest{UserID: "ghost"})
	require.Equal(t, errorx.NotFound, errorCodeOf(t, err))
}

func Test_applicationRepository_ApprovalGuard(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	applicationRepo := repository.NewApplicationRepository()

	updated, err := applicationRepo.Approve(ctx, "user1", 100, nil)
	require.NoError(t, err)
	require.True(t, updated)

	// The conditional update refuses a second transition.
	updated, err = applicationRepo.Approve(ctx, "user1", 999, nil)
	require.NoError(t, err)
	require.False(t, updated)

	stored, err := applicationRepo.GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 100, stored.Score)
}

func Test_applicationDomain_GetList(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	h := newApproveHarness()

	resp, err := h.domain.GetList(ctx, &model.GetListApplicationRequest{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, resp.Applications, 2)

	_, err = h.domain.GetList(ctx, &model.GetListApplicationRequest{Status: "unknown"})
	require.Equal(t, errorx.BadRequest, errorCodeOf(t, err))

	_, err = h.domain.GetList(ctx, &model.GetListApplicationRequest{Limit: 1000})
	require.Equal(t, errorx.BadRequest, errorCodeOf(t, err))
}
