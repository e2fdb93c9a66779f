package testutil

import (
	"context"
	"io"

	"github.com/hungercard/backend/internal/client"
	"github.com/hungercard/backend/internal/domain/card"
	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/errorx"
	"github.com/hungercard/backend/pkg/pubsub"
	"github.com/hungercard/backend/pkg/storage"
)

type MockWalletCaller struct {
	SnapshotFunc func(
		ctx context.Context,
		walletAddress string,
		nftConfigs []entity.NFTBoostConfig,
		tokenConfigs []entity.TokenBoostConfig,
	) (*entity.WalletSnapshot, error)
}

var _ client.WalletCaller = (*MockWalletCaller)(nil)

func (m *MockWalletCaller) Snapshot(
	ctx context.Context,
	walletAddress string,
	nftConfigs []entity.NFTBoostConfig,
	tokenConfigs []entity.TokenBoostConfig,
) (*entity.WalletSnapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, walletAddress, nftConfigs, tokenConfigs)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

type MockCardGenerator struct {
	GenerateFunc func(ctx context.Context, input card.Input) (*card.Output, error)
}

var _ card.Generator = (*MockCardGenerator)(nil)

func (m *MockCardGenerator) Generate(ctx context.Context, input card.Input) (*card.Output, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, input)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

type MockPinataEndpoint struct {
	PinFileFunc func(ctx context.Context, name string, f io.Reader) (string, error)
	PinJSONFunc func(ctx context.Context, name string, obj any) (string, error)
}

func (m *MockPinataEndpoint) PinFile(ctx context.Context, name string, f io.Reader) (string, error) {
	if m.PinFileFunc != nil {
		return m.PinFileFunc(ctx, name, f)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockPinataEndpoint) PinJSON(ctx context.Context, name string, obj any) (string, error) {
	if m.PinJSONFunc != nil {
		return m.PinJSONFunc(ctx, name, obj)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}

type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	return nil
}
