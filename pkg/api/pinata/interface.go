package pinata

import (
	"context"
	"io"
)

type IEndpoint interface {
	// PinFile publishes the content of f to IPFS and returns its CID.
	PinFile(ctx context.Context, name string, f io.Reader) (string, error)

	// PinJSON publishes obj as a JSON document to IPFS and returns its CID.
	PinJSON(ctx context.Context, name string, obj any) (string, error)
}
