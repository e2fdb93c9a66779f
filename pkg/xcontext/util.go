package xcontext

import "context"

// holder allows SetError/SetResponse to work on a plain context.Context. The
// router seeds a holder before running handlers, then closers read it back.
type holder struct {
	value any
}

func WithCapturedError(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &holder{})
}

func SetError(ctx context.Context, err error) {
	if h, ok := ctx.Value(errorKey{}).(*holder); ok {
		h.value = err
	}
}

func Error(ctx context.Context) error {
	if h, ok := ctx.Value(errorKey{}).(*holder); ok && h.value != nil {
		return h.value.(error)
	}

	return nil
}

func WithCapturedResponse(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &holder{})
}

func SetResponse(ctx context.Context, resp any) {
	if h, ok := ctx.Value(responseKey{}).(*holder); ok {
		h.value = resp
	}
}

func GetResponse(ctx context.Context) any {
	if h, ok := ctx.Value(responseKey{}).(*holder); ok {
		return h.value
	}

	return nil
}
