package snapshot

import (
	"context"

	"github.com/cockroachdb/errors"
)

//go:generate mockgen -source encode.go -destination ./mocks/encoder.go

// Encoder persists snapshot calls. Implementations write handle ids in place of native handles; the
// ids are stable for the lifetime of the process and are never reused.
type Encoder interface {
	EncodeCall(call Call) error
}

// Encode streams the calls of snap to encoder in order
func Encode(ctx context.Context, snap *Snapshot, encoder Encoder) error {
	for i, call := range snap.Calls {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := encoder.EncodeCall(call)
		if err != nil {
			return errors.Wrapf(err, "failed to encode call %d (%s) of snapshot at %d", i, call.ID, snap.TrimPoint)
		}
	}
	return nil
}
