package meter

import (
	"context"
	"errors"
	"sync/atomic"

	"meteradmin/internal/domain"
)

// ErrSubmitInFlight is returned by Submit while an earlier submit of the same
// editor has not returned yet.
var ErrSubmitInFlight = errors.New("a submit for this owner is already in progress")

// Editor is one editing session over an owner's meters.
type Editor struct {
	owner      domain.OwnerID
	coll       *Collection
	gateway    domain.MeterGateway
	submitting atomic.Bool
}

// NewEditor opens an editing session seeded with the owner's stored meters.
func NewEditor(owner domain.OwnerID, stored domain.Meters, gateway domain.MeterGateway) *Editor {
	return &Editor{owner: owner, coll: Load(stored), gateway: gateway}
}

// Owner returns the owner being edited.
func (e *Editor) Owner() domain.OwnerID { return e.owner }

// Collection exposes the working set for add/set/remove.
func (e *Editor) Collection() *Collection { return e.coll }

// Submit finalizes the working set and sends it to the gateway as one
// replacement. On error the working set is left as it was so the caller can
// retry. The returned meters are a copy the gateway cannot alias. Only one
// Submit may run at a time.
func (e *Editor) Submit(ctx context.Context) (domain.Meters, error) {
	if !e.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer e.submitting.Store(false)

	payload := e.coll.FinalizeMap()
	if err := e.gateway.ReplaceMeters(ctx, e.owner, payload); err != nil {
		return nil, err
	}
	return payload.Clone(), nil
}
