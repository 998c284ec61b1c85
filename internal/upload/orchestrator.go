// Package upload drives batches of remote uploads with all-or-nothing
// semantics: either every requested asset ends up referenced, or every
// committed upload is compensated with a delete and the triggering failure is
// reported.
package upload

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/storage"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// Request describes one named upload in a batch.
type Request struct {
	Kind        domain.AssetKind
	TempPath    string
	Folder      string
	Ext         string
	ContentType string
}

// Result maps every requested kind to its durable reference.
type Result map[domain.AssetKind]domain.AssetRef

// asset tracks one request through a single batch. Owned by the Run call
// that created it; never shared.
type asset struct {
	kind     domain.AssetKind
	remoteID string
	url      string
	state    domain.AssetState
}

// Orchestrator executes upload batches against the object store.
type Orchestrator struct {
	store     storage.ObjectStore
	logger    *zap.Logger
	opTimeout time.Duration
}

// NewOrchestrator constructs an orchestrator. opTimeout bounds each
// individual put/delete call.
func NewOrchestrator(store storage.ObjectStore, logger *zap.Logger, opTimeout time.Duration) *Orchestrator {
	if opTimeout <= 0 {
		opTimeout = 60 * time.Second
	}
	return &Orchestrator{store: store, logger: logger, opTimeout: opTimeout}
}

// Run processes the requests in order. On the first put failure it stops,
// deletes everything committed so far, and returns the original failure; no
// partial result is ever returned. Temp files named by the requests are
// removed on every exit path.
func (o *Orchestrator) Run(ctx context.Context, requests []Request) (Result, error) {
	defer func() {
		for _, req := range requests {
			if req.TempPath != "" {
				_ = os.Remove(req.TempPath)
			}
		}
	}()

	committed := make([]*asset, 0, len(requests))

	for _, req := range requests {
		a := &asset{kind: req.Kind, state: domain.AssetStatePending}

		putCtx, cancel := context.WithTimeout(ctx, o.opTimeout)
		obj, err := o.store.Put(putCtx, storage.PutRequest{
			LocalPath:   req.TempPath,
			Folder:      req.Folder,
			Name:        string(req.Kind),
			Ext:         req.Ext,
			ContentType: req.ContentType,
		})
		cancel()

		if err != nil {
			a.state = domain.AssetStateFailed
			o.logger.Error("upload failed",
				zap.String("asset", string(req.Kind)),
				zap.Error(err))
			o.rollback(ctx, committed)
			return nil, apperrors.NewUploadFailed(string(req.Kind), err)
		}

		a.remoteID = obj.RemoteID
		a.url = obj.URL
		a.state = domain.AssetStateUploaded
		committed = append(committed, a)
	}

	result := make(Result, len(committed))
	for _, a := range committed {
		result[a.kind] = domain.AssetRef{URL: a.url, RemoteID: a.remoteID}
	}
	return result, nil
}

// Discard deletes references from a previously successful batch. Used when a
// later step of the enclosing operation fails after every upload committed,
// so the same compensation protocol applies. Best effort, failures logged.
func (o *Orchestrator) Discard(ctx context.Context, result Result) {
	base := context.WithoutCancel(ctx)
	for kind, ref := range result {
		delCtx, cancel := context.WithTimeout(base, o.opTimeout)
		err := o.store.Delete(delCtx, ref.RemoteID)
		cancel()

		if err != nil {
			o.logger.Error("discard delete failed",
				zap.String("asset", string(kind)),
				zap.String("remote_id", ref.RemoteID),
				zap.Error(err))
		}
	}
}

// rollback compensates every committed upload. Deletes are attempted
// independently; a failed delete is logged and the rest still run. The
// caller reports the original put failure either way, so rollback has no
// return value. Deletes run even when the batch failed because the request
// context is already done.
func (o *Orchestrator) rollback(ctx context.Context, committed []*asset) {
	base := context.WithoutCancel(ctx)
	for _, a := range committed {
		delCtx, cancel := context.WithTimeout(base, o.opTimeout)
		err := o.store.Delete(delCtx, a.remoteID)
		cancel()

		if err != nil {
			o.logger.Error("rollback delete failed",
				zap.String("asset", string(a.kind)),
				zap.String("remote_id", a.remoteID),
				zap.Error(err))
			continue
		}
		a.state = domain.AssetStateRolledBack
		o.logger.Info("rolled back upload",
			zap.String("asset", string(a.kind)),
			zap.String("remote_id", a.remoteID))
	}
}
