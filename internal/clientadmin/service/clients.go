package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store"
	"github.com/aussiebroadwan/clientadmin/pkg/slogx"
)

// Registry is the upstream registration API. *registrysdk.SDKClient
// satisfies it.
type Registry interface {
	ListClients(ctx context.Context) ([]domain.ClientRecord, error)
	GetClient(ctx context.Context, clientID string) (*domain.ClientRecord, error)
	CreateClient(ctx context.Context, draft domain.Draft) (*domain.ClientRecord, error)
	ReplaceClient(ctx context.Context, clientID string, full domain.ClientRecord) (*domain.ClientRecord, error)
	PatchClient(ctx context.Context, clientID string, ops []domain.PatchOperation) (*domain.ClientRecord, error)
	Ping(ctx context.Context) error
}

// UpdateStrategy selects how a full form submission reaches the upstream.
type UpdateStrategy string

const (
	// StrategyPatch sends one replace operation per editable field.
	StrategyPatch UpdateStrategy = "patch"
	// StrategyReplace reads the current record, overlays the draft and sends
	// the result with PUT, so members this service does not model survive.
	StrategyReplace UpdateStrategy = "replace"
)

// ParseUpdateStrategy accepts "patch" or "replace".
func ParseUpdateStrategy(s string) (UpdateStrategy, error) {
	switch UpdateStrategy(s) {
	case StrategyPatch, StrategyReplace:
		return UpdateStrategy(s), nil
	}
	return "", fmt.Errorf("unknown update strategy %q", s)
}

// ClientService orchestrates list, view and write operations against the
// registry. The list is cached per session and every write drops the writing
// session's entry; other sessions see the change once their entry expires.
type ClientService struct {
	Registry Registry
	Cache    store.ListCache
	CacheTTL time.Duration
	Strategy UpdateStrategy
}

// ListPage returns one filtered page of the session's client list, fetching
// the list upstream when the session has none cached.
func (s *ClientService) ListPage(ctx context.Context, sessionID string, f Filter, page, pageSize int) (PageResult, error) {
	all, err := s.list(ctx, sessionID)
	if err != nil {
		return PageResult{}, err
	}
	return Paginate(all, f, page, pageSize), nil
}

func (s *ClientService) list(ctx context.Context, sessionID string) ([]domain.ClientRecord, error) {
	l := slogx.FromContext(ctx)
	cached := s.Cache != nil && sessionID != ""

	if cached {
		records, err := s.Cache.Load(ctx, sessionID)
		switch {
		case err == nil:
			return records, nil
		case !errors.Is(err, store.ErrNotFound):
			l.Warn("failed to load cached client list", "error", err)
		}
	}

	records, err := s.Registry.ListClients(ctx)
	if err != nil {
		l.Error("failed to list clients", "error", err)
		return nil, err
	}

	if cached {
		if err := s.Cache.Save(ctx, sessionID, records, s.CacheTTL); err != nil {
			l.Warn("failed to cache client list", "error", err)
		}
	}
	return records, nil
}

// Get fetches one client. The cache is never consulted.
func (s *ClientService) Get(ctx context.Context, clientID string) (*domain.ClientRecord, error) {
	rec, err := s.Registry.GetClient(ctx, clientID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to fetch client", "client_id", clientID, "error", err)
		return nil, err
	}
	return rec, nil
}

// Create registers a new client after normalising and validating the draft.
func (s *ClientService) Create(ctx context.Context, sessionID string, draft domain.Draft) (*domain.ClientRecord, error) {
	l := slogx.FromContext(ctx)

	NormalizeDraft(&draft)
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	rec, err := s.Registry.CreateClient(ctx, draft)
	if err != nil {
		l.Error("failed to register client", "error", err)
		return nil, err
	}
	s.invalidate(ctx, sessionID)

	l.Info("client registered", "client_id", rec.ClientID, "client_name", rec.ClientName)
	return rec, nil
}

// Update applies a full form submission: every editable field is resent,
// either as replace operations or as a PUT of the whole draft.
func (s *ClientService) Update(ctx context.Context, sessionID, clientID string, draft domain.Draft) (*domain.ClientRecord, error) {
	l := slogx.FromContext(ctx)

	NormalizeDraft(&draft)
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	var (
		rec *domain.ClientRecord
		err error
	)
	if s.Strategy == StrategyReplace {
		rec, err = s.replace(ctx, clientID, draft)
	} else {
		var ops []domain.PatchOperation
		if ops, err = BuildPatch(IntentFromDraft(draft)); err != nil {
			return nil, err
		}
		rec, err = s.Registry.PatchClient(ctx, clientID, ops)
	}
	if err != nil {
		l.Error("failed to update client", "client_id", clientID, "strategy", s.strategy(), "error", err)
		return nil, err
	}
	s.invalidate(ctx, sessionID)

	l.Info("client updated", "client_id", clientID, "strategy", s.strategy())
	return rec, nil
}

func (s *ClientService) replace(ctx context.Context, clientID string, draft domain.Draft) (*domain.ClientRecord, error) {
	current, err := s.Registry.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	next := *current
	next.ClientMetadata = draft
	return s.Registry.ReplaceClient(ctx, clientID, next)
}

// Patch forwards a caller supplied operation batch once every operation has
// passed validation.
func (s *ClientService) Patch(ctx context.Context, sessionID, clientID string, ops []domain.PatchOperation) (*domain.ClientRecord, error) {
	l := slogx.FromContext(ctx)

	if err := ValidatePatch(ops); err != nil {
		return nil, err
	}

	rec, err := s.Registry.PatchClient(ctx, clientID, ops)
	if err != nil {
		l.Error("failed to patch client", "client_id", clientID, "error", err)
		return nil, err
	}
	s.invalidate(ctx, sessionID)

	l.Info("client patched", "client_id", clientID, "operations", len(ops))
	return rec, nil
}

// RotateSecret replaces the client secret and nothing else.
func (s *ClientService) RotateSecret(ctx context.Context, sessionID, clientID, secret string) (*domain.ClientRecord, error) {
	l := slogx.FromContext(ctx)

	ops, err := SecretRotation(secret)
	if err != nil {
		return nil, err
	}

	rec, err := s.Registry.PatchClient(ctx, clientID, ops)
	if err != nil {
		l.Error("failed to update client secret", "client_id", clientID, "error", err)
		return nil, err
	}
	s.invalidate(ctx, sessionID)

	l.Info("client secret rotated", "client_id", clientID)
	return rec, nil
}

// Ping reports whether the registry answers.
func (s *ClientService) Ping(ctx context.Context) error {
	return s.Registry.Ping(ctx)
}

func (s *ClientService) invalidate(ctx context.Context, sessionID string) {
	if s.Cache == nil || sessionID == "" {
		return
	}
	if err := s.Cache.Invalidate(ctx, sessionID); err != nil {
		slogx.FromContext(ctx).Warn("failed to invalidate cached client list", "error", err)
	}
}

func (s *ClientService) strategy() UpdateStrategy {
	if s.Strategy == "" {
		return StrategyPatch
	}
	return s.Strategy
}
