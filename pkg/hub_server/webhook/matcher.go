package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

const (
	DefaultMatcherCacheTTL = 30 * time.Second
	matcherPageSize        = 500
)

// Matcher resolves the subscriptions an event is delivered to.
type Matcher interface {
	// Match returns the active subscriptions of the company registered for eventType, in creation order.
	// The returned slice must not be modified.
	Match(ctx context.Context, companyID string, eventType model.EventType) ([]model.Webhook, error)

	// Invalidate drops the cached subscriptions of the company.
	Invalidate(companyID string)
}

type WebhookLister interface {
	CreateTx(ctx context.Context, options ...storage.CreateTxOption) (storage.Tx, context.Context, error)
	ListWebhook(ctx context.Context, tx storage.Tx, req storage.ListWebhookRequest) (storage.ListWebhookResult, error)
}

type matcherEntry struct {
	webhooks  []model.Webhook
	expiresAt time.Time
}

type _Matcher struct {
	storage WebhookLister
	ttl     time.Duration
	now     func() time.Time

	mu          sync.Mutex
	cache       map[string]matcherEntry
	generations map[string]uint64 // bumped by Invalidate so an in-flight load is not cached
}

func NewMatcher(storage WebhookLister, ttl time.Duration) Matcher {
	return &_Matcher{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[string]matcherEntry),

		generations: make(map[string]uint64),
	}
}

func (m *_Matcher) Match(ctx context.Context, companyID string, eventType model.EventType) ([]model.Webhook, error) {
	active, err := m.activeWebhooks(ctx, companyID)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Webhook, 0, len(active))
	for _, w := range active {
		if w.Subscribes(eventType) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

func (m *_Matcher) Invalidate(companyID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, companyID)
	m.generations[companyID]++
}

func (m *_Matcher) activeWebhooks(ctx context.Context, companyID string) ([]model.Webhook, error) {
	m.mu.Lock()
	entry, ok := m.cache[companyID]
	generation := m.generations[companyID]
	m.mu.Unlock()
	if m.ttl > 0 && ok && m.now().Before(entry.expiresAt) {
		return entry.webhooks, nil
	}

	webhooks, err := m.load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if m.ttl > 0 {
		m.mu.Lock()
		if m.generations[companyID] == generation {
			m.cache[companyID] = matcherEntry{webhooks: webhooks, expiresAt: m.now().Add(m.ttl)}
		}
		m.mu.Unlock()
	}
	return webhooks, nil
}

func (m *_Matcher) load(ctx context.Context, companyID string) ([]model.Webhook, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	webhooks := make([]model.Webhook, 0)
	req := storage.ListWebhookRequest{
		Limit:      matcherPageSize,
		CompanyID:  companyID,
		ActiveOnly: true,
	}
	for {
		result, err := m.storage.ListWebhook(ctx, tx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to list webhooks: %w", err)
		}
		webhooks = append(webhooks, result.Records...)
		if len(result.Records) < req.Limit || len(webhooks) >= result.Total {
			break
		}
		req.Offset += req.Limit
	}
	return webhooks, nil
}
