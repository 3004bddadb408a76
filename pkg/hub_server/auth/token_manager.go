package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type APITokenManager interface {
	CreateAPIToken(ctx context.Context, ts int64, req CreateAPITokenRequest) (APIToken, APITokenString, error)
	ListAPITokens(ctx context.Context, req ListAPITokenRequest) (ListAPITokenResult, error)
	UpdateAPIToken(ctx context.Context, ts int64, req UpdateAPITokenRequest) (APIToken, error)
	RegenerateAPIToken(ctx context.Context, ts int64, req APITokenIDRequest) (APIToken, APITokenString, error)
	RevokeAPIToken(ctx context.Context, ts int64, req APITokenIDRequest) (APIToken, error)

	// Authenticate resolves a presented token string and stamps its last use.
	Authenticate(ctx context.Context, ts int64, token APITokenString) (APIToken, error)
}

type RequestUser struct {
	User string `json:"user"` // User who makes the request.
}

type CreateAPITokenRequest struct {
	RequestUser

	CompanyID   string       `json:"company_id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	ExpiresAt   *int64       `json:"expires_at"`
}

// UpdateAPITokenRequest changes only the fields that are set.
type UpdateAPITokenRequest struct {
	RequestUser

	CompanyID   string       `json:"company_id"`
	ID          string       `json:"id"`
	Name        *string      `json:"name"`
	Permissions []Permission `json:"permissions"`
	ExpiresAt   *int64       `json:"expires_at"`
	IsActive    *bool        `json:"is_active"`
}

type APITokenIDRequest struct {
	RequestUser

	CompanyID string `json:"company_id"`
	ID        string `json:"id"`
}

type APITokenStorage interface {
	CreateTx(ctx context.Context, options ...storage.CreateTxOption) (storage.Tx, context.Context, error)
	StoreAPIToken(ctx context.Context, tx storage.Tx, token APIToken) error
	ListAPITokens(ctx context.Context, tx storage.Tx, req ListAPITokenRequest) (ListAPITokenResult, error)
	TouchAPIToken(ctx context.Context, tx storage.Tx, id string, ts int64) error
}

type ListAPITokenRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	CompanyID string   `json:"company_id"` // Empty matches every company.
	IDs       []string `json:"ids"`
	Names     []string `json:"names"`
}

type ListAPITokenResult struct {
	Total   int        `json:"total"`
	Records []APIToken `json:"records"`
}

type _APITokenManager struct {
	storage APITokenStorage
}

func NewAPITokenManager(s APITokenStorage) APITokenManager {
	return &_APITokenManager{storage: s}
}

func (m *_APITokenManager) CreateAPIToken(ctx context.Context, ts int64, req CreateAPITokenRequest) (APIToken, APITokenString, error) {
	if err := ValidateCreateAPITokenRequest(req); err != nil {
		return APIToken{}, "", err
	}

	token := APIToken{
		ID:          util.NewID("tok"),
		Version:     1,
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Permissions: lo.Uniq(req.Permissions),
		ExpiresAt:   req.ExpiresAt,
		IsActive:    true,
		CreatedAt:   ts,
		CreatedBy:   req.User,
		UpdatedAt:   ts,
		UpdatedBy:   req.User,
	}
	tokenString, err := NewAPITokenString(token.ID)
	if err != nil {
		return APIToken{}, "", err
	}
	if token.HashString, err = tokenString.Hash(); err != nil {
		return APIToken{}, "", err
	}

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return APIToken{}, "", fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := m.ensureNameAvailable(ctx, tx, req.CompanyID, req.Name, ""); err != nil {
		return APIToken{}, "", err
	}
	if err := m.storage.StoreAPIToken(ctx, tx, token); err != nil {
		return APIToken{}, "", fmt.Errorf("failed to store API token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return APIToken{}, "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	token.HashString = ""
	return token, tokenString, nil
}

func (m *_APITokenManager) ListAPITokens(ctx context.Context, req ListAPITokenRequest) (ListAPITokenResult, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return ListAPITokenResult{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := m.storage.ListAPITokens(ctx, tx, req)
	if err != nil {
		return ListAPITokenResult{}, err
	}
	for i := range result.Records {
		result.Records[i].HashString = ""
	}
	return result, nil
}

func (m *_APITokenManager) UpdateAPIToken(ctx context.Context, ts int64, req UpdateAPITokenRequest) (APIToken, error) {
	if err := ValidateUpdateAPITokenRequest(req); err != nil {
		return APIToken{}, err
	}

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return APIToken{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	token, err := m.getAPIToken(ctx, tx, req.CompanyID, req.ID)
	if err != nil {
		return APIToken{}, err
	}

	if req.Name != nil && *req.Name != token.Name {
		if err := m.ensureNameAvailable(ctx, tx, req.CompanyID, *req.Name, token.ID); err != nil {
			return APIToken{}, err
		}
		token.Name = *req.Name
	}
	if req.Permissions != nil {
		token.Permissions = lo.Uniq(req.Permissions)
	}
	if req.ExpiresAt != nil {
		token.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		token.IsActive = *req.IsActive
	}
	token.Version += 1
	token.UpdatedAt = ts
	token.UpdatedBy = req.User

	if err := m.storage.StoreAPIToken(ctx, tx, token); err != nil {
		return APIToken{}, fmt.Errorf("failed to store API token: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return APIToken{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	token.HashString = ""
	return token, nil
}

func (m *_APITokenManager) RegenerateAPIToken(ctx context.Context, ts int64, req APITokenIDRequest) (APIToken, APITokenString, error) {
	if err := ValidateAPITokenIDRequest(req); err != nil {
		return APIToken{}, "", err
	}

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return APIToken{}, "", fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	token, err := m.getAPIToken(ctx, tx, req.CompanyID, req.ID)
	if err != nil {
		return APIToken{}, "", err
	}

	tokenString, err := NewAPITokenString(token.ID)
	if err != nil {
		return APIToken{}, "", err
	}
	if token.HashString, err = tokenString.Hash(); err != nil {
		return APIToken{}, "", err
	}
	token.Version += 1
	token.UpdatedAt = ts
	token.UpdatedBy = req.User

	if err := m.storage.StoreAPIToken(ctx, tx, token); err != nil {
		return APIToken{}, "", fmt.Errorf("failed to store API token: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return APIToken{}, "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	token.HashString = ""
	return token, tokenString, nil
}

func (m *_APITokenManager) RevokeAPIToken(ctx context.Context, ts int64, req APITokenIDRequest) (APIToken, error) {
	if err := ValidateAPITokenIDRequest(req); err != nil {
		return APIToken{}, err
	}

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return APIToken{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	token, err := m.getAPIToken(ctx, tx, req.CompanyID, req.ID)
	if err != nil {
		return APIToken{}, err
	}
	token.Version += 1
	token.IsActive = false
	token.Deleted = true
	token.UpdatedAt = ts
	token.UpdatedBy = req.User

	if err := m.storage.StoreAPIToken(ctx, tx, token); err != nil {
		return APIToken{}, fmt.Errorf("failed to store API token: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return APIToken{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	token.HashString = ""
	return token, nil
}

func (m *_APITokenManager) Authenticate(ctx context.Context, ts int64, tokenString APITokenString) (APIToken, error) {
	if tokenString == "" {
		return APIToken{}, ErrAPITokenRequired
	}
	id, err := tokenString.ID()
	if err != nil {
		return APIToken{}, ErrMismatchAPIToken
	}

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return APIToken{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := m.storage.ListAPITokens(ctx, tx, ListAPITokenRequest{Limit: 1, IDs: []string{id}})
	if err != nil {
		return APIToken{}, err
	}
	if len(result.Records) == 0 {
		return APIToken{}, ErrMismatchAPIToken
	}
	token := result.Records[0]

	if err := VerifyAPITokenString(tokenString, token.HashString); err != nil {
		return APIToken{}, err
	}
	if !token.IsActive {
		return APIToken{}, ErrRevokedAPIToken
	}
	if token.Expired(ts) {
		return APIToken{}, ErrExpiredAPIToken
	}

	if err := m.storage.TouchAPIToken(ctx, tx, token.ID, ts); err != nil {
		return APIToken{}, fmt.Errorf("failed to update last use: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		// The request is still authorised; only the usage stamp is lost.
		logrus.Warnf("failed to commit last use of API token %q: %v", token.ID, err)
	} else {
		token.LastUsedAt = &ts
	}

	token.HashString = ""
	return token, nil
}

func (m *_APITokenManager) getAPIToken(ctx context.Context, tx storage.Tx, companyID, id string) (APIToken, error) {
	result, err := m.storage.ListAPITokens(ctx, tx, ListAPITokenRequest{Limit: 1, CompanyID: companyID, IDs: []string{id}})
	if err != nil {
		return APIToken{}, err
	}
	if len(result.Records) == 0 {
		return APIToken{}, fmt.Errorf("%w%w", ErrAPITokenNotFound, model.ErrNotFound)
	}
	return result.Records[0], nil
}

func (m *_APITokenManager) ensureNameAvailable(ctx context.Context, tx storage.Tx, companyID, name, selfID string) error {
	result, err := m.storage.ListAPITokens(ctx, tx, ListAPITokenRequest{Limit: 1, CompanyID: companyID, Names: []string{name}})
	if err != nil {
		return err
	}
	if len(result.Records) > 0 && result.Records[0].ID != selfID {
		return fmt.Errorf("API token name %q already in use%w", name, model.ErrConflict)
	}
	return nil
}

// IsAuthenticationError reports whether err is a token problem to be answered with 401.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAPITokenRequired) ||
		errors.Is(err, ErrMismatchAPIToken) ||
		errors.Is(err, ErrRevokedAPIToken) ||
		errors.Is(err, ErrExpiredAPIToken) ||
		errors.Is(err, ErrInvalidAPITokenString)
}
