package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

type mockAccountRepository struct {
	accounts map[string]*domain.Account

	createErr   error
	createCalls int
	created     domain.Account

	getByEmailErr error

	updatePasswordErr   error
	updatePasswordCalls int
	updatedPasswordID   string
	updatedPasswordHash string
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *mockAccountRepository) add(account domain.Account) {
	copy := account
	m.accounts[account.Email] = &copy
}

func (m *mockAccountRepository) Create(_ context.Context, account domain.Account) error {
	m.createCalls++
	m.created = account
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.accounts[account.Email]; ok {
		return repository.ErrDuplicate
	}
	m.add(account)
	return nil
}

func (m *mockAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, account := range m.accounts {
		if account.ID == id {
			copy := *account
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if m.getByEmailErr != nil {
		return nil, m.getByEmailErr
	}
	account, ok := m.accounts[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *account
	return &copy, nil
}

func (m *mockAccountRepository) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	m.updatePasswordCalls++
	m.updatedPasswordID = id
	m.updatedPasswordHash = passwordHash
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	for _, account := range m.accounts {
		if account.ID == id {
			account.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockTokenRepository struct {
	byHash map[string]*domain.RefreshToken

	createErr   error
	createCalls int

	revokeErr   error
	revokeCalls int
	revokedID   string
}

func newMockTokenRepository() *mockTokenRepository {
	return &mockTokenRepository{byHash: make(map[string]*domain.RefreshToken)}
}

func (m *mockTokenRepository) CreateRefreshToken(_ context.Context, token domain.RefreshToken) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	copy := token
	m.byHash[token.TokenHash] = &copy
	return nil
}

func (m *mockTokenRepository) GetRefreshTokenByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	token, ok := m.byHash[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *token
	return &copy, nil
}

func (m *mockTokenRepository) RevokeRefreshToken(_ context.Context, id string, revokedAt time.Time) error {
	m.revokeCalls++
	m.revokedID = id
	if m.revokeErr != nil {
		return m.revokeErr
	}
	for _, token := range m.byHash {
		if token.ID == id && token.RevokedAt == nil {
			at := revokedAt
			token.RevokedAt = &at
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockResetCodeRepository struct {
	codes []domain.ResetCode

	createErr error

	deleteCalls int
	deleteErr   error

	markUsedErr   error
	markUsedCalls int
	markUsedID    string
}

func (m *mockResetCodeRepository) Create(_ context.Context, code domain.ResetCode) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *mockResetCodeRepository) GetByEmailAndCode(_ context.Context, email, code string) (*domain.ResetCode, error) {
	var newest *domain.ResetCode
	for i := range m.codes {
		record := &m.codes[i]
		if record.Email != email || record.Code != code {
			continue
		}
		if newest == nil || record.CreatedAt.After(newest.CreatedAt) {
			newest = record
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	copy := *newest
	return &copy, nil
}

func (m *mockResetCodeRepository) DeleteByEmail(_ context.Context, email string) (int, error) {
	m.deleteCalls++
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	kept := m.codes[:0]
	deleted := 0
	for _, record := range m.codes {
		if record.Email == email {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	m.codes = kept
	return deleted, nil
}

func (m *mockResetCodeRepository) MarkUsed(_ context.Context, id string) error {
	m.markUsedCalls++
	m.markUsedID = id
	if m.markUsedErr != nil {
		return m.markUsedErr
	}
	for i := range m.codes {
		if m.codes[i].ID == id {
			m.codes[i].IsUsed = true
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockProfileRepository struct {
	profiles map[string]*domain.Profile

	createErr error
	updateErr error
	deleteErr error
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[string]*domain.Profile)}
}

func (m *mockProfileRepository) Create(_ context.Context, profile domain.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.profiles {
		if existing.AccountID == profile.AccountID {
			return repository.ErrDuplicate
		}
	}
	copy := profile
	m.profiles[profile.ID] = &copy
	return nil
}

func (m *mockProfileRepository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	profile, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *profile
	return &copy, nil
}

func (m *mockProfileRepository) GetByAccount(_ context.Context, accountID string) (*domain.Profile, error) {
	for _, profile := range m.profiles {
		if profile.AccountID == accountID {
			copy := *profile
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepository) Update(_ context.Context, profile domain.Profile) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := profile
	m.profiles[profile.ID] = &copy
	return nil
}

func (m *mockProfileRepository) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.profiles, id)
	return nil
}

func (m *mockProfileRepository) ListAll(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(m.profiles))
	for _, profile := range m.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

type mockPostRepository struct {
	posts map[string]*domain.Post

	createErr error
	updateErr error
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{posts: make(map[string]*domain.Post)}
}

func (m *mockPostRepository) Create(_ context.Context, post domain.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	copy := post
	m.posts[post.ID] = &copy
	return nil
}

func (m *mockPostRepository) GetByID(_ context.Context, id string) (*domain.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *post
	return &copy, nil
}

func (m *mockPostRepository) Update(_ context.Context, post domain.Post) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := post
	m.posts[post.ID] = &copy
	return nil
}

func (m *mockPostRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepository) ListAll(_ context.Context) ([]domain.Post, error) {
	out := make([]domain.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out = append(out, *post)
	}
	return out, nil
}

type mockMailer struct {
	sendErr   error
	sendCalls int
	lastTo    string
	lastCode  string
}

func (m *mockMailer) SendPasswordResetCode(_ context.Context, to, code string) error {
	m.sendCalls++
	m.lastTo = to
	m.lastCode = code
	return m.sendErr
}

type mockEventPublisher struct {
	registered     []domain.AccountRegisteredEvent
	resetRequested []domain.PasswordResetRequestedEvent
	changed        []domain.PasswordChangedEvent
	publishErr     error
}

func (m *mockEventPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	m.registered = append(m.registered, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	m.resetRequested = append(m.resetRequested, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	m.changed = append(m.changed, event)
	return m.publishErr
}

type mockFileStore struct {
	putErr    error
	putCalls  int
	putKeys   []string
	putBodies []string

	deleteErr   error
	deleteCalls int
	deletedKeys []string
}

func (m *mockFileStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	m.putCalls++
	m.putKeys = append(m.putKeys, key)
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.putBodies = append(m.putBodies, string(data))
	return m.putErr
}

func (m *mockFileStore) Delete(_ context.Context, key string) error {
	m.deleteCalls++
	m.deletedKeys = append(m.deletedKeys, key)
	return m.deleteErr
}

var errBackend = errors.New("backend unavailable")
