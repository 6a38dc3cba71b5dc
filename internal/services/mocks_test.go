package services

import (
	"context"
	"errors"

	"payhook_backend/internal/models"
	"payhook_backend/internal/repositories"
)

// fakeAccountRepo is an in-memory AccountRepository with the same optimistic
// CAS semantics as the real store, plus failure injection.
type fakeAccountRepo struct {
	accounts map[string]*models.UserAccount

	findCalls int
	saveCalls int

	findErr       error
	saveErr       error
	conflictsLeft int // inject this many version conflicts before accepting
}

func newFakeAccountRepo(accounts ...*models.UserAccount) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[string]*models.UserAccount)}
	for _, a := range accounts {
		if a.Version == 0 {
			a.Version = 1
		}
		repo.accounts[a.ID] = a
	}
	return repo
}

func copyAccount(a *models.UserAccount) *models.UserAccount {
	clone := *a
	clone.PaymentHistory = append([]byte(nil), a.PaymentHistory...)
	return &clone
}

func (r *fakeAccountRepo) FindByID(id string) (*models.UserAccount, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	account, ok := r.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

func (r *fakeAccountRepo) FindByEmail(email string) (*models.UserAccount, error) {
	for _, a := range r.accounts {
		if a.Email == models.NormalizeEmail(email) {
			return copyAccount(a), nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(account *models.UserAccount) error {
	if _, exists := r.accounts[account.ID]; exists {
		return errors.New("duplicate account id")
	}
	if account.Version == 0 {
		account.Version = 1
	}
	r.accounts[account.ID] = copyAccount(account)
	return nil
}

func (r *fakeAccountRepo) Save(account *models.UserAccount) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		// Mimic a concurrent writer winning the race.
		stored := r.accounts[account.ID]
		stored.Version++
		return repositories.ErrVersionConflict
	}

	stored, ok := r.accounts[account.ID]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return repositories.ErrVersionConflict
	}

	account.Version++
	r.accounts[account.ID] = copyAccount(account)
	return nil
}

func (r *fakeAccountRepo) stored(id string) *models.UserAccount {
	return r.accounts[id]
}

// fakeNotifier records alert invocations.
type fakeNotifier struct {
	accountNotFound    int
	persistenceFailure int
}

func (n *fakeNotifier) AccountNotFound(ctx context.Context, app, userID, reference string) {
	n.accountNotFound++
}

func (n *fakeNotifier) PersistenceFailure(ctx context.Context, app, userID, reference string, err error) {
	n.persistenceFailure++
}
