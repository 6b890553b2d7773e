package coa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	accounts  map[int64]*Account
	byCode    map[string]*Account
	nextID    int64
	children  map[int64]bool
	movements map[int64]bool

	txError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		accounts:  make(map[int64]*Account),
		byCode:    make(map[string]*Account),
		children:  make(map[int64]bool),
		movements: make(map[int64]bool),
		nextID:    1,
	}
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return *a, nil
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (Account, error) {
	a, ok := m.byCode[code]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return *a, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Account, int, error) {
	out := make([]Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (m *mockRepository) Insert(ctx context.Context, account Account) (Account, error) {
	if _, dup := m.byCode[account.Code]; dup {
		return Account{}, ErrDuplicateCode
	}
	account.ID = m.nextID
	m.nextID++
	stored := account
	m.accounts[account.ID] = &stored
	m.byCode[account.Code] = &stored
	return stored, nil
}

func (m *mockRepository) Update(ctx context.Context, account Account) (Account, error) {
	if _, ok := m.accounts[account.ID]; !ok {
		return Account{}, ErrAccountNotFound
	}
	stored := account
	m.accounts[account.ID] = &stored
	m.byCode[account.Code] = &stored
	return stored, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	a, ok := m.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	delete(m.byCode, a.Code)
	delete(m.accounts, id)
	return nil
}

func (m *mockRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	return m.children[id], nil
}

func (m *mockRepository) HasMovements(ctx context.Context, id int64) (bool, error) {
	return m.movements[id], nil
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	return len(m.accounts), nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func TestCreateAccountDerivesLevelAndParent(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	root, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Assets", Type: AccountTypeAsset})
	require.NoError(t, err)
	assert.Equal(t, 1, root.Level)
	assert.Nil(t, root.ParentID)
	assert.True(t, root.IsActive)

	child, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1.1", Name: "Current Assets", Type: AccountTypeAsset})
	require.NoError(t, err)
	assert.Equal(t, 2, child.Level)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestCreateAccountRejectsMissingParent(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)

	_, err := service.CreateAccount(context.Background(), CreateAccountInput{Code: "1.1", Name: "Orphan", Type: AccountTypeAsset})
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCreateAccountRejectsTypeMismatch(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	_, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Assets", Type: AccountTypeAsset})
	require.NoError(t, err)

	_, err = service.CreateAccount(ctx, CreateAccountInput{Code: "1.1", Name: "Sales", Type: AccountTypeIncome})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCreateAccountRejectsDuplicateCode(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	_, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Assets", Type: AccountTypeAsset})
	require.NoError(t, err)

	_, err = service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Again", Type: AccountTypeAsset})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestUpdateAccountKeepsCode(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	created, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Assets", Type: AccountTypeAsset})
	require.NoError(t, err)

	name := "Total Assets"
	inactive := false
	updated, err := service.UpdateAccount(ctx, created.ID, UpdateAccountInput{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "1", updated.Code)
	assert.Equal(t, "Total Assets", updated.Name)
	assert.False(t, updated.IsActive)
}

func TestUpdateAccountTypeChangeGuards(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	parent, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Assets", Type: AccountTypeAsset})
	require.NoError(t, err)
	child, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1.1", Name: "Cash", Type: AccountTypeAsset, AcceptsEntries: true})
	require.NoError(t, err)
	repo.children[parent.ID] = true

	liability := AccountTypeLiability
	_, err = service.UpdateAccount(ctx, parent.ID, UpdateAccountInput{Type: &liability})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = service.UpdateAccount(ctx, child.ID, UpdateAccountInput{Type: &liability})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	expense, err := service.CreateAccount(ctx, CreateAccountInput{Code: "5", Name: "Expenses", Type: AccountTypeExpense, AcceptsEntries: true})
	require.NoError(t, err)
	repo.movements[expense.ID] = true
	income := AccountTypeIncome
	_, err = service.UpdateAccount(ctx, expense.ID, UpdateAccountInput{Type: &income})
	assert.ErrorIs(t, err, ErrHasMovements)

	repo.movements[expense.ID] = false
	updated, err := service.UpdateAccount(ctx, expense.ID, UpdateAccountInput{Type: &income})
	require.NoError(t, err)
	assert.Equal(t, AccountTypeIncome, updated.Type)
}

func TestDeleteAccountGuards(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	parent, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1", Name: "Assets", Type: AccountTypeAsset})
	require.NoError(t, err)
	leaf, err := service.CreateAccount(ctx, CreateAccountInput{Code: "1.1", Name: "Cash", Type: AccountTypeAsset, AcceptsEntries: true})
	require.NoError(t, err)

	repo.children[parent.ID] = true
	assert.ErrorIs(t, service.DeleteAccount(ctx, parent.ID), ErrHasChildren)

	repo.movements[leaf.ID] = true
	assert.ErrorIs(t, service.DeleteAccount(ctx, leaf.ID), ErrHasMovements)

	repo.movements[leaf.ID] = false
	require.NoError(t, service.DeleteAccount(ctx, leaf.ID))
	_, err = service.GetAccountByCode(ctx, "1.1")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestBulkInitializeSeedsDefaultChart(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	ctx := context.Background()

	created, err := service.BulkInitialize(ctx, DefaultChart)
	require.NoError(t, err)
	assert.Len(t, created, len(DefaultChart))

	for _, account := range created {
		if account.Level > 1 {
			require.NotNil(t, account.ParentID, "account %s should have a parent", account.Code)
		}
	}

	_, err = service.BulkInitialize(ctx, DefaultChart)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestBulkInitializeRejectsDuplicateDefinitions(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)

	defs := []AccountDefinition{
		{Code: "1", Name: "Assets", Type: AccountTypeAsset},
		{Code: "1", Name: "Assets Again", Type: AccountTypeAsset},
	}
	_, err := service.BulkInitialize(context.Background(), defs)
	assert.ErrorIs(t, err, ErrDuplicateCode)
}
