package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	entries    map[int64]*JournalEntry
	lines      map[int64][]JournalLine
	accounts   map[int64]PostingAccount
	links      map[string]int64
	nextID     int64
	nextNumber int64

	txError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		entries:    make(map[int64]*JournalEntry),
		lines:      make(map[int64][]JournalLine),
		accounts:   make(map[int64]PostingAccount),
		links:      make(map[string]int64),
		nextID:     1,
		nextNumber: 1,
	}
}

func (m *mockRepository) addAccount(id int64, code string, postable, active bool) {
	m.accounts[id] = PostingAccount{ID: id, Code: code, AcceptsEntries: postable, IsActive: active}
}

func (m *mockRepository) List(ctx context.Context, filter EntryFilter) ([]JournalEntry, int, error) {
	out := make([]JournalEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (m *mockRepository) GetEntry(ctx context.Context, entryID int64) (JournalEntry, error) {
	e, ok := m.entries[entryID]
	if !ok {
		return JournalEntry{}, ErrEntryNotFound
	}
	entry := *e
	entry.Lines = m.lines[entryID]
	return entry, nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) InsertEntry(ctx context.Context, in CreateEntryInput) (JournalEntry, error) {
	entry := JournalEntry{
		ID:           m.nextID,
		Number:       m.nextNumber,
		Date:         in.Date,
		Description:  in.Description,
		Status:       in.Status,
		IsAutomatic:  in.IsAutomatic,
		TemplateCode: in.TemplateCode,
		TriggerType:  in.TriggerType,
		SourceModule: in.SourceModule,
		SourceID:     in.SourceID,
	}
	if entry.Status == "" {
		entry.Status = EntryStatusDraft
	}
	if entry.Status == EntryStatusPosted {
		now := time.Now()
		entry.PostedAt = &now
	}
	m.nextID++
	m.nextNumber++
	stored := entry
	m.entries[entry.ID] = &stored
	return entry, nil
}

func (m *mockRepository) InsertLines(ctx context.Context, entryID int64, lines []LineInput) error {
	for _, line := range lines {
		m.lines[entryID] = append(m.lines[entryID], JournalLine{
			EntryID:     entryID,
			AccountID:   line.AccountID,
			AccountCode: m.accounts[line.AccountID].Code,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return nil
}

func (m *mockRepository) GetEntryWithLinesForUpdate(ctx context.Context, entryID int64) (JournalEntry, error) {
	return m.GetEntry(ctx, entryID)
}

func (m *mockRepository) MarkPosted(ctx context.Context, entryID int64, postedAt time.Time) error {
	e, ok := m.entries[entryID]
	if !ok {
		return ErrEntryNotFound
	}
	e.Status = EntryStatusPosted
	e.PostedAt = &postedAt
	return nil
}

func (m *mockRepository) FetchPostingAccounts(ctx context.Context, accountIDs []int64) (map[int64]PostingAccount, error) {
	out := make(map[int64]PostingAccount, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := m.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (m *mockRepository) LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error {
	key := module + ":" + ref.String()
	if _, dup := m.links[key]; dup {
		return ErrSourceAlreadyLinked
	}
	m.links[key] = entryID
	return nil
}

func postableLines() []LineInput {
	return []LineInput{
		{AccountID: 1, Debit: 100},
		{AccountID: 2, Credit: 100},
	}
}

func testService(t *testing.T) (*Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	repo.addAccount(1, "1.1.1.001", true, true)
	repo.addAccount(2, "4.1.1.001", true, true)
	service := NewService(repo, nil)
	return service, repo
}

func TestCreateEntryDraftMayBeUnbalanced(t *testing.T) {
	service, _ := testService(t)

	entry, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusDraft,
		Lines: []LineInput{
			{AccountID: 1, Debit: 100},
			{AccountID: 2, Credit: 40},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, EntryStatusDraft, entry.Status)
	assert.EqualValues(t, 1, entry.Number)
}

func TestCreateEntryPostedMustBalance(t *testing.T) {
	service, _ := testService(t)

	_, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusPosted,
		Lines: []LineInput{
			{AccountID: 1, Debit: 100},
			{AccountID: 2, Credit: 90},
		},
	})
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestCreateEntryRejectsSingleLine(t *testing.T) {
	service, _ := testService(t)

	_, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:  time.Now(),
		Lines: []LineInput{{AccountID: 1, Debit: 100}},
	})
	assert.ErrorIs(t, err, ErrTooFewLines)
}

func TestCreateEntryRejectsNonPostableAccounts(t *testing.T) {
	service, repo := testService(t)
	repo.addAccount(3, "1.1", false, true)
	repo.addAccount(4, "2.1.1.001", true, false)

	_, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 3, Debit: 50},
			{AccountID: 4, Credit: 30},
			{AccountID: 9, Credit: 20},
		},
	})
	require.ErrorIs(t, err, ErrAccountNotPostable)
	assert.Contains(t, err.Error(), "1.1")
	assert.Contains(t, err.Error(), "2.1.1.001")
	assert.Contains(t, err.Error(), "#9")
}

func TestConfirmEntryPostsBalancedDraft(t *testing.T) {
	service, _ := testService(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.WithNow(func() time.Time { return fixed })

	entry, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   fixed,
		Status: EntryStatusDraft,
		Lines:  postableLines(),
	})
	require.NoError(t, err)

	posted, err := service.ConfirmEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusPosted, posted.Status)
	require.NotNil(t, posted.PostedAt)
	assert.Equal(t, fixed, *posted.PostedAt)
}

func TestConfirmEntryLeavesUnbalancedDraftUntouched(t *testing.T) {
	service, repo := testService(t)

	entry, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusDraft,
		Lines: []LineInput{
			{AccountID: 1, Debit: 100},
			{AccountID: 2, Credit: 90},
		},
	})
	require.NoError(t, err)

	_, err = service.ConfirmEntry(context.Background(), entry.ID)
	require.ErrorIs(t, err, ErrUnbalanced)
	assert.Contains(t, err.Error(), "10.00")

	current, err := repo.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusDraft, current.Status)
}

func TestConfirmEntryToleratesRoundingResidue(t *testing.T) {
	service, _ := testService(t)

	entry, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusDraft,
		Lines: []LineInput{
			{AccountID: 1, Debit: 100.005},
			{AccountID: 2, Credit: 100},
		},
	})
	require.NoError(t, err)

	_, err = service.ConfirmEntry(context.Background(), entry.ID)
	assert.NoError(t, err)
}

func TestConfirmEntryRejectsAlreadyPosted(t *testing.T) {
	service, _ := testService(t)

	entry, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusPosted,
		Lines:  postableLines(),
	})
	require.NoError(t, err)

	_, err = service.ConfirmEntry(context.Background(), entry.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestCreateEntryLinksSourceOnce(t *testing.T) {
	service, _ := testService(t)
	module := "SALES.RECEIPT"
	sourceID := uuid.NewSHA1(uuid.Nil, []byte("RECEIPT:42"))

	input := CreateEntryInput{
		Date:         time.Now(),
		Status:       EntryStatusPosted,
		SourceModule: &module,
		SourceID:     &sourceID,
		Lines:        postableLines(),
	}
	_, err := service.CreateEntry(context.Background(), input)
	require.NoError(t, err)

	_, err = service.CreateEntry(context.Background(), input)
	assert.ErrorIs(t, err, ErrSourceAlreadyLinked)
}

type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) Invalidate(ctx context.Context) error {
	r.calls++
	return nil
}

func TestPostingInvalidatesReportCache(t *testing.T) {
	service, _ := testService(t)
	inv := &recordingInvalidator{}
	service.WithInvalidator(inv)

	draft, err := service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusDraft,
		Lines:  postableLines(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, inv.calls, "draft creation must not invalidate")

	_, err = service.ConfirmEntry(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	_, err = service.CreateEntry(context.Background(), CreateEntryInput{
		Date:   time.Now(),
		Status: EntryStatusPosted,
		Lines:  postableLines(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)
}
