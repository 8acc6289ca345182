package impl

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	accountRepo *mockRepo.MockAccountRepository
	txManager   *mockRepo.MockTransactionManager
	hasher      *mockSvc.MockPasswordHasher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	return accountServiceFixtures{
		service:     NewAccountService(accountRepo, txManager, hasher, newDiscardLogger()),
		accountRepo: accountRepo,
		txManager:   txManager,
		hasher:      hasher,
	}
}

// inTx runs the unit of work against txRepo.
func (fx accountServiceFixtures) inTx(t *testing.T, ctx context.Context, txRepo *mockRepo.MockAccountRepository) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().AccountRepo().Return(txRepo)

			return fn(factory)
		})
}

func anaInput() *usecase.CreateAccountInput {
	return &usecase.CreateAccountInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Username: "ana",
		Password: "secret1",
	}
}

func TestAccountService_CreateAccount_DuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	srv, repo := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)
	assert.True(t, ana.IsActive)
	assert.NotEqual(t, uuid.Nil, ana.ID)
	assert.NotEqual(t, "secret1", ana.PasswordHash)
	assert.Empty(t, ana.Phone)

	payload, err := json.Marshal(ana)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), ana.PasswordHash)
	assert.NotContains(t, string(payload), "password")

	dup := anaInput()
	dup.Username = "bob"
	_, err = srv.CreateAccount(ctx, dup)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAccountService_CreateAccount_TrimsAndHonoursOptionalFields(t *testing.T) {
	srv, _ := newMemoryAccountService()

	account, err := srv.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     "  Ana  ",
		Email:    " ana@x.com ",
		Username: " ana ",
		Password: "secret1",
		Phone:    ptr(" 555-0100 "),
		IsActive: ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana", account.Name)
	assert.Equal(t, "ana@x.com", account.Email)
	assert.Equal(t, "ana", account.Username)
	assert.Equal(t, "555-0100", account.Phone)
	assert.False(t, account.IsActive)
}

func TestAccountService_CreateAccount_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *usecase.CreateAccountInput)
	}{
		{name: "blank name", mutate: func(in *usecase.CreateAccountInput) { in.Name = "   " }},
		{name: "blank email", mutate: func(in *usecase.CreateAccountInput) { in.Email = "" }},
		{name: "blank username", mutate: func(in *usecase.CreateAccountInput) { in.Username = "\t" }},
		{name: "blank password", mutate: func(in *usecase.CreateAccountInput) { in.Password = "  " }},
		{name: "malformed email", mutate: func(in *usecase.CreateAccountInput) { in.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			input := anaInput()
			tt.mutate(input)

			account, err := fx.service.CreateAccount(context.Background(), input)

			assert.Nil(t, account)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			assert.Equal(t, domainerrors.CodeValidationFailed, domainerrors.CodeOf(err))
		})
	}
}

func TestAccountService_CreateAccount_DuplicateUsername(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().ExistsByEmail(ctx, "ana@x.com").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByUsername(ctx, "ana").Return(true, nil)

	_, err := fx.service.CreateAccount(ctx, anaInput())

	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateUsername))
}

func TestAccountService_CreateAccount_StorageErrorIsUserSafe(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().ExistsByEmail(ctx, "ana@x.com").Return(false, errors.New("connection reset"))

	_, err := fx.service.CreateAccount(ctx, anaInput())

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerrors.CodeDatabaseExecuteFailed, appErr.ErrorCode())
	assert.NotContains(t, appErr.Message(), "connection reset")
}

func TestAccountService_CreateAccount_ConstraintRaceReportsDuplicate(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().ExistsByEmail(ctx, "ana@x.com").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByUsername(ctx, "ana").Return(false, nil)
	fx.hasher.EXPECT().Hash("secret1").Return("hash", nil)
	fx.accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrDuplicateEmail.WrapMessage("create account"))

	_, err := fx.service.CreateAccount(ctx, anaInput())

	assert.Equal(t, domainerrors.CodeDuplicateEmail, domainerrors.CodeOf(err))
}

func TestAccountService_CreateAccount_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().ExistsByEmail(ctx, "ana@x.com").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByUsername(ctx, "ana").Return(false, nil)
	fx.hasher.EXPECT().Hash("secret1").Return("", errors.New("entropy exhausted"))

	_, err := fx.service.CreateAccount(ctx, anaInput())

	assert.Equal(t, domainerrors.CodePasswordHashFailed, domainerrors.CodeOf(err))
}

func TestAccountService_Authenticate(t *testing.T) {
	srv, _ := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)

	_, err = srv.Authenticate(ctx, "ana", "wrong")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	got, err := srv.Authenticate(ctx, "ana", "secret1")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)

	got, err = srv.Authenticate(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)

	_, err = srv.Authenticate(ctx, "nobody", "secret1")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = srv.Authenticate(ctx, "ana", "secret1")
	assert.True(t, errors.Is(err, domainerrors.ErrAccountInactive))

	_, err = srv.Authenticate(ctx, "ana", "wrong")
	assert.True(t, errors.Is(err, domainerrors.ErrAccountInactive), "inactive is reported before the password")
}

func TestAccountService_Authenticate_StorageError(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByUsername(ctx, "ana").Return(nil, errors.New("timeout"))

	_, err := fx.service.Authenticate(ctx, "ana", "secret1")

	assert.Equal(t, domainerrors.CodeDatabaseExecuteFailed, domainerrors.CodeOf(err))
}

func TestAccountService_ToggleActive_TwiceRestores(t *testing.T) {
	srv, repo := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)

	first, err := srv.ToggleActive(ctx, ana.ID)
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	second, err := srv.ToggleActive(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, second.IsActive)

	stored, err := repo.FindByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestAccountService_ToggleActive_NotFound(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	id := uuid.New()

	txRepo := mockRepo.NewMockAccountRepository(t)
	txRepo.EXPECT().FindByIDForUpdate(ctx, id).Return(nil, errors.WithStack(repository.ErrAccountNotFound))
	fx.inTx(t, ctx, txRepo)

	account, err := fx.service.ToggleActive(ctx, id)

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_UpdateAccount_BlankPasswordKeepsHash(t *testing.T) {
	srv, _ := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)

	updated, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{
		Name:     ptr("Ana Maria"),
		Password: ptr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, ana.PasswordHash, updated.PasswordHash)

	_, err = srv.Authenticate(ctx, "ana", "secret1")
	require.NoError(t, err)
}

func TestAccountService_UpdateAccount_RehashesPassword(t *testing.T) {
	srv, _ := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)

	_, err = srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{Password: ptr("secret2")})
	require.NoError(t, err)

	_, err = srv.Authenticate(ctx, "ana", "secret1")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	_, err = srv.Authenticate(ctx, "ana", "secret2")
	require.NoError(t, err)
}

func TestAccountService_UpdateAccount_Conflicts(t *testing.T) {
	srv, repo := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)
	_, err = srv.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name: "Bob", Email: "bob@x.com", Username: "bob", Password: "secret1",
	})
	require.NoError(t, err)

	t.Run("email held by another account", func(t *testing.T) {
		_, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{
			Name:  ptr("Changed"),
			Email: ptr("bob@x.com"),
		})
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))

		stored, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", stored.Name)
	})

	t.Run("username held by another account", func(t *testing.T) {
		_, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{Username: ptr("bob")})
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateUsername))
	})

	t.Run("own values are not conflicts", func(t *testing.T) {
		updated, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{
			Email:    ptr("ana@x.com"),
			Username: ptr("ana"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ana", updated.Username)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{Name: ptr(" ")})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		_, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{Email: ptr("nope")})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := srv.UpdateAccount(ctx, uuid.New(), &usecase.UpdateAccountInput{Name: ptr("X")})
		assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
	})
}

func TestAccountService_UpdateAccount_SkipsCheckForUnchangedEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	existing := &entity.Account{ID: uuid.New(), Name: "Ana", Email: "ana@x.com", Username: "ana", IsActive: true}

	txRepo := mockRepo.NewMockAccountRepository(t)
	txRepo.EXPECT().FindByIDForUpdate(ctx, existing.ID).Return(existing, nil)
	txRepo.EXPECT().Update(ctx, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Phone == "555" && a.Email == "ana@x.com"
	})).Return(nil)
	fx.inTx(t, ctx, txRepo)

	updated, err := fx.service.UpdateAccount(ctx, existing.ID, &usecase.UpdateAccountInput{
		Email: ptr("ana@x.com"),
		Phone: ptr("555"),
	})

	require.NoError(t, err)
	assert.Equal(t, "555", updated.Phone)
}

func TestAccountService_UpdateAccount_ConstraintRaceReportsDuplicate(t *testing.T) {
	tests := []struct {
		name     string
		input    *usecase.UpdateAccountInput
		precheck func(ctx context.Context, txRepo *mockRepo.MockAccountRepository, id uuid.UUID)
		storeErr error
		wantCode string
	}{
		{
			name:  "email",
			input: &usecase.UpdateAccountInput{Email: ptr("bob@x.com")},
			precheck: func(ctx context.Context, txRepo *mockRepo.MockAccountRepository, id uuid.UUID) {
				txRepo.EXPECT().ExistsByEmailExcludingID(ctx, "bob@x.com", id).Return(false, nil)
			},
			storeErr: domainerrors.ErrDuplicateEmail.WrapMessage("update account"),
			wantCode: domainerrors.CodeDuplicateEmail,
		},
		{
			name:  "username",
			input: &usecase.UpdateAccountInput{Username: ptr("bob")},
			precheck: func(ctx context.Context, txRepo *mockRepo.MockAccountRepository, id uuid.UUID) {
				txRepo.EXPECT().ExistsByUsernameExcludingID(ctx, "bob", id).Return(false, nil)
			},
			storeErr: domainerrors.ErrDuplicateUsername.WrapMessage("update account"),
			wantCode: domainerrors.CodeDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			ctx := context.Background()
			existing := &entity.Account{ID: uuid.New(), Name: "Ana", Email: "ana@x.com", Username: "ana", IsActive: true}

			txRepo := mockRepo.NewMockAccountRepository(t)
			txRepo.EXPECT().FindByIDForUpdate(ctx, existing.ID).Return(existing, nil)
			tt.precheck(ctx, txRepo, existing.ID)
			txRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(tt.storeErr)
			fx.inTx(t, ctx, txRepo)

			updated, err := fx.service.UpdateAccount(ctx, existing.ID, tt.input)

			require.Error(t, err)
			assert.Nil(t, updated)
			assert.Equal(t, tt.wantCode, domainerrors.CodeOf(err))
			assert.NotEqual(t, domainerrors.CodeDatabaseExecuteFailed, domainerrors.CodeOf(err))
		})
	}
}

func TestAccountService_FieldLengthLimits(t *testing.T) {
	srv, repo := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)

	longEmail := strings.Repeat("a", entity.MaxEmailLength-5) + "@x.com"

	t.Run("create", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(in *usecase.CreateAccountInput)
			details string
		}{
			{
				name:    "name",
				mutate:  func(in *usecase.CreateAccountInput) { in.Name = strings.Repeat("n", entity.MaxNameLength+1) },
				details: "name must be at most 100 characters",
			},
			{
				name:    "email",
				mutate:  func(in *usecase.CreateAccountInput) { in.Email = longEmail },
				details: "email must be at most 120 characters",
			},
			{
				name:    "username",
				mutate:  func(in *usecase.CreateAccountInput) { in.Username = strings.Repeat("u", entity.MaxUsernameLength+1) },
				details: "username must be at most 80 characters",
			},
			{
				name:    "phone",
				mutate:  func(in *usecase.CreateAccountInput) { in.Phone = ptr(strings.Repeat("5", entity.MaxPhoneLength+1)) },
				details: "phone must be at most 20 characters",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := &usecase.CreateAccountInput{Name: "Bob", Email: "bob@x.com", Username: "bob", Password: "secret1"}
				tt.mutate(in)

				_, err := srv.CreateAccount(ctx, in)

				require.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
				var appErr domainerrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.details, appErr.Details())
			})
		}
	})

	t.Run("create counts characters not bytes", func(t *testing.T) {
		account, err := srv.CreateAccount(ctx, &usecase.CreateAccountInput{
			Name: strings.Repeat("é", entity.MaxNameLength), Email: "eve@x.com", Username: "eve", Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.MaxNameLength, utf8.RuneCountInString(account.Name))
	})

	t.Run("update", func(t *testing.T) {
		tests := []struct {
			name  string
			input *usecase.UpdateAccountInput
		}{
			{name: "name", input: &usecase.UpdateAccountInput{Name: ptr(strings.Repeat("n", entity.MaxNameLength+1))}},
			{name: "email", input: &usecase.UpdateAccountInput{Email: ptr(longEmail)}},
			{name: "username", input: &usecase.UpdateAccountInput{Username: ptr(strings.Repeat("u", entity.MaxUsernameLength+1))}},
			{name: "phone", input: &usecase.UpdateAccountInput{Phone: ptr(strings.Repeat("5", entity.MaxPhoneLength+1))}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := srv.UpdateAccount(ctx, ana.ID, tt.input)

				assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
				assert.Equal(t, domainerrors.CodeValidationFailed, domainerrors.CodeOf(err))

				stored, err := repo.FindByID(ctx, ana.ID)
				require.NoError(t, err)
				assert.Equal(t, "Ana", stored.Name)
				assert.Equal(t, "ana@x.com", stored.Email)
				assert.Empty(t, stored.Phone)
			})
		}
	})

	t.Run("update at the limit", func(t *testing.T) {
		updated, err := srv.UpdateAccount(ctx, ana.ID, &usecase.UpdateAccountInput{
			Phone: ptr(" " + strings.Repeat("5", entity.MaxPhoneLength) + " "),
		})
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("5", entity.MaxPhoneLength), updated.Phone)
	})
}

func TestAccountService_ListAccounts_ClampsPaging(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().ListPaged(ctx, 1, 100).Return([]*entity.Account{}, int64(250), nil)

	out, err := fx.service.ListAccounts(ctx, &usecase.ListAccountsInput{Page: -3, PerPage: 500})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 100, out.PerPage)
	assert.Equal(t, 3, out.TotalPages)
}

func TestAccountService_ListAccounts_NewestFirst(t *testing.T) {
	srv, _ := newMemoryAccountService()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := srv.CreateAccount(ctx, &usecase.CreateAccountInput{
			Name: name, Email: name + "@x.com", Username: name, Password: "secret1",
		})
		require.NoError(t, err)
	}

	out, err := srv.ListAccounts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, 10, out.PerPage)
	assert.Len(t, out.Accounts, 3)

	count, err := srv.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAccountService_ListActiveAccounts(t *testing.T) {
	srv, _ := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)
	_, err = srv.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name: "Bob", Email: "bob@x.com", Username: "bob", Password: "secret1", IsActive: ptr(false),
	})
	require.NoError(t, err)

	active, err := srv.ListActiveAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, ana.ID, active[0].ID)
}

func TestAccountService_GetAndDeleteAccount(t *testing.T) {
	srv, _ := newMemoryAccountService()
	ctx := context.Background()

	ana, err := srv.CreateAccount(ctx, anaInput())
	require.NoError(t, err)

	got, err := srv.GetAccount(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	require.NoError(t, srv.DeleteAccount(ctx, ana.ID))

	_, err = srv.GetAccount(ctx, ana.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
	assert.True(t, errors.Is(srv.DeleteAccount(ctx, ana.ID), domainerrors.ErrAccountNotFound))
}
