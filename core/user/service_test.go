package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/testutil"
	"github.com/greencampus/greencampus/core/user"
	emailsvc "github.com/greencampus/greencampus/services/email"
	inmemdb "github.com/greencampus/greencampus/storage/database/inmem"
)

var usrRepo user.Repository

type mailer interface {
	core.EmailService
	SentMessages() []core.EmailMessage
}

func setup(t *testing.T) (*user.Service, mailer) {
	conf := testutil.NewConfig()
	usrRepo = inmemdb.NewUserRepository(inmemdb.NewDB())

	validate := core.NewValidator()
	user.InitValidators(validate)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	return user.NewService(usrRepo, mailSvc, validate, conf), mailSvc
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	require.True(t, core.IsValidation(err), "got %v", err)
	vErr := err.(*core.ValidationError)
	require.NotEmpty(t, vErr.Fields)
	return vErr.Fields[0].Field
}

func TestService_Create(t *testing.T) {
	svc, mailSvc := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Name: "  Jane Doe ", Email: " Jane@Test.cd", Password: "Pass.W0rd!"})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "Jane Doe", usr.Name)
	assert.Equal(t, "jane@test.cd", usr.Email)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.NoError(t, usr.CheckPassword("Pass.W0rd!"))

	sent := mailSvc.SentMessages()
	if assert.Len(t, sent, 1) {
		assert.Equal(t, "jane@test.cd", sent[0].To[0].Address)
		assert.Equal(t, "Welcome to GreenCampus", sent[0].Subject)
	}

	tests := []struct {
		name  string
		nu    user.NewUser
		field string
	}{
		{name: "duplicate email", nu: user.NewUser{Name: "Jane", Email: "JANE@test.cd", Password: "Pass.W0rd!"}, field: "email"},
		{name: "blank name", nu: user.NewUser{Name: "   ", Email: "joe@test.cd", Password: "Pass.W0rd!"}, field: "name"},
		{name: "bad role", nu: user.NewUser{Name: "Joe", Email: "joe@test.cd", Password: "Pass.W0rd!", Role: "Dean"}, field: "role"},
		{name: "short password", nu: user.NewUser{Name: "Joe", Email: "joe@test.cd", Password: "Ab1!"}, field: "password"},
		{name: "password with space", nu: user.NewUser{Name: "Joe", Email: "joe@test.cd", Password: "Pass W0rd!"}, field: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.nu)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}

	users, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "Pass.W0rd!", user.RoleFaculty)

	_, err := svc.Authenticate(ctx, "joe@test.cd", "Pass.W0rd!")
	assert.Equal(t, user.ErrAuthenticationFailed, err)

	_, err = svc.Authenticate(ctx, "jane@test.cd", "wrong")
	assert.Equal(t, user.ErrAuthenticationFailed, err)

	got, err := svc.Authenticate(ctx, " JANE@test.cd ", "Pass.W0rd!")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)
	require.NotNil(t, got.LastLogin)

	stored, err := usrRepo.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, got.LastLogin, stored.LastLogin)
}

func TestService_SetPasswordAndRole(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, usrRepo, "Jane Doe", "jane@test.cd", "Pass.W0rd!", user.RoleStudent)

	_, err := svc.SetPassword(ctx, usr, "janedoe1")
	assert.Equal(t, "password", fieldOf(t, err))

	usr, err = svc.SetPassword(ctx, usr, "Bl@ckK1ng99")
	require.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("Bl@ckK1ng99"))

	_, err = svc.SetRole(ctx, usr, "Dean")
	assert.Equal(t, "role", fieldOf(t, err))

	usr, err = svc.SetRole(ctx, usr, user.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, usr.IsAdmin())
}

func TestService_CountByRole(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	counts, err := svc.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, []user.RoleCount{}, counts)

	testutil.CreateUser(t, usrRepo, "A", "a@test.cd", "", user.RoleAdmin)
	testutil.CreateUser(t, usrRepo, "B", "b@test.cd", "", user.RoleStudent)
	testutil.CreateUser(t, usrRepo, "C", "c@test.cd", "", user.RoleStudent)

	counts, err = svc.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, []user.RoleCount{
		{Role: user.RoleStudent, Count: 2},
		{Role: user.RoleAdmin, Count: 1},
	}, counts)

	total, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestService_Delete(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", "", user.RoleStudent)

	assert.Equal(t, user.ErrNotFound, svc.Delete(ctx, admin, "unknown"))

	err := svc.Delete(ctx, admin, admin.ID)
	assert.True(t, core.IsSelfDeletion(err))
	users, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2, "user directory must be unchanged")

	require.NoError(t, svc.Delete(ctx, admin, student.ID))
	_, err = svc.GetByID(ctx, student.ID)
	assert.Equal(t, user.ErrNotFound, err)
}
