package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencampus/greencampus/core/testutil"
	"github.com/greencampus/greencampus/core/user"
)

func Test_home(t *testing.T) {
	setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, MessageResponse{Message: "Sustainable Campus Planning API"}),
	}, rec)
}

func Test_healthz(t *testing.T) {
	setup(t)

	req, rec := newRequest(http.MethodGet, "/healthz")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)}, rec)

	app.deps.HealthCheck = func(context.Context) error { return errors.New("connection refused") }
	req, rec = newRequest(http.MethodGet, "/healthz")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusServiceUnavailable,
		wantData: marchallObj(t, httpErr{Error: "store unavailable"}),
	}, rec)
}

func Test_userApi_register(t *testing.T) {
	setup(t)
	existing := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "Pass.W0rd!", user.RoleStudent)

	body := func(name, email, pwd, role string) []byte {
		return marchallObj(t, user.NewUser{Name: name, Email: email, Password: pwd, Role: role})
	}

	tests := []httpTest{
		{name: "Empty body", body: []byte("{}"), wantCode: http.StatusBadRequest, extra: []string{"name", "email", "password"}},
		{
			name: "Invalid email", body: body("Joe", "not-an-email", "Pass.W0rd!", ""),
			wantCode: http.StatusBadRequest, extra: []string{"email"},
		},
		{
			name: "Duplicate email", body: body("Joe", " JANE@test.cd ", "Pass.W0rd!", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": user.ErrEmailExists.Error()}),
		},
		{
			name: "Unknown role", body: body("Joe", "joe@test.cd", "Pass.W0rd!", "Janitor"),
			wantCode: http.StatusBadRequest, extra: []string{"role"},
		},
		{
			name: "Admin cannot self-register", body: body("Joe", "joe@test.cd", "Pass.W0rd!", user.RoleAdmin),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"role": errAdminRegistration}),
		},
		{
			name: "Password too short", body: body("Joe", "joe@test.cd", "Sh0rt!", ""),
			wantCode: http.StatusBadRequest, extra: []string{"password"},
		},
		{
			name: "Password all numeric", body: body("Joe", "joe@test.cd", "1234567890", ""),
			wantCode: http.StatusBadRequest, extra: []string{"password"},
		},
		{
			name: "Password too similar", body: body("Joe Doe", "joedoe@test.cd", "joedoe@test", ""),
			wantCode: http.StatusBadRequest, extra: []string{"password"},
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/auth/register"
	}
	runTests(t, tests)

	t.Run("Registered", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body(" Joe ", "Joe@Test.cd", "Pass.W0rd!", user.RoleFaculty))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.User.ID)
		assert.Equal(t, "Joe", resp.User.Name)
		assert.Equal(t, "joe@test.cd", resp.User.Email)
		assert.Equal(t, user.RoleFaculty, resp.User.Role)
		assert.NotContains(t, rec.Body.String(), "password")

		usr, err := usrRepo.GetUserByID(context.Background(), resp.User.ID)
		require.NoError(t, err)
		assert.NoError(t, usr.CheckPassword("Pass.W0rd!"))
	})

	t.Run("Role defaults to Student", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body("Ann", "ann@test.cd", "Pass.W0rd!", ""))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.RoleStudent, resp.User.Role)
	})

	users, err := usrRepo.QueryAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Contains(t, users, existing)
}

func Test_userApi_login(t *testing.T) {
	setup(t)
	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "Pass.W0rd!", user.RoleStudent)

	body := func(email, pwd string) []byte {
		return marchallObj(t, LoginRequest{Email: email, Password: pwd})
	}
	errCreds := marchallObj(t, httpErr{Error: "invalid credentials"})

	tests := []httpTest{
		{name: "Empty body", body: []byte("{}"), wantCode: http.StatusBadRequest, extra: []string{"email", "password"}},
		{name: "Unknown email", body: body("joe@test.cd", "Pass.W0rd!"), wantCode: http.StatusUnauthorized, wantData: errCreds},
		{name: "Wrong password", body: body("jane@test.cd", "wrong-pass"), wantCode: http.StatusUnauthorized, wantData: errCreds},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/auth/login"
	}
	runTests(t, tests)

	t.Run("Logged in", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body(" JANE@test.cd", "Pass.W0rd!"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, usr.ID, resp.User.ID)
		assert.NotNil(t, resp.User.LastLogin)

		// the token authenticates its holder
		req, rec = newAuthRequest(http.MethodGet, "/api/auth/me", resp.Token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_userApi_me(t *testing.T) {
	setup(t)
	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "", user.RoleFaculty)
	gone := testutil.CreateUser(t, usrRepo, "Gone", "gone@test.cd", "", user.RoleStudent)
	goneToken := getToken(t, gone)
	require.NoError(t, usrRepo.DeleteUser(context.Background(), gone.ID))

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Invalid token", token: "not.a.token", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name: "Deleted user", token: goneToken, wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
		{name: "Current user", token: getToken(t, usr), wantData: marchallObj(t, usr)},
	}
	for i := range tests {
		tests[i].method = http.MethodGet
		tests[i].path = "/api/auth/me"
	}
	runTests(t, tests)
}

func Test_userApi_refreshToken(t *testing.T) {
	setup(t)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", "", user.RoleStudent)

	now := time.Now()
	unrefreshableClaims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   student.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Add(-2 * conf.Server.JWTRefreshExpirationDelta).Unix(), // older than threshold
		Name:         student.Name,
		Email:        student.Email,
		Role:         student.Role,
	}
	unrefreshableToken, err := app.auth.generateToken(unrefreshableClaims)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Refresh period expired", token: unrefreshableToken, wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/auth/token-refresh"
	}
	runTests(t, tests)

	t.Run("Token refreshed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/token-refresh", getToken(t, student))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		claims := new(Claims)
		_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(conf.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, student.ID, claims.Subject)
		assert.Equal(t, user.RoleStudent, claims.Role)
	})
}

func Test_userApi_query(t *testing.T) {
	setup(t)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "", user.RoleAdmin)
	faculty := testutil.CreateUser(t, usrRepo, "Prof", "prof@test.cd", "", user.RoleFaculty)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", "", user.RoleStudent)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Student forbidden", token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Faculty forbidden", token: getToken(t, faculty), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Get all", token: getToken(t, admin), wantData: marchallList(t, admin, faculty, student)},
	}
	for i := range tests {
		tests[i].method = http.MethodGet
		tests[i].path = "/api/users"
	}
	runTests(t, tests)
}

func Test_userApi_destroy(t *testing.T) {
	setup(t)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", "", user.RoleStudent)
	other := testutil.CreateUser(t, usrRepo, "Other", "other@test.cd", "", user.RoleStudent)
	rec := testutil.CreateRecord(t, recRepo, other, 100, 50, 5, 3, 2024)
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{name: "Auth required", path: "/api/users/" + student.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Student forbidden", path: "/api/users/" + other.ID, token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Unknown user", path: "/api/users/unknown", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "user not found"}),
		},
		{
			name: "Cannot delete yourself", path: "/api/users/" + admin.ID, token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "cannot delete yourself"}),
		},
		{
			name: "Deleted", path: "/api/users/" + other.ID, token: adminToken,
			wantData: marchallObj(t, MessageResponse{Message: "User deleted successfully"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodDelete
	}
	runTests(t, tests)

	ctx := context.Background()
	_, err := usrRepo.GetUserByID(ctx, admin.ID)
	assert.NoError(t, err, "admin must survive the self deletion attempt")
	_, err = usrRepo.GetUserByID(ctx, other.ID)
	assert.Equal(t, user.ErrNotFound, err)
	_, err = recRepo.GetRecordByID(ctx, rec.ID)
	assert.NoError(t, err, "records outlive their owner")
}
