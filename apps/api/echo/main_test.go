package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/analytics"
	"github.com/greencampus/greencampus/core/dashboard"
	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/testutil"
	"github.com/greencampus/greencampus/core/user"
	"github.com/greencampus/greencampus/services/email"
	"github.com/greencampus/greencampus/storage/database/inmem"
)

var (
	conf     *core.Config
	app      *Server
	usrRepo  user.Repository
	recRepo  resource.Repository
	goalRepo goal.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

// setup builds a fresh Server backed by an empty in-memory store.
func setup(t *testing.T) *Server {
	t.Helper()

	conf = testutil.NewConfig()
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	recRepo = inmemdb.NewRecordRepository(db)
	goalRepo = inmemdb.NewGoalRepository(db)

	validate := core.NewValidator()
	user.InitValidators(validate)

	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock(conf), validate, conf)
	resSvc := resource.NewService(recRepo, usrRepo, validate)
	goalSvc := goal.NewService(goalRepo, validate)
	engine := analytics.NewEngine(recRepo)

	app = NewServer(ServerDeps{
		Conf:           conf,
		Validator:      validate,
		DisableReqLogs: true,
		UserSvc:        usrSvc,
		ResourceSvc:    resSvc,
		GoalSvc:        goalSvc,
		Analytics:      engine,
		Dashboards:     dashboard.NewAssembler(engine, resSvc, usrSvc, goalSvc),
	})
	t.Cleanup(func() { _ = app.Close() })
	return app
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := app.auth.userToken(usr)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

// checkCodeAndData checks the status code, and the body when `wantData` is set.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// checkFieldErrors checks that the body is a validation failure on exactly `fields`.
func checkFieldErrors(t *testing.T, rec *httptest.ResponseRecorder, fields ...string) {
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v; body %s", err, rec.Body.String())
	}
	keys := make([]string, 0, len(got))
	for k := range got {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, fields, keys)
}

func runTests(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
			if fields, ok := tt.extra.([]string); ok {
				checkFieldErrors(t, rec, fields...)
			}
		})
	}
}

func fPtr(f float64) *float64 { return &f }
func iPtr(i int) *int { return &i }
