package tests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	. "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/academics"
	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/core/assignment"
	"github.com/darasahq/darasa/core/board"
	"github.com/darasahq/darasa/core/exams"
	"github.com/darasahq/darasa/core/fees"
	"github.com/darasahq/darasa/core/history"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/student"
	emailsvc "github.com/darasahq/darasa/services/email"
	"github.com/darasahq/darasa/storage/document/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testConf() *core.Config {
	conf := &core.Config{
		TestMode:     true,
		AppName:      "Darasa",
		SecretKey:    "test-secret",
		SchoolCode:   "CB",
		AcademicYear: "2025-26",
	}
	conf.Server.JWTExpirationDelta = time.Hour
	conf.Server.JWTRefreshExpirationDelta = 2 * time.Hour
	return conf
}

type testEnv struct {
	server     *Server
	db         *dummydb.Store
	conf       *core.Config
	accountSvc *account.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := testConf()
	db, err := dummydb.Open()
	require.NoError(t, err)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	accountSvc := account.NewService(db)
	feeSvc := fees.NewService(db)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        nopLogger{},
		AccountSvc:    accountSvc,
		StudentSvc:    student.NewService(db, conf),
		FeeSvc:        feeSvc,
		AssignmentSvc: assignment.NewService(db),
		AcademicsSvc:  academics.NewService(db, conf),
		BoardSvc:      board.NewService(db, mailSvc),
		ExamSvc:       exams.NewService(db),
		HistorySvc:    history.NewService(db),
		Validate:      validate,
		Translator:    translator,
	})
	return &testEnv{server: server, db: db, conf: conf, accountSvc: accountSvc}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// createUser provisions an account and returns it along with a signed token.
func (env *testEnv) createUser(t *testing.T, uname string, roles []string, facultyCode string) (school.User, string) {
	t.Helper()
	usr := school.User{
		Name:        uname,
		Username:    uname,
		Email:       uname + "@school.test",
		IsActive:    true,
		Roles:       roles,
		FacultyCode: facultyCode,
	}
	require.NoError(t, usr.SetPassword("s3cr3tpass"))
	usr, err := env.accountSvc.UpdateOrCreate(usr)
	require.NoError(t, err)

	token, err := GenerateToken(GetUserClaims(usr))
	require.NoError(t, err)
	return usr, token
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
}

func (env *testEnv) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
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
	env.server.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(obj)
	require.NoError(t, err)
	return b
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
