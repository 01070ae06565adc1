package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/core/content"
	"github.com/ewanblake/aihub/core/quiz"
	"github.com/ewanblake/aihub/core/suggestion"
	emailsvc "github.com/ewanblake/aihub/services/email"
	inmemdb "github.com/ewanblake/aihub/storage/database/inmem"
)

const testAdminPassword = "s3cr3t-t3st"

func newTestConfig(t *testing.T) *core.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("newTestConfig(): %v", err)
	}
	return &core.Config{
		Debug:              false,
		TestMode:           true,
		Env:                "TEST",
		AppName:            "AIHub",
		SecretKey:          "test-secret-key",
		JWTExpirationDelta: time.Hour,
		Admin:              core.AdminConfig{Username: "admin", PasswordHash: string(hash)},
		Mail:               core.MailConfig{FromName: "AIHub", FromAddress: "suggestions@aihub.test"},
	}
}

type testLogger struct {
	t *testing.T
}

var _ core.Logger = (*testLogger)(nil)

func (l testLogger) Enable(bool) {}

func (l testLogger) log(msg string, args []interface{}) {
	l.t.Log(append([]interface{}{msg}, args...)...)
}

func (l testLogger) Debug(msg string, args ...interface{}) { l.log(msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.log(msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.log(msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.log(msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatal(append([]interface{}{msg}, args...)...) }

// setup builds a full test server; the mail transport is injectable so
// dispatch outcomes can be simulated.
func setup(t *testing.T, mailer core.EmailService) (Server, *content.Service) {
	t.Helper()

	conf := newTestConfig(t)
	logger := testLogger{t: t}

	if mailer == nil {
		mailer = emailsvc.NewConsoleServiceMock()
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	contentSvc := content.NewService(inmemdb.NewContentRepository(db))

	validate, translator := core.NewValidator()
	suggestion.InitValidators(validate, translator)
	content.InitValidators(validate, translator)

	app := NewServer("", &Deps{
		Conf:          conf,
		Logger:        logger,
		QuizSvc:       quiz.NewService(quiz.DefaultQuiz(), quiz.NewSessionStore()),
		SuggestionSvc: suggestion.NewService(conf, mailer, logger),
		ContentSvc:    contentSvc,
		Validate:      validate,
		Translator:    translator,
	})
	return app, contentSvc
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

func getToken(t *testing.T, app Server) string {
	t.Helper()
	body := marchallObj(t, LoginRequest{Username: "admin", Password: testAdminPassword})
	req, rec := newRequest(http.MethodPost, "/v1/admin/login", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("getToken(): code = %d; body = %s", rec.Code, rec.Body.String())
	}
	var res LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return res.Token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
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
	return assert.ObjectsAreEqual(j1, j2), nil
}

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
