package echoapi_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/homework/apps/api/echo"
	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
	logsvc "github.com/trezcool/homework/services/logger"
	"github.com/trezcool/homework/storage"
	"github.com/trezcool/homework/tests"
)

func newServer(t *testing.T, repo homework.Repository) *Server {
	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)

	srv, err := NewServer(ServerDeps{
		Conf:        testutil.NewConfig(t, core.StoreMemory),
		Logger:      logsvc.Discard(),
		HomeworkSvc: homework.NewService(repo),
		Validate:    validate,
		Translator:  translator,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func setup(t *testing.T) (*Server, homework.Repository) {
	store, err := storage.Open(testutil.NewConfig(t, core.StoreMemory), logsvc.Discard())
	require.NoError(t, err)
	return newServer(t, store), store
}

type httpTest struct {
	name         string
	method       string
	path         string
	form         url.Values
	wantCode     int
	wantLocation string
	wantBody     []string // substrings
	wantJSON     string
}

func newRequest(method, path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	if method == "" {
		method = http.MethodGet
	}
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req, httptest.NewRecorder()
}

func do(t *testing.T, srv http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, form)
	srv.ServeHTTP(rec, req)
	return rec
}

func check(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	assert.Equal(t, wantCode, rec.Code, rec.Body.String())
	if tt.wantLocation != "" {
		assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
	}
	for _, s := range tt.wantBody {
		assert.Contains(t, rec.Body.String(), s)
	}
	if tt.wantJSON != "" {
		assert.JSONEq(t, tt.wantJSON, rec.Body.String())
	}
}
