package handlers_test

import (
	"GophSign/internal/config"
	"GophSign/internal/handlers"
	"GophSign/internal/middleware"
	"GophSign/internal/pdf"
	"GophSign/internal/repo"
	"GophSign/internal/service"
	"GophSign/internal/storage"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// testEnv — роутер поверх настоящих SQLite в памяти и файлового хранилища.
type testEnv struct {
	router http.Handler
	cfg    *config.Config
	users  *service.UserService
	dir    string
	sqlDB  *sql.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{AuthSecret: testSecret, UploadMaxSizeMB: 1, SessionTTL: time.Hour}
	userRepo := repo.NewUserRepository(db)
	userSvc := service.NewUserService(userRepo, repo.NewAccountRepository(db))
	docSvc := service.NewDocumentService(repo.NewDocumentRepository(db), userRepo, store, pdf.NewPageCounter(), logger)

	h := handlers.NewHandler(userSvc, docSvc, logger, cfg)
	return &testEnv{router: h.Router, cfg: cfg, users: userSvc, dir: dir, sqlDB: sqlDB}
}

// signUp регистрирует пользователя и возвращает cookie его сессии.
func (e *testEnv) signUp(t *testing.T, email string) *http.Cookie {
	t.Helper()
	u, err := e.users.Register(context.Background(), "Test User", email, "secret")
	require.NoError(t, err)
	return sessionCookie(t, u.ID)
}

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, err := middleware.IssueToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.CookieName, Value: token}
}

func (e *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// uploadedFiles — содержимое каталога хранилища.
func (e *testEnv) uploadedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, en := range entries {
		names = append(names, en.Name())
	}
	return names
}

// uploadRequest собирает multipart-запрос; пустой filename — без файла.
func uploadRequest(t *testing.T, filename, name string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader = http.NoBody
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[struct {
		Message string `json:"message"`
	}](t, rr).Message
}
