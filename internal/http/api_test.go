package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-server/internal/repository/sqlite"
	"attendance-server/internal/scanner"
	"attendance-server/internal/service"
	"attendance-server/internal/storage"
)

type stubConn struct {
	sample []byte
}

func (c *stubConn) Write(ctx context.Context, data []byte) error { return nil }

func (c *stubConn) Read(ctx context.Context, size int) ([]byte, error) {
	return c.sample, nil
}

func (c *stubConn) Close() error { return nil }

type stubTransport struct {
	devices []scanner.DeviceInfo
	sample  []byte
}

func (t *stubTransport) ListDevices(ctx context.Context) ([]scanner.DeviceInfo, error) {
	return t.devices, nil
}

func (t *stubTransport) Open(ctx context.Context, device scanner.DeviceInfo) (scanner.Conn, error) {
	return &stubConn{sample: t.sample}, nil
}

func setupRouter(t *testing.T, transport scanner.Transport) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	departmentRepo := sqlite.NewDepartmentRepository(db)
	holidayRepo := sqlite.NewHolidayRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, employeeRepo.Init(ctx))
	require.NoError(t, departmentRepo.Init(ctx))
	require.NoError(t, holidayRepo.Init(ctx))

	users := service.NewUserService(userRepo, service.PlainScheme{})
	require.NoError(t, users.EnsureDefaultAdmin(ctx))

	local, err := storage.NewLocalService(t.TempDir())
	require.NoError(t, err)

	var fingerprint *scanner.Scanner
	if transport != nil {
		fingerprint = scanner.New(transport)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewHandler(
		users,
		service.NewEmployeeService(employeeRepo),
		service.NewDepartmentService(departmentRepo),
		service.NewHolidayService(holidayRepo),
		local,
		fingerprint,
		local.Root(),
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestInfoEndpoint(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Attendance Management System API", body["message"])
}

func TestLogin(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "Admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Admin", user["username"])
	assert.NotContains(t, user, "password")

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{"username": "Admin", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid password", decodeBody(t, rec)["message"])

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{"username": "Nobody", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["message"])
}

func TestCreateUser_Conflict(t *testing.T) {
	router := setupRouter(t, nil)
	payload := gin.H{"username": "jdoe", "password": "pw", "display_name": "J. Doe"}

	rec := doJSON(t, router, http.MethodPost, "/api/users", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/users", payload)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, rec)["message"])
}

func TestGetUser_NotFound(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDepartmentDelete_NoCascade(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/departments", gin.H{
		"name":            "Engineering",
		"department_head": "Alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	deptID := int64(decodeBody(t, rec)["department_id"].(float64))

	rec = doJSON(t, router, http.MethodPost, "/api/employees", gin.H{
		"unique_id":     "E001",
		"department_id": deptID,
		"lastname":      "Doe",
		"firstname":     "Jane",
		"display_name":  "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// duplicate unique_id is a structured conflict, not a fault
	rec = doJSON(t, router, http.MethodPost, "/api/employees", gin.H{
		"unique_id":    "E001",
		"lastname":     "Smith",
		"firstname":    "John",
		"display_name": "John Smith",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Employee ID already exists", decodeBody(t, rec)["message"])

	// deleting the department succeeds even though E001 references it
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/departments/%d", deptID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = doJSON(t, router, http.MethodGet, "/api/employees/unique/E001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, deptID, decodeBody(t, rec)["department_id"])
}

func TestEmployeeSearch(t *testing.T) {
	router := setupRouter(t, nil)

	for _, e := range []gin.H{
		{"unique_id": "E001", "lastname": "Smith", "firstname": "Anna", "display_name": "Anna Smith"},
		{"unique_id": "E002", "lastname": "Taylor", "firstname": "Bob", "display_name": "Bob Taylor"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/employees", e)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/employees/search?q=smi", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Smith", results[0]["lastname"])
}

func TestZeroEffectUpdateIsOK(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPut, "/api/holidays/42", gin.H{"name": "Ghost", "date": "2026-01-01"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestUploadAndServeImage(t *testing.T) {
	router := setupRouter(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	path, ok := body["path"].(string)
	require.True(t, ok)

	rec2 := doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, "fake-png", rec2.Body.String())
}

func TestScannerCapture(t *testing.T) {
	sample := bytes.Repeat([]byte{0xAB}, 64)
	router := setupRouter(t, &stubTransport{
		devices: []scanner.DeviceInfo{{Vendor: 0x05ba, Product: 0x000a}},
		sample:  sample,
	})

	rec := doJSON(t, router, http.MethodGet, "/api/scanner/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decodeBody(t, rec)["state"])

	rec = doJSON(t, router, http.MethodPost, "/api/scanner/capture", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["sample"])

	// released after the cycle
	rec = doJSON(t, router, http.MethodGet, "/api/scanner/status", nil)
	assert.Equal(t, "idle", decodeBody(t, rec)["state"])
}

func TestScannerCapture_NoDevice(t *testing.T) {
	router := setupRouter(t, &stubTransport{})

	rec := doJSON(t, router, http.MethodPost, "/api/scanner/capture", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScannerStatus_NotConfigured(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/scanner/status", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
