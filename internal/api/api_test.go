package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds the full router over an in-memory database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // each ":memory:" connection is its own database
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Transaction{},
		&domain.AccessToken{},
	))
	return NewRouter(db, testSecret), db
}

// doJSON performs one request against the router, optionally authenticated.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "response is not valid json: %s", w.Body.String())
	return out
}

// registerAna registers the canonical test user and returns her token.
func registerAna(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name":     "Ana",
		"cpf":      "11122233344",
		"email":    "ana@x.com",
		"password": "segredo",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterReturnsTokenAndHidesPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name":     "Ana",
		"cpf":      "11122233344",
		"email":    "ana@x.com",
		"password": "segredo",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["status"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@x.com", user["email"])
	assert.NotContains(t, w.Body.String(), "password", "hashed password must never be serialized")
}

func TestRegisterReportsFieldErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{}, "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["status"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "cpf")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAna(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name":     "Ana Clone",
		"cpf":      "99988877766",
		"email":    "ana@x.com",
		"password": "segredo",
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decode(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAna(t, r)

	wrong := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "ana@x.com", "password": "errada",
	}, "")
	unknown := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "ghost@x.com", "password": "segredo",
	}, "")

	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	wrongMsg := decode(t, wrong)["error"].(map[string]any)["message"]
	unknownMsg := decode(t, unknown)["error"].(map[string]any)["message"]
	assert.Equal(t, wrongMsg, unknownMsg)
	assert.Equal(t, "invalid credentials", wrongMsg)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["status"])
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAna(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// The same token no longer grants access
	w = doJSON(t, r, http.MethodGet, "/api/users", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategoryLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAna(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "Food"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	id := int(data["id"].(float64))

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["status"])

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryDeleteConflict(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerAna(t, r)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "ana@x.com").First(&user).Error)
	category := domain.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)
	tx := domain.Transaction{UserID: user.ID, CategoryID: category.ID, Type: domain.TypeExpense, Amount: 10}
	require.NoError(t, db.Create(&tx).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), nil, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.EqualValues(t, http.StatusBadRequest, errBody["code"])
	assert.Equal(t, "category has associated transactions", errBody["message"])
}

func TestUserDeleteConflictIsForbidden(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerAna(t, r)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "ana@x.com").First(&user).Error)
	category := domain.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)
	tx := domain.Transaction{UserID: user.ID, CategoryID: category.ID, Type: domain.TypeIncome, Amount: 10}
	require.NoError(t, db.Create(&tx).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil, token)
	require.Equal(t, http.StatusForbidden, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.EqualValues(t, http.StatusForbidden, errBody["code"])
}

func TestCreateTransactionUnknownCategory(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerAna(t, r)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "ana@x.com").First(&user).Error)

	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"user_id":     user.ID,
		"category_id": 9999,
		"amount":      150.75,
		"type":        "income",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decode(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "category_id")
	assert.NotContains(t, errs, "amount")
}

func TestTransactionPartialUpdate(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerAna(t, r)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "ana@x.com").First(&user).Error)
	category := domain.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)
	tx := domain.Transaction{UserID: user.ID, CategoryID: category.ID, Type: domain.TypeIncome, Amount: 100}
	require.NoError(t, db.Create(&tx).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", tx.ID), gin.H{
		"amount": 200.0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 200, data["amount"])
	assert.EqualValues(t, user.ID, data["user_id"])
	assert.EqualValues(t, category.ID, data["category_id"])
	assert.Equal(t, "income", data["type"])
}

func TestTransactionListFilterByType(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerAna(t, r)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "ana@x.com").First(&user).Error)
	category := domain.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)
	for _, txType := range []string{"income", "expense", "income"} {
		tx := domain.Transaction{UserID: user.ID, CategoryID: category.ID, Type: txType, Amount: 10}
		require.NoError(t, db.Create(&tx).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/transactions?type=income", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 2)
	for _, item := range data {
		assert.Equal(t, "income", item.(map[string]any)["type"])
	}
}

func TestNonNumericIDBehavesLikeUnknown(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAna(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/categories/abc", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
