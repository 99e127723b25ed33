package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeCRUD(t *testing.T) {
	env := newTestEnv(t)
	admin := env.sessionToken(t, "admin-crud", "admin")
	staffUser := env.sessionToken(t, "staff-member", "user")

	var employeeID float64

	t.Run("create", func(t *testing.T) {
		// Resolve the staff user's id for the employee record
		w, envelope := env.do(t, http.MethodGet, "/api/v1/auth/me", requestOptions{token: staffUser})
		require.Equal(t, http.StatusOK, w.Code)
		userID := dataField(t, envelope)["id"].(float64)

		w, envelope = env.do(t, http.MethodPost, "/api/v1/employees", requestOptions{
			token: admin,
			body: map[string]any{
				"userId":   userID,
				"fullName": "Ana Lima",
				"position": "Backend Engineer",
			},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "Ana Lima", data["fullName"])
		assert.Equal(t, "active", data["status"])
		employeeID = data["id"].(float64)
	})

	t.Run("create rejects an unknown user", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPost, "/api/v1/employees", requestOptions{
			token: admin,
			body: map[string]any{
				"userId":   99999,
				"fullName": "Ghost",
			},
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_RELATION_VIOLATED", errorCode(t, envelope))
	})

	t.Run("list", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/employees", requestOptions{token: admin})

		require.Equal(t, http.StatusOK, w.Code)
		rows := dataList(t, envelope)
		require.Len(t, rows, 1)
	})

	t.Run("get by id includes the account email", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/employees/%.0f", employeeID)
		w, envelope := env.do(t, http.MethodGet, path, requestOptions{token: admin})

		require.Equal(t, http.StatusOK, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "staff-member@example.com", data["email"])
	})

	t.Run("get missing id", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/employees/4242", requestOptions{token: admin})

		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := envelope["error"].(map[string]any)
		assert.Equal(t, "Funcionário não encontrado", errInfo["message"])
	})

	t.Run("update changes only sent fields", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/employees/%.0f", employeeID)
		w, envelope := env.do(t, http.MethodPut, path, requestOptions{
			token: admin,
			body:  map[string]any{"position": "Staff Engineer"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "Staff Engineer", data["position"])
		assert.Equal(t, "Ana Lima", data["fullName"])
	})

	t.Run("update with an invalid status is rejected", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/employees/%.0f", employeeID)
		w, _ := env.do(t, http.MethodPut, path, requestOptions{
			token: admin,
			body:  map[string]any{"status": "retired"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lookup by user id", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/auth/me", requestOptions{token: staffUser})
		require.Equal(t, http.StatusOK, w.Code)
		userID := dataField(t, envelope)["id"].(float64)

		path := fmt.Sprintf("/api/v1/employees/by-user/%.0f", userID)
		w, envelope = env.do(t, http.MethodGet, path, requestOptions{token: staffUser})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, employeeID, dataField(t, envelope)["id"])
		assert.Equal(t, "staff-member@example.com", dataField(t, envelope)["email"])
	})

	t.Run("delete needs the admin role", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/employees/%.0f", employeeID)
		w, envelope := env.do(t, http.MethodDelete, path, requestOptions{token: staffUser})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ERR_FORBIDDEN", errorCode(t, envelope))
	})

	t.Run("delete as admin", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/employees/%.0f", employeeID)
		w, _ := env.do(t, http.MethodDelete, path, requestOptions{token: admin})
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = env.do(t, http.MethodGet, path, requestOptions{token: admin})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeIntegrations(t *testing.T) {
	env := newTestEnv(t)
	admin := env.sessionToken(t, "admin-integrations", "admin")

	// Seed an employee over the API
	w, envelope := env.do(t, http.MethodGet, "/api/v1/auth/me", requestOptions{token: admin})
	require.Equal(t, http.StatusOK, w.Code)
	userID := dataField(t, envelope)["id"].(float64)

	w, envelope = env.do(t, http.MethodPost, "/api/v1/employees", requestOptions{
		token: admin,
		body:  map[string]any{"userId": userID, "fullName": "Bruno Dias"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	employeeID := dataField(t, envelope)["id"].(float64)
	base := fmt.Sprintf("/api/v1/employees/%.0f/integrations", employeeID)

	t.Run("connect a platform", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPut, base, requestOptions{
			token: admin,
			body: map[string]any{
				"platform":    "slack",
				"externalId":  "U123",
				"accessToken": "xoxb-1",
			},
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "slack", data["platform"])
		assert.Equal(t, "U123", data["externalId"])
	})

	t.Run("reconnecting overwrites the credentials", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPut, base, requestOptions{
			token: admin,
			body: map[string]any{
				"platform":    "slack",
				"externalId":  "U456",
				"accessToken": "xoxb-2",
			},
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "U456", dataField(t, envelope)["externalId"])

		w, envelope = env.do(t, http.MethodGet, base, requestOptions{token: admin})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, dataList(t, envelope), 1)
	})

	t.Run("unknown platform is rejected", func(t *testing.T) {
		w, _ := env.do(t, http.MethodPut, base, requestOptions{
			token: admin,
			body:  map[string]any{"platform": "teams"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("connect for a missing employee", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPut, "/api/v1/employees/4242/integrations", requestOptions{
			token: admin,
			body:  map[string]any{"platform": "github"},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := envelope["error"].(map[string]any)
		assert.Equal(t, "Funcionário não encontrado", errInfo["message"])
	})

	t.Run("disconnect", func(t *testing.T) {
		w, _ := env.do(t, http.MethodDelete, base+"/slack", requestOptions{token: admin})
		require.Equal(t, http.StatusOK, w.Code)

		w, envelope := env.do(t, http.MethodGet, base, requestOptions{token: admin})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, dataList(t, envelope))
	})

	t.Run("disconnect a platform that is not connected", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodDelete, base+"/manus", requestOptions{token: admin})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ERR_NOT_FOUND", errorCode(t, envelope))
	})
}
