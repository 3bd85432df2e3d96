package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) addRider(t *testing.T, name, phone string) {
	t.Helper()
	rec := e.postForm(t, "/rider/add-rider", map[string]string{
		"name":                name,
		"phone":               phone,
		"password":            "secret",
		"vehicleRegistration": "AB-1234",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAddRider(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/rider/add-rider", map[string]string{
		"name": "Dan", "phone": "0811111111", "password": "secret", "vehicleRegistration": "AB-1234",
	}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeObject(t, rec)
	assert.Equal(t, "Rider added successfully.", body["message"])
	assert.Contains(t, body["imageURL"], "/uploads/riders/")

	rec = env.postForm(t, "/rider/add-rider", map[string]string{"name": "Eve", "phone": "0811111111"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This number is already in use.", decodeObject(t, rec)["message"])

	rec = env.postForm(t, "/rider/add-rider", map[string]string{"name": "Eve", "phone": "0822222222"}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded.", decodeObject(t, rec)["message"])
}

func TestGetRiders(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/rider/get-riders")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No riders found.", decodeObject(t, rec)["message"])

	env.addRider(t, "Dan", "0811111111")

	rec = env.get("/rider/get-riders")
	require.Equal(t, http.StatusOK, rec.Code)
	riders := decodeList(t, rec)
	require.Len(t, riders, 1)
	assert.Equal(t, "AB-1234", riders[0]["vehicleRegistration"])
	assert.Contains(t, riders[0], "rid")
	assert.NotContains(t, riders[0], "id")
	assert.NotContains(t, riders[0], "password")
}

func TestLoginRider(t *testing.T) {
	env := newTestEnv(t)
	env.addRider(t, "Dan", "0811111111")

	rec := env.postJSON(t, "/rider/login", map[string]string{"phone": "0811111111", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	rider, ok := decodeObject(t, rec)["rider"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Dan", rider["name"])

	rec = env.postJSON(t, "/rider/login", map[string]string{"phone": "0811111111", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid password.", decodeObject(t, rec)["message"])

	rec = env.postJSON(t, "/rider/login", map[string]string{"phone": "0899999999", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No rider found with this phone number.", decodeObject(t, rec)["message"])

	rec = env.postJSON(t, "/rider/login", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRider(t *testing.T) {
	env := newTestEnv(t)
	env.addRider(t, "Dan", "0811111111")
	rid := uint(decodeList(t, env.get("/rider/get-riders"))[0]["rid"].(float64))

	rec := env.get(fmt.Sprintf("/rider/get-rider/%d", rid))
	require.Equal(t, http.StatusOK, rec.Code)
	rider := decodeObject(t, rec)
	assert.Equal(t, "Dan", rider["name"])
	assert.NotContains(t, rider, "password")

	rec = env.get("/rider/get-rider/9999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Rider not found.", decodeObject(t, rec)["message"])

	rec = env.get("/rider/get-rider/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddRider_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/rider/add-rider", map[string]string{
		"name": "Dan", "phone": "0811111111", "password": strings.Repeat("p", 73),
	}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at most 72 bytes.", decodeObject(t, rec)["message"])
	assert.Equal(t, http.StatusNotFound, env.get("/rider/get-riders").Code)
}
