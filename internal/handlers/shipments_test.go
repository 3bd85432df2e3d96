package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipmentForm(sender, receiver string) map[string]string {
	return map[string]string{
		"sender_id":         sender,
		"receiver_id":       receiver,
		"description":       "Documents",
		"pickup_location":   "13.75,100.50",
		"delivery_location": "13.80,100.55",
	}
}

func TestCreateShipment(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/shipments/shipments", shipmentForm("1", "2"), true)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeObject(t, rec)
	assert.Equal(t, "Shipment created successfully.", body["message"])
	assert.EqualValues(t, 1, body["shipment_id"])

	rec = env.get("/shipments/shipments")
	require.Equal(t, http.StatusOK, rec.Code)
	shipments := decodeList(t, rec)
	require.Len(t, shipments, 1)
	assert.EqualValues(t, 1, shipments[0]["status"])
	assert.Equal(t, "Documents", shipments[0]["description"])
}

func TestCreateShipment_BadInput(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/shipments/shipments", shipmentForm("1", "2"), false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded.", decodeObject(t, rec)["message"])

	rec = env.postForm(t, "/shipments/shipments", shipmentForm("x", "2"), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.postForm(t, "/shipments/shipments", shipmentForm("1", ""), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, "[]", env.get("/shipments/shipments").Body.String())
}

func TestShipmentsBySenderAndReceiver(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "Ann", "0800000001")
	env.addUser(t, "Ben", "0800000002")
	users := decodeList(t, env.get("/user/get-users"))
	ann, ben := uint(users[0]["uid"].(float64)), uint(users[1]["uid"].(float64))

	rec := env.postForm(t, "/shipments/shipments", shipmentForm(fmt.Sprint(ann), fmt.Sprint(ben)), true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.get(fmt.Sprintf("/shipments/sender/%d", ann))
	require.Equal(t, http.StatusOK, rec.Code)
	sent := decodeList(t, rec)
	require.Len(t, sent, 1)
	assert.EqualValues(t, ann, sent[0]["sender_uid"])
	assert.Equal(t, "Ann", sent[0]["sender_name"])
	assert.EqualValues(t, ben, sent[0]["receiver_uid"])
	assert.Equal(t, "Ben", sent[0]["receiver_name"])
	assert.Equal(t, "13.75,100.50", sent[0]["receiver_gps"])

	rec = env.get(fmt.Sprintf("/shipments/receiver/%d", ben))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = env.get(fmt.Sprintf("/shipments/sender/%d", ben))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No shipments found for this sender.", decodeObject(t, rec)["message"])

	rec = env.get(fmt.Sprintf("/shipments/receiver/%d", ann))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No shipments found for this receiver.", decodeObject(t, rec)["message"])

	rec = env.get("/shipments/sender/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
