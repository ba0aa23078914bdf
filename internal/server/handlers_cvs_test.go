package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedJSON(t *testing.T, handler http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func validCVBody(template string) map[string]any {
	return map[string]any{
		"title":      "Backend Engineer CV",
		"templateId": template,
		"content": document.Content{
			document.SectionPersonal: {
				document.FieldName:  "Jane Doe",
				document.FieldEmail: "jane@example.com",
			},
		},
	}
}

func TestCreateCV_ReturnsCanonicalObject(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")

	rec := authedJSON(t, handler, http.MethodPost, "/cvs", bearerFor(t, s, user.ID), validCVBody("classic"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CVResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "Jane Doe", resp.Content[document.SectionPersonal][document.FieldName])
	assert.False(t, resp.UpdatedAt.IsZero())
}

func TestCreateCV_QuotaEnforced(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")
	auth := bearerFor(t, s, user.ID)

	for i := 0; i < int(subscription.FreePlanCVLimit); i++ {
		rec := authedJSON(t, handler, http.MethodPost, "/cvs", auth, validCVBody("classic"))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := authedJSON(t, handler, http.MethodPost, "/cvs", auth, validCVBody("classic"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "CV limit reached")
}

func TestCreateCV_PremiumTemplateDeniedOnFreePlan(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")

	rec := authedJSON(t, handler, http.MethodPost, "/cvs", bearerFor(t, s, user.ID), validCVBody("modern"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "premium templates")
}

func TestCreateCV_PremiumTemplateAllowedOnPro(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "pro")

	rec := authedJSON(t, handler, http.MethodPost, "/cvs", bearerFor(t, s, user.ID), validCVBody("modern"))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUpdateCV_RoundTrip(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")
	auth := bearerFor(t, s, user.ID)

	created := authedJSON(t, handler, http.MethodPost, "/cvs", auth, validCVBody("classic"))
	require.Equal(t, http.StatusCreated, created.Code)

	var cv CVResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &cv))

	body := validCVBody("compact")
	body["title"] = "Updated Title"
	rec := authedJSON(t, handler, http.MethodPut, "/cvs/"+cv.ID.String(), auth, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated CVResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, cv.ID, updated.ID)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "compact", updated.TemplateID)
}

func TestGetCV_OtherUsersCVHidden(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	owner := fdb.addUser("Owner", "owner@example.com", "hash", "free")
	other := fdb.addUser("Other", "other@example.com", "hash", "free")

	cv, err := fdb.CreateCV(t.Context(), db.CVInput{UserID: owner.ID, Title: "Private"})
	require.NoError(t, err)

	rec := authedJSON(t, handler, http.MethodGet, "/cvs/"+cv.ID.String(), bearerFor(t, s, other.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCV(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")
	auth := bearerFor(t, s, user.ID)

	cv, err := fdb.CreateCV(t.Context(), db.CVInput{UserID: user.ID, Title: "Doomed"})
	require.NoError(t, err)

	rec := authedJSON(t, handler, http.MethodDelete, "/cvs/"+cv.ID.String(), auth, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = authedJSON(t, handler, http.MethodGet, "/cvs/"+cv.ID.String(), auth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCVs_RequiresAuth(t *testing.T) {
	fdb := newFakeDB()
	_, handler := newTestServer(t, fdb)

	req := httptest.NewRequest(http.MethodGet, "/cvs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSubscription(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")

	_, err := fdb.CreateCV(t.Context(), db.CVInput{UserID: user.ID, Title: "One"})
	require.NoError(t, err)

	rec := authedJSON(t, handler, http.MethodGet, "/subscription", bearerFor(t, s, user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "free", snap["plan"])
	assert.Equal(t, float64(1), snap["cvCreated"])
	assert.Equal(t, float64(subscription.FreePlanCVLimit), snap["cvLimit"])
	assert.Equal(t, true, snap["canCreateCV"])
}

func TestUpdateSubscription_UpgradeUnlocksPremium(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")
	auth := bearerFor(t, s, user.ID)

	rec := authedJSON(t, handler, http.MethodPost, "/cvs", auth, validCVBody("modern"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = authedJSON(t, handler, http.MethodPut, "/subscription", auth, map[string]string{"plan": "pro"})
	require.Equal(t, http.StatusOK, rec.Code)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "pro", snap["plan"])
	assert.Equal(t, "Unlimited", snap["cvLimit"])

	rec = authedJSON(t, handler, http.MethodPost, "/cvs", auth, validCVBody("modern"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdateSubscription_UnknownPlan(t *testing.T) {
	fdb := newFakeDB()
	s, handler := newTestServer(t, fdb)
	user := fdb.addUser("Jane", "jane@example.com", "hash", "free")

	rec := authedJSON(t, handler, http.MethodPut, "/subscription", bearerFor(t, s, user.ID), map[string]string{"plan": "enterprise"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "plan")
}
