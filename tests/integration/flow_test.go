//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL = "http://localhost:8080/api/v1"
)

func postJSON(t *testing.T, client *http.Client, path, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, client *http.Client, path, token string, out any) int {
	t.Helper()
	req, err := http.NewRequest("GET", baseURL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestMessagingAndNotificationFlow(t *testing.T) {
	// Assumes the API server is running on localhost:8080 against the same
	// database DATABASE_URL points at. Run `docker-compose up` first.
	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}
	var aliceToken, bobToken, adminToken string
	var aliceID, bobID string

	register := func(t *testing.T, email, name string) (string, string) {
		resp := postJSON(t, client, "/auth/register", "", map[string]string{
			"email":     email,
			"password":  "password123",
			"full_name": name,
			"role":      "job_seeker",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		return result.User.ID, result.AccessToken
	}

	t.Run("Register Users", func(t *testing.T) {
		aliceID, aliceToken = register(t, "alice@example.com", "Alice")
		bobID, bobToken = register(t, "bob@example.com", "Bob")
		require.NotEmpty(t, aliceToken)
		require.NotEmpty(t, bobToken)
	})

	t.Run("Promote Admin", func(t *testing.T) {
		adminID, _ := register(t, "admin@example.com", "Admin")
		_, err := env.DB.Exec("UPDATE users SET role = 'admin' WHERE user_id = $1", adminID)
		require.NoError(t, err)

		// Re-login so the token carries the admin role.
		resp := postJSON(t, client, "/auth/login", "", map[string]string{
			"email":    "admin@example.com",
			"password": "password123",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		adminToken = result.AccessToken
	})

	t.Run("Send Message", func(t *testing.T) {
		resp := postJSON(t, client, "/messages/send", aliceToken, map[string]string{
			"receiver_id": bobID,
			"content":     "Hi Bob, saw your profile",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Receiver Sees Conversation And Unread", func(t *testing.T) {
		var conversations []struct {
			PartnerID   string `json:"partner_id"`
			LastMessage string `json:"last_message"`
			UnreadCount int64  `json:"unread_count"`
		}
		status := getJSON(t, client, "/messages/conversations", bobToken, &conversations)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, conversations, 1)
		assert.Equal(t, aliceID, conversations[0].PartnerID)
		assert.Equal(t, int64(1), conversations[0].UnreadCount)

		// The send also left a notification for Bob.
		var count struct {
			Count int64 `json:"count"`
		}
		status = getJSON(t, client, "/notifications/unread-count", bobToken, &count)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(1), count.Count)
	})

	t.Run("Mark Conversation Read", func(t *testing.T) {
		resp := postJSON(t, client, fmt.Sprintf("/messages/conversations/%s/read", aliceID), bobToken, map[string]string{})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		var count struct {
			Count int64 `json:"count"`
		}
		status := getJSON(t, client, "/messages/unread-count", bobToken, &count)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(0), count.Count)
	})

	t.Run("Admin Role Fan-Out", func(t *testing.T) {
		resp := postJSON(t, client, "/notifications/role", adminToken, map[string]string{
			"title":       "Profile Tips",
			"message":     "Complete your profile to get noticed",
			"type":        "ROLE_TARGETED",
			"target_role": "job_seeker",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			Recipients int `json:"recipients"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, 2, result.Recipients)
	})

	t.Run("Non-Admin Cannot Fan Out", func(t *testing.T) {
		resp := postJSON(t, client, "/notifications/system", aliceToken, map[string]string{
			"title":   "Hack",
			"message": "should be rejected",
			"type":    "SYSTEM_WIDE",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Event Intake", func(t *testing.T) {
		resp := postJSON(t, client, "/events/application-status", adminToken, map[string]string{
			"application_id": "7b0e8a1e-58b7-4bfb-9f5d-111111111111",
			"applicant_id":   aliceID,
			"job_title":      "Backend Engineer",
			"status":         "SHORTLISTED",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		var count struct {
			Count int64 `json:"count"`
		}
		status := getJSON(t, client, "/notifications/unread-count", aliceToken, &count)
		require.Equal(t, http.StatusOK, status)
		// Role fan-out above plus this event.
		assert.Equal(t, int64(2), count.Count)
	})
}
