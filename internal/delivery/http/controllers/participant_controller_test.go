package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockParticipantService struct {
	joinID      string
	joinErr     error
	lookupID    string
	lookupErr   error
	acceptErr   error
	declineErr  error
	attendErr   error
	absenceErr  error
	roster      []*domain.ParticipantWithUser
	rosterErr   error
	attendance  *domain.ParticipantAttendance
	acceptedIDs []string
}

func (m *mockParticipantService) Join(_ context.Context, _, _ string, _ bool) (string, error) {
	if m.joinErr != nil {
		return "", m.joinErr
	}
	return m.joinID, nil
}

func (m *mockParticipantService) GetParticipantID(_ context.Context, _, _ string) (string, error) {
	if m.lookupErr != nil {
		return "", m.lookupErr
	}
	return m.lookupID, nil
}

func (m *mockParticipantService) Accept(_ context.Context, id string) error {
	if m.acceptErr != nil {
		return m.acceptErr
	}
	m.acceptedIDs = append(m.acceptedIDs, id)
	return nil
}

func (m *mockParticipantService) Decline(_ context.Context, _ string) error { return m.declineErr }
func (m *mockParticipantService) Attend(_ context.Context, _ string) error  { return m.attendErr }
func (m *mockParticipantService) Absence(_ context.Context, _ string) error { return m.absenceErr }

func (m *mockParticipantService) ListParticipants(_ context.Context, _ string) ([]*domain.ParticipantWithUser, error) {
	return m.roster, m.rosterErr
}

func (m *mockParticipantService) ListAttendance(_ context.Context, _ string) (*domain.ParticipantAttendance, error) {
	if m.rosterErr != nil {
		return nil, m.rosterErr
	}
	return m.attendance, nil
}

func authedRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.SetUserID(req.Context(), userID))
}

func TestParticipantController_Join(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockParticipantService
		userID     string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "joins and returns the participant id",
			svc:        &mockParticipantService{joinID: "p1"},
			userID:     "u1",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "already joined maps to conflict",
			svc:        &mockParticipantService{joinErr: domain.ErrConflict},
			userID:     "u1",
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "unknown event maps to not found",
			svc:        &mockParticipantService{joinErr: domain.ErrNotFound},
			userID:     "u1",
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "missing user context is unauthorized",
			svc:        &mockParticipantService{joinID: "p1"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewParticipantController(testLogger(), tt.svc)

			var req *http.Request
			if tt.userID != "" {
				req = authedRequest(http.MethodPost, "/events/e1/participants", tt.userID)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/events/e1/participants", nil)
			}
			req.SetPathValue("eventID", "e1")
			w := httptest.NewRecorder()

			ctrl.Join(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			require.Nil(t, resp.Error)
			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "p1", data["participant_id"])
		})
	}
}

func TestParticipantController_GetMyParticipation(t *testing.T) {
	t.Run("resolves the caller's participant id", func(t *testing.T) {
		svc := &mockParticipantService{lookupID: "p1"}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events/e1/participants/me", "u1")
		req.SetPathValue("eventID", "e1")
		w := httptest.NewRecorder()

		ctrl.GetMyParticipation(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp helpers.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Nil(t, resp.Error)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "p1", data["participant_id"])
	})

	t.Run("not joined maps to not found", func(t *testing.T) {
		svc := &mockParticipantService{lookupErr: domain.ErrNotFound}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events/e1/participants/me", "u1")
		req.SetPathValue("eventID", "e1")
		w := httptest.NewRecorder()

		ctrl.GetMyParticipation(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		var resp helpers.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestParticipantController_Accept(t *testing.T) {
	t.Run("accepts and confirms", func(t *testing.T) {
		svc := &mockParticipantService{}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodPost, "/participants/p1/accept", "owner-1")
		req.SetPathValue("participantID", "p1")
		w := httptest.NewRecorder()

		ctrl.Accept(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"p1"}, svc.acceptedIDs)
	})

	t.Run("double accept maps to conflict", func(t *testing.T) {
		svc := &mockParticipantService{acceptErr: domain.ErrConflict}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodPost, "/participants/p1/accept", "owner-1")
		req.SetPathValue("participantID", "p1")
		w := httptest.NewRecorder()

		ctrl.Accept(w, req)

		require.Equal(t, http.StatusConflict, w.Code)
		var resp helpers.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
	})

	t.Run("unknown participant maps to not found", func(t *testing.T) {
		svc := &mockParticipantService{acceptErr: domain.ErrNotFound}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodPost, "/participants/missing/accept", "owner-1")
		req.SetPathValue("participantID", "missing")
		w := httptest.NewRecorder()

		ctrl.Accept(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestParticipantController_Attendance(t *testing.T) {
	attended := true
	roster := []*domain.ParticipantWithUser{
		{
			Participant: &domain.Participant{ID: "p1", Accepted: true, Attended: &attended},
			User:        &domain.User{ID: "u1"},
			Profile:     &domain.Profile{Firstname: "Andi"},
		},
	}

	t.Run("attend marks the participant", func(t *testing.T) {
		svc := &mockParticipantService{}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodPost, "/participants/p1/attend", "owner-1")
		req.SetPathValue("participantID", "p1")
		w := httptest.NewRecorder()

		ctrl.Attend(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("lists attendance partition", func(t *testing.T) {
		svc := &mockParticipantService{attendance: &domain.ParticipantAttendance{
			Attends:       roster,
			NotYetAttends: []*domain.ParticipantWithUser{},
		}}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events/e1/attendance", "owner-1")
		req.SetPathValue("eventID", "e1")
		w := httptest.NewRecorder()

		ctrl.ListAttendance(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp helpers.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Len(t, data["attends"], 1)
		assert.Len(t, data["not_yet_attends"], 0)
	})
}

func TestParticipantController_ListParticipants(t *testing.T) {
	t.Run("empty roster encodes as empty array", func(t *testing.T) {
		svc := &mockParticipantService{}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events/e1/participants", "owner-1")
		req.SetPathValue("eventID", "e1")
		w := httptest.NewRecorder()

		ctrl.ListParticipants(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[],"error":null}`, w.Body.String())
	})

	t.Run("unknown event maps to not found", func(t *testing.T) {
		svc := &mockParticipantService{rosterErr: domain.ErrNotFound}
		ctrl := NewParticipantController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events/missing/participants", "owner-1")
		req.SetPathValue("eventID", "missing")
		w := httptest.NewRecorder()

		ctrl.ListParticipants(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
