package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"gh-notes/internal/service/mocks"
)

type fixedSizer int

func (s fixedSizer) Len() int { return int(s) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		method     string
		indexed    int
		wantStatus int
		wantHealth string
	}{
		{
			name:       "healthy",
			method:     http.MethodGet,
			indexed:    2,
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
		},
		{
			name:       "index out of sync",
			method:     http.MethodGet,
			indexed:    1,
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "degraded",
		},
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNotes := mocks.NewMockNoteService(ctrl)
			mockNotes.EXPECT().Tree(gomock.Any()).Return(testTree()).AnyTimes()
			handler := NewHealthHandler(mockNotes, fixedSizer(tt.indexed))

			req := httptest.NewRequest(tt.method, "/api/health", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantHealth == "" {
				return
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantHealth)
			}
			if resp.Documents != 2 || resp.Indexed != tt.indexed {
				t.Errorf("Documents/Indexed = %d/%d, want 2/%d", resp.Documents, resp.Indexed, tt.indexed)
			}
			if resp.Timestamp == "" {
				t.Error("Timestamp should be set")
			}
		})
	}
}
