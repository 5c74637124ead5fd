package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VictorWong123/shopnsplit/internal/calculator"
	"github.com/VictorWong123/shopnsplit/internal/middleware"
	"github.com/VictorWong123/shopnsplit/internal/models"
	"github.com/VictorWong123/shopnsplit/internal/session"
)

type credentialsRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Password    string `json:"password"`
}

type authResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
}

// calculateResponse carries the running totals plus the validation
// outcome per item category, so the client can disable its next-step
// button without duplicating any rules.
type calculateResponse struct {
	Totals     calculator.Totals  `json:"totals"`
	Validation validationResponse `json:"validation"`
}

type validationResponse struct {
	Participants string             `json:"participants,omitempty"`
	SharedItems  validationStatus   `json:"sharedItems"`
	Groups       []validationStatus `json:"groups"`
	Personal     []validationStatus `json:"personalBuckets"`
}

type validationStatus struct {
	OK      bool   `json:"ok"`
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

func toStatus(res calculator.ValidationResult) validationStatus {
	return validationStatus{
		OK:      res.OK(),
		Result:  res.String(),
		Message: res.Message(),
	}
}

// handleCalculate runs the allocation engine over whatever state the
// client has accumulated. It never rejects malformed prices; they are
// reported in the validation block while the totals stay lenient.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var state session.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp := calculateResponse{
		Totals: state.Totals(),
		Validation: validationResponse{
			SharedItems: toStatus(calculator.ValidateItems(state.SharedItems)),
			Groups:      make([]validationStatus, 0, len(state.Groups)),
			Personal:    make([]validationStatus, 0, len(state.Personal)),
		},
	}
	if err := calculator.ValidateParticipants(state.Participants); err != nil {
		resp.Validation.Participants = err.Error()
	}
	for _, g := range state.Groups {
		resp.Validation.Groups = append(resp.Validation.Groups, toStatus(calculator.ValidateItems(g.Items)))
	}
	for _, b := range state.Personal {
		resp.Validation.Personal = append(resp.Validation.Personal, toStatus(calculator.ValidateItems(b.Items)))
	}

	writeJSON(w, http.StatusOK, resp)
}

type saveReceiptRequest struct {
	session.State
	DisplayName string `json:"displayName"`
}

func (s *Server) handleSaveReceipt(w http.ResponseWriter, r *http.Request) {
	var req saveReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerID := middleware.GetUserID(r.Context())
	receipt, err := s.receipts.Save(r.Context(), ownerID, req.State, req.DisplayName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

// receiptSummary is the list-view shape: metadata plus totals, without
// the full item collections.
type receiptSummary struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"displayName"`
	ShareSlug   string            `json:"shareSlug"`
	Totals      calculator.Totals `json:"totals"`
	CreatedAt   int64             `json:"createdAt"`
}

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	receipts, err := s.receipts.List(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summaries := make([]receiptSummary, 0, len(receipts))
	for _, rec := range receipts {
		summaries = append(summaries, summarize(rec))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func summarize(r *models.Receipt) receiptSummary {
	return receiptSummary{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		ShareSlug:   r.ShareSlug,
		Totals:      r.Totals,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	receipt, err := s.receipts.Get(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleGetShared(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.receipts.GetShared(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

type renameRequest struct {
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRenameReceipt(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerID := middleware.GetUserID(r.Context())
	if err := s.receipts.Rename(r.Context(), chi.URLParam(r, "id"), ownerID, req.DisplayName); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if err := s.receipts.Delete(r.Context(), chi.URLParam(r, "id"), ownerID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
