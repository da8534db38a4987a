package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/core"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// statusFor maps the core error taxonomy onto HTTP status codes:
// invalid input and duplicates are the caller's fault (400), scoping misses
// are 404, credential failures are 401, anything else is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorInvalidInput),
		errors.Is(err, common.ErrorDuplicateUsername),
		errors.Is(err, common.ErrorDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeResult(w http.ResponseWriter, res core.Result, successStatus int) {
	status := successStatus
	if !res.Success {
		status = statusFor(res.Err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(core.Result{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeResult(w, core.Result{Success: true, Message: "OK"}, http.StatusOK)
}

// --- auth handlers ---

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeResult(w, s.core.Register(r.Context(), req.Username, req.Email, req.Password), http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeResult(w, s.core.Login(r.Context(), req.Username, req.Password), http.StatusOK)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeResult(w, s.core.Refresh(r.Context(), req.RefreshToken), http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeResult(w, s.core.Logout(r.Context(), req.RefreshToken), http.StatusOK)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// resolve the caller's username; the password-change contract is
	// username-based while the token carries only the account id
	accRes := s.core.GetAccount(r.Context(), id)
	if !accRes.Success {
		writeResult(w, accRes, http.StatusOK)
		return
	}
	acc, isAccount := accRes.Data.(core.AccountData)
	if !isAccount {
		writeError(w, http.StatusInternalServerError, "unexpected account payload")
		return
	}

	writeResult(w, s.core.ChangePassword(r.Context(), acc.Username, req.OldPassword, req.NewPassword), http.StatusOK)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	writeResult(w, s.core.DeleteAccount(r.Context(), id), http.StatusOK)
}

// --- record handlers ---

type createRecordRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}

	var req createRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeResult(w, s.core.CreateRecord(r.Context(), owner, req.Name, req.Email, req.Age), http.StatusCreated)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	writeResult(w, s.core.ListRecords(r.Context(), owner), http.StatusOK)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeResult(w, s.core.GetRecord(r.Context(), id, owner), http.StatusOK)
}

type updateRecordRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := models.RecordPatch{Name: req.Name, Email: req.Email, Age: req.Age}
	writeResult(w, s.core.UpdateRecord(r.Context(), id, owner, patch), http.StatusOK)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeResult(w, s.core.DeleteRecord(r.Context(), id, owner), http.StatusOK)
}

func (s *Server) handleSearchRecords(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	writeResult(w, s.core.SearchRecords(r.Context(), owner, r.PathValue("name")), http.StatusOK)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}
	writeResult(w, s.core.RecordStats(r.Context(), owner), http.StatusOK)
}
