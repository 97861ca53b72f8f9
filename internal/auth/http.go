package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"AquaKart/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Log      *zap.Logger
	OTP      *OTP
	JWT      *TokenMaker
	TokenTTL time.Duration

	// DevMode echoes the issued code back in the request response, so the
	// mobile app (and the tests) can log in without a real SMS provider.
	DevMode bool
}

type otpRequestReq struct {
	Channel string `json:"channel"`
}

type otpRequestResp struct {
	Status    string `json:"status"`
	DebugCode string `json:"debug_code,omitempty"`
}

func (s *Server) handleOTPRequest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req otpRequestReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if NormalizeChannel(req.Channel) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "channel required", nil)
		return
	}

	code, err := s.OTP.Request(r.Context(), req.Channel)
	if err != nil {
		s.Log.Error("otp request", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	resp := otpRequestResp{Status: "sent"}
	if s.DevMode {
		resp.DebugCode = code
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

type otpVerifyReq struct {
	Channel string `json:"channel"`
	Code    string `json:"code"`
}

type otpVerifyResp struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

func (s *Server) handleOTPVerify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req otpVerifyReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Code = strings.TrimSpace(req.Code)
	if NormalizeChannel(req.Channel) == "" || req.Code == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "channel/code required", nil)
		return
	}

	u, err := s.OTP.Verify(r.Context(), req.Channel, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooManyTries):
			kit.WriteError(w, r, http.StatusTooManyRequests, "too many attempts", nil)
		case errors.Is(err, ErrCodeExpired), errors.Is(err, ErrCodeMismatch):
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid code", nil)
		default:
			s.Log.Error("otp verify", zap.Error(err))
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		}
		return
	}

	tok, err := s.JWT.New(u.ID, u.Channel, s.TokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, otpVerifyResp{AccessToken: tok, UserID: u.ID})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
		return
	}

	claims, err := s.JWT.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id": claims.UserID,
		"channel": claims.Channel,
	})
}
