package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"AquaKart/pkg/kit"
)

const maxBodyBytes = 1 << 20

type ctxKey string

const userKey ctxKey = "user"

func userFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userKey).(string)
	return uid, ok
}

// RequireUserHeaders trusts the identity header the gateway injects after
// JWT verification.
func RequireUserHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if uid == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, uid)))
	})
}

type Server struct {
	Store    Store
	Log      *zap.Logger
	Validate *validator.Validate
}

func NewServer(store Store, log *zap.Logger) *Server {
	return &Server{
		Store:    store,
		Log:      log,
		Validate: validator.New(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(RequireUserHeaders)

		pr.Get("/profile", s.getProfile)
		pr.Put("/profile", s.putProfile)

		pr.Get("/profile/addresses", s.listAddresses)
		pr.Post("/profile/addresses", s.addAddress)
		pr.Put("/profile/addresses/{id}", s.updateAddress)
		pr.Delete("/profile/addresses/{id}", s.deleteAddress)
		pr.Put("/profile/addresses/{id}/default", s.setDefaultAddress)
	})

	return r
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	p, found, err := s.Store.GetProfile(r.Context(), uid)
	if err != nil {
		s.Log.Error("get profile", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		// A user who never saved a profile still has one: it is empty.
		p = Profile{UserID: uid}
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type profileReq struct {
	Name  string `json:"name" validate:"required,max=80"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,e164"`
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req profileReq
	if !s.decodeValid(w, r, &req) {
		return
	}

	p := Profile{UserID: uid, Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := s.Store.UpsertProfile(r.Context(), p); err != nil {
		s.Log.Error("upsert profile", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	list, err := s.Store.ListAddresses(r.Context(), uid)
	if err != nil {
		s.Log.Error("list addresses", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, list)
}

type addressReq struct {
	Label      string `json:"label" validate:"omitempty,max=40"`
	Line1      string `json:"line1" validate:"required,max=120"`
	Line2      string `json:"line2" validate:"omitempty,max=120"`
	City       string `json:"city" validate:"required,max=80"`
	State      string `json:"state" validate:"omitempty,max=80"`
	PostalCode string `json:"postal_code" validate:"required,max=16"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
	Default    bool   `json:"default"`
}

func (req addressReq) address(id string, createdAt time.Time) Address {
	return Address{
		ID:         id,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    strings.ToUpper(req.Country),
		Default:    req.Default,
		CreatedAt:  createdAt,
	}
}

func (s *Server) addAddress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req addressReq
	if !s.decodeValid(w, r, &req) {
		return
	}

	a := req.address("a_"+uuid.NewString(), time.Now().UTC())
	if err := s.Store.AddAddress(r.Context(), uid, a); err != nil {
		s.Log.Error("add address", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if req.Default {
		if _, err := s.Store.SetDefaultAddress(r.Context(), uid, a.ID); err != nil {
			s.Log.Error("set default address", zap.Error(err))
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
			return
		}
	}

	// The store decides defaultness (a first address is always the default),
	// so respond with the stored row rather than the request echo.
	list, err := s.Store.ListAddresses(r.Context(), uid)
	if err != nil {
		s.Log.Error("list addresses", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	for _, stored := range list {
		if stored.ID == a.ID {
			a = stored
			break
		}
	}

	kit.WriteJSON(w, http.StatusCreated, a)
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req addressReq
	if !s.decodeValid(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	found, err := s.Store.UpdateAddress(r.Context(), uid, req.address(id, time.Time{}))
	if err != nil {
		s.Log.Error("update address", zap.Error(err), zap.String("address_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteNoContent(w)
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")
	found, err := s.Store.DeleteAddress(r.Context(), uid, id)
	if err != nil {
		s.Log.Error("delete address", zap.Error(err), zap.String("address_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteNoContent(w)
}

func (s *Server) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")
	found, err := s.Store.SetDefaultAddress(r.Context(), uid, id)
	if err != nil {
		s.Log.Error("set default address", zap.Error(err), zap.String("address_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteNoContent(w)
}

// decodeValid decodes the body strictly and runs struct validation, writing
// the error response itself when either step fails.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return false
	}

	if err := s.Validate.Struct(v); err != nil {
		details := map[string]any{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", details)
		return false
	}
	return true
}
