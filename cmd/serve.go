package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/entitlement"
	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server exposing the prediction engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		envr, err := initEnv()
		if err != nil {
			return err
		}
		defer envr.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(envr.Engine),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(engine *entitlement.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, engine.Status(req.Context()))
	})

	r.Post("/redeem", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Code     string `json:"code"`
			AdminKey string `json:"adminKey"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := engine.Redeem(req.Context(), body.Code)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		if res.AdminChallenge {
			if err := engine.ConfirmAdmin(req.Context(), body.AdminKey); err != nil {
				writeEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"role": "admin"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"role": "vip", "predictionsLeft": res.Remaining})
	})

	r.Post("/signout", func(w http.ResponseWriter, req *http.Request) {
		if err := engine.SignOut(req.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"role": "free"})
	})

	r.Post("/predictions", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Tier   model.Tier `json:"tier"`
			Count  int        `json:"count"`
			Market string     `json:"market"`
			Force  bool       `json:"force"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Tier == "" {
			body.Tier = model.TierFree
		}

		count := body.Count
		if body.Tier == model.TierVip {
			count = engine.NormalizeBatchSize(req.Context(), count)
		}

		res, err := engine.Fetch(req.Context(), entitlement.FetchRequest{
			Tier:      body.Tier,
			BatchSize: count,
			Market:    body.Market,
			Force:     body.Force,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"predictions": res.Predictions,
			"sources":     res.Sources,
			"fromCache":   res.FromCache,
		})
	})

	r.Get("/history", func(w http.ResponseWriter, req *http.Request) {
		preds, err := engine.History(req.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"predictions": preds})
	})

	r.Route("/admin/codes", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			codes, err := engine.ListCodes(req.Context())
			if err != nil {
				writeEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"codes": codes})
		})

		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Code  string `json:"code"`
				Quota int    `json:"quota"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := engine.CreateCode(req.Context(), body.Code, body.Quota); err != nil {
				writeEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]string{"code": body.Code})
		})

		r.Post("/{code}/toggle", func(w http.ResponseWriter, req *http.Request) {
			active, err := engine.ToggleCode(req.Context(), chi.URLParam(req, "code"))
			if err != nil {
				writeEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"active": active})
		})

		r.Delete("/{code}", func(w http.ResponseWriter, req *http.Request) {
			if err := engine.DeleteCode(req.Context(), chi.URLParam(req, "code")); err != nil {
				writeEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(req, "code")})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps the entitlement error taxonomy to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var remainder *entitlement.DailyRemainderError
	switch {
	case eris.As(err, &remainder):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":     err.Error(),
			"remaining": remainder.Remaining,
		})
	case eris.Is(err, entitlement.ErrInvalidCode),
		eris.Is(err, entitlement.ErrNoHistory):
		writeError(w, http.StatusNotFound, err.Error())
	case eris.Is(err, entitlement.ErrInactiveCode),
		eris.Is(err, entitlement.ErrDeviceMismatch),
		eris.Is(err, entitlement.ErrExhaustedCode),
		eris.Is(err, entitlement.ErrDailyLimitReached),
		eris.Is(err, entitlement.ErrInsufficientTotalPool):
		writeError(w, http.StatusForbidden, err.Error())
	case eris.Is(err, entitlement.ErrAdminDenied),
		eris.Is(err, entitlement.ErrNotAdmin):
		writeError(w, http.StatusUnauthorized, err.Error())
	case eris.Is(err, entitlement.ErrSessionExpired):
		writeError(w, http.StatusGone, err.Error())
	case eris.Is(err, entitlement.ErrDuplicateCode):
		writeError(w, http.StatusConflict, err.Error())
	case eris.Is(err, entitlement.ErrServiceSaturated):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load predictions, please try again")
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
