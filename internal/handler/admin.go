package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kylasweb/IOC-Spinwheel/internal/catalog"
	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
)

// CatalogAdmin is the mutable side of the catalog store
type CatalogAdmin interface {
	Prizes() []domain.Prize
	Rewards() []domain.RedeemableReward
	Config() domain.GameConfig
	Snapshot() (domain.Odds, []domain.Prize)
	UpdatePrizes(ctx context.Context, prizes []domain.Prize) error
	AddPrizes(ctx context.Context, prizes []domain.Prize) (int, error)
	UpdateConfig(ctx context.Context, cfg domain.GameConfig) error
	ExportYAML() ([]byte, error)
}

// PlayerDirectory lists ledger profiles
type PlayerDirectory interface {
	Profile(ctx context.Context, mobile string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
}

// AdminHandler serves the operator endpoints
type AdminHandler struct {
	catalog CatalogAdmin
	players PlayerDirectory
	rng     prize.RandomSource
}

// NewAdminHandler wires the admin endpoints. A nil rng uses the crypto source.
func NewAdminHandler(catalog CatalogAdmin, players PlayerDirectory, rng prize.RandomSource) *AdminHandler {
	if rng == nil {
		rng = prize.DefaultRNG()
	}
	return &AdminHandler{catalog: catalog, players: players, rng: rng}
}

// UpdatePrizesRequest replaces the whole catalog
type UpdatePrizesRequest struct {
	Prizes []domain.Prize `json:"prizes" validate:"required,min=1,dive"`
}

// UpdateConfigRequest replaces the game configuration
type UpdateConfigRequest struct {
	MaxRetries int         `json:"max_retries" validate:"min=1"`
	EnableGame bool        `json:"enable_game"`
	DailyLimit int         `json:"daily_limit" validate:"min=0"`
	Odds       domain.Odds `json:"odds"`
}

// PrizesResponse lists the catalog
type PrizesResponse struct {
	Prizes []domain.Prize `json:"prizes"`
}

// RewardsResponse lists what droplets can buy
type RewardsResponse struct {
	Rewards []domain.RedeemableReward `json:"rewards"`
}

// ConfigResponse carries the configuration and the live odds sum
type ConfigResponse struct {
	Config  domain.GameConfig `json:"config"`
	OddsSum int               `json:"odds_sum"`
}

// ImportResponse reports a bulk import
type ImportResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
}

// OddsPreviewResponse is a Monte-Carlo run against the live catalog
type OddsPreviewResponse struct {
	Odds         domain.Odds        `json:"odds"`
	Distribution prize.Distribution `json:"distribution"`
}

// PlayersResponse lists every profile
type PlayersResponse struct {
	Players []*domain.Profile `json:"players"`
}

// HandleGetPrizes returns the prize catalog
func (h *AdminHandler) HandleGetPrizes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, PrizesResponse{Prizes: h.catalog.Prizes()})
	}
}

// HandleGetRewards returns the redeemable rewards
func (h *AdminHandler) HandleGetRewards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, RewardsResponse{Rewards: h.catalog.Rewards()})
	}
}

// HandleUpdatePrizes replaces the catalog. Invalid lists leave it untouched.
func (h *AdminHandler) HandleUpdatePrizes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdatePrizesRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update prizes"); err != nil {
			return
		}
		if err := h.catalog.UpdatePrizes(r.Context(), req.Prizes); err != nil {
			respondServiceError(w, r, "Update prizes", err)
			return
		}
		respondJSON(w, http.StatusOK, PrizesResponse{Prizes: h.catalog.Prizes()})
	}
}

// HandleImportPrizes bulk-loads prizes from a CSV body. mode=replace swaps
// the catalog, the default appends.
func (h *AdminHandler) HandleImportPrizes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		mode := GetOptionalQueryParam(r, QueryParamMode, ImportModeAppend)
		if mode != ImportModeAppend && mode != ImportModeReplace {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidImportMode)
			return
		}

		prizes, err := catalog.ParseCSV(io.LimitReader(r.Body, MaxImportBytes))
		if err != nil {
			log.Warn("CSV import rejected", "error", err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		imported := len(prizes)
		if mode == ImportModeReplace {
			err = h.catalog.UpdatePrizes(r.Context(), prizes)
		} else {
			imported, err = h.catalog.AddPrizes(r.Context(), prizes)
		}
		if err != nil {
			respondServiceError(w, r, ErrMsgImportFailed, err)
			return
		}

		log.Info("Prizes imported", "mode", mode, "imported", imported)
		respondJSON(w, http.StatusOK, ImportResponse{
			Message:  MsgPrizesImported,
			Imported: imported,
			Total:    len(h.catalog.Prizes()),
		})
	}
}

// HandleExportCatalog renders the live catalog as a YAML seed document
func (h *AdminHandler) HandleExportCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.catalog.ExportYAML()
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgExportFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgExportFailed)
			return
		}
		w.Header().Set("Content-Type", ContentTypeYAML)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

// HandleGetConfig returns the game configuration
func (h *AdminHandler) HandleGetConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := h.catalog.Config()
		respondJSON(w, http.StatusOK, ConfigResponse{Config: cfg, OddsSum: cfg.Odds.Sum()})
	}
}

// HandleUpdateConfig commits a configuration only when the odds sum to 100
func (h *AdminHandler) HandleUpdateConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateConfigRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update config"); err != nil {
			return
		}
		cfg := domain.GameConfig{
			MaxRetries: req.MaxRetries,
			EnableGame: req.EnableGame,
			DailyLimit: req.DailyLimit,
			Odds:       req.Odds,
		}
		if err := h.catalog.UpdateConfig(r.Context(), cfg); err != nil {
			respondServiceError(w, r, "Update config", err)
			return
		}
		respondJSON(w, http.StatusOK, ConfigResponse{Config: cfg, OddsSum: cfg.Odds.Sum()})
	}
}

// HandleOddsPreview simulates draws against the live odds and catalog
func (h *AdminHandler) HandleOddsPreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draws, ok := GetPositiveIntQueryParam(r, w, QueryParamDraws, prize.DefaultSimulationDraws, ErrMsgInvalidDraws)
		if !ok {
			return
		}
		odds, prizes := h.catalog.Snapshot()
		respondJSON(w, http.StatusOK, OddsPreviewResponse{
			Odds:         odds,
			Distribution: prize.Simulate(odds, prizes, h.rng, draws),
		})
	}
}

// HandleListPlayers returns every ledger profile
func (h *AdminHandler) HandleListPlayers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := h.players.ListProfiles(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListPlayersFailed, err)
			return
		}
		if players == nil {
			players = []*domain.Profile{}
		}
		respondJSON(w, http.StatusOK, PlayersResponse{Players: players})
	}
}

// HandleGetPlayer returns one profile by mobile number
func (h *AdminHandler) HandleGetPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mobile := chi.URLParam(r, URLParamMobile)
		if !domain.ValidMobile(mobile) {
			respondServiceError(w, r, "Get player", domain.ErrInvalidMobile)
			return
		}
		p, err := h.players.Profile(r.Context(), mobile)
		if err != nil {
			respondServiceError(w, r, "Get player", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}
