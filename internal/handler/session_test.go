package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylasweb/IOC-Spinwheel/internal/catalog"
	"github.com/kylasweb/IOC-Spinwheel/internal/claim"
	"github.com/kylasweb/IOC-Spinwheel/internal/concurrency"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/memory"
	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/ledger"
	"github.com/kylasweb/IOC-Spinwheel/internal/session"
)

const (
	testMobile   = "9876543210"
	testDelay    = 10 * time.Millisecond
	waitFor      = time.Second
	pollInterval = 5 * time.Millisecond
)

// fixedRNG lands on the same point of the odds table and the first prize
// of each category
type fixedRNG struct{ r float64 }

func (f fixedRNG) Float64() float64 { return f.r }
func (f fixedRNG) IntN(n int) int   { return 0 }

var (
	rollGrand    = fixedRNG{r: 0.0}
	rollDroplets = fixedRNG{r: 0.99}
)

type echoMessages struct{}

func (echoMessages) Generate(ctx context.Context, label string) (string, error) {
	return "Congratulations on " + label, nil
}

type testEnv struct {
	router http.Handler
	store  *catalog.Store
	repo   *memory.PlayerRepository
	ledger ledger.Service
}

func newTestEnv(t *testing.T, rng fixedRNG) *testEnv {
	t.Helper()
	store, err := catalog.NewStore(catalog.DefaultSeed(), nil)
	require.NoError(t, err)

	repo := memory.NewPlayerRepository()
	codes := claim.NewCodeGenerator(memory.NewCodeRegistry())
	locks := concurrency.NewLockManager()
	led := ledger.NewService(repo, store, codes, locks, nil)

	manager := session.NewManager(session.Dependencies{
		Ledger:       led,
		Claims:       claim.NewService(repo, codes, locks, nil),
		Catalog:      store,
		Messages:     echoMessages{},
		RNG:          rng,
		SpinDelay:    testDelay,
		ScratchDelay: testDelay,
	}, time.Hour, nil)
	t.Cleanup(func() { manager.Shutdown(context.Background()) })

	sessions := NewSessionHandler(manager, led, store)
	admin := NewAdminHandler(store, led, rng)

	r := chi.NewRouter()
	r.Get("/rewards", admin.HandleGetRewards())
	r.Post("/session", sessions.HandleLogin())
	r.Route("/session/{id}", func(r chi.Router) {
		r.Get("/", sessions.HandleGetSession())
		r.Post("/spin", sessions.HandleStartSpin())
		r.Post("/spin/resolve", sessions.HandleResolveSpin())
		r.Post("/spin/complete", sessions.HandleCompleteSpin())
		r.Post("/scratch", sessions.HandleStartScratch())
		r.Post("/scratch/reveal", sessions.HandleReveal())
		r.Post("/scratch/reload", sessions.HandleReloadScratch())
		r.Post("/reset", sessions.HandleReset())
		r.Post("/logout", sessions.HandleLogout())
		r.Post("/claim", sessions.HandleClaim())
		r.Post("/redeem", sessions.HandleRedeem())
		r.Get("/history", sessions.HandleHistory())
		r.Post("/admin", sessions.HandleEnterAdmin())
		r.Delete("/admin", sessions.HandleExitAdmin())
	})
	r.Route("/admin", func(r chi.Router) {
		r.Get("/prizes", admin.HandleGetPrizes())
		r.Put("/prizes", admin.HandleUpdatePrizes())
		r.Post("/prizes/import", admin.HandleImportPrizes())
		r.Get("/catalog/export", admin.HandleExportCatalog())
		r.Get("/config", admin.HandleGetConfig())
		r.Put("/config", admin.HandleUpdateConfig())
		r.Get("/odds/preview", admin.HandleOddsPreview())
		r.Get("/players", admin.HandleListPlayers())
		r.Get("/players/{mobile}", admin.HandleGetPlayer())
	})

	return &testEnv{router: r, store: store, repo: repo, ledger: led}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/session", LoginRequest{Mobile: testMobile})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[SessionResponse](t, w).SessionID
}

func (e *testEnv) view(t *testing.T, id string) SessionResponse {
	t.Helper()
	w := e.do(t, http.MethodGet, "/session/"+id+"/", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[SessionResponse](t, w)
}

func (e *testEnv) awaitResult(t *testing.T, id string) SessionResponse {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.view(t, id).State == domain.StateResult
	}, waitFor, pollInterval)
	return e.view(t, id)
}

func (e *testEnv) spinToResult(t *testing.T, id string) SessionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/session/"+id+"/spin", nil).Code)
	w := e.do(t, http.MethodPost, "/session/"+id+"/spin/resolve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	prizeID := decode[SessionResponse](t, w).Prize.ID
	w = e.do(t, http.MethodPost, "/session/"+id+"/spin/complete", CompleteSpinRequest{PrizeID: prizeID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return e.awaitResult(t, id)
}

func (e *testEnv) setBalance(t *testing.T, balance int) {
	t.Helper()
	ctx := context.Background()
	tx, err := e.repo.BeginTx(ctx)
	require.NoError(t, err)
	p, err := tx.GetProfileForUpdate(ctx, testMobile)
	require.NoError(t, err)
	p.DropletsBalance = balance
	require.NoError(t, tx.SaveProfile(ctx, p))
	require.NoError(t, tx.Commit(ctx))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHandleLogin(t *testing.T) {
	t.Run("valid mobile", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		w := env.do(t, http.MethodPost, "/session", LoginRequest{Mobile: testMobile})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decode[SessionResponse](t, w)
		assert.NotEmpty(t, resp.SessionID)
		assert.Equal(t, domain.StateDashboard, resp.State)
		assert.Equal(t, testMobile, resp.Mobile)
		assert.Equal(t, domain.DefaultMaxRetries, resp.MaxAttempts)
		assert.Zero(t, resp.Attempts)
	})

	t.Run("invalid mobile", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		w := env.do(t, http.MethodPost, "/session", LoginRequest{Mobile: "12ab"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ValidationErrorResponse](t, w)
		assert.Equal(t, ErrMsgInvalidRequestSummary, resp.Error)
		assert.Contains(t, resp.Fields, "mobile")
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		w := env.do(t, http.MethodPost, "/session", "{not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("game disabled", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		cfg := env.store.Config()
		cfg.EnableGame = false
		require.NoError(t, env.store.UpdateConfig(context.Background(), cfg))

		w := env.do(t, http.MethodPost, "/session", LoginRequest{Mobile: testMobile})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), domain.MsgGameDisabled)
	})
}

func TestHandleGetSession_NotFound(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	w := env.do(t, http.MethodGet, "/session/missing/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgSessionNotFoundError)
}

func TestSpinFlow(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)

	resp := env.spinToResult(t, id)

	require.NotNil(t, resp.Prize)
	assert.Equal(t, domain.CategoryGrand, resp.Prize.Category)
	assert.Equal(t, 1, resp.Attempts)
	assert.NotEmpty(t, resp.WinID)
	assert.Eventually(t, func() bool {
		return env.view(t, id).Message == "Congratulations on "+resp.Prize.Label
	}, waitFor, pollInterval)
}

func TestCompleteSpin_WrongPrize(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/session/"+id+"/spin", nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/session/"+id+"/spin/resolve", nil).Code)

	w := env.do(t, http.MethodPost, "/session/"+id+"/spin/complete", CompleteSpinRequest{PrizeID: "not-it"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.StateSpinning, env.view(t, id).State)
}

func TestInvalidTransition(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)

	w := env.do(t, http.MethodPost, "/session/"+id+"/spin/complete", CompleteSpinRequest{})
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Contains(t, w.Body.String(), ErrMsgInvalidTransitionError)
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)

	w := env.do(t, http.MethodPost, "/session/"+id+"/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StateWelcome, decode[SessionResponse](t, w).State)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/session/"+id+"/spin", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/session/"+id+"/", nil).Code)
}

func TestScratchFlow(t *testing.T) {
	env := newTestEnv(t, rollDroplets)
	id := env.login(t)

	w := env.do(t, http.MethodPost, "/session/"+id+"/scratch", nil)
	require.Equal(t, http.StatusOK, w.Code)
	prize := decode[SessionResponse](t, w).Prize
	require.NotNil(t, prize)
	assert.Equal(t, domain.CategoryDroplets, prize.Category)

	w = env.do(t, http.MethodPost, "/session/"+id+"/scratch/reveal", RevealRequest{Percent: 20})
	assert.Equal(t, http.StatusBadRequest, w.Code, "below the reveal threshold")

	w = env.do(t, http.MethodPost, "/session/"+id+"/scratch/reveal", RevealRequest{Percent: 55})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[SessionResponse](t, w).RevealPending)

	resp := env.awaitResult(t, id)
	assert.Equal(t, 1, resp.Attempts)
	assert.Equal(t, domain.MinDropletAward, resp.DropletsBalance)
}

func TestReloadScratch_CancelsReveal(t *testing.T) {
	env := newTestEnv(t, rollDroplets)
	id := env.login(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/session/"+id+"/scratch", nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/session/"+id+"/scratch/reveal", RevealRequest{Percent: 90}).Code)

	w := env.do(t, http.MethodPost, "/session/"+id+"/scratch/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[SessionResponse](t, w).RevealPending)

	time.Sleep(5 * testDelay)
	resp := env.view(t, id)
	assert.Equal(t, domain.StateScratching, resp.State)
	assert.Zero(t, resp.Attempts)
}

func TestHandleClaim(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)
	env.spinToResult(t, id)

	w := env.do(t, http.MethodPost, "/session/"+id+"/claim", ClaimRequest{
		Name: "Asha", Email: "not-an-email", VehicleNumber: "KL07AB1234",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ValidationErrorResponse](t, w).Fields, "email")

	w = env.do(t, http.MethodPost, "/session/"+id+"/claim", ClaimRequest{
		Name: "Asha", Email: "asha@example.com", VehicleNumber: "KL07AB1234",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ClaimResponse](t, w)
	assert.NotEmpty(t, resp.ClaimCode)
	assert.Equal(t, resp.ClaimCode, resp.Session.RedemptionCode)

	p, err := env.ledger.Profile(context.Background(), testMobile)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, resp.ClaimCode, p.History[0].ClaimCode)
}

func TestHandleRedeem(t *testing.T) {
	t.Run("insufficient droplets", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		id := env.login(t)
		env.setBalance(t, 40)

		w := env.do(t, http.MethodPost, "/session/"+id+"/redeem", RedeemRequest{RewardID: "petrol-1l"})

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Equal(t, "Insufficient droplets! You need 60 more.", decode[ErrorResponse](t, w).Error)
	})

	t.Run("unknown reward", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		id := env.login(t)

		w := env.do(t, http.MethodPost, "/session/"+id+"/redeem", RedeemRequest{RewardID: "nope"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t, rollGrand)
		id := env.login(t)
		env.setBalance(t, 150)

		w := env.do(t, http.MethodPost, "/session/"+id+"/redeem", RedeemRequest{RewardID: "petrol-1l"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[RedeemResponse](t, w)
		require.NotNil(t, resp.Record)
		assert.NotEmpty(t, resp.Record.ClaimCode)
		assert.Equal(t, 50, resp.Session.DropletsBalance)
		assert.Zero(t, resp.Session.Attempts, "redemption is not a play")
	})
}

func TestHandleHistory(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)

	w := env.do(t, http.MethodGet, "/session/"+id+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[HistoryResponse](t, w).History)

	env.spinToResult(t, id)
	w = env.do(t, http.MethodGet, "/session/"+id+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HistoryResponse](t, w)
	assert.Equal(t, testMobile, resp.Mobile)
	assert.Len(t, resp.History, 1)
}

func TestEligibilityGate(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	cfg := env.store.Config()
	cfg.MaxRetries = 1
	require.NoError(t, env.store.UpdateConfig(context.Background(), cfg))

	id := env.login(t)
	env.spinToResult(t, id)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/session/"+id+"/reset", nil).Code)

	w := env.do(t, http.MethodPost, "/session/"+id+"/spin", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You have reached the maximum limit of 1 attempts.", decode[ErrorResponse](t, w).Error)
	assert.Equal(t, domain.StateDashboard, env.view(t, id).State)
}

func TestAdminBranch(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	id := env.login(t)

	w := env.do(t, http.MethodPost, "/session/"+id+"/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StateAdmin, decode[SessionResponse](t, w).State)

	assert.Equal(t, http.StatusConflict, env.do(t, http.MethodPost, "/session/"+id+"/spin", nil).Code)

	w = env.do(t, http.MethodDelete, "/session/"+id+"/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SessionResponse](t, w)
	assert.Equal(t, domain.StateWelcome, resp.State)
	assert.Empty(t, resp.Mobile)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/session/"+id+"/", nil).Code, "exiting admin ends the session")
}

func TestHandleGetRewards(t *testing.T) {
	env := newTestEnv(t, rollGrand)
	w := env.do(t, http.MethodGet, "/rewards", nil)

	require.Equal(t, http.StatusOK, w.Code)
	rewards := decode[RewardsResponse](t, w).Rewards
	require.Len(t, rewards, len(catalog.DefaultRewards()))
	assert.True(t, strings.HasSuffix(rewards[0].ID, "-1l"))
}
