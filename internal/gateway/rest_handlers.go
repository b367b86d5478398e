package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/deniscmrg/investia-api/internal/auth"
	"github.com/deniscmrg/investia-api/internal/domain"
	"github.com/deniscmrg/investia-api/internal/execution"
	"github.com/deniscmrg/investia-api/internal/terminal"
)

type Handlers struct {
	terminal     terminal.Client
	orderSvc     *execution.OrderService
	jwtSvc       *auth.JWTService
	passwordHash []byte
	logger       *slog.Logger
}

func NewHandlers(
	t terminal.Client,
	orderSvc *execution.OrderService,
	jwtSvc *auth.JWTService,
	passwordHash string,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		terminal:     t,
		orderSvc:     orderSvc,
		jwtSvc:       jwtSvc,
		passwordHash: []byte(passwordHash),
		logger:       logger,
	}
}

type tokenRequest struct {
	Password string `json:"senha"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.jwtSvc.Sign()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.terminal.Status(r.Context())
	if err != nil {
		h.terminalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type quoteResponse struct {
	Symbol string   `json:"ticker"`
	Bid    float64  `json:"bid"`
	Ask    float64  `json:"ask"`
	Last   float64  `json:"last"`
	DayLow *float64 `json:"min"`
	DayHi  *float64 `json:"max"`
	TimeMs int64    `json:"time"`
}

func (h *Handlers) Cotacao(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "ticker")
	if err := h.terminal.EnsureSymbol(r.Context(), symbol); err != nil {
		h.terminalError(w, err)
		return
	}
	quote, err := h.terminal.Quote(r.Context(), symbol)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	resp := quoteResponse{
		Symbol: symbol,
		Bid:    quote.Bid,
		Ask:    quote.Ask,
		Last:   quote.Last,
		TimeMs: quote.TimeMs,
	}
	// Daily extremes are best-effort decoration on the quote.
	if bar, err := h.terminal.DailyBar(r.Context(), symbol); err != nil {
		h.logger.Warn("daily bar unavailable", "symbol", symbol, "err", err)
	} else if bar != nil {
		resp.DayLow = &bar.Low
		resp.DayHi = &bar.High
	}
	writeJSON(w, http.StatusOK, resp)
}

// intentFromQuery builds a TradeIntent from /validar-ordem query params.
func intentFromQuery(r *http.Request) (*domain.TradeIntent, error) {
	q := r.URL.Query()
	intent := &domain.TradeIntent{
		Symbol: q.Get("ticker"),
		Side:   domain.OrderSide(q.Get("tipo")),
		Style:  domain.ExecutionStyle(q.Get("estilo")),
	}
	var err error
	if intent.Quantity, err = strconv.ParseFloat(q.Get("quantidade"), 64); err != nil {
		return nil, errors.New("quantidade must be a number")
	}
	for param, dst := range map[string]**float64{
		"preco": &intent.Price,
		"sl":    &intent.StopLoss,
		"tp":    &intent.TakeProfit,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New(param + " must be a number")
		}
		*dst = &v
	}
	return intent, nil
}

func (h *Handlers) ValidarOrdem(w http.ResponseWriter, r *http.Request) {
	intent, err := intentFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.orderSvc.Validate(r.Context(), intent)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	status := http.StatusOK
	if !res.Verdict.Admissible {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, res.Verdict)
}

func (h *Handlers) Ordem(w http.ResponseWriter, r *http.Request) {
	var intent domain.TradeIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ack, res, err := h.orderSvc.Submit(r.Context(), &intent)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	if !res.Verdict.Admissible {
		writeJSON(w, http.StatusBadRequest, res.Verdict)
		return
	}
	writeRaw(w, http.StatusOK, ack)
}

type stopAdjustRequest struct {
	Ticket   int64    `json:"ticket"`
	StopGain *float64 `json:"stop_gain,omitempty"`
	StopLoss *float64 `json:"stop_loss,omitempty"`
}

func (h *Handlers) AjustarStop(w http.ResponseWriter, r *http.Request) {
	var req stopAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pos, err := h.terminal.Position(r.Context(), req.Ticket)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	order := execution.BuildStopAdjust(pos, req.StopLoss, req.StopGain)
	ack, err := h.terminal.Send(r.Context(), order)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, ack)
}

func (h *Handlers) Fechar(w http.ResponseWriter, r *http.Request) {
	ticket, err := strconv.ParseInt(chi.URLParam(r, "ticket"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ticket")
		return
	}
	pos, err := h.terminal.Position(r.Context(), ticket)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	quote, err := h.terminal.Quote(r.Context(), pos.Symbol)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	order := execution.BuildClose(pos, quote)
	ack, err := h.terminal.Send(r.Context(), order)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, ack)
}

func (h *Handlers) Posicoes(w http.ResponseWriter, r *http.Request) {
	positions, err := h.terminal.Positions(r.Context())
	if err != nil {
		h.terminalError(w, err)
		return
	}
	if positions == nil {
		positions = []domain.Position{}
	}
	writeJSON(w, http.StatusOK, positions)
}

func (h *Handlers) OrdensPendentes(w http.ResponseWriter, r *http.Request) {
	orders, err := h.terminal.PendingOrders(r.Context())
	if err != nil {
		h.terminalError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.PendingOrder{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) Historico(w http.ResponseWriter, r *http.Request) {
	to := time.Now()
	from := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	if raw := r.URL.Query().Get("de"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "de must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if raw := r.URL.Query().Get("ate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ate must be YYYY-MM-DD")
			return
		}
		to = t.Add(24*time.Hour - time.Second)
	}
	deals, err := h.terminal.HistoryDeals(r.Context(), from, to)
	if err != nil {
		h.terminalError(w, err)
		return
	}
	if deals == nil {
		deals = []domain.Deal{}
	}
	writeJSON(w, http.StatusOK, deals)
}

// terminalError maps collaborator failures: absence of a symbol, tick
// or ticket is 404, an unreachable bridge is 502, anything else is the
// terminal refusing the call.
func (h *Handlers) terminalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, terminal.ErrSymbolNotFound),
		errors.Is(err, terminal.ErrNoQuote),
		errors.Is(err, terminal.ErrPositionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, terminal.ErrBridgeUnreachable):
		h.logger.Error("bridge unreachable", "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("terminal call failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeRaw passes the terminal's acknowledgement through unmodified.
func writeRaw(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
