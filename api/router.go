package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	holdem "github.com/whatisfaker/holdemtable"
	"go.uber.org/zap"
)

// Handler translates HTTP requests into Manager operations
type Handler struct {
	m   *holdem.Manager
	log *zap.Logger
}

// NewRouter routes every table, player and hand operation of the manager
func NewRouter(m *holdem.Manager, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{m: m, log: log}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)

	r.Get("/tables", h.tables)
	r.Get("/players", h.players)
	r.Post("/set_table", h.setTable)
	r.Post("/delete_table", h.deleteTable)
	r.Post("/set_blinds", h.setBlinds)

	r.Post("/add_player", h.addPlayer)
	r.Post("/remove_player", h.removePlayer)
	r.Post("/update_player_chips", h.updatePlayerChips)
	r.Post("/add_player_to_table", h.addPlayerToTable)
	r.Post("/remove_player_from_table", h.removePlayerFromTable)
	r.Post("/sit_down", h.sitDown)
	r.Post("/stand_up", h.playerOp(h.m.StandUp))
	r.Post("/sit_out", h.playerOp(h.m.SitOut))
	r.Post("/rejoin", h.playerOp(h.m.RejoinGame))
	r.Post("/add_on", h.addOn)

	r.Post("/set_dealer", h.setDealer)
	r.Post("/next_dealer", h.nextDealer)
	r.Post("/collect_blinds", h.collectBlinds)
	r.Post("/reshuffle", h.reshuffle)
	r.Post("/deal", h.deal)
	r.Route("/community", func(r chi.Router) {
		r.Post("/flop", h.community(h.m.DealFlop))
		r.Post("/turn", h.community(h.m.DealTurn))
		r.Post("/river", h.community(h.m.DealRiver))
	})
	r.Post("/bet", h.bet)
	r.Post("/fold", h.fold)
	r.Post("/showdown", h.showdown)
	r.Get("/history", h.history)
	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  int    `json:"code,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := holdem.StatusOf(err)
	body := errorBody{Error: err.Error(), Kind: "internal"}
	if k, ok := holdem.KindOf(err); ok {
		body.Kind = k.String()
		body.Code = k.Code()
	}
	h.log.Info("rejected", zap.String("path", r.URL.Path), zap.String("kind", body.Kind), zap.Int("code", body.Code), zap.Error(err))
	writeJSON(w, status, body)
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// decode an empty body leaves v untouched
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &holdem.Error{Kind: holdem.KindInvalidRequest, Msg: "invalid request body: " + err.Error()}
	}
	return nil
}

func required(s string, field string) error {
	if s == "" {
		return &holdem.Error{Kind: holdem.KindInvalidRequest, Msg: field + " is required"}
	}
	return nil
}

type tableRequest struct {
	Table string `json:"table"`
}

func (h *Handler) tableName(r *http.Request) (string, error) {
	var req tableRequest
	if err := decode(r, &req); err != nil {
		return "", err
	}
	if req.Table == "" {
		req.Table = r.URL.Query().Get("table")
	}
	return req.Table, required(req.Table, "table")
}

func (h *Handler) tables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.m.Tables())
}

func (h *Handler) players(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.m.Players())
}

type setTableRequest struct {
	Name       string `json:"name"`
	MaxPlayers int8   `json:"max_players"`
	MinBuyIn   int    `json:"min_buy_in"`
	MaxBuyIn   int    `json:"max_buy_in"`
	SmallBlind int    `json:"small_blind"`
	BigBlind   int    `json:"big_blind"`
	Ante       int    `json:"ante"`
	GameType   string `json:"game_type"`
}

func (h *Handler) setTable(w http.ResponseWriter, r *http.Request) {
	req := setTableRequest{
		Name:       "Default Table",
		MaxPlayers: 9,
		MinBuyIn:   50,
		MaxBuyIn:   500,
		SmallBlind: 10,
		BigBlind:   20,
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	opts := []holdem.TableOption{holdem.OptionBlinds(req.SmallBlind, req.BigBlind, req.Ante)}
	if req.GameType != "" {
		opts = append(opts, holdem.OptionGameType(req.GameType))
	}
	st, err := h.m.CreateTable(req.Name, req.MaxPlayers, req.MinBuyIn, req.MaxBuyIn, opts...)
	h.reply(w, r, st, err)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	err := decode(r, &req)
	if err == nil {
		err = h.m.DeleteTable(req.Name)
	}
	h.reply(w, r, messageBody{Message: "Table " + req.Name + " deleted"}, err)
}

type blindsRequest struct {
	Table      string `json:"table"`
	SmallBlind int    `json:"small_blind"`
	BigBlind   int    `json:"big_blind"`
	Ante       int    `json:"ante"`
}

func (h *Handler) setBlinds(w http.ResponseWriter, r *http.Request) {
	var req blindsRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.SetBlinds(req.Table, req.SmallBlind, req.BigBlind, req.Ante)
	h.reply(w, r, st, err)
}

type playerRequest struct {
	Name     string `json:"name"`
	Bankroll *int   `json:"bankroll"`
	Chips    *int   `json:"chips"`
}

func (h *Handler) addPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == "" || req.Bankroll == nil {
		h.writeError(w, r, &holdem.Error{Kind: holdem.KindInvalidRequest, Msg: "invalid player data"})
		return
	}
	st, err := h.m.CreatePlayer(req.Name, *req.Bankroll)
	h.reply(w, r, st, err)
}

func (h *Handler) removePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	err := decode(r, &req)
	if err == nil {
		err = h.m.RemovePlayer(req.Name)
	}
	h.reply(w, r, messageBody{Message: "Player " + req.Name + " removed"}, err)
}

func (h *Handler) updatePlayerChips(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Chips == nil {
		h.writeError(w, r, &holdem.Error{Kind: holdem.KindInvalidRequest, Msg: "chips is required"})
		return
	}
	st, err := h.m.UpdatePlayerChips(req.Name, *req.Chips)
	h.reply(w, r, st, err)
}

type membershipRequest struct {
	PlayerName string `json:"player_name"`
	TableName  string `json:"table_name"`
	Seat       int8   `json:"seat"`
	BuyIn      int    `json:"buy_in"`
	Amount     int    `json:"amount"`
}

func (h *Handler) addPlayerToTable(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.JoinTable(req.PlayerName, req.TableName)
	h.reply(w, r, st, err)
}

func (h *Handler) removePlayerFromTable(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.LeaveTable(req.PlayerName, req.TableName)
	h.reply(w, r, st, err)
}

func (h *Handler) sitDown(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.SitDown(req.PlayerName, req.TableName, req.Seat, req.BuyIn)
	h.reply(w, r, st, err)
}

func (h *Handler) addOn(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.AddOn(req.PlayerName, req.Amount)
	h.reply(w, r, st, err)
}

func (h *Handler) playerOp(op func(string) (*holdem.PlayerState, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req membershipRequest
		if err := decode(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
		st, err := op(req.PlayerName)
		h.reply(w, r, st, err)
	}
}

type dealerRequest struct {
	Table string `json:"table"`
	Seat  int8   `json:"seat"`
}

func (h *Handler) setDealer(w http.ResponseWriter, r *http.Request) {
	var req dealerRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.SetDealer(req.Table, req.Seat)
	h.reply(w, r, st, err)
}

func (h *Handler) nextDealer(w http.ResponseWriter, r *http.Request) {
	table, err := h.tableName(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	seat, err := h.m.NextDealer(table)
	h.reply(w, r, map[string]int8{"dealer_position": seat}, err)
}

func (h *Handler) collectBlinds(w http.ResponseWriter, r *http.Request) {
	table, err := h.tableName(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.CollectBlinds(table)
	h.reply(w, r, st, err)
}

func (h *Handler) reshuffle(w http.ResponseWriter, r *http.Request) {
	table, err := h.tableName(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.m.CreateDeck(table)
	h.reply(w, r, st, err)
}

type dealRequest struct {
	Table      string `json:"table"`
	NumPlayers *int   `json:"numPlayers"`
}

func (h *Handler) deal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	n := 2
	if req.NumPlayers != nil {
		n = *req.NumPlayers
	}
	hands, err := h.m.DealCards(req.Table, n)
	h.reply(w, r, hands, err)
}

func (h *Handler) community(op func(string) ([]holdem.Card, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := h.tableName(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		cards, err := op(table)
		h.reply(w, r, cards, err)
	}
}

type betRequest struct {
	Table  string `json:"table"`
	Player string `json:"player"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (h *Handler) bet(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Action == "" {
		req.Action = "bet"
	}
	action, err := holdem.ParseAction(req.Action)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	msg, err := h.m.PlayerAction(req.Table, req.Player, action, req.Amount)
	h.reply(w, r, messageBody{Message: msg}, err)
}

func (h *Handler) fold(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	msg, err := h.m.PlayerAction(req.Table, req.Player, holdem.ActionDefFold, 0)
	h.reply(w, r, messageBody{Message: msg}, err)
}

func (h *Handler) showdown(w http.ResponseWriter, r *http.Request) {
	table, err := h.tableName(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.m.DetermineWinner(table)
	h.reply(w, r, res, err)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if err := required(table, "table"); err != nil {
		h.writeError(w, r, err)
		return
	}
	records, err := h.m.History(table)
	h.reply(w, r, records, err)
}
