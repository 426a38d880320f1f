// Package rest serves read-only AMM queries over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Querier runs a read-only function against the current state.
type Querier interface {
	Query(ctx context.Context, fn func(ctx sdk.Context) error) error
}

// Handler provides HTTP handlers for AMM queries
type Handler struct {
	querier Querier
	keeper  keeper.Keeper
}

// NewHandler creates a new query handler
func NewHandler(querier Querier, k keeper.Keeper) *Handler {
	return &Handler{querier: querier, keeper: k}
}

// RegisterRoutes registers all AMM query routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/amm/v1/params", h.handleParams).Methods(http.MethodGet)
	r.HandleFunc("/amm/v1/pairs", h.handlePairs).Methods(http.MethodGet)
	r.HandleFunc("/amm/v1/pairs/by-assets/{assetA}/{assetB}", h.handlePairByAssets).Methods(http.MethodGet)
	r.HandleFunc("/amm/v1/pairs/{pairID:[0-9]+}", h.handlePair).Methods(http.MethodGet)
	r.HandleFunc("/amm/v1/pairs/{pairID:[0-9]+}/shares/{holder}", h.handleShares).Methods(http.MethodGet)
	r.HandleFunc("/amm/v1/pairs/{pairID:[0-9]+}/quote", h.handleQuote).Methods(http.MethodGet)
}

// ParamsResponse is the response for the params query
type ParamsResponse struct {
	Params       types.Params `json:"params"`
	Admin        string       `json:"admin,omitempty"`
	FeeRecipient string       `json:"fee_recipient,omitempty"`
}

// PairsResponse is the response for the pairs query
type PairsResponse struct {
	Pairs []types.Pair `json:"pairs"`
}

// SharesResponse is the response for the share balance query
type SharesResponse struct {
	PairID uint64   `json:"pair_id"`
	Holder string   `json:"holder"`
	Shares math.Int `json:"shares"`
}

// QuoteResponse is the response for the quote query. Exactly one of
// AmountIn/AmountOut was supplied; the other is computed.
type QuoteResponse struct {
	PairID    uint64   `json:"pair_id"`
	AssetIn   string   `json:"asset_in"`
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleParams(w http.ResponseWriter, r *http.Request) {
	var resp ParamsResponse
	err := h.querier.Query(r.Context(), func(ctx sdk.Context) error {
		params, err := h.keeper.GetParams(ctx)
		if err != nil {
			return err
		}
		resp.Params = params
		if admin, found := h.keeper.GetAdmin(ctx); found {
			resp.Admin = admin.String()
		}
		if recipient, found := h.keeper.GetFeeRecipient(ctx); found {
			resp.FeeRecipient = recipient.String()
		}
		return nil
	})
	respond(w, resp, err)
}

func (h *Handler) handlePairs(w http.ResponseWriter, r *http.Request) {
	var resp PairsResponse
	err := h.querier.Query(r.Context(), func(ctx sdk.Context) error {
		var err error
		resp.Pairs, err = h.keeper.GetAllPairs(ctx)
		return err
	})
	respond(w, resp, err)
}

func (h *Handler) handlePair(w http.ResponseWriter, r *http.Request) {
	pairID, err := strconv.ParseUint(mux.Vars(r)["pairID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var pair types.Pair
	err = h.querier.Query(r.Context(), func(ctx sdk.Context) error {
		var err error
		pair, err = h.keeper.GetPairByID(ctx, pairID)
		return err
	})
	respond(w, pair, err)
}

func (h *Handler) handlePairByAssets(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var pair types.Pair
	err := h.querier.Query(r.Context(), func(ctx sdk.Context) error {
		pairID, found := h.keeper.GetPair(ctx, vars["assetA"], vars["assetB"])
		if !found {
			return types.ErrPairNotFound.Wrapf("no pair for %s/%s", vars["assetA"], vars["assetB"])
		}
		var err error
		pair, err = h.keeper.GetPairByID(ctx, pairID)
		return err
	})
	respond(w, pair, err)
}

func (h *Handler) handleShares(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pairID, err := strconv.ParseUint(vars["pairID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	holder, err := sdk.AccAddressFromBech32(vars["holder"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := SharesResponse{PairID: pairID, Holder: holder.String()}
	err = h.querier.Query(r.Context(), func(ctx sdk.Context) error {
		if _, err := h.keeper.GetPairByID(ctx, pairID); err != nil {
			return err
		}
		resp.Shares = h.keeper.ShareBalance(ctx, pairID, holder)
		return nil
	})
	respond(w, resp, err)
}

// handleQuote serves ?asset_in=<denom>&amount_in=<n> or
// ?asset_in=<denom>&amount_out=<n>.
func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	pairID, err := strconv.ParseUint(mux.Vars(r)["pairID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	query := r.URL.Query()
	resp := QuoteResponse{PairID: pairID, AssetIn: query.Get("asset_in")}

	amountIn, hasIn := parseAmount(query.Get("amount_in"))
	amountOut, hasOut := parseAmount(query.Get("amount_out"))
	if hasIn == hasOut {
		writeError(w, http.StatusBadRequest, errors.New("exactly one of amount_in and amount_out must be a valid integer"))
		return
	}

	err = h.querier.Query(r.Context(), func(ctx sdk.Context) error {
		var err error
		if hasIn {
			resp.AmountIn = amountIn
			resp.AmountOut, err = h.keeper.SimulateSwap(ctx, pairID, resp.AssetIn, amountIn)
			return err
		}
		resp.AmountOut = amountOut
		resp.AmountIn, err = h.keeper.SimulateSwapExactOut(ctx, pairID, resp.AssetIn, amountOut)
		return err
	})
	respond(w, resp, err)
}

func parseAmount(s string) (math.Int, bool) {
	if s == "" {
		return math.Int{}, false
	}
	return math.NewIntFromString(s)
}

func respond(w http.ResponseWriter, v interface{}, err error) {
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// statusFor maps module errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrPairNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidAsset),
		errors.Is(err, types.ErrInsufficientInputAmount),
		errors.Is(err, types.ErrInvalidOutputAmounts),
		errors.Is(err, types.ErrInsufficientLiquidity),
		errors.Is(err, types.ErrOverflow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, statusCode int, err error) {
	writeJSON(w, statusCode, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
