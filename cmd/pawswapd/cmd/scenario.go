package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

const (
	flagFlash  = "flash"
	flagOutput = "output"

	scenarioAssetA = "tokenA"
	scenarioAssetB = "tokenB"
)

var (
	scenarioDepositA = math.NewInt(1_000_000_000)
	scenarioDepositB = math.NewInt(100_000_000)
	scenarioSwapIn   = math.NewInt(1003)
	scenarioSwapOut  = math.NewInt(100)
)

// scenarioOptions selects the variant of the reference scenario.
type scenarioOptions struct {
	Params       ammtypes.Params
	FeeRecipient sdk.AccAddress
	// Flash pays the swap input from a callee during the swap instead of
	// depositing it beforehand.
	Flash bool
}

// BalanceRow is one holder's balances at a scenario stage.
type BalanceRow struct {
	Holder  string   `json:"holder"`
	Address string   `json:"address"`
	AssetA  math.Int `json:"asset_a"`
	AssetB  math.Int `json:"asset_b"`
	Shares  math.Int `json:"shares"`
}

// Snapshot is the set of balances printed after a scenario stage.
type Snapshot struct {
	Stage string       `json:"stage"`
	Rows  []BalanceRow `json:"rows"`
}

// ScenarioReport is the outcome of a scenario run.
type ScenarioReport struct {
	PairID        uint64              `json:"pair_id"`
	PairAddress   string              `json:"pair_address"`
	MintedShares  map[string]math.Int `json:"minted_shares"`
	SwapIn        math.Int            `json:"swap_in"`
	SwapOut       math.Int            `json:"swap_out"`
	BurnedShares  math.Int            `json:"burned_shares"`
	RedeemedA     math.Int            `json:"redeemed_a"`
	RedeemedB     math.Int            `json:"redeemed_b"`
	ProtocolShare math.Int            `json:"protocol_shares"`
	Pair          ammtypes.Pair       `json:"pair"`
	Snapshots     []Snapshot          `json:"snapshots"`
}

type scenarioHolder struct {
	name string
	addr sdk.AccAddress
}

func scenarioAddr(name string) sdk.AccAddress {
	return sdk.AccAddress(address.Hash("pawswap/scenario", []byte(name)))
}

func newScenarioCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Replay the reference liquidity scenario on a fresh in-memory store",
		Long: `Creates a tokenA/tokenB pair, lets two providers deposit 1e9 tokenA and
1e8 tokenB each, swaps 1003 tokenB for 100 tokenA and burns half of the second
provider's shares, printing balances after every stage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flash, err := cmd.Flags().GetBool(flagFlash)
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString(flagOutput)
			if err != nil {
				return err
			}

			a, err := app.NewInMemory(state.logger)
			if err != nil {
				return err
			}
			report, err := runScenario(cmd.Context(), a, scenarioOptions{
				Params:       state.cfg.Params,
				FeeRecipient: state.cfg.FeeRecipient,
				Flash:        flash,
			})
			if err != nil {
				return err
			}

			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "table":
				renderReport(cmd.OutOrStdout(), report)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().Bool(flagFlash, false, "pay the swap input from a swap callee instead of depositing it first")
	cmd.Flags().String(flagOutput, "table", "output format (table|json)")
	return cmd
}

// runScenario drives the reference scenario against a, one Exec per step.
func runScenario(ctx context.Context, a *app.App, opts scenarioOptions) (*ScenarioReport, error) {
	var (
		owner = scenarioHolder{"owner", scenarioAddr("owner")}
		user1 = scenarioHolder{"user1", scenarioAddr("user1")}
		user2 = scenarioHolder{"user2", scenarioAddr("user2")}
		user3 = scenarioHolder{"user3", scenarioAddr("user3")}
		users = []scenarioHolder{user1, user2, user3}
	)
	logger := a.Logger().With("scenario", "reference")

	genesis := app.NewDefaultGenesisState()
	ammGenesis := ammtypes.DefaultGenesis()
	ammGenesis.Params = opts.Params
	ammGenesis.Admin = owner.addr
	bz, err := json.Marshal(ammGenesis)
	if err != nil {
		return nil, err
	}
	genesis[ammtypes.ModuleName] = bz
	if err := a.InitGenesis(ctx, genesis); err != nil {
		return nil, err
	}

	report := &ScenarioReport{
		MintedShares:  make(map[string]math.Int),
		ProtocolShare: math.ZeroInt(),
	}
	var pair ammtypes.Pair

	// deploy
	if _, err := a.Exec(ctx, "create_pair", func(ctx sdk.Context) error {
		pairID, err := a.AMMKeeper.CreatePair(ctx, scenarioAssetA, scenarioAssetB)
		if err != nil {
			return err
		}
		if pair, err = a.AMMKeeper.GetPairByID(ctx, pairID); err != nil {
			return err
		}
		if !opts.FeeRecipient.Empty() {
			return a.AMMKeeper.SetFeeRecipient(ctx, owner.addr, opts.FeeRecipient)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("create pair: %w", err)
	}
	report.PairID = pair.Id
	report.PairAddress = pair.Address.String()
	logger.Info("pair created", "pair_id", pair.Id, "address", report.PairAddress)

	// fund
	if _, err := a.Exec(ctx, "fund", func(ctx sdk.Context) error {
		for _, u := range users {
			if err := a.AssetKeeper.Mint(ctx, scenarioAssetA, u.addr, scenarioDepositA); err != nil {
				return err
			}
			if err := a.AssetKeeper.Mint(ctx, scenarioAssetB, u.addr, scenarioDepositB); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("fund users: %w", err)
	}
	if err := snapshot(ctx, a, report, pair, "balances", users); err != nil {
		return nil, err
	}

	// provide liquidity
	for _, provider := range []scenarioHolder{user1, user2} {
		if _, err := a.Exec(ctx, "add_liquidity", func(ctx sdk.Context) error {
			if err := a.AssetKeeper.Transfer(ctx, scenarioAssetA, provider.addr, pair.Address, scenarioDepositA); err != nil {
				return err
			}
			if err := a.AssetKeeper.Transfer(ctx, scenarioAssetB, provider.addr, pair.Address, scenarioDepositB); err != nil {
				return err
			}
			shares, err := a.AMMKeeper.Mint(ctx, provider.addr, pair.Id, provider.addr)
			report.MintedShares[provider.name] = shares
			return err
		}); err != nil {
			return nil, fmt.Errorf("add liquidity for %s: %w", provider.name, err)
		}
	}
	burn := scenarioHolder{"burn", ammtypes.BurnAddress}
	if err := snapshot(ctx, a, report, pair, "balances + liquidity", []scenarioHolder{user1, user2, burn}); err != nil {
		return nil, err
	}

	// swap tokenB in for tokenA out
	amountXOut, amountYOut := scenarioSwapOut, math.ZeroInt()
	if pair.AssetX != scenarioAssetA {
		amountXOut, amountYOut = amountYOut, amountXOut
	}
	if _, err := a.Exec(ctx, "swap", func(ctx sdk.Context) error {
		if !opts.Flash {
			if err := a.AssetKeeper.Transfer(ctx, scenarioAssetB, user3.addr, pair.Address, scenarioSwapIn); err != nil {
				return err
			}
			return a.AMMKeeper.Swap(ctx, user3.addr, pair.Id, amountXOut, amountYOut, user3.addr, nil)
		}

		a.AMMKeeper.RegisterSwapCallee(user3.addr, ammtypes.SwapCalleeFunc(
			func(ctx context.Context, _ sdk.AccAddress, _, _ math.Int, _ []byte) error {
				return a.AssetKeeper.Transfer(ctx, scenarioAssetB, user3.addr, pair.Address, scenarioSwapIn)
			},
		))
		defer a.AMMKeeper.RegisterSwapCallee(user3.addr, nil)
		return a.AMMKeeper.Swap(ctx, user3.addr, pair.Id, amountXOut, amountYOut, user3.addr, []byte{0x00})
	}); err != nil {
		return nil, fmt.Errorf("swap: %w", err)
	}
	report.SwapIn, report.SwapOut = scenarioSwapIn, scenarioSwapOut
	if err := snapshot(ctx, a, report, pair, "after swap", []scenarioHolder{user3}); err != nil {
		return nil, err
	}

	// burn half of user2's shares
	if _, err := a.Exec(ctx, "burn", func(ctx sdk.Context) error {
		half := a.AMMKeeper.ShareBalance(ctx, pair.Id, user2.addr).QuoRaw(2)
		if err := a.AMMKeeper.TransferShares(ctx, pair.Id, user2.addr, pair.Address, half); err != nil {
			return err
		}
		amountX, amountY, err := a.AMMKeeper.Burn(ctx, user2.addr, pair.Id, user2.addr)
		if err != nil {
			return err
		}
		report.BurnedShares = half
		report.RedeemedA, report.RedeemedB = amountX, amountY
		if pair.AssetX != scenarioAssetA {
			report.RedeemedA, report.RedeemedB = amountY, amountX
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("burn: %w", err)
	}
	if err := snapshot(ctx, a, report, pair, "balances + liquidity after burn", []scenarioHolder{user1, user2, burn}); err != nil {
		return nil, err
	}

	if err := a.Query(ctx, func(ctx sdk.Context) error {
		var err error
		if report.Pair, err = a.AMMKeeper.GetPairByID(ctx, pair.Id); err != nil {
			return err
		}
		if !opts.FeeRecipient.Empty() {
			report.ProtocolShare = a.AMMKeeper.ShareBalance(ctx, pair.Id, opts.FeeRecipient)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if msg, broken := a.CheckInvariants(ctx); broken {
		return nil, fmt.Errorf("scenario broke invariants: %s", msg)
	}
	a.Commit()
	return report, nil
}

// snapshot records the balances of holders after a stage.
func snapshot(ctx context.Context, a *app.App, report *ScenarioReport, pair ammtypes.Pair, stage string, holders []scenarioHolder) error {
	snap := Snapshot{Stage: stage}
	err := a.Query(ctx, func(ctx sdk.Context) error {
		for _, h := range holders {
			snap.Rows = append(snap.Rows, BalanceRow{
				Holder:  h.name,
				Address: h.addr.String(),
				AssetA:  a.AssetKeeper.BalanceOf(ctx, scenarioAssetA, h.addr),
				AssetB:  a.AssetKeeper.BalanceOf(ctx, scenarioAssetB, h.addr),
				Shares:  a.AMMKeeper.ShareBalance(ctx, pair.Id, h.addr),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	report.Snapshots = append(report.Snapshots, snap)
	return nil
}

// renderReport prints one balance table per stage.
func renderReport(w io.Writer, report *ScenarioReport) {
	fmt.Fprintf(w, "pair %d at %s\n\n", report.PairID, report.PairAddress)
	for _, snap := range report.Snapshots {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(snap.Stage)
		t.AppendHeader(table.Row{"Holder", "Address", scenarioAssetA, scenarioAssetB, "LP"})
		for _, row := range snap.Rows {
			t.AppendRow(table.Row{row.Holder, row.Address, row.AssetA.String(), row.AssetB.String(), row.Shares.String()})
		}
		t.Render()
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "swap: %s %s in, %s %s out\n", report.SwapIn, scenarioAssetB, report.SwapOut, scenarioAssetA)
	fmt.Fprintf(w, "burn: %s shares redeemed for %s %s and %s %s\n",
		report.BurnedShares, report.RedeemedA, scenarioAssetA, report.RedeemedB, scenarioAssetB)
	if report.ProtocolShare.IsPositive() {
		fmt.Fprintf(w, "protocol fee: %s shares\n", report.ProtocolShare)
	}
}
