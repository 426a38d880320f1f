package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	ammkeeper "github.com/paw-chain/pawswap/x/amm/keeper"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	assetkeeper "github.com/paw-chain/pawswap/x/asset/keeper"
	assettypes "github.com/paw-chain/pawswap/x/asset/types"
)

const (
	// Name is the application name used for the home directory and telemetry.
	Name = "pawswap"

	// ChainID is stamped on every execution context header.
	ChainID = "pawswap-local"
)

// DefaultNodeHome default home directories for the application daemon
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, ".pawswap")
}

// App owns the multistore and both keepers. Top-level calls are serialized,
// so each Exec observes and produces a consistent state.
type App struct {
	mu     sync.Mutex
	logger log.Logger
	cms    storetypes.CommitMultiStore
	height int64

	// keepers
	AssetKeeper assetkeeper.Keeper
	AMMKeeper   ammkeeper.Keeper

	invariants *invariantRegistry
	telemetry  *execTelemetry
}

// New returns an App backed by db, loading its latest committed version.
func New(logger log.Logger, db dbm.DB) (*App, error) {
	keys := storetypes.NewKVStoreKeys(assettypes.StoreKey, ammtypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	tel, err := newExecTelemetry()
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}

	assetKeeper := assetkeeper.NewKeeper(keys[assettypes.StoreKey])
	app := &App{
		logger:      logger,
		cms:         cms,
		height:      cms.LastCommitID().Version,
		AssetKeeper: assetKeeper,
		AMMKeeper:   ammkeeper.NewKeeper(keys[ammtypes.StoreKey], assetKeeper),
		invariants:  &invariantRegistry{},
		telemetry:   tel,
	}
	ammkeeper.RegisterInvariants(app.invariants, app.AMMKeeper)
	return app, nil
}

// NewInMemory returns an App on a fresh in-memory database.
func NewInMemory(logger log.Logger) (*App, error) {
	return New(logger, dbm.NewMemDB())
}

// Logger returns the application logger
func (app *App) Logger() log.Logger {
	return app.logger
}

// LastBlockHeight returns the version of the last commit.
func (app *App) LastBlockHeight() int64 {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.height
}

// Exec runs fn as one atomic unit. Writes and events are applied only when fn
// returns nil. Calls are serialized with every other Exec, Query and Commit.
func (app *App) Exec(ctx context.Context, name string, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	ctx, span := app.telemetry.tracer.Start(ctx, "app.exec")
	defer span.End()
	span.SetAttributes(
		attribute.String("exec.name", name),
		attribute.Int64("block.height", app.height),
	)

	start := time.Now()
	cacheCtx, writeFn := app.newContext(ctx).CacheContext()
	if err := fn(cacheCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		app.telemetry.record(ctx, name, time.Since(start), false)
		app.logger.Debug("exec failed", "name", name, "error", err)
		return nil, err
	}
	writeFn()

	app.telemetry.record(ctx, name, time.Since(start), true)
	return cacheCtx.EventManager().Events(), nil
}

// Query runs fn against a throwaway branch of the current state.
func (app *App) Query(ctx context.Context, fn func(ctx sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	ctx, span := app.telemetry.tracer.Start(ctx, "app.query")
	defer span.End()

	cacheCtx, _ := app.newContext(ctx).CacheContext()
	return fn(cacheCtx)
}

// Commit persists the working state as a new version and returns its height.
func (app *App) Commit() int64 {
	app.mu.Lock()
	defer app.mu.Unlock()

	commitID := app.cms.Commit()
	app.height = commitID.Version
	app.logger.Info("committed state", "height", app.height, "hash", fmt.Sprintf("%X", commitID.Hash))
	return app.height
}

// CheckInvariants runs every registered invariant against the current state.
func (app *App) CheckInvariants(ctx context.Context) (string, bool) {
	var (
		msg    string
		broken bool
	)
	_ = app.Query(ctx, func(ctx sdk.Context) error {
		msg, broken = app.checkInvariants(ctx)
		return nil
	})
	return msg, broken
}

func (app *App) checkInvariants(ctx sdk.Context) (string, bool) {
	return app.invariants.assert(ctx)
}

func (app *App) newContext(ctx context.Context) sdk.Context {
	header := cmtproto.Header{ChainID: ChainID, Height: app.height + 1, Time: time.Now().UTC()}
	return sdk.NewContext(app.cms, header, false, app.logger).WithContext(ctx)
}
