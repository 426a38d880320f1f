package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
	"github.com/paw-chain/pawswap/app/health"
	"github.com/paw-chain/pawswap/x/amm/client/rest"
)

const (
	flagListenAddr = "listen-addr"
	flagGenesis    = "genesis"
	flagEnableCORS = "enable-cors"
	flagRateLimit  = "rate-limit"
)

func newServeCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pair state and quotes over HTTP from the persistent store",
		Long: `Opens the state store under --home, initializing it from --genesis (or the
default genesis) when it has no committed state, and serves read-only AMM
queries and health checks until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listenAddr, _ := cmd.Flags().GetString(flagListenAddr)
			genesisFile, _ := cmd.Flags().GetString(flagGenesis)
			enableCORS, _ := cmd.Flags().GetBool(flagEnableCORS)
			rateLimit, _ := cmd.Flags().GetInt(flagRateLimit)

			a, closeDB, err := openApp(state)
			if err != nil {
				return err
			}
			defer closeDB()

			if a.LastBlockHeight() == 0 {
				if err := initFromGenesis(cmd.Context(), a, genesisFile); err != nil {
					return err
				}
			}

			server := &http.Server{
				Addr:              listenAddr,
				Handler:           newRouter(a, enableCORS, rateLimit),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				state.logger.Info("serving amm queries", "addr", listenAddr, "height", a.LastBlockHeight())
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				state.logger.Info("shutting down")
				return server.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().String(flagListenAddr, ":1318", "address for the HTTP query server")
	cmd.Flags().String(flagGenesis, "", "genesis file used when the store has no committed state")
	cmd.Flags().Bool(flagEnableCORS, false, "allow cross-origin GET requests")
	cmd.Flags().Int(flagRateLimit, 50, "requests per second allowed per client IP (0 disables)")
	return cmd
}

// newRouter mounts the AMM query and health routes behind request tagging
// and per-client rate limiting.
func newRouter(a *app.App, enableCORS bool, rateLimit int) http.Handler {
	router := mux.NewRouter()
	rest.NewHandler(a, a.AMMKeeper).RegisterRoutes(router)
	health.NewChecker(a.Logger(), a, Version, 5*time.Second).RegisterRoutes(router)
	router.Use(requestIDMiddleware(a.Logger()), rateLimitMiddleware(rateLimit))

	var h http.Handler = router
	if enableCORS {
		h = handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(h)
	}
	return handlers.RecoveryHandler()(h)
}

// openApp opens the goleveldb-backed store under the configured home.
func openApp(state *rootState) (*app.App, func(), error) {
	dataDir := filepath.Join(state.cfg.Home, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := dbm.NewDB(app.Name, dbm.GoLevelDBBackend, dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	a, err := app.New(state.logger, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return a, func() { _ = db.Close() }, nil
}

// initFromGenesis loads genesisFile, or the default genesis when empty, and
// commits it as the first version.
func initFromGenesis(ctx context.Context, a *app.App, genesisFile string) error {
	genesis := app.NewDefaultGenesisState()
	if genesisFile != "" {
		bz, err := os.ReadFile(genesisFile)
		if err != nil {
			return fmt.Errorf("failed to read genesis: %w", err)
		}
		genesis = make(app.GenesisState)
		if err := json.Unmarshal(bz, &genesis); err != nil {
			return fmt.Errorf("failed to decode genesis: %w", err)
		}
	}
	if err := a.InitGenesis(ctx, genesis); err != nil {
		return err
	}
	a.Commit()
	return nil
}
