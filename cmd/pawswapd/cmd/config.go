package cmd

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

const envPrefix = "PAWSWAP"

// Config keys
const (
	keyHome               = "home"
	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"
	keyMetricsAddr        = "metrics.addr"
	keyTelemetryOTLP      = "telemetry.otlp_endpoint"
	keyTelemetrySample    = "telemetry.sample_rate"
	keySwapFeeNumerator   = "amm.swap_fee_numerator"
	keyFeeDenominator     = "amm.fee_denominator"
	keyMinimumLiquidity   = "amm.minimum_liquidity"
	keyProtocolFeeDivisor = "amm.protocol_fee_divisor"
	keyFeeRecipient       = "amm.fee_recipient"
)

// Config is the resolved pawswapd configuration.
type Config struct {
	Home         string
	LogLevel     string
	LogFormat    string
	MetricsAddr  string
	OTLPEndpoint string
	SampleRate   float64
	Params       ammtypes.Params
	FeeRecipient sdk.AccAddress
}

func setDefaults(v *viper.Viper) {
	defaults := ammtypes.DefaultParams()
	v.SetDefault(keyHome, app.DefaultNodeHome)
	v.SetDefault(keyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(keyLogFormat, "plain")
	v.SetDefault(keyMetricsAddr, "")
	v.SetDefault(keyTelemetryOTLP, "")
	v.SetDefault(keyTelemetrySample, 1.0)
	v.SetDefault(keySwapFeeNumerator, defaults.SwapFeeNumerator)
	v.SetDefault(keyFeeDenominator, defaults.FeeDenominator)
	v.SetDefault(keyMinimumLiquidity, defaults.MinimumLiquidity.String())
	v.SetDefault(keyProtocolFeeDivisor, defaults.ProtocolFeeDivisor)
	v.SetDefault(keyFeeRecipient, "")
}

// loadConfig reads the optional config file and resolves every key from
// flags, PAWSWAP_* environment variables, the file and defaults, in that
// order of precedence.
func loadConfig(v *viper.Viper, configFile string) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	swapFee, err := cast.ToUint64E(v.Get(keySwapFeeNumerator))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keySwapFeeNumerator, err)
	}
	feeDenominator, err := cast.ToUint64E(v.Get(keyFeeDenominator))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyFeeDenominator, err)
	}
	divisor, err := cast.ToUint64E(v.Get(keyProtocolFeeDivisor))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyProtocolFeeDivisor, err)
	}
	minLiquidityStr, err := cast.ToStringE(v.Get(keyMinimumLiquidity))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyMinimumLiquidity, err)
	}
	minLiquidity, ok := math.NewIntFromString(minLiquidityStr)
	if !ok {
		return Config{}, fmt.Errorf("invalid %s: %q is not an integer", keyMinimumLiquidity, minLiquidityStr)
	}
	sampleRate, err := cast.ToFloat64E(v.Get(keyTelemetrySample))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyTelemetrySample, err)
	}

	cfg := Config{
		Home:         v.GetString(keyHome),
		LogLevel:     v.GetString(keyLogLevel),
		LogFormat:    v.GetString(keyLogFormat),
		MetricsAddr:  v.GetString(keyMetricsAddr),
		OTLPEndpoint: v.GetString(keyTelemetryOTLP),
		SampleRate:   sampleRate,
		Params: ammtypes.Params{
			SwapFeeNumerator:   swapFee,
			FeeDenominator:     feeDenominator,
			MinimumLiquidity:   minLiquidity,
			ProtocolFeeDivisor: divisor,
		},
	}

	if recipient := v.GetString(keyFeeRecipient); recipient != "" {
		cfg.FeeRecipient, err = sdk.AccAddressFromBech32(recipient)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", keyFeeRecipient, err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	switch c.LogFormat {
	case "json", "plain":
	default:
		return fmt.Errorf("invalid %s %q: must be json or plain", keyLogFormat, c.LogFormat)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("invalid %s %v: must be within [0, 1]", keyTelemetrySample, c.SampleRate)
	}
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("invalid amm config: %w", err)
	}
	return nil
}
