package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/rebalancer/internal/application/composition"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Config es la configuración completa del rebalancer.
type Config struct {
	Composer   ComposerConfig   `yaml:"composer"`
	Strategies []StrategyConfig `yaml:"strategies"`
	API        APIConfig        `yaml:"api"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Cache      CacheConfig      `yaml:"cache"`
	Storage    StorageConfig    `yaml:"storage"`
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
}

// ComposerConfig controla el loop de composición.
type ComposerConfig struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Strategies      []string `yaml:"strategies"`      // estrategias a componer en cada ciclo
	MergeMode       string   `yaml:"merge_mode"`      // pool | collapsed
	Parallel        bool     `yaml:"parallel"`        // lanzar los legs a la vez
	TimeoutSeconds  int      `yaml:"timeout_seconds"` // límite por composición
	Compounding     string   `yaml:"compounding"`     // daily | none: normalización APY → APR
	TableOutput     bool     `yaml:"table_output"`    // tabla completa en consola
	StoreSnapshots  bool     `yaml:"store_snapshots"` // guardar cada composición en SQLite
}

// StrategyConfig define una estrategia adicional a las integradas.
type StrategyConfig struct {
	Name string      `yaml:"name"`
	Legs []LegConfig `yaml:"legs"`
}

// LegConfig es un pool de una estrategia.
type LegConfig struct {
	Label    string  `yaml:"label"`
	Protocol string  `yaml:"protocol"` // equilibria | sushiswap
	Chain    string  `yaml:"chain"`    // prefijo: arb, matic
	Address  string  `yaml:"address"`
	Ratio    float64 `yaml:"ratio"`
}

// APIConfig contiene los base URLs de las APIs upstream.
type APIConfig struct {
	EquilibriaBase string `yaml:"equilibria_base"`
	SushiswapBase  string `yaml:"sushiswap_base"`
	EquilibreBase  string `yaml:"equilibre_base"`
	ConvexBase     string `yaml:"convex_base"`
	QuickswapBase  string `yaml:"quickswap_base"`
	YieldsBase     string `yaml:"yields_base"` // DefiLlama yields
	CoinsBase      string `yaml:"coins_base"`  // DefiLlama coins
}

// UpstreamConfig controla el cliente HTTP compartido por los adapters.
type UpstreamConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	MaxRetries        int     `yaml:"max_retries"`
	RetryBaseMillis   int     `yaml:"retry_base_millis"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
}

// CacheConfig controla el cache de documentos upstream.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	MaxCostMB  int64  `yaml:"max_cost_mb"`
	RedisURL   string `yaml:"redis_url"` // si está, se usa Redis en vez del cache en memoria
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// HTTPConfig controla la API HTTP.
type HTTPConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
// Un path vacío usa solo defaults y entorno.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// ComposeInterval devuelve el intervalo del loop como time.Duration.
func (c *Config) ComposeInterval() time.Duration {
	return time.Duration(c.Composer.IntervalSeconds) * time.Second
}

// ComposeTimeout devuelve el límite por composición (0 = sin límite).
func (c *Config) ComposeTimeout() time.Duration {
	return time.Duration(c.Composer.TimeoutSeconds) * time.Second
}

// MergeMode devuelve el modo de merge ya validado.
func (c *Config) MergeMode() domain.MergeMode {
	m, _ := domain.ParseMergeMode(c.Composer.MergeMode)
	return m
}

// Normalizer devuelve la conversión APY → APR configurada.
func (c *Config) Normalizer() domain.Normalizer {
	if c.Composer.Compounding == "none" {
		return domain.Identity
	}
	return domain.DailyCompounding{}
}

// CacheTTL devuelve el TTL de los documentos cacheados.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// BuildStrategies devuelve las estrategias integradas más las del YAML.
// Una estrategia del YAML con el mismo nombre que una integrada la reemplaza.
func (c *Config) BuildStrategies() (map[string]composition.Strategy, error) {
	out := composition.DefaultStrategies()
	for _, sc := range c.Strategies {
		s := composition.Strategy{Name: sc.Name}
		for _, lc := range sc.Legs {
			p, err := composition.ParseProtocol(lc.Protocol)
			if err != nil {
				return nil, fmt.Errorf("config.BuildStrategies: %s/%s: %w", sc.Name, lc.Label, err)
			}
			chain, ok := domain.ChainByPrefix(lc.Chain)
			if !ok {
				return nil, fmt.Errorf("config.BuildStrategies: %s/%s: unknown chain %q", sc.Name, lc.Label, lc.Chain)
			}
			s.Legs = append(s.Legs, composition.Leg{
				Label:    lc.Label,
				Protocol: p,
				Selector: domain.NewPoolSelector(chain, lc.Address),
				Ratio:    lc.Ratio,
			})
		}
		out[sc.Name] = s
	}
	return out, nil
}

// validate comprueba los valores que no tienen un default razonable.
func (c *Config) validate() error {
	if _, err := domain.ParseMergeMode(c.Composer.MergeMode); err != nil {
		return err
	}
	switch c.Composer.Compounding {
	case "daily", "none":
	default:
		return fmt.Errorf("unknown compounding %q (daily | none)", c.Composer.Compounding)
	}
	for _, s := range c.Strategies {
		if s.Name == "" {
			return fmt.Errorf("strategy without name")
		}
	}
	return nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
		cfg.Cache.Enabled = true
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("COMPOSER_STRATEGIES"); v != "" {
		cfg.Composer.Strategies = splitList(v)
	}
	if v := os.Getenv("COMPOSER_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Composer.IntervalSeconds = n
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Composer.IntervalSeconds <= 0 {
		cfg.Composer.IntervalSeconds = 300
	}
	if len(cfg.Composer.Strategies) == 0 {
		cfg.Composer.Strategies = []string{composition.PermanentPortfolio}
	}
	if cfg.Composer.MergeMode == "" {
		cfg.Composer.MergeMode = string(domain.MergeModePool)
	}
	if cfg.Composer.TimeoutSeconds <= 0 {
		cfg.Composer.TimeoutSeconds = 60
	}
	if cfg.Composer.Compounding == "" {
		cfg.Composer.Compounding = "daily"
	}

	if cfg.API.EquilibriaBase == "" {
		cfg.API.EquilibriaBase = "https://equilibria.fi"
	}
	if cfg.API.SushiswapBase == "" {
		cfg.API.SushiswapBase = "https://pools.sushi.com"
	}
	if cfg.API.EquilibreBase == "" {
		cfg.API.EquilibreBase = "https://api.equilibrefinance.com"
	}
	if cfg.API.ConvexBase == "" {
		cfg.API.ConvexBase = "https://www.convexfinance.com"
	}
	if cfg.API.QuickswapBase == "" {
		cfg.API.QuickswapBase = "https://wire2.gamma.xyz"
	}
	if cfg.API.YieldsBase == "" {
		cfg.API.YieldsBase = "https://yields.llama.fi"
	}
	if cfg.API.CoinsBase == "" {
		cfg.API.CoinsBase = "https://coins.llama.fi"
	}

	if cfg.Upstream.RequestsPerSecond <= 0 {
		cfg.Upstream.RequestsPerSecond = 5
	}
	if cfg.Upstream.Burst <= 0 {
		cfg.Upstream.Burst = 5
	}
	if cfg.Upstream.MaxRetries <= 0 {
		cfg.Upstream.MaxRetries = 3
	}
	if cfg.Upstream.RetryBaseMillis <= 0 {
		cfg.Upstream.RetryBaseMillis = 500
	}
	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 10
	}

	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if cfg.Cache.MaxCostMB <= 0 {
		cfg.Cache.MaxCostMB = 64
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "rebalancer.db"
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.HTTP.TimeoutSeconds <= 0 {
		cfg.HTTP.TimeoutSeconds = 30
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
