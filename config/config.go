package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "BANT_CONFIG_FILE"
	portEnvName       = "PORT"
)

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	LeadEventsTopic    string   `mapstructure:"lead_events_topic"`
	TallyGroup         string   `mapstructure:"tally_group"`
	PublishWorkers     int      `mapstructure:"publish_workers"`
	TLS                tlsFiles `mapstructure:"tls"`
	User               string   `mapstructure:"user"`
	Pass               string   `mapstructure:"pass"`
}

// Enabled reports whether lead events go to Kafka.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	AllowH2C       bool          `mapstructure:"allow_h2c"`
	StaticDir      string        `mapstructure:"static_dir"`
	SeedFile       string        `mapstructure:"seed_file"`
	NodeID         int64         `mapstructure:"node_id"`
	AuthDelay      time.Duration `mapstructure:"auth_delay"`
	CarouselSpec   string        `mapstructure:"carousel_spec"`
	Admin          admin         `mapstructure:"admin"`
	Broker         broker        `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("allow_h2c", false)
	v.SetDefault("static_dir", "./web")
	v.SetDefault("seed_file", "")
	v.SetDefault("node_id", 1)
	v.SetDefault("auth_delay", "1.5s")
	v.SetDefault("carousel_spec", "@every 5s")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.lead_events_topic", "lead-events")
	v.SetDefault("broker.tally_group", "unmatched-search-tally")
	v.SetDefault("broker.publish_workers", 8)
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
	v.SetDefault("broker.user", "")
	v.SetDefault("broker.pass", "")
}

// Load reads the config file named by the --config flag or the
// BANT_CONFIG_FILE env. Without a file the defaults apply. PORT overrides
// the listen address.
func Load() Config {
	cfg, err := load(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	if port, ok := os.LookupEnv(portEnvName); ok && port != "" {
		v.Set("http_server_addr", ":"+port)
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			levelHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func levelHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(slog.Level(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(data.(string))); err != nil {
		return nil, err
	}
	return l, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	LogFile=%q
	HTTPServerAddr=%q
	AllowH2C=%t
	StaticDir=%q
	SeedFile=%q
	NodeID=%d
	AuthDelay=%s
	CarouselSpec=%q
	AdminUsername=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	LeadEventsTopic=%q
	TallyGroup=%q
	PublishWorkers=%d
	TLS=%t
	SASLUser=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile,
		c.HTTPServerAddr,
		c.AllowH2C,
		c.StaticDir,
		c.SeedFile,
		c.NodeID,
		c.AuthDelay,
		c.CarouselSpec,
		c.Admin.Username,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.LeadEventsTopic,
		c.Broker.TallyGroup,
		c.Broker.PublishWorkers,
		c.Broker.TLS.Enabled(),
		c.Broker.User,
	)
}
