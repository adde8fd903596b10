package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propdesk/tenantpipe/internal/api"
	"github.com/propdesk/tenantpipe/internal/catalog"
	"github.com/propdesk/tenantpipe/internal/dispatch"
	"github.com/propdesk/tenantpipe/internal/engine"
	"github.com/propdesk/tenantpipe/internal/genai"
	"github.com/propdesk/tenantpipe/internal/hours"
	"github.com/propdesk/tenantpipe/internal/notify"
	"github.com/propdesk/tenantpipe/internal/scheduler"
	"github.com/propdesk/tenantpipe/internal/session"
	"github.com/propdesk/tenantpipe/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for tenantpipe state data
	DefaultStateDir = "/var/lib/tenantpipe"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "tenantpipe.db"
	// DefaultSweepCron runs the stale-session sweep every 15 minutes
	DefaultSweepCron = "*/15 * * * *"
	// DefaultSessionMaxAge is the idle threshold for stale sessions
	DefaultSessionMaxAge = 24 * time.Hour
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	store, err := buildSessionStore(flags)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	gate, err := hours.NewGate(hours.DefaultSchedule())
	if err != nil {
		slog.Error("Failed to initialize business-hours gate", "error", err)
		os.Exit(1)
	}

	dispatcher := buildDispatcher(flags)
	assistant := buildAssistant(flags)

	eng := engine.New(store, catalog.Default(), gate, engine.WithDispatcher(dispatcher))

	sched := scheduler.NewScheduler()
	defer sched.Stop()
	if err := sched.AddSessionSweep(*flags.sweepCron, store, *flags.sessionMaxAge); err != nil {
		slog.Error("Failed to schedule session sweep", "error", err, "cron", *flags.sweepCron)
		os.Exit(1)
	}

	server := api.NewServer(eng, store, gate, assistant, buildAPIOptions(flags)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Bootstrapping tenantpipe with configured modules")
	if err := server.Run(); err != nil {
		slog.Error("tenantpipe failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("tenantpipe exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL   string
	StateDir      string
	OpenAIKey     string
	APIAddr       string
	ActionBaseURL string
	ActionAPIKey  string
	SweepCron     string
	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string
	OnCallNumber  string
}

// Flags holds command line flag values
type Flags struct {
	stateDir      *string
	dbDSN         *string
	openaiKey     *string
	apiAddr       *string
	actionBaseURL *string
	actionAPIKey  *string
	sweepCron     *string
	sessionMaxAge *time.Duration
	twilioSID     *string
	twilioToken   *string
	twilioFrom    *string
	onCallNumber  *string
}

// initializeLogger sets up structured logging
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("TENANTPIPE_DEBUG", true) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		StateDir:      os.Getenv("TENANTPIPE_STATE_DIR"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		APIAddr:       os.Getenv("API_ADDR"),
		ActionBaseURL: os.Getenv("ACTION_BASE_URL"),
		ActionAPIKey:  os.Getenv("ACTION_API_KEY"),
		SweepCron:     os.Getenv("SWEEP_SCHEDULE"),
		TwilioSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:    os.Getenv("TWILIO_FROM_NUMBER"),
		OnCallNumber:  os.Getenv("ONCALL_NUMBER"),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No TENANTPIPE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}
	if config.SweepCron == "" {
		config.SweepCron = DefaultSweepCron
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"TENANTPIPE_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"ACTION_BASE_URL", config.ActionBaseURL,
		"SWEEP_SCHEDULE", config.SweepCron,
		"TWILIO_CONFIGURED", config.TwilioSID != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:      flag.String("state-dir", config.StateDir, "state directory for tenantpipe data (overrides $TENANTPIPE_STATE_DIR)"),
		dbDSN:         flag.String("db-dsn", config.DatabaseURL, "session store DSN: SQLite path, postgres://, or redis:// (overrides $DATABASE_URL)"),
		openaiKey:     flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for the assistant endpoint (overrides $OPENAI_API_KEY)"),
		apiAddr:       flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		actionBaseURL: flag.String("action-base-url", config.ActionBaseURL, "base URL of the downstream business API (overrides $ACTION_BASE_URL)"),
		actionAPIKey:  flag.String("action-api-key", config.ActionAPIKey, "bearer credential for the downstream business API (overrides $ACTION_API_KEY)"),
		sweepCron:     flag.String("sweep-cron", config.SweepCron, "cron schedule for the stale-session sweep (overrides $SWEEP_SCHEDULE)"),
		sessionMaxAge: flag.Duration("session-max-age", DefaultSessionMaxAge, "idle duration after which sessions are swept"),
		twilioSID:     flag.String("twilio-sid", config.TwilioSID, "Twilio account SID for emergency SMS (overrides $TWILIO_ACCOUNT_SID)"),
		twilioToken:   flag.String("twilio-token", config.TwilioToken, "Twilio auth token (overrides $TWILIO_AUTH_TOKEN)"),
		twilioFrom:    flag.String("twilio-from", config.TwilioFrom, "Twilio sending number (overrides $TWILIO_FROM_NUMBER)"),
		onCallNumber:  flag.String("oncall-number", config.OnCallNumber, "on-call number paged on emergencies (overrides $ONCALL_NUMBER)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr,
		"actionBaseURL", *flags.actionBaseURL,
		"sweepCron", *flags.sweepCron,
		"sessionMaxAge", *flags.sessionMaxAge)

	// Follow a moved state directory when the DSN was left at its default
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if session.DetectDSNType(*flags.dbDSN) != "sqlite" {
		return nil
	}
	stateDir := filepath.Dir(*flags.dbDSN)
	slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return err
	}
	return nil
}

// buildSessionStore selects the store backend from the DSN shape.
func buildSessionStore(flags Flags) (session.Store, error) {
	dsn := *flags.dbDSN
	if dsn == "" {
		slog.Debug("No database DSN provided, using in-memory session store")
		return session.NewMemoryStore(), nil
	}
	switch session.DetectDSNType(dsn) {
	case "postgres":
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL session store")
		return session.NewPostgresStore(session.WithDSN(dsn))
	case "redis":
		slog.Debug("Detected Redis DSN, configuring Redis session store")
		return session.NewRedisStore(session.WithDSN(dsn))
	default:
		slog.Debug("Detected SQLite DSN, configuring SQLite session store", "db_path", dsn)
		return session.NewSQLiteStore(session.WithDSN(dsn))
	}
}

// buildDispatcher wires the action client, with the emergency SMS hook when
// Twilio is configured.
func buildDispatcher(flags Flags) engine.Dispatcher {
	var dispatchOpts []dispatch.Option
	if *flags.actionBaseURL != "" {
		dispatchOpts = append(dispatchOpts, dispatch.WithBaseURL(*flags.actionBaseURL))
	}
	if *flags.actionAPIKey != "" {
		dispatchOpts = append(dispatchOpts, dispatch.WithAPIKey(*flags.actionAPIKey))
	}
	client := dispatch.NewClient(dispatchOpts...)

	if *flags.twilioSID == "" {
		return client
	}
	notifier, err := notify.New(
		notify.WithAccountSID(*flags.twilioSID),
		notify.WithAuthToken(*flags.twilioToken),
		notify.WithFromNumber(*flags.twilioFrom),
		notify.WithToNumber(*flags.onCallNumber),
	)
	if err != nil {
		slog.Warn("Emergency SMS notifier disabled", "error", err)
		return client
	}
	return notify.WrapDispatcher(client, notifier)
}

// buildAssistant wires the OpenAI assistant when a key is configured.
func buildAssistant(flags Flags) *genai.Client {
	if *flags.openaiKey == "" {
		slog.Debug("No OpenAI API key set, assistant endpoint disabled")
		return nil
	}
	assistant, err := genai.NewClient(genai.WithAPIKey(*flags.openaiKey))
	if err != nil {
		slog.Warn("Assistant endpoint disabled", "error", err)
		return nil
	}
	return assistant
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	apiOpts = append(apiOpts, api.WithSweepMaxAge(*flags.sessionMaxAge))
	return apiOpts
}
