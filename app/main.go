package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/joho/godotenv"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/crewbook/app/enums"
	"github.com/umputun/crewbook/app/persistence"
	"github.com/umputun/crewbook/app/roster"
	"github.com/umputun/crewbook/app/web"
)

var opts struct {
	DB          string `long:"db" env:"CREWBOOK_DB" default:"crewbook.db" description:"sqlite database file"`
	Key         string `long:"key" env:"CREWBOOK_KEY" default:"workers_entities" description:"storage key of the workers list"`
	Ephemeral   bool   `long:"ephemeral" env:"CREWBOOK_EPHEMERAL" description:"keep workers in memory only"`
	StrictLoad  bool   `long:"strict-load" env:"CREWBOOK_STRICT_LOAD" description:"fail on undecodable stored workers"`
	Seed        string `long:"seed" env:"CREWBOOK_SEED" description:"yaml file with workers to import on start"`
	DropBackups bool   `long:"drop-backups" env:"CREWBOOK_DROP_BACKUPS" description:"remove copies of unreadable workers on start"`
	Dbg         bool   `long:"dbg" env:"CREWBOOK_DEBUG" description:"debug mode"`

	Web struct {
		Address      string `long:"address" env:"ADDRESS" default:":8080" description:"web server listen address"`
		BaseURL      string `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /crewbook)"`
		PasswordHash string `long:"password-hash" env:"PASSWORD_HASH" description:"bcrypt hash of the UI password, empty disables auth"`
		Lang         string `long:"lang" env:"LANG" default:"en" choice:"en" choice:"ru" description:"UI language"`
		Hostname     string `long:"hostname" env:"HOSTNAME" description:"host name shown in the UI"`
	} `group:"web" namespace:"web" env-namespace:"CREWBOOK_WEB"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"file" env:"FILE" default:"crewbook.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in MB"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"5" description:"max number of rotated files"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"30" description:"max age of rotated files in days"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated files"`
	} `group:"log" namespace:"log" env-namespace:"CREWBOOK_LOG"`
}

var revision = "unknown"

// store is a key/value backend the roster is kept in
type store interface {
	roster.Store
	Close() error
}

func main() {
	fmt.Printf("crewbook %s\n", revision)

	// CREWBOOK_* values from .env are visible to flags parsing, real environment wins
	if err := loadEnvFile(envFile()); err != nil {
		fmt.Printf("failed to load env file: %v\n", err)
		os.Exit(2)
	}

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	setupLogger(setupLogs(), opts.Dbg)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals(cancel) // handle SIGQUIT, SIGINT and SIGTERM

	if err := run(ctx); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(ctx context.Context) error {
	lang, err := enums.ParseLang(opts.Web.Lang)
	if err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}

	kv, err := makeStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	if err := checkBackups(kv, opts.DropBackups); err != nil {
		return err
	}

	r, err := roster.Open(kv, roster.Params{Key: opts.Key, StrictLoad: opts.StrictLoad})
	if err != nil {
		return err
	}

	if opts.Seed != "" {
		added, err := roster.SeedFile(r, opts.Seed)
		if err != nil {
			return err
		}
		log.Printf("[INFO] imported %d workers from %s", added, opts.Seed)
	}

	srv, err := web.New(web.Config{
		Roster:       r,
		BaseURL:      validateBaseURL(opts.Web.BaseURL),
		Hostname:     makeHostName(),
		Version:      revision,
		PasswordHash: opts.Web.PasswordHash,
		Lang:         lang,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx, opts.Web.Address)
}

// checkBackups reports copies of unreadable workers left by earlier runs, or removes them if drop is set
func checkBackups(kv store, drop bool) error {
	if drop {
		dropped, err := roster.DropBackups(kv)
		if err != nil {
			return err
		}
		if len(dropped) > 0 {
			log.Printf("[INFO] removed backups %v", dropped)
		}
		return nil
	}

	keys, err := roster.Backups(kv)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		log.Printf("[WARN] unreadable workers kept in %v, use --drop-backups to remove", keys)
	}
	return nil
}

// makeStore opens the sqlite store, or the in-memory one for ephemeral runs
func makeStore() (store, error) {
	if opts.Ephemeral {
		log.Printf("[INFO] ephemeral mode, workers are kept in memory only")
		return persistence.NewMemoryStore(), nil
	}
	s, err := persistence.NewSQLiteStore(opts.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", opts.DB, err)
	}
	log.Printf("[INFO] workers stored in %s, key %q", opts.DB, opts.Key)
	return s, nil
}

// envFile returns the dotenv file location, CREWBOOK_ENV_FILE or .env in the working directory
func envFile() string {
	if v := os.Getenv("CREWBOOK_ENV_FILE"); v != "" {
		return v
	}
	return ".env"
}

// loadEnvFile loads variables from a dotenv file, a missing file is not an error
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("can't load %s: %w", path, err)
	}
	return nil
}

func makeHostName() string {
	if opts.Web.Hostname != "" {
		return opts.Web.Hostname
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// validateBaseURL normalizes base URL to "/path" form, empty for root
func validateBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}
	if !strings.HasPrefix(baseURL, "/") {
		baseURL = "/" + baseURL
	}
	return baseURL
}

// setupLogs returns the log destination, rotated file if logging to file is enabled
func setupLogs() io.Writer {
	if !opts.Log.Enabled {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   opts.Log.Filename,
		MaxSize:    opts.Log.MaxSize,
		MaxBackups: opts.Log.MaxBackups,
		MaxAge:     opts.Log.MaxAge,
		Compress:   opts.Log.EnabledCompress,
	}
}

func setupLogger(out io.Writer, dbg bool) {
	logOpts := []log.Option{log.Out(out), log.Msec, log.LevelBraces}
	if dbg {
		logOpts = append(logOpts, log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
	log.Setup(logOpts...)
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			log.Printf("[INFO] %s received, shutting down", sig)
			cancel()
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
