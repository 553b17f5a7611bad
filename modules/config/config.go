// Load config.ini with server, github, upload, database and log sections
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"sirherobrine23.com.br/go-bds/imagegen/modules/github"
	"sirherobrine23.com.br/go-bds/imagegen/modules/history"
	"sirherobrine23.com.br/go-bds/imagegen/modules/secret"
)

// Environment variable with GitHub token, takes priority over TOKEN_SEALED
const TokenEnv = "GITHUB_TOKEN"

const DefaultListen = ":3000"
const DefaultTimeout = 30 * time.Second

type ServerConfig struct {
	Listen string `ini:"LISTEN" json:"listen"`
}

type GithubConfig struct {
	Repository  string `ini:"OWNER_REPO" json:"repository"`
	Branch      string `ini:"BRANCH" json:"branch"`
	Folder      string `ini:"FOLDER" json:"folder"`
	Message     string `ini:"MESSAGE" json:"message"`
	TokenSealed string `ini:"TOKEN_SEALED" json:"-"`
	APIURL      string `ini:"API_URL" json:"-"`
}

type UploadConfig struct {
	Strategy string        `ini:"STRATEGY" json:"strategy"`
	Workflow string        `ini:"WORKFLOW" json:"workflow"`
	Timeout  time.Duration `ini:"TIMEOUT" json:"timeout"`
}

type DatabaseConfig struct {
	Driver     string `ini:"DRIVER" json:"driver"`
	Connection string `ini:"CONNECTION" json:"-"`
	ShowSQL    bool   `ini:"SHOW_SQL" json:"show_sql"`
}

type LogConfig struct {
	Level  string `ini:"LEVEL" json:"level"`
	Format string `ini:"FORMAT" json:"format"`
}

// Settings loaded from config.ini
type Settings struct {
	File     string         `json:"-"`
	Server   ServerConfig   `json:"server"`
	Github   GithubConfig   `json:"github"`
	Upload   UploadConfig   `json:"upload"`
	Database DatabaseConfig `json:"database"`
	Log      LogConfig      `json:"log"`
}

// Current settings, replaced by Load
var Current = Default()

// Default settings without any file
func Default() *Settings {
	settings, _ := parse(ini.Empty())
	return settings
}

// Load config file, missing file return defaults
func Load(file string) (*Settings, error) {
	cfg := ini.Empty()
	if file != "" {
		if _, err := os.Stat(file); err == nil {
			if cfg, err = ini.Load(file); err != nil {
				return nil, fmt.Errorf("cannot load config %q: %w", file, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	settings, err := parse(cfg)
	if err != nil {
		return nil, err
	}
	settings.File = file
	Current = settings
	return settings, nil
}

func section(cfg *ini.File, name string) *ini.Section {
	sec, err := cfg.GetSection(name)
	if err != nil {
		sec, _ = cfg.NewSection(name)
	}
	return sec
}

func parse(cfg *ini.File) (*Settings, error) {
	settings := &Settings{}

	server := section(cfg, "server")
	server.Key("LISTEN").MustString(DefaultListen)
	if err := server.MapTo(&settings.Server); err != nil {
		return nil, err
	}

	gh := section(cfg, "github")
	gh.Key("BRANCH").MustString(github.DefaultBranch)
	gh.Key("FOLDER").MustString(github.DefaultFolder)
	if err := gh.MapTo(&settings.Github); err != nil {
		return nil, err
	}

	upload := section(cfg, "upload")
	upload.Key("STRATEGY").MustString(string(github.Contents))
	upload.Key("WORKFLOW").MustString(github.DefaultWorkflow)
	upload.Key("TIMEOUT").MustDuration(DefaultTimeout)
	if err := upload.MapTo(&settings.Upload); err != nil {
		return nil, err
	}
	if _, err := github.ParseStrategy(settings.Upload.Strategy); err != nil {
		return nil, err
	}
	if settings.Upload.Timeout <= 0 {
		settings.Upload.Timeout = DefaultTimeout
	}

	db := section(cfg, "database")
	db.Key("DRIVER").MustString(history.DefaultDriver)
	db.Key("CONNECTION").MustString(history.DefaultConnection)
	db.Key("SHOW_SQL").MustBool(false)
	if err := db.MapTo(&settings.Database); err != nil {
		return nil, err
	}

	log := section(cfg, "log")
	log.Key("LEVEL").MustString("info")
	log.Key("FORMAT").MustString("text")
	if err := log.MapTo(&settings.Log); err != nil {
		return nil, err
	}

	return settings, nil
}

// Strategy parsed from [upload] STRATEGY
func (settings *Settings) Strategy() github.Strategy {
	strategy, _ := github.ParseStrategy(settings.Upload.Strategy)
	return strategy
}

// Token resolve GitHub token: GITHUB_TOKEN first, else TOKEN_SEALED opened with IMAGEGEN_SECRET_KEY.
// Empty token is valid, requests go anonymous.
func (settings *Settings) Token() (string, error) {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		return token, nil
	} else if settings.Github.TokenSealed == "" {
		return "", nil
	}

	key, err := secret.Key()
	if err != nil {
		return "", err
	}
	return secret.Open(key, settings.Github.TokenSealed)
}

// Target from [github] section with optional overrides, empty values keep config
func (settings *Settings) Target(repository, branch, folder, message string) (github.Target, error) {
	if repository == "" {
		repository = settings.Github.Repository
	}
	if branch == "" {
		branch = settings.Github.Branch
	}
	if folder == "" {
		folder = settings.Github.Folder
	}
	if message == "" {
		message = settings.Github.Message
	}
	return github.NewTarget(repository, branch, folder, message)
}

// GithubOptions for github.NewClient
func (settings *Settings) GithubOptions() github.Options {
	return github.Options{BaseURL: settings.Github.APIURL}
}
