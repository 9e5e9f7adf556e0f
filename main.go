package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/markussiebert/authgate/cmd"
	"github.com/markussiebert/authgate/internal/logger"
	"github.com/markussiebert/authgate/internal/verify"
)

// CLI holds the command-line interface structure.
type CLI struct {
	Server struct {
		Port int `help:"Port to listen on." default:"8080" env:"PORT"`
	} `cmd:"" help:"Run the credential gate server."`

	Check struct {
		URL      string `arg:"" help:"URL of a gated endpoint (e.g., https://host:8080/status)."`
		Username string `short:"u" required:"" help:"Username to present."`
		Password string `short:"p" required:"" help:"Password to present."`
	} `cmd:"" help:"Check credentials against a running server."`

	HashPassword struct{} `cmd:"" help:"Generate bcrypt hash from stdin password."`

	Version struct{} `cmd:"" help:"Print the current version."`

	ListVerifiers bool `help:"List available password verifiers."`
}

var (
	buildVersion = "dev"
)

const fallbackVersion = "0.0.0-dev"

func versionString() string {
	if trimmed := strings.TrimSpace(buildVersion); trimmed != "" {
		return trimmed
	}
	return fallbackVersion
}

func ensureServerDefaultForContainer() {
	if len(os.Args) > 1 {
		return
	}
	if isRunningInContainer() {
		os.Args = append(os.Args, "server")
	}
}

func isRunningInContainer() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	data, err := os.ReadFile("/proc/1/cgroup")
	if err != nil {
		return false
	}
	text := string(data)
	return strings.Contains(text, "docker") || strings.Contains(text, "kubepods") || strings.Contains(text, "containerd") || strings.Contains(text, "podman")
}

func main() {
	// Initialize logger at INFO level by default
	// Will be re-initialized from LOG_LEVEL once the command is known
	logger.SetLevel(logger.LevelInfo)

	ensureServerDefaultForContainer()

	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.ListVerifiers {
		fmt.Println("Available verifiers:")
		for _, name := range verify.List() {
			fmt.Println("-", name)
		}
		return
	}

	if ctx.Command() == "version" {
		fmt.Println(versionString())
		return
	}

	logger.SetLevelFromString(os.Getenv("LOG_LEVEL"))
	logger.Debug("Logger re-initialized with level: %s", logger.GetLevel())

	if ctx.Command() == "hash-password" {
		err := cmd.RunHashPassword()
		ctx.FatalIfErrorf(err)
		return
	}

	// check is client-side and needs no server configuration.
	if ctx.Command() == "check <url>" {
		err := cmd.RunCheck(cli.Check.URL, cli.Check.Username, cli.Check.Password)
		ctx.FatalIfErrorf(err)
		return
	}

	config, err := cmd.LoadConfig()
	if err != nil {
		ctx.FatalIfErrorf(fmt.Errorf("failed to load configuration: %w", err))
	}

	cmd.Version = versionString()
	logger.Debug("Configuration loaded: verifier=%s, realm=%q", config.Verifier(), config.Realm)

	switch ctx.Command() {
	case "server":
		err = cmd.RunServer(cli.Server.Port, config)
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}

	ctx.FatalIfErrorf(err)
}
