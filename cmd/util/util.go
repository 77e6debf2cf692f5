package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/gatekv/gatekv/lib/db/engines/aspen"
	"github.com/gatekv/gatekv/lib/handler"
	"github.com/gatekv/gatekv/lib/logging"
	"github.com/gatekv/gatekv/lib/store"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("gatekv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// SetupLogging configures the root logger from viper
func SetupLogging() error {
	return logging.Setup(logging.Options{
		Level: viper.GetString("log-level"),
	})
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetEngine creates a database factory based on configuration
func GetEngine() (store.DBFactory, error) {
	switch viper.GetString("engine") {
	case "aspen":
		return func() db.KVDB {
			return aspen.NewAspenDB(nil)
		}, nil
	default:
		return nil, fmt.Errorf("invalid engine %s", viper.GetString("engine"))
	}
}

// GetSnapshotPath retrieves the configured snapshot file path
func GetSnapshotPath() string {
	return viper.GetString("snapshot")
}

// DefaultHandlerRegistry builds the registry of handlers selectable on the
// command line. The rules handler reads its rule set from viper, so the
// registry must be built after flags are bound.
func DefaultHandlerRegistry() *handler.Registry {
	registry := handler.NewRegistry()

	// the built-in factories never collide, registration cannot fail here
	_ = registry.Register("default", handler.NewDefaultHandler)
	_ = registry.Register("noop", handler.NewNoopHandler)
	_ = registry.Register("rules", func() handler.IHandler {
		return handler.NewRuleHandler(handler.Rules{
			RequireName: viper.GetBool("require-name"),
			MinTimeout:  time.Duration(viper.GetInt("min-timeout")) * time.Millisecond,
		})
	})

	return registry
}

// GetHandler creates the handler selected by the "handler" configuration key
func GetHandler() (handler.IHandler, error) {
	return DefaultHandlerRegistry().New(viper.GetString("handler"))
}
