package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriFunc/internal/config"
	"github.com/Rorical/RoriFunc/internal/console"
	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var (
	envFile     string
	profileName string
	verbose     bool
)

// setupLogging keeps diagnostics quiet unless --verbose is given.
func setupLogging() {
	if verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

// fatalf reports err even when diagnostics are muted.
func fatalf(format string, args ...any) {
	log.SetOutput(os.Stderr)
	log.Fatalf(format, args...)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if profileName != "" {
		if err := cfg.UseProfile(profileName); err != nil {
			fatalf("Failed to use profile: %v", err)
		}
	}
	return cfg
}

// newClient returns nil when the current profile cannot reach a model.
func newClient(cfg *config.Config) core.Completer {
	if !cfg.IsValid() {
		return nil
	}
	client, err := cfg.Current().NewClient()
	if err != nil {
		fatalf("Failed to create client: %v", err)
	}
	return client
}

// requireClient is newClient for commands that cannot run without a model.
func requireClient(cfg *config.Config) core.Completer {
	client := newClient(cfg)
	if client == nil {
		fatalf("Profile '%s' has no API key. Run 'rorifunc profile edit' or set API_HOST in %s", cfg.ActiveName(), envFile)
	}
	return client
}

func mustRegistry(reg *tools.Registry, err error) *tools.Registry {
	if err != nil {
		fatalf("Failed to register tools: %v", err)
	}
	return reg
}

// turnHandler runs a console turn and prints the reply as it arrives.
func turnHandler(svc *core.Service, conv *core.Conversation, out io.Writer, delay time.Duration) console.Handler {
	return func(ctx context.Context, input string) error {
		printer := console.NewPrinter(out, delay)
		defer printer.End()
		_, err := svc.Turn(ctx, conv, input, printer.Hooks())
		return err
	}
}

// traceHooks prints tool traffic for the one-shot commands.
func traceHooks(out io.Writer) core.Hooks {
	return core.Hooks{
		OnToolCall: func(call openai.ToolCall) {
			fmt.Fprintf(out, "Recommended Function call: %s(%s)\n", call.Function.Name, call.Function.Arguments)
		},
		OnToolResult: func(call openai.ToolCall, result string) {
			fmt.Fprintf(out, "Output of function call: %s\n\n", result)
		},
	}
}

func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func userMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: content}
}
