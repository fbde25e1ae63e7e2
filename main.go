package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dskvich/selfie-sender/pkg/config"
	"github.com/dskvich/selfie-sender/pkg/dispatch"
	"github.com/dskvich/selfie-sender/pkg/domain"
	"github.com/dskvich/selfie-sender/pkg/imagegen"
	"github.com/dskvich/selfie-sender/pkg/logger"
	"github.com/dskvich/selfie-sender/pkg/services"
)

const (
	transportCLI      = "cli"
	transportHTTP     = "http"
	transportTelegram = "telegram"
)

type options struct {
	mode      string
	transport string
	direct    bool
	envFile   string
}

type selfieSender interface {
	Send(ctx context.Context, req domain.SelfieRequest) (*domain.DispatchResult, error)
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("selfie not sent", logger.Err(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "selfie-sender <context> <channel> [caption] [aspect-ratio]",
		Short: "Generate a selfie from a text prompt and send it to a messaging channel",
		Long: `Generates a selfie image for the given context and delivers the image url with a
caption to a messaging channel through the gateway.

The framing is picked from the context: places and close-up words give a direct
selfie, anything else a mirror selfie. Use --mode to force one.

Supported aspect ratios: ` + joinRatios(),
		Args:          cobra.RangeArgs(2, 4),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runMain(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(domain.ModeAuto), "selfie framing: auto, mirror or direct")
	cmd.Flags().StringVarP(&opts.transport, "transport", "t", transportCLI, "delivery transport: cli, http or telegram")
	cmd.Flags().BoolVar(&opts.direct, "direct", false, "post straight to the gateway HTTP API (same as --transport http)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.MarkFlagsMutuallyExclusive("direct", "transport")

	return cmd
}

func runMain(ctx context.Context, out io.Writer, opts *options, args []string) error {
	req := parseArgs(args, domain.Mode(opts.mode))
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &logger.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.DateTime,
		AddSource:  cfg.LogLevel <= slog.LevelDebug,
	})))

	transportName := opts.transport
	if opts.direct {
		transportName = transportHTTP
	}

	svc, err := setupService(cfg, transportName)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.ContextWithRunID(ctx, strconv.FormatInt(time.Now().UnixNano(), 36))

	return sendSelfie(ctx, out, svc, req)
}

func setupService(cfg *config.Config, transportName string) (selfieSender, error) {
	hc := &http.Client{Timeout: cfg.HTTPTimeout}

	transport, err := newTransport(cfg, transportName, hc)
	if err != nil {
		return nil, err
	}

	return services.NewSelfieService(newImageGenerator(cfg, hc), transport, cfg.DefaultCaption), nil
}

func newImageGenerator(cfg *config.Config, hc *http.Client) services.ImageGenerator {
	if cfg.ImageProvider == domain.ProviderOpenAI {
		return imagegen.NewOpenAIClient(cfg.OpenAIToken, cfg.OpenAIBaseURL, hc)
	}
	return imagegen.NewClient(imagegen.Config{
		APIKey:            cfg.APIKey,
		URL:               cfg.ImageAPIURL,
		Model:             cfg.ImageModel,
		ReferenceImageURL: cfg.ReferenceImageURL,
	}, hc)
}

func newTransport(cfg *config.Config, name string, hc *http.Client) (services.Transport, error) {
	switch name {
	case transportCLI:
		return dispatch.NewCLITransport(cfg.GatewayCLI, cfg.CLITimeout), nil
	case transportHTTP:
		return dispatch.NewHTTPTransport(cfg.GatewayURL, cfg.GatewayToken, hc), nil
	case transportTelegram:
		tr, err := dispatch.NewTelegramTransport(cfg.TelegramBotToken, hc)
		if err != nil {
			return nil, err
		}
		return tr, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}

// parseArgs maps positional arguments to a request:
// <context> <channel> [caption] [aspect-ratio].
func parseArgs(args []string, mode domain.Mode) domain.SelfieRequest {
	req := domain.SelfieRequest{
		Mode:        mode,
		AspectRatio: domain.DefaultAspectRatio,
	}
	if len(args) > 0 {
		req.Context = args[0]
	}
	if len(args) > 1 {
		req.Channel = strings.TrimSpace(args[1])
	}
	if len(args) > 2 {
		req.Caption = args[2]
	}
	if len(args) > 3 && strings.TrimSpace(args[3]) != "" {
		req.AspectRatio = domain.AspectRatio(strings.TrimSpace(args[3]))
	}
	return req
}

// sendSelfie prints the summary only once the whole flow succeeded.
func sendSelfie(ctx context.Context, out io.Writer, svc selfieSender, req domain.SelfieRequest) error {
	res, err := svc.Send(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

func joinRatios() string {
	return strings.Join(lo.Map(domain.SupportedAspectRatios, func(r domain.AspectRatio, _ int) string {
		return string(r)
	}), ", ")
}
