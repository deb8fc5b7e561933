package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"lyricsync/internal/api"
	"lyricsync/internal/logging"
	"lyricsync/internal/preflight"
	"lyricsync/internal/session"
	"lyricsync/internal/transport"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		bind  string
		blind bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the capture session over a local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.consoleLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "serve")

			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another lyricsync serve instance is already running")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("release lock failed", logging.Error(err))
				}
			}()

			if failed := preflight.Failed(preflight.RunAll(cfg, false)); len(failed) > 0 {
				return fmt.Errorf("preflight %s: %s", failed[0].Name, failed[0].Detail)
			}

			opts := session.OptionsFromConfig(cfg, logger)
			if cmd.Flags().Changed("blind") {
				opts.BlindMode = blind
			}
			clock := transport.NewClock()
			sess := session.New(clock, opts)

			address := cfg.Paths.APIBind
			if b := strings.TrimSpace(bind); b != "" {
				address = b
			}
			server := api.NewServer(sess, api.Options{
				Bind:   address,
				Token:  cfg.Paths.APIToken,
				Logger: logger,
			})

			runCtx := cmd.Context()
			if err := server.Start(runCtx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			lines := renderSectionHeader("lyricsync serve", color)
			lines = append(lines,
				renderStatusLine("Session", statusInfo, sess.ID(), color),
				renderStatusLine("Listening", statusOK, "http://"+server.Addr(), color),
				renderStatusLine("Auth", statusInfo, authLabel(cfg.Paths.APIToken), color),
				renderStatusLine("Blind mode", statusInfo, yesNo(opts.BlindMode), color),
			)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			<-runCtx.Done()
			logger.Info("serve stopping",
				logging.String(logging.FieldEventType, "serve_stopped"),
				logging.Int("entries", sess.Status().Entries),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override paths.api_bind (host:port)")
	cmd.Flags().BoolVar(&blind, "blind", false, "Start with blind mode enabled")
	return cmd
}

func authLabel(token string) string {
	if strings.TrimSpace(token) == "" {
		return "disabled"
	}
	return "bearer token"
}
