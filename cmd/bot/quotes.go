package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/focusbot/internal/handlers/quotes"
)

func newQuotesCmd(opts *options) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Run the motivational quote API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if listenAddr == "" {
				listenAddr = cfg.Quotes.ListenAddr
			}

			var phrases []string
			if cfg.Quotes.PhrasesFile != "" {
				loaded, err := quotes.LoadPhrases(cfg.Quotes.PhrasesFile)
				if err != nil {
					return err
				}
				phrases = loaded
			}

			server, err := quotes.New(&quotes.Config{Phrases: phrases})
			if err != nil {
				return errors.Wrap(err, "failed to create quote API")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(listenAddr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			log.Info().Msg("Shutting down quote API")
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (default from QUOTES_LISTEN_ADDR)")

	return cmd
}
