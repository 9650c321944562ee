// Package quotes serves motivational phrases over HTTP for the bot's quote client.
package quotes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/common/random"
)

// DefaultListenAddr matches the quote client's default URL
const DefaultListenAddr = "127.0.0.1:8000"

// Config holds configuration for the quote server
type Config struct {
	// Phrases defaults to the bundled list
	Phrases []string

	// Random defaults to a time-seeded source
	Random *random.Source
}

// Server is the motivational quote API
type Server struct {
	echo    *echo.Echo
	phrases []string
	random  *random.Source
}

type rootResponse struct {
	Mensagem string `json:"mensagem"`
}

type phraseResponse struct {
	Frase string `json:"frase"`
}

type phrasesResponse struct {
	Frases []string `json:"frases"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// New creates a new quote server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	phrases := cfg.Phrases
	if len(phrases) == 0 {
		phrases = DefaultPhrases()
	}

	source := cfg.Random
	if source == nil {
		source = random.New(nil)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		phrases: phrases,
		random:  source,
	}

	e.GET("/", s.getRoot)
	e.GET("/frases", s.getPhrase)
	e.GET("/frases/:quantidade", s.getPhrases)

	return s, nil
}

// ServeHTTP makes the server usable as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = DefaultListenAddr
	}

	log.Info().Str("addr", addr).Int("phrases", len(s.phrases)).Msg("Quote API listening")

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "quote API stopped")
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) getRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{Mensagem: "API de Frases Motivacionais"})
}

func (s *Server) getPhrase(c echo.Context) error {
	return c.JSON(http.StatusOK, phraseResponse{Frase: random.Pick(s.random, s.phrases)})
}

func (s *Server) getPhrases(c echo.Context) error {
	quantidade, err := strconv.Atoi(c.Param("quantidade"))
	if err != nil || quantidade < 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "quantidade deve ser um número inteiro não negativo"})
	}

	return c.JSON(http.StatusOK, phrasesResponse{Frases: random.Sample(s.random, s.phrases, quantidade)})
}
