package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/focusbot/internal/common/random"
	"github.com/KirkDiggler/focusbot/internal/services/quote"
)

type QuoteServerTestSuite struct {
	suite.Suite
	server  *Server
	phrases []string
}

func (s *QuoteServerTestSuite) SetupTest() {
	s.phrases = []string{"um", "dois", "três"}

	server, err := New(&Config{
		Phrases: s.phrases,
		Random:  random.New(&random.Config{Seed: 3}),
	})
	s.Require().NoError(err)
	s.server = server
}

func TestQuoteServerSuite(t *testing.T) {
	suite.Run(t, new(QuoteServerTestSuite))
}

func (s *QuoteServerTestSuite) get(path string, v any) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)

	if v != nil && rec.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
	}
	return rec.Code
}

func (s *QuoteServerTestSuite) TestRoot() {
	var body rootResponse
	s.Equal(http.StatusOK, s.get("/", &body))
	s.Equal("API de Frases Motivacionais", body.Mensagem)
}

func (s *QuoteServerTestSuite) TestRandomPhrase() {
	for range 10 {
		var body phraseResponse
		s.Require().Equal(http.StatusOK, s.get("/frases", &body))
		s.Contains(s.phrases, body.Frase)
	}
}

func (s *QuoteServerTestSuite) TestPhrases_Quantity() {
	var body phrasesResponse
	s.Require().Equal(http.StatusOK, s.get("/frases/2", &body))
	s.Len(body.Frases, 2)
	s.NotEqual(body.Frases[0], body.Frases[1])
	for _, phrase := range body.Frases {
		s.Contains(s.phrases, phrase)
	}
}

func (s *QuoteServerTestSuite) TestPhrases_QuantityIsCapped() {
	var body phrasesResponse
	s.Require().Equal(http.StatusOK, s.get("/frases/50", &body))
	s.ElementsMatch(s.phrases, body.Frases)
}

func (s *QuoteServerTestSuite) TestPhrases_Zero() {
	var body phrasesResponse
	s.Require().Equal(http.StatusOK, s.get("/frases/0", &body))
	s.Empty(body.Frases)
}

func (s *QuoteServerTestSuite) TestPhrases_BadQuantity() {
	s.Equal(http.StatusBadRequest, s.get("/frases/abc", nil))
	s.Equal(http.StatusBadRequest, s.get("/frases/-1", nil))
}

func (s *QuoteServerTestSuite) TestNew_DefaultPhrases() {
	server, err := New(&Config{})
	s.Require().NoError(err)
	s.NotEmpty(server.phrases)

	_, err = New(nil)
	s.Error(err)
}

func (s *QuoteServerTestSuite) TestLoadPhrases() {
	dir := s.T().TempDir()

	path := filepath.Join(dir, "frases.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{"frases": ["  foco  ", "", "força"]}`), 0o644))

	phrases, err := LoadPhrases(path)
	s.Require().NoError(err)
	s.Equal([]string{"foco", "força"}, phrases)

	empty := filepath.Join(dir, "empty.json")
	s.Require().NoError(os.WriteFile(empty, []byte(`{"frases": []}`), 0o644))
	_, err = LoadPhrases(empty)
	s.Error(err)

	_, err = LoadPhrases(filepath.Join(dir, "missing.json"))
	s.Error(err)
}

func (s *QuoteServerTestSuite) TestServesQuoteClient() {
	ts := httptest.NewServer(s.server)
	defer ts.Close()

	client, err := quote.New(&quote.Config{URL: ts.URL + "/frases"})
	s.Require().NoError(err)

	got := client.FetchQuote(context.Background())

	formatted := make([]string, 0, len(s.phrases))
	for _, phrase := range s.phrases {
		formatted = append(formatted, quote.Format(phrase))
	}
	s.Contains(formatted, got)
}
