package quotes

import (
	_ "embed"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

//go:embed frases.json
var defaultPhrasesFile []byte

type phrasesDocument struct {
	Frases []string `json:"frases"`
}

// DefaultPhrases returns the bundled phrase list
func DefaultPhrases() []string {
	phrases, err := parsePhrases(defaultPhrasesFile)
	if err != nil {
		panic(errors.Wrap(err, "bundled phrases are malformed"))
	}
	return phrases
}

// LoadPhrases reads a {"frases": [...]} document from path
func LoadPhrases(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read phrases file %s", path)
	}

	phrases, err := parsePhrases(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load phrases file %s", path)
	}

	return phrases, nil
}

func parsePhrases(data []byte) ([]string, error) {
	var doc phrasesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "malformed phrases document")
	}

	phrases := make([]string, 0, len(doc.Frases))
	for _, phrase := range doc.Frases {
		if phrase = strings.TrimSpace(phrase); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}

	if len(phrases) == 0 {
		return nil, errors.New("phrases document has no phrases")
	}

	return phrases, nil
}
