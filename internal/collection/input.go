package collection

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Input is the per-collection configuration consumed from the collection
// directory: the documents to process and the persona/job pair they are
// ranked for.
type Input struct {
	Documents []InputDocument `json:"documents"`
	Persona   struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// InputDocument names one source document of the collection.
type InputDocument struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

// LoadInput reads and decodes the collection input file. A structurally
// malformed input is a hard failure for this collection only.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection input: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing collection input %q: %w", path, err)
	}

	var input Input
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &input,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding collection input %q: %w", path, err)
	}

	if len(input.Documents) == 0 {
		return nil, fmt.Errorf("collection input %q lists no documents", path)
	}

	return &input, nil
}
