package mcpserver

import (
	"context"
	"fmt"
	"slices"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/profile"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type profileInput struct {
	Version string `json:"version,omitempty" jsonschema:"Profile version such as 3.1 or 3.1.0 (default: the registry default)"`
	Kind    string `json:"kind,omitempty"    jsonschema:"Describe only this node kind (e.g. Schema)"`
}

type kindKeys struct {
	Kind     string   `json:"kind"`
	Allowed  []string `json:"allowed"`
	Required []string `json:"required,omitempty"`
}

type profileOutput struct {
	Version  string         `json:"version"`
	Default  bool           `json:"default"`
	Versions []string       `json:"versions"`
	Features map[string]any `json:"features"`
	Kinds    []kindKeys     `json:"kinds"`
}

func handleProfile(_ context.Context, _ *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, profileOutput, error) {
	registry := profile.DefaultRegistry()

	prof := registry.Default()
	if input.Version != "" {
		mm, err := profile.MajorMinor(input.Version)
		if err != nil {
			return errResult(err), profileOutput{}, nil
		}
		p, ok := registry.Lookup(mm)
		if !ok {
			return errResult(fmt.Errorf("no profile for version %s (available: %v)", mm, registry.Versions())), profileOutput{}, nil
		}
		prof = p
	}

	kinds := document.Kinds()
	if input.Kind != "" {
		k := document.Kind(input.Kind)
		if !slices.Contains(document.Kinds(), k) {
			return errResult(fmt.Errorf("unknown node kind %q", input.Kind)), profileOutput{}, nil
		}
		kinds = []document.Kind{k}
	}

	features := prof.Features()
	output := profileOutput{
		Version:  prof.MajorMinor(),
		Default:  prof.MajorMinor() == registry.Default().MajorMinor(),
		Versions: registry.Versions(),
		Features: map[string]any{
			"jsonSchema202012":  features.JSONSchema202012(),
			"webhooks":          features.Webhooks(),
			"mediaTypeExamples": features.MediaTypeExamples(),
		},
		Kinds: make([]kindKeys, 0, len(kinds)),
	}
	for _, name := range features.ExtraNames() {
		v, _ := features.Value(name)
		output.Features[name] = v
	}
	for _, k := range kinds {
		output.Kinds = append(output.Kinds, kindKeys{
			Kind:     string(k),
			Allowed:  prof.AllowedKeysFor(k),
			Required: prof.RequiredKeysFor(k),
		})
	}
	return nil, output, nil
}
