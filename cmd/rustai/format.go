package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	rerrors "rustai/internal/errors"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

func parseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatJSON, FormatHuman, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (want human, json or yaml)", s)
	}
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	f, err := parseFormat(string(format))
	if err != nil {
		return "", err
	}
	switch f {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	default:
		return formatHuman(resp)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	var (
		out string
		err error
	)
	switch v := resp.(type) {
	case *ClassifyResponse:
		out, err = formatClassifyHuman(v)
	case *LocateResponse:
		out, err = formatLocateHuman(v)
	case *OwnerResponse:
		out, err = formatOwnerHuman(v)
	case *HierarchyResponse:
		out, err = formatHierarchyHuman(v)
	case *ScopeResponse:
		out, err = formatScopeHuman(v)
	case *DocResponse:
		out, err = formatDocHuman(v)
	case *PromptResponse:
		out, err = formatPromptHuman(v)
	case *CheckResponse:
		out, err = formatCheckHuman(v)
	case *ConfigShowResponse:
		out, err = formatConfigShowHuman(v)
	case *ConfigEnvResponse:
		out, err = formatConfigEnvHuman(v)
	case *VersionResponse:
		out, err = formatVersionHuman(v)
	case *rerrors.RustaiError:
		out, err = formatErrorHuman(v)
	default:
		js, jerr := formatJSON(resp)
		if jerr != nil {
			return "", jerr
		}
		return "Human format not available for this response:\n" + js, nil
	}
	return strings.TrimSuffix(out, "\n"), err
}

func formatErrorHuman(e *rerrors.RustaiError) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Error [%s]: %s\n", e.Code, e.Message))
	if cause := e.Unwrap(); cause != nil {
		b.WriteString(fmt.Sprintf("  %v\n", cause))
	}
	if len(e.SuggestedFixes) > 0 {
		b.WriteString("\nSuggested fixes:\n")
		for _, fix := range e.SuggestedFixes {
			b.WriteString("  - " + fix.Description)
			if fix.Command != "" {
				b.WriteString("\n    $ " + fix.Command)
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
