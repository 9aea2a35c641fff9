package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/prscore/internal/analyzer"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/review"
)

const (
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"
	toolName     = "prscore"
	toolInfoURI  = "https://github.com/dshills/prscore"
	rulePrefix   = "prscore/"
	sarifVersion = "2.1.0"
)

// SARIFWriter outputs issues in SARIF v2.1.0 format.
type SARIFWriter struct {
	version string
}

func (s *SARIFWriter) Write(w io.Writer, report *review.Report, _ diff.PullRequest) error {
	sarif := buildSARIF(report, s.version)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

var ruleDescriptions = map[analyzer.IssueType]string{
	analyzer.TypeTodo:          "TODO or FIXME markers in the change",
	analyzer.TypeComplexity:    "High average cyclomatic complexity in added code",
	analyzer.TypeDocstring:     "Functions or classes without a docstring",
	analyzer.TypePrint:         "print() used where logging is expected",
	analyzer.TypeLint:          "Static lint warnings in added code",
	analyzer.TypeLargeAddition: "Very large addition to a non-source file",
	analyzer.TypeSecret:        "Credential keywords in added content",
}

func buildSARIF(report *review.Report, version string) sarifLog {
	seen := make(map[analyzer.IssueType]bool)
	results := []sarifResult{}

	for _, f := range report.Files {
		for _, i := range f.Issues {
			seen[i.Type] = true
			results = append(results, sarifResult{
				RuleID:  rulePrefix + string(i.Type),
				Level:   issueLevel(i.Type),
				Message: sarifMessage{Text: i.Detail},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: f.Filename},
					},
				}},
			})
		}
	}

	// Rules in the canonical type order.
	rules := []sarifRule{}
	for _, t := range analyzer.AllTypes {
		if !seen[t] {
			continue
		}
		rules = append(rules, sarifRule{
			ID:               rulePrefix + string(t),
			Name:             string(t),
			ShortDescription: sarifMessage{Text: ruleDescriptions[t]},
			DefaultConfig:    sarifDefaultConfig{Level: issueLevel(t)},
		})
	}

	return sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           toolName,
						Version:        version,
						InformationURI: toolInfoURI,
						Rules:          rules,
					},
				},
				Results: results,
				Properties: map[string]any{
					"final_score": report.FinalScore,
					"penalty":     report.Penalty,
				},
			},
		},
	}
}

// issueLevel maps an issue type to a SARIF level.
func issueLevel(t analyzer.IssueType) string {
	switch t {
	case analyzer.TypeSecret:
		return "error"
	case analyzer.TypeComplexity, analyzer.TypeLint, analyzer.TypeLargeAddition:
		return "warning"
	default:
		return "note"
	}
}
