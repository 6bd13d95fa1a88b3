package atomcss

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONOutput is the metadata schema: the class names every namespace, theme,
// variable group, keyframes and merge site resolved to
type JSONOutput struct {
	Version string      `json:"version"`
	Summary JSONSummary `json:"summary"`
	Files   []JSONFile  `json:"files"`
	Issues  []JSONIssue `json:"issues"`
}

// JSONSummary contains the counters of a run
type JSONSummary struct {
	FilesScanned int `json:"files_scanned"`
	FilesFailed  int `json:"files_failed"`
	Rules        int `json:"rules"`
	SharedRules  int `json:"shared_rules"`
	TotalIssues  int `json:"total_issues"`
}

// JSONFile is the metadata of one compiled file. Objects keep source order.
type JSONFile struct {
	File       string     `json:"file"`
	Namespaces jsonObject `json:"namespaces"`
	Vars       jsonObject `json:"vars,omitempty"`
	Themes     jsonObject `json:"themes,omitempty"`
	Keyframes  jsonObject `json:"keyframes,omitempty"`
	Merges     jsonObject `json:"merges,omitempty"`
	Injections []string   `json:"injections,omitempty"`
}

// JSONIssue is one failure
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

// jsonObject marshals as an object with keys in insertion order
type jsonObject []jsonField

type jsonField struct {
	Key   string
	Value any
}

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// WriteJSON writes the metadata of result
func WriteJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

func buildJSONOutput(result *Result) JSONOutput {
	out := JSONOutput{
		Version: "1.0",
		Summary: JSONSummary{
			FilesScanned: result.Stats.FilesScanned,
			FilesFailed:  result.Stats.FilesFailed,
			Rules:        len(result.Rules),
			SharedRules:  result.Stats.DuplicateHits,
			TotalIssues:  len(result.Issues),
		},
		Files:  make([]JSONFile, 0, len(result.Units)),
		Issues: make([]JSONIssue, 0, len(result.Issues)),
	}

	for _, u := range result.Units {
		res := u.Result
		f := JSONFile{File: u.File, Namespaces: jsonObject{}, Injections: res.Injections}
		for el := res.Namespaces.Front(); el != nil; el = el.Next() {
			f.Namespaces = append(f.Namespaces, jsonField{el.Key, el.Value})
		}
		for _, g := range res.VarGroups {
			f.Vars = append(f.Vars, jsonField{g.Name, g})
		}
		for _, t := range res.Themes {
			f.Themes = append(f.Themes, jsonField{t.Name, t.Object()})
		}
		for el := res.Animations.Front(); el != nil; el = el.Next() {
			f.Keyframes = append(f.Keyframes, jsonField{el.Key, el.Value})
		}
		for _, m := range u.Merges {
			f.Merges = append(f.Merges, jsonField{m.Name, m})
		}
		out.Files = append(out.Files, f)
	}

	for _, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		out.Issues = append(out.Issues, JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Code:     issue.Code,
			Message:  issue.Text,
			Source:   source,
		})
	}
	return out
}
