package output

// StatementInfo describes one divided statement.
type StatementInfo struct {
	Index  int    `json:"index" yaml:"index"`
	Title  string `json:"title" yaml:"title"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Lines  int    `json:"lines" yaml:"lines"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
	Query  string `json:"query,omitempty" yaml:"query,omitempty"`
}

// DivideSummary aggregates a divide run.
type DivideSummary struct {
	Statements int      `json:"statements" yaml:"statements"`
	Sources    int      `json:"sources" yaml:"sources"`
	Written    int      `json:"written" yaml:"written"`
	Invalid    int      `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	Duplicates []string `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// DivideOutput is the structured result of the divide command.
type DivideOutput struct {
	Input      string          `json:"input" yaml:"input"`
	Pattern    string          `json:"pattern" yaml:"pattern"`
	DryRun     bool            `json:"dry_run" yaml:"dry_run"`
	OutputDir  string          `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Manifest   string          `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Statements []StatementInfo `json:"statements" yaml:"statements"`
	Summary    DivideSummary   `json:"summary" yaml:"summary"`
}

// ListOutput is the structured result of the list command.
type ListOutput struct {
	Input      string          `json:"input" yaml:"input"`
	Pattern    string          `json:"pattern" yaml:"pattern"`
	Statements []StatementInfo `json:"statements" yaml:"statements"`
}

// PresetInfo describes a built-in title pattern.
type PresetInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Default     bool   `json:"default,omitempty" yaml:"default,omitempty"`
}
