package types

// ProjectSettings are applied once, at finalization.
type ProjectSettings struct {
	CRS        string `yaml:"crs"`
	OutputPath string `yaml:"output_path"`
	Title      string `yaml:"title,omitempty"`
}

// InsertionOutcome records the single insertion attempt made for one file.
type InsertionOutcome struct {
	Sequence int                 `yaml:"sequence"`
	File     LayerDefinitionFile `yaml:"file"`
	Status   OutcomeStatus       `yaml:"status"`
	Kind     FailureKind         `yaml:"kind,omitempty"`
	Error    string              `yaml:"error,omitempty"`
	LayerIDs []string            `yaml:"layer_ids,omitempty"`
}

func (o InsertionOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// RunFailure is a run-level failure. Notices reuse it for non-fatal
// conditions such as an empty source directory.
type RunFailure struct {
	Kind    FailureKind `yaml:"kind"`
	Message string      `yaml:"message"`
}

// RunReport is the audit trail of one pipeline run. File-level failures live
// in Outcomes; a run-level failure lives in Fatal.
type RunReport struct {
	Source    string                `yaml:"source"`
	DryRun    bool                  `yaml:"dry_run"`
	Settings  ProjectSettings       `yaml:"settings"`
	Planned   []LayerDefinitionFile `yaml:"planned,omitempty"`
	Outcomes  []InsertionOutcome    `yaml:"outcomes"`
	Notices   []RunFailure          `yaml:"notices,omitempty"`
	Fatal     *RunFailure           `yaml:"fatal,omitempty"`
	Persisted bool                  `yaml:"persisted"`
}

func (r RunReport) Succeeded() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Succeeded() {
			count++
		}
	}
	return count
}

func (r RunReport) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

func (r RunReport) Failures() []InsertionOutcome {
	var failures []InsertionOutcome
	for _, outcome := range r.Outcomes {
		if !outcome.Succeeded() {
			failures = append(failures, outcome)
		}
	}
	return failures
}

// OK reports whether the run completed without a run-level failure. A run
// can be OK and still contain file-level failures; see Partial.
func (r RunReport) OK() bool {
	return r.Fatal == nil
}

func (r RunReport) Partial() bool {
	return r.OK() && r.Failed() > 0
}

func (r RunReport) HasNotice(kind FailureKind) bool {
	for _, notice := range r.Notices {
		if notice.Kind == kind {
			return true
		}
	}
	return false
}
