package domain

// Config is the bracefix configuration loaded from bracefix.yaml.
// Defaults reproduce the one-off repair of hooks/study-context.tsx.
type Config struct {
	Target  string
	Check   CheckConfig
	Insert  InsertSpec
	Remove  RemoveSpec
	Journal JournalConfig
}

type CheckConfig struct {
	Range Range
}

type JournalConfig struct {
	Enabled bool
	Dir     string
}

// WorkspaceSpec describes where `bracefix init` writes its files.
type WorkspaceSpec struct {
	Root string
}

func DefaultConfig() Config {
	search := Range{From: 416, To: 420}
	before, after := InsertWindows(search)

	return Config{
		Target: "hooks/study-context.tsx",
		Check: CheckConfig{
			Range: Range{From: 400, To: 430},
		},
		Insert: InsertSpec{
			Anchor: "setSubjects(DEFAULT_SUBJECTS);",
			Search: search,
			Offset: 4,
			Text:   "        }",
			Guard:  "}",
			Before: before,
			After:  after,
		},
		Remove: RemoveSpec{
			Line:    420,
			Context: RemoveContext(420),
		},
		Journal: JournalConfig{
			Enabled: true,
			Dir:     ".bracefix/journal",
		},
	}
}
