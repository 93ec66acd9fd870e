package domain

// Stage is one of the six named phases of a build.
type Stage string

const (
	StagePre     Stage = "pre"
	StageAapt    Stage = "aapt"
	StageCompile Stage = "compile"
	StageDex     Stage = "dex"
	StageBundle  Stage = "bundle"
	StagePost    Stage = "post"
)

// Stages is the fixed, ordered stage pipeline. A subset may be selected by
// subcommand; stages run strictly in this order.
var Stages = []Stage{StagePre, StageAapt, StageCompile, StageDex, StageBundle, StagePost}

// StageIndex returns the position of a stage in Stages, or -1 if unknown.
func StageIndex(s Stage) int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// StageEntry is one plugin's participation in a stage.
type StageEntry struct {
	File    string   `toml:"file"`
	Priority int      `toml:"priority"`
	Inputs  []string `toml:"inputs,omitempty"`
	Outputs []string `toml:"outputs,omitempty"`
	Unsafe  bool     `toml:"unsafe,omitempty"`
}

// InitEntry describes a plugin's init-mode entry point.
type InitEntry struct {
	File      string `toml:"file"`
	Templates string `toml:"templates,omitempty"` // default "templates/*"
}

// Repository is a named additional resolver/repository endpoint declared by
// a plugin manifest's [[repository]] array or a project file's resolvers.
type Repository struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// PluginManifest is the decoded form of plugin.toml.
type PluginManifest struct {
	Name    string            `toml:"name"`
	Version string            `toml:"version"`
	Author  string            `toml:"author,omitempty"`
	Unsafe  bool              `toml:"unsafe,omitempty"`
	Stage   map[string]StageEntry `toml:"stage,omitempty"`
	SDK     map[string]SDKRef `toml:"sdk,omitempty"`
	Init    *InitEntry        `toml:"init,omitempty"`
	Repository []Repository   `toml:"repository,omitempty"`
}

// PluginTask is one (plugin, stage) pair scheduled by the driver.
type PluginTask struct {
	PluginName string
	PluginRoot string
	Stage      Stage
	ScriptPath string
	Priority   int
	Inputs     []string
	Outputs    []string
	Unsafe     bool
}
