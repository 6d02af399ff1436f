package pipeline

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names, in execution order.
const (
	StageCleanOutput      StageName = "clean_output"
	StageBundle           StageName = "bundle"
	StageCopyStatic       StageName = "copy_static"
	StageStampVersion     StageName = "stamp_version"
	StageSanitizeManifest StageName = "sanitize_manifest"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
