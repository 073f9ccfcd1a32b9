package command

// Options carries the global flags every Command Surface invocation is
// threaded through (§4.4: "--dry-run", "--json", "--force" registered on
// the cobra root command).
type Options struct {
	DryRun bool
	JSON   bool
	Force  bool
}
