package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running build.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	GoVersion string    `json:"go_version,omitempty"`
	BuildDate time.Time `json:"build_date,omitzero"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get returns the build information, filling unset ldflags values from
// the embedded VCS settings. BuildDate stays zero when neither source
// has one.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildDate.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short returns "<version>[-<commit>][-dirty]".
func Short() string {
	return Get().Short()
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns the short version followed by the build date, if known.
func (i Info) String() string {
	if i.BuildDate.IsZero() {
		return i.Short()
	}
	return fmt.Sprintf("%s (built %s)", i.Short(), i.BuildDate.UTC().Format(time.RFC3339))
}

// Fields renders the build as log fields.
func (i Info) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"build_version": i.Version,
		"release":       i.IsRelease,
	}
	if i.GitCommit != "" {
		fields["commit"] = i.GitCommit
	}
	if i.GoVersion != "" {
		fields["go_version"] = i.GoVersion
	}
	if !i.BuildDate.IsZero() {
		fields["build_date"] = i.BuildDate.UTC().Format(time.RFC3339)
	}
	return fields
}
