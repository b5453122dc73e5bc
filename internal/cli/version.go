package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agxtool/agx/internal/buildinfo"
)

type versionInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified,omitempty"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show agx version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("agx %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
		if info.Commit != "" {
			dirty := ""
			if info.Modified {
				dirty = " (modified)"
			}
			fmt.Printf("commit %s%s\n", info.Commit, dirty)
		}
		if info.CommitTime != "" {
			fmt.Printf("built %s\n", info.CommitTime)
		}
		return nil
	},
}

// currentVersionInfo prefers the ldflags-injected release values and fills
// the gaps from the binary's embedded build info, so go-installed and dev
// builds still report something useful.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    buildinfo.Version,
		Commit:     buildinfo.Commit,
		CommitTime: buildinfo.Date,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		if info.Commit == "" {
			info.Commit = vcsSetting(bi, "vcs.revision")
		}
		if info.CommitTime == "" {
			info.CommitTime = vcsSetting(bi, "vcs.time")
		}
		info.Modified = strings.EqualFold(vcsSetting(bi, "vcs.modified"), "true")
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
	}

	if info.Version == "" || info.Version == "(devel)" {
		info.Version = "devel"
	}
	return info
}

func vcsSetting(bi *debug.BuildInfo, key string) string {
	for _, setting := range bi.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
