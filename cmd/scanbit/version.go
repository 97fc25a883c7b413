package scanbit

import (
	"fmt"
	"runtime/debug"

	semver "github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the scanbit version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ver, rev := buildVersion()
			if rev != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "scanbit %s (%s)\n", ver, rev)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanbit %s\n", ver)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

// buildVersion parses the version (tolerating a leading v) and reads the vcs
// revision from build info when present.
func buildVersion() (semver.Version, string) {
	ver, err := semver.ParseTolerant(version)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	var rev string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				rev = s.Value
			}
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return ver, rev
}
