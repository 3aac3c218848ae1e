// Version command for the registro CLI.
package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if flagJSON {
			fmt.Printf(`{"version":%q,"go":%q,"platform":%q}%s`,
				appVersion, runtime.Version(), runtime.GOOS+"/"+runtime.GOARCH, "\n")
			return
		}
		fmt.Printf("registro %s (%s, %s/%s)\n",
			appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
