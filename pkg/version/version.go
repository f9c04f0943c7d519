// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X github.com/go-arcade/treemenu/pkg/version.Version=..."
var (
	Version   = "dev"
	GitBranch = ""
	GitCommit = ""
	BuildTime = ""
)

var short bool

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := GetVersion()
		if short {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		}
		out, err := info.Json()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	VersionCmd.Flags().BoolVarP(&short, "short", "s", false, "print a single line")
}

type Info struct {
	Version   string `json:"version"`
	GitBranch string `json:"gitBranch"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

func GetVersion() *Info {
	return &Info{
		Version:   Version,
		GitBranch: GitBranch,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (v *Info) Json() (json.RawMessage, error) {
	return json.MarshalIndent(v, "", "  ")
}

// String is the one-line form, e.g. "dev (main@1a2b3c4, go1.25.6 linux/amd64)".
func (v *Info) String() string {
	rev := v.GitCommit
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if v.GitBranch != "" {
		rev = v.GitBranch + "@" + rev
	}
	if rev == "" {
		return fmt.Sprintf("%s (%s %s)", v.Version, v.GoVersion, v.Platform)
	}
	return fmt.Sprintf("%s (%s, %s %s)", v.Version, rev, v.GoVersion, v.Platform)
}
