/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/report"
)

// SkinCmd represents the skin command
var SkinCmd = &cobra.Command{
	Use:   "skin FILE",
	Short: "Extract the boundary surface of every element block",
	Long: `
Extracts the boundary faces of each element block, optionally split into
coplanar patches, and writes a YAML summary of the surfaces,

gocontact skin mesh.neu --segment -o skin.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m        *mesh.Mesh
			surfaces []*mesh.SurfaceMesh
			opts     = surfaceOptions(cmd)
		)
		opts.Segment, _ = cmd.Flags().GetBool("segment")
		if m, err = readMesh(args[0]); err != nil {
			return
		}
		if surfaces, err = mesh.ExtractSurfaces(m, opts); err != nil {
			return
		}
		sr := report.NewSkinReport(args[0], surfaces, opts)
		sr.PrintSummary()
		if outFile, _ := cmd.Flags().GetString("output"); len(outFile) != 0 {
			err = sr.Write(outFile)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(SkinCmd)
	addSurfaceFlags(SkinCmd)
	SkinCmd.Flags().BoolP("segment", "s", false, "split each block skin into coplanar patches")
	SkinCmd.Flags().StringP("output", "o", "", "YAML file for the surface summary")
}
