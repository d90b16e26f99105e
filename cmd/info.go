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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gocontact/mesh"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Print mesh statistics",
	Long: `
Reads a mesh and prints its node, element, block and set counts along with the
number of boundary and interior faces,

gocontact info mesh.neu`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m   *mesh.Mesh
			bnd *mesh.Boundary
		)
		if m, err = readMesh(args[0]); err != nil {
			return
		}
		m.PrintStatistics()
		if bnd, err = mesh.ExtractBoundary(m, viper.GetBool("verbose")); err != nil {
			return
		}
		fmt.Printf("Faces: %d boundary, %d interior\n", bnd.NumBoundary, bnd.NumInterior)
		for b, faces := range bnd.Faces {
			fmt.Printf("\t%-24s %d boundary faces\n", m.ElementBlocks[b].Name, len(faces))
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
}
