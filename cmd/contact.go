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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/notargets/gocontact/contact"
	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/report"
	"github.com/notargets/gocontact/spatial"
)

// ContactCmd represents the contact command
var ContactCmd = &cobra.Command{
	Use:   "contact FILE",
	Short: "Find contact between two named surfaces",
	Long: `
Searches surface A (master) against surface B (slave). Surfaces are named by
block, or by patch as Block_1:patch_3,

gocontact contact mesh.neu -a Block_1 -b Block_2 --maxGap 0.01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m        *mesh.Mesh
			criteria contact.Criteria
			surfaces []*mesh.SurfaceMesh
			policy   = contact.OneWay
		)
		nameA, _ := cmd.Flags().GetString("surfaceA")
		nameB, _ := cmd.Flags().GetString("surfaceB")
		if len(nameA) == 0 || len(nameB) == 0 {
			return fmt.Errorf("must name both surfaces (-a, --surfaceA and -b, --surfaceB)")
		}
		if sym, _ := cmd.Flags().GetBool("symmetric"); sym {
			policy = contact.Symmetric
		}
		if criteria, err = criteriaFromFlags(cmd); err != nil {
			return
		}
		if m, err = readMesh(args[0]); err != nil {
			return
		}
		if surfaces, err = namedSurfaces(m, surfaceOptions(cmd), nameA, nameB); err != nil {
			return
		}
		outFile, _ := cmd.Flags().GetString("output")
		if len(outFile) == 0 {
			outFile = report.PairFileName(nameA, nameB)
		}
		_, err = runPair(args[0], surfaces[0], surfaces[1], criteria, policy, outFile)
		return
	},
}

func init() {
	rootCmd.AddCommand(ContactCmd)
	addCriteriaFlags(ContactCmd)
	addSurfaceFlags(ContactCmd)
	ContactCmd.Flags().StringP("surfaceA", "a", "", "master surface name")
	ContactCmd.Flags().StringP("surfaceB", "b", "", "slave surface name")
	ContactCmd.Flags().Bool("symmetric", false, "keep only pairs matched from both sides")
	ContactCmd.Flags().StringP("output", "o", "", "YAML report file, default contact_<A>_<B>.yaml")
}

// runPair detects contact between a and b, prints the metrics and writes a one
// pair report
func runPair(meshFile string, a, b *mesh.SurfaceMesh, criteria contact.Criteria,
	policy contact.MatchPolicy, outFile string) (cr *report.ContactReport, err error) {
	var (
		det    *contact.Detector
		indexA *spatial.Index
	)
	if det, err = contact.NewDetector(criteria, detectorOptions()); err != nil {
		return
	}
	if policy == contact.Symmetric {
		indexA = contact.NewSurfaceIndex(a)
	}
	res := det.Run(policy, a, b, indexA, contact.NewSurfaceIndex(b))
	contact.ComputePairMetrics(res, a, b).Print()
	cr = report.NewContactReport(meshFile, criteria, policy, 0)
	cr.AddContactPair(a, b, res)
	if err = cr.Write(outFile); err != nil {
		return
	}
	fmt.Printf("Wrote %s\n", filepath.Clean(outFile))
	return
}
