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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/notargets/gocontact/contact"
	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/report"
)

// AutoContactCmd represents the autoContact command
var AutoContactCmd = &cobra.Command{
	Use:   "autoContact FILE",
	Short: "Find every pair of surface patches in contact",
	Long: `
Splits every block skin into coplanar patches and searches all patch pairs of
different blocks, reporting those with at least min-pairs face pairs,

gocontact autoContact mesh.neu --min-pairs 10 -o contact_pairs.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m        *mesh.Mesh
			surfaces []*mesh.SurfaceMesh
			found    []contact.SurfacePairResult
			criteria contact.Criteria
			opts     = contact.DefaultAutoContactOptions()
		)
		if opts.MinPairs, err = cmd.Flags().GetInt("min-pairs"); err != nil {
			return
		}
		if sym, _ := cmd.Flags().GetBool("symmetric"); sym {
			opts.Policy = contact.Symmetric
		}
		noBroad, _ := cmd.Flags().GetBool("noBroadPhase")
		opts.BroadPhase = !noBroad
		opts.Detector = detectorOptions()
		surfOpts := surfaceOptions(cmd)
		surfOpts.Segment = true
		if criteria, err = criteriaFromFlags(cmd); err != nil {
			return
		}
		if m, err = readMesh(args[0]); err != nil {
			return
		}
		if surfaces, err = mesh.ExtractSurfaces(m, surfOpts); err != nil {
			return
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		found, err = contact.AutoContact(ctx, surfaces, criteria, opts)
		cr := report.NewContactReport(args[0], criteria, opts.Policy, opts.MinPairs)
		for _, r := range found {
			cr.AddContactPair(surfaces[r.I], surfaces[r.J], r.Results)
		}
		cr.PrintSummary()
		if err != nil {
			// Interrupted, keep what was found
			fmt.Printf("Search stopped early: %v\n", err)
		}
		outFile, _ := cmd.Flags().GetString("output")
		if werr := cr.Write(outFile); werr != nil {
			return werr
		}
		fmt.Printf("Wrote %s\n", outFile)
		return
	},
}

func init() {
	rootCmd.AddCommand(AutoContactCmd)
	addCriteriaFlags(AutoContactCmd)
	addSurfaceFlags(AutoContactCmd)
	AutoContactCmd.Flags().Int("min-pairs", 1, "least number of face pairs for a surface pair to be reported")
	AutoContactCmd.Flags().Bool("symmetric", false, "keep only pairs matched from both sides")
	AutoContactCmd.Flags().Bool("noBroadPhase", false, "search every surface pair regardless of bounding boxes")
	AutoContactCmd.Flags().StringP("output", "o", "contact_pairs.yaml", "YAML report file")
}
