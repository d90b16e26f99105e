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
	"github.com/spf13/viper"

	"github.com/notargets/gocontact/InputParameters"
	"github.com/notargets/gocontact/contact"
	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/report"
)

// AnalyzeCmd represents the analyze command
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze [FILE]",
	Short: "Find contact for a batch of named surface pairs",
	Long: `
Runs the named pair search for every pair listed in an analysis file, or on a
mesh FILE for pairs given as "A:B,C:D", writing one report per pair,

gocontact analyze -I analysis.yaml
gocontact analyze mesh.neu --pairs Block_1:Block_2 -o results`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ap *InputParameters.AnalysisParameters
			m  *mesh.Mesh
		)
		if ap, err = analysisParameters(cmd, args); err != nil {
			return
		}
		if viper.GetBool("verbose") {
			ap.Print()
		}
		if m, err = readMesh(ap.InputFile); err != nil {
			return
		}
		opts := surfaceOptions(cmd)
		if ap.MergeAngle != 0 {
			opts.MergeAngle = ap.MergeAngle
		}
		policy := contact.OneWay
		if ap.Symmetric {
			policy = contact.Symmetric
		}
		for i, pair := range ap.ContactPairs {
			var surfaces []*mesh.SurfaceMesh
			if surfaces, err = namedSurfaces(m, opts, pair.SurfaceA, pair.SurfaceB); err != nil {
				return fmt.Errorf("contact pair %d: %w", i+1, err)
			}
			outFile := pair.OutputFile
			if len(outFile) == 0 {
				outFile = report.PairFileName(pair.SurfaceA, pair.SurfaceB)
			}
			outFile = filepath.Join(ap.OutputDir, outFile)
			if _, err = runPair(ap.InputFile, surfaces[0], surfaces[1], ap.PairCriteria(i), policy, outFile); err != nil {
				return
			}
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(AnalyzeCmd)
	addCriteriaFlags(AnalyzeCmd)
	addSurfaceFlags(AnalyzeCmd)
	AnalyzeCmd.Flags().StringP("inputParametersFile", "I", "", "YAML analysis file naming the mesh and the pairs")
	AnalyzeCmd.Flags().StringP("pairs", "p", "", "surface pairs as A:B,C:D")
	AnalyzeCmd.Flags().StringP("outputDir", "o", ".", "directory for the reports")
	AnalyzeCmd.Flags().Bool("symmetric", false, "keep only pairs matched from both sides")
}

// analysisParameters reads the analysis file, or builds the parameters from
// the mesh argument and the pairs flag when no file is given
func analysisParameters(cmd *cobra.Command, args []string) (ap *InputParameters.AnalysisParameters, err error) {
	var (
		criteria contact.Criteria
	)
	ipFile, _ := cmd.Flags().GetString("inputParametersFile")
	if len(ipFile) != 0 {
		if ap, err = InputParameters.ReadAnalysisParameters(ipFile); err != nil {
			return
		}
		if len(args) == 1 {
			ap.InputFile = args[0]
		}
	} else {
		if len(args) == 0 {
			return nil, fmt.Errorf("must supply a mesh file or an analysis file (-I, --inputParametersFile)")
		}
		pairs, _ := cmd.Flags().GetString("pairs")
		if len(pairs) == 0 {
			return nil, fmt.Errorf("must supply surface pairs (-p, --pairs) as A:B,C:D")
		}
		if criteria, err = criteriaFromFlags(cmd); err != nil {
			return
		}
		ap = InputParameters.NewAnalysisParameters()
		ap.InputFile = args[0]
		ap.DefaultCriteria = criteria
		ap.OutputDir, _ = cmd.Flags().GetString("outputDir")
		if ap.ContactPairs, err = InputParameters.ParsePairsString(pairs); err != nil {
			return
		}
	}
	if sym, _ := cmd.Flags().GetBool("symmetric"); sym {
		ap.Symmetric = true
	}
	err = ap.Validate()
	return
}
