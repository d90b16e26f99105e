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
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gocontact/contact"
	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/mesh/readers"
	"github.com/notargets/gocontact/utils"
)

var criteriaKeys = []struct {
	flag, key, usage string
	value            func(c contact.Criteria) float64
}{
	{"maxGap", "criteria.max_gap_distance", "largest gap between faces in contact",
		func(c contact.Criteria) float64 { return c.MaxGapDistance }},
	{"maxPenetration", "criteria.max_penetration", "largest overlap between faces in contact",
		func(c contact.Criteria) float64 { return c.MaxPenetration }},
	{"maxAngle", "criteria.max_normal_angle", "largest deviation in degrees from opposed normals",
		func(c contact.Criteria) float64 { return c.MaxNormalAngle }},
	{"searchMultiplier", "criteria.search_radius_multiplier", "search radius as a multiple of the face size",
		func(c contact.Criteria) float64 { return c.SearchRadiusMultiplier }},
}

func addCriteriaFlags(cmd *cobra.Command) {
	def := contact.DefaultCriteria()
	for _, ck := range criteriaKeys {
		cmd.Flags().Float64(ck.flag, ck.value(def), ck.usage)
	}
}

// criteriaFromFlags binds the criteria flags of the running command, so a
// config file or GOCONTACT_CRITERIA_* variables fill what the command line omits
func criteriaFromFlags(cmd *cobra.Command) (c contact.Criteria, err error) {
	var v [4]float64
	for i, ck := range criteriaKeys {
		if err = viper.BindPFlag(ck.key, cmd.Flags().Lookup(ck.flag)); err != nil {
			return
		}
		v[i] = viper.GetFloat64(ck.key)
	}
	return contact.NewCriteria(v[0], v[1], v[2], v[3])
}

func addSurfaceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("mergeAngle", mesh.DefaultMergeAngle, "largest angle in degrees between a face and its patch seed")
}

func surfaceOptions(cmd *cobra.Command) (opts mesh.SurfaceOptions) {
	opts = mesh.DefaultSurfaceOptions()
	if cmd.Flags().Lookup("mergeAngle") != nil {
		opts.MergeAngle, _ = cmd.Flags().GetFloat64("mergeAngle")
	}
	opts.NumWorkers = viper.GetInt("workers")
	opts.Verbose = viper.GetBool("verbose")
	return
}

func detectorOptions() (opts contact.DetectorOptions) {
	opts = contact.DefaultDetectorOptions()
	opts.NumWorkers = viper.GetInt("workers")
	opts.Verbose = viper.GetBool("verbose")
	return
}

func readMesh(fileName string) (m *mesh.Mesh, err error) {
	if viper.GetBool("verbose") {
		log.Printf("Reading mesh file %s\n", fileName)
	}
	if m, err = readers.ReadMeshFile(fileName); err != nil {
		return
	}
	if viper.GetBool("verbose") {
		log.Printf("Read %d nodes, %d elements in %d blocks, %s\n",
			m.NumVertices(), m.NumElements(), len(m.ElementBlocks), utils.MemUsage())
	}
	return
}

// namedSurfaces finds surfaces by name, block names first, then patch names
func namedSurfaces(m *mesh.Mesh, opts mesh.SurfaceOptions, names ...string) (found []*mesh.SurfaceMesh, err error) {
	var (
		blocks, patches []*mesh.SurfaceMesh
	)
	opts.Segment = false
	if blocks, err = mesh.ExtractSurfaces(m, opts); err != nil {
		return
	}
	for _, name := range names {
		if s, ok := mesh.FindSurface(blocks, name); ok {
			found = append(found, s)
			continue
		}
		if patches == nil {
			opts.Segment = true
			if patches, err = mesh.ExtractSurfaces(m, opts); err != nil {
				return
			}
		}
		s, ok := mesh.FindSurface(patches, name)
		if !ok {
			return nil, fmt.Errorf("surface %s not found, blocks are: %s", name, surfaceNames(blocks))
		}
		found = append(found, s)
	}
	return
}

func surfaceNames(surfaces []*mesh.SurfaceMesh) string {
	names := make([]string, len(surfaces))
	for i, s := range surfaces {
		names[i] = s.Name
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
