package InputParameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gocontact/contact"
)

// PairParameters names two surfaces to check for contact. A nil Criteria
// takes the file's DefaultCriteria.
type PairParameters struct {
	SurfaceA   string            `json:"surface_a"`
	SurfaceB   string            `json:"surface_b"`
	Criteria   *contact.Criteria `json:"criteria,omitempty"`
	OutputFile string            `json:"output_file,omitempty"`
}

// Parameters obtained from the YAML (or JSON) analysis file
type AnalysisParameters struct {
	InputFile       string           `json:"input_file"`
	OutputDir       string           `json:"output_dir"`
	MergeAngle      float64          `json:"merge_angle,omitempty"`
	Symmetric       bool             `json:"symmetric,omitempty"`
	DefaultCriteria contact.Criteria `json:"default_criteria"`
	ContactPairs    []PairParameters `json:"contact_pairs"`
}

func NewAnalysisParameters() *AnalysisParameters {
	return &AnalysisParameters{
		OutputDir:       ".",
		DefaultCriteria: contact.DefaultCriteria(),
	}
}

// Parse fills ap from data, fields absent from data keep their current values
func (ap *AnalysisParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ap)
}

func ReadAnalysisParameters(fileName string) (ap *AnalysisParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ap = NewAnalysisParameters()
	if err = ap.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse analysis file %s: %w", fileName, err)
	}
	if err = ap.Validate(); err != nil {
		return nil, fmt.Errorf("analysis file %s: %w", fileName, err)
	}
	return
}

func (ap *AnalysisParameters) Validate() (err error) {
	if len(ap.InputFile) == 0 {
		return fmt.Errorf("missing input file")
	}
	if ap.MergeAngle < 0 || ap.MergeAngle > 180 {
		return fmt.Errorf("merge angle must be in [0, 180] degrees, have %g", ap.MergeAngle)
	}
	if err = ap.DefaultCriteria.Validate(); err != nil {
		return
	}
	if len(ap.ContactPairs) == 0 {
		return fmt.Errorf("no contact pairs")
	}
	for i, pair := range ap.ContactPairs {
		if len(pair.SurfaceA) == 0 || len(pair.SurfaceB) == 0 {
			return fmt.Errorf("contact pair %d: both surfaces must be named", i+1)
		}
		if pair.SurfaceA == pair.SurfaceB {
			return fmt.Errorf("contact pair %d: surface %s paired with itself", i+1, pair.SurfaceA)
		}
		if pair.Criteria != nil {
			if err = pair.Criteria.Validate(); err != nil {
				return fmt.Errorf("contact pair %d: %w", i+1, err)
			}
		}
	}
	return
}

func (ap *AnalysisParameters) PairCriteria(i int) contact.Criteria {
	if c := ap.ContactPairs[i].Criteria; c != nil {
		return *c
	}
	return ap.DefaultCriteria
}

// ParsePairsString reads "A:B,C:D" into pairs using the default criteria
func ParsePairsString(pairs string) (pp []PairParameters, err error) {
	for _, pair := range strings.Split(pairs, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			// Patch names carry a colon, "Block_1:patch_2:Block_2:patch_1" splits in the middle
			if len(parts) == 4 {
				parts = []string{parts[0] + ":" + parts[1], parts[2] + ":" + parts[3]}
			} else {
				return nil, fmt.Errorf("invalid pair format: '%s', expected 'PartA:PartB'", pair)
			}
		}
		a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if len(a) == 0 || len(b) == 0 {
			return nil, fmt.Errorf("invalid pair format: '%s', expected 'PartA:PartB'", pair)
		}
		pp = append(pp, PairParameters{SurfaceA: a, SurfaceB: b})
	}
	return
}

func (ap *AnalysisParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Input File\n", ap.InputFile)
	fmt.Printf("\"%s\"\t\t= Output Directory\n", ap.OutputDir)
	if ap.MergeAngle != 0 {
		fmt.Printf("%8.5f\t\t= Merge Angle\n", ap.MergeAngle)
	}
	ap.DefaultCriteria.Print()
	for i, pair := range ap.ContactPairs {
		fmt.Printf("Pair[%d] = %s <-> %s", i+1, pair.SurfaceA, pair.SurfaceB)
		if pair.Criteria != nil {
			fmt.Printf(" %+v", *pair.Criteria)
		}
		fmt.Printf("\n")
	}
}
