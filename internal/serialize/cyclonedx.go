package serialize

import (
	"bytes"
	"fmt"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// RenderCycloneDX represents a language inventory as a CycloneDX SBOM:
// one "library" component per language, its code/line/token counts
// carried as properties. This is an inventory-flavored export, not a
// dependency SBOM -- export --format cyclonedx is for feeding the
// same receipt into supply-chain tooling that already consumes this
// format.
func RenderCycloneDX(report types.LangReport, toolName, toolVersion string) (string, error) {
	components := make([]cdx.Component, 0, len(report.Rows))
	for _, r := range report.Rows {
		components = append(components, cdx.Component{
			Type:    cdx.ComponentTypeLibrary,
			Name:    r.Key,
			Version: fmt.Sprintf("%d-lines", r.Lines),
			Properties: &[]cdx.Property{
				{Name: "tokmd:code", Value: fmt.Sprint(r.Code)},
				{Name: "tokmd:comments", Value: fmt.Sprint(r.Comments)},
				{Name: "tokmd:blanks", Value: fmt.Sprint(r.Blanks)},
				{Name: "tokmd:files", Value: fmt.Sprint(r.Files)},
				{Name: "tokmd:tokens", Value: fmt.Sprint(r.Tokens)},
			},
		})
	}

	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{
		Tools: &[]cdx.Tool{{Name: toolName, Version: toolVersion}},
	}
	bom.Components = &components

	var buf bytes.Buffer
	encoder := cdx.NewBOMEncoder(&buf, cdx.BOMFileFormatJSON)
	encoder.SetPretty(false)
	if err := encoder.Encode(bom); err != nil {
		return "", err
	}
	return buf.String(), nil
}
