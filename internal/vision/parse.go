package vision

import (
	"fmt"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/protobuf/encoding/protojson"
)

// parseAnnotateImageResponse reshapes a Vision API annotation response into
// an Analysis. Every section is populated; annotation types missing from the
// response yield empty slices or strings. The raw response is carried along
// in serialized form for downstream inspection.
func parseAnnotateImageResponse(resp *visionpb.AnnotateImageResponse) (*Analysis, error) {
	analysis := &Analysis{
		Labels:     []Label{},
		Objects:    []Object{},
		Properties: Properties{DominantColors: []ColorInfo{}},
	}

	if len(resp.TextAnnotations) > 0 {
		analysis.Text = resp.TextAnnotations[0].Description
	}

	for _, label := range resp.LabelAnnotations {
		analysis.Labels = append(analysis.Labels, Label{
			Description: label.Description,
			Score:       label.Score,
		})
	}

	for _, obj := range resp.LocalizedObjectAnnotations {
		o := Object{
			Name:         obj.Name,
			Score:        obj.Score,
			BoundingPoly: []Vertex{},
		}
		if obj.BoundingPoly != nil {
			for _, v := range obj.BoundingPoly.NormalizedVertices {
				o.BoundingPoly = append(o.BoundingPoly, Vertex{X: v.X, Y: v.Y})
			}
		}
		analysis.Objects = append(analysis.Objects, o)
	}

	if props := resp.ImagePropertiesAnnotation; props != nil && props.DominantColors != nil {
		for _, c := range props.DominantColors.Colors {
			if c.Color == nil {
				continue
			}
			analysis.Properties.DominantColors = append(analysis.Properties.DominantColors, ColorInfo{
				Color:         formatRGB(c.Color.Red, c.Color.Green, c.Color.Blue),
				Score:         c.Score,
				PixelFraction: c.PixelFraction,
			})
		}
	}

	raw, err := protojson.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response: %w", err)
	}
	analysis.Raw = raw

	return analysis, nil
}

// formatRGB renders a Vision color as a CSS-style rgb() string. The API
// reports channels as floats in the 0-255 range.
func formatRGB(r, g, b float32) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", int(r), int(g), int(b))
}
