package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"billbox/internal/config"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

const documentTextDetection = "DOCUMENT_TEXT_DETECTION"

// visionExtractor runs document text detection through the Google Vision
// images:annotate endpoint.
type visionExtractor struct {
	service *vision.Service
}

// NewVisionExtractor creates a DocumentTextExtractor backed by the Vision API
func NewVisionExtractor(ctx context.Context, cfg config.ExtractionConfig) (DocumentTextExtractor, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	service, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}

	return &visionExtractor{service: service}, nil
}

// ExtractDocumentText annotates the image and returns the recognized text,
// line breaks preserved.
func (v *visionExtractor) ExtractDocumentText(ctx context.Context, image []byte) (string, error) {
	request := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image: &vision.Image{
					Content: base64.StdEncoding.EncodeToString(image),
				},
				Features: []*vision.Feature{
					{Type: documentTextDetection},
				},
			},
		},
	}

	response, err := v.service.Images.Annotate(request).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("vision annotate call failed: %w", err)
	}
	if len(response.Responses) == 0 {
		return "", fmt.Errorf("vision annotate returned no responses")
	}

	annotation := response.Responses[0]
	if annotation.Error != nil {
		return "", fmt.Errorf("vision annotate error: %s", annotation.Error.Message)
	}
	if annotation.FullTextAnnotation == nil {
		return "", nil
	}

	return annotation.FullTextAnnotation.Text, nil
}
