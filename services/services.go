package services

import (
	"campus-sos-be/config"

	"github.com/rs/zerolog/log"
)

// Uploader and Validator are the external collaborators. Either may be
// nil when not configured; callers must check before use.
var (
	Uploader  *ImageUploader
	Validator *ContentValidator
)

// Init wires the external collaborators from configuration.
func Init() error {
	if config.App.CloudinaryURL != "" {
		up, err := NewImageUploader(config.App.CloudinaryURL)
		if err != nil {
			return err
		}
		Uploader = up
		log.Info().Msg("image uploader configured")
	} else {
		log.Warn().Msg("CLOUDINARY_URL not set; image uploads disabled")
	}

	if config.App.ValidatorURL != "" {
		Validator = NewContentValidator(config.App.ValidatorURL)
		log.Info().Str("url", config.App.ValidatorURL).Msg("content validator configured")
	} else {
		log.Warn().Msg("VALIDATOR_URL not set; content validation disabled")
	}

	return nil
}
