// Package validate checks API input before it reaches the pipeline.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
)

// String length limits
const (
	MaxURLLength         = 2048
	MaxTitleLength       = 512
	MaxCategoryLength    = 256
	MaxDescriptionLength = 64 * 1024
	MaxFeatures          = 1000
)

// String validates a string field with length and content checks
func String(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// URL validates an absolute http(s) URL
func URL(value, fieldName string, required bool) error {
	if err := String(value, fieldName, 1, MaxURLLength, required); err != nil || value == "" {
		return err
	}

	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL", fieldName)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", fieldName)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", fieldName)
	}
	return nil
}

// Origin validates a scheme://host value with no path
func Origin(value, fieldName string) error {
	if err := URL(value, fieldName, false); err != nil || value == "" {
		return err
	}
	u, _ := url.Parse(value)
	if strings.Trim(u.Path, "/") != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%s must be scheme://host only", fieldName)
	}
	return nil
}

// Notes validates a posted release-notes document
func Notes(rn *notes.ReleaseNotes) error {
	if len(rn.Features) > MaxFeatures {
		return fmt.Errorf("features must not exceed %d entries", MaxFeatures)
	}
	for i, f := range rn.Features {
		field := fmt.Sprintf("features[%d]", i)
		if err := String(f.Title, field+".title", 1, MaxTitleLength, true); err != nil {
			return err
		}
		if err := String(f.Category, field+".category", 1, MaxCategoryLength, true); err != nil {
			return err
		}
		if err := String(f.Description, field+".description", 0, MaxDescriptionLength, false); err != nil {
			return err
		}
	}
	return nil
}
