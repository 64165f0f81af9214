package config

import (
	"os"
	"strconv"
)

const (
	geminiAPIKeyEnv           = "GEMINI_API_KEY"
	geminiBaseURLEnv          = "GEMINI_BASE_URL"
	optimizerModelEnv         = "OPTIMIZER_MODEL"
	optimizerTimeoutEnv       = "OPTIMIZER_TIMEOUT_SECONDS"
	confidenceThresholdEnv    = "OPTIMIZER_CONFIDENCE_THRESHOLD"
	defaultGeminiBaseURL      = "https://generativelanguage.googleapis.com"
	defaultOptimizerModel     = "gemini-1.5-flash"
	defaultOptimizerTimeout   = 30
	defaultConfidenceCutoff   = 0.8
	extractorModelEnv         = "EXTRACTOR_MODEL"
	extractorTimeoutEnv       = "EXTRACTOR_TIMEOUT_SECONDS"
	defaultExtractorModel     = "gemini-1.5-flash"
	defaultExtractorTimeout   = 30
	extractorMaxUploadBytes   = "EXTRACTOR_MAX_UPLOAD_BYTES"
	defaultExtractorMaxUpload = 10 << 20
)

// OptimizerConfig configures the optional AI schedule optimizer.
// The optimizer is an explicit, injected collaborator: when no API key
// is configured the orchestrator never escalates and runs fully local.
type OptimizerConfig struct {
	APIKey              string
	BaseURL             string
	Model               string
	TimeoutSeconds      int
	ConfidenceThreshold float64
}

// Enabled reports whether escalation to the optimizer is possible.
func (c *OptimizerConfig) Enabled() bool {
	return c != nil && c.APIKey != ""
}

func LoadOptimizerConfig() *OptimizerConfig {
	timeout := defaultOptimizerTimeout
	if v := os.Getenv(optimizerTimeoutEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	threshold := float64(defaultConfidenceCutoff)
	if v := os.Getenv(confidenceThresholdEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			threshold = parsed
		}
	}

	baseURL := os.Getenv(geminiBaseURLEnv)
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	model := os.Getenv(optimizerModelEnv)
	if model == "" {
		model = defaultOptimizerModel
	}

	return &OptimizerConfig{
		APIKey:              os.Getenv(geminiAPIKeyEnv),
		BaseURL:             baseURL,
		Model:               model,
		TimeoutSeconds:      timeout,
		ConfidenceThreshold: threshold,
	}
}

// ExtractorConfig configures the document extraction collaborator.
// It shares the text-generation credential with the optimizer.
type ExtractorConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	MaxUploadBytes int64
}

func (c *ExtractorConfig) Enabled() bool {
	return c != nil && c.APIKey != ""
}

func LoadExtractorConfig() *ExtractorConfig {
	baseURL := os.Getenv(geminiBaseURLEnv)
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	model := os.Getenv(extractorModelEnv)
	if model == "" {
		model = defaultExtractorModel
	}

	timeout := defaultExtractorTimeout
	if v := os.Getenv(extractorTimeoutEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	maxUpload := int64(defaultExtractorMaxUpload)
	if v := os.Getenv(extractorMaxUploadBytes); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			maxUpload = parsed
		}
	}

	return &ExtractorConfig{
		APIKey:         os.Getenv(geminiAPIKeyEnv),
		BaseURL:        baseURL,
		Model:          model,
		TimeoutSeconds: timeout,
		MaxUploadBytes: maxUpload,
	}
}
