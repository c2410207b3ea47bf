package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ListingConfig holds settings for the listing scrape stage.
type ListingConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the recent-listing page to scrape
	// (default "https://arxiv.org/list/cs.LG/recent").
	URL string `json:"url" yaml:"url"`

	// DefaultCategory is used when an entry carries no subject tags
	// (default "cs.LG").
	DefaultCategory string `json:"default_category" yaml:"default_category"`
}

// FetchConfig holds settings for the PDF download and text extraction stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`
}

// SummarizeConfig holds settings for the summarization stage.
type SummarizeConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the Azure OpenAI resource endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey authenticates against the endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Deployment is the model deployment name (default "gpt-4o").
	Deployment string `json:"deployment" yaml:"deployment"`

	// APIVersion is the service API version (default "2023-05-15").
	APIVersion string `json:"api_version" yaml:"api_version"`

	// MaxContentLen bounds how many characters of extracted text are sent
	// with one request (default 8000). Longer papers are truncated.
	MaxContentLen int `json:"max_content_len" yaml:"max_content_len"`
}

// StoreConfig holds settings for the summary object store.
type StoreConfig struct {
	// Endpoint is the S3-compatible endpoint host (e.g. "s3.example.com:9000").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// AccessKey and SecretKey authenticate against the endpoint.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`

	// UseSSL selects https transport.
	UseSSL bool `json:"use_ssl" yaml:"use_ssl"`

	// Bucket is the container for summary objects (default "paper-summaries").
	// It is created on startup if absent.
	Bucket string `json:"bucket" yaml:"bucket"`
}

// ServeConfig holds settings for the read-only web surface.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout and WriteTimeout bound each served request.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// AllowedOrigins configures CORS for the JSON API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// PipelineConfig groups all stage configurations for one ingestion run.
type PipelineConfig struct {
	Listing   ListingConfig   `json:"listing" yaml:"listing"`
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Summarize SummarizeConfig `json:"summarize" yaml:"summarize"`
	Store     StoreConfig     `json:"store" yaml:"store"`

	// OutputDir receives the local summaries_{date}.json debug artifact.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MetadataDir, when set, receives one YAML metadata record per stored
	// paper.
	MetadataDir string `json:"metadata_dir" yaml:"metadata_dir"`
}
