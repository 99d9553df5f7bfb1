package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Both
	// sources serve browser-oriented HTML, so the default is a browser
	// string rather than a tool identifier.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps results per term per adapter. Applied after
	// parsing so the source's relevance ordering is preserved.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Delay is the courtesy pause after each search request. Fixed,
	// not adaptive.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// GovDelay is the pause after each government-database request,
	// which tolerates less traffic than the search engine.
	GovDelay time.Duration `json:"gov_delay" yaml:"gov_delay"`

	// GovTermLimit caps how many search terms are sent to the
	// government database (the full vocabulary goes to the search
	// engine; only the leading terms go to PatFT).
	GovTermLimit int `json:"gov_term_limit" yaml:"gov_term_limit"`
}

// DetailConfig holds settings for the detail-fetch stage.
type DetailConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the courtesy pause after each detail-page fetch.
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// SinkConfig holds settings for the corpus sink.
type SinkConfig struct {
	// OutputDir is the corpus output directory. Inability to create it
	// is the one fatal error in the pipeline.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// FilePrefix names the per-record files: {prefix}_{id}.json,
	// {prefix}_{id}.txt, {prefix}s_corpus.jsonl, {prefix}s_index.csv.
	FilePrefix string `json:"file_prefix" yaml:"file_prefix"`

	// Catalog enables the best-effort SQLite catalog alongside the
	// file outputs.
	Catalog bool `json:"catalog" yaml:"catalog"`
}

// PipelineConfig groups all stage configurations plus the search
// vocabulary for a run.
type PipelineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Detail DetailConfig `json:"detail" yaml:"detail"`
	Sink   SinkConfig   `json:"sink" yaml:"sink"`

	// Terms is the topical search vocabulary.
	Terms []string `json:"terms" yaml:"terms"`

	// Classifications lists CPC classification codes searched as
	// structured terms on the government database.
	Classifications []string `json:"classifications" yaml:"classifications"`
}

// Defaults used when the config file and flags leave values unset.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultSearchDelay  = 2 * time.Second
	DefaultGovDelay     = 3 * time.Second
	DefaultDetailDelay  = 1 * time.Second
	DefaultMaxResults   = 20
	DefaultGovTermLimit = 10
	DefaultOutputDir    = "data/corpus"
	DefaultFilePrefix   = "cannabis_patent"
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// DefaultClassifications lists the CPC codes for cannabis/pharmaceutical art.
var DefaultClassifications = []string{
	"A61K31/05",   // cannabis compounds
	"A61K36/185",  // cannabis preparations
	"C07D311/58",  // cannabinoid chemistry
	"A23L33/105",  // cannabis food products
	"A61P25/30",   // neurological treatments
	"C12N15/8271", // genetic engineering
	"A01H5/00",    // cultivation
	"B01D11/02",   // extraction
}

// DefaultTerms is the full topical vocabulary: basic terms, compounds,
// terpenes, processes, products, medical uses, and testing.
var DefaultTerms = []string{
	"cannabis", "marijuana", "marihuana", "hemp", "cannabinoid",
	"tetrahydrocannabinol", "THC", "delta-9-THC", "delta-8-THC",
	"cannabidiol", "CBD", "cannabigerol", "CBG", "cannabinol", "CBN",
	"cannabichromene", "CBC", "tetrahydrocannabivarin", "THCV",
	"cannabidivarin", "CBDV", "cannabigerolic acid", "CBGA",
	"myrcene", "limonene", "pinene", "linalool", "caryophyllene",
	"humulene", "terpinolene", "ocimene", "bisabolol",
	"cannabis extraction", "cannabis cultivation", "cannabis processing",
	"cannabis purification", "cannabis distillation", "cannabis isolation",
	"supercritical CO2 extraction", "butane extraction", "ethanol extraction",
	"cannabis oil", "cannabis concentrate", "cannabis edible", "cannabis topical",
	"cannabis vaporizer", "cannabis delivery system", "cannabis capsule",
	"cannabis tincture", "cannabis patch", "cannabis inhaler",
	"medical marijuana", "medical cannabis", "therapeutic cannabis",
	"cannabis treatment", "cannabis therapy", "cannabis medicine",
	"cannabis testing", "cannabis analysis", "cannabis potency",
	"cannabis contamination", "cannabis quality control",
}

// DefaultPipelineConfig returns a PipelineConfig with every field set to
// its default.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig:   HTTPConfig{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent},
			MaxResults:   DefaultMaxResults,
			Delay:        DefaultSearchDelay,
			GovDelay:     DefaultGovDelay,
			GovTermLimit: DefaultGovTermLimit,
		},
		Detail: DetailConfig{
			HTTPConfig: HTTPConfig{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent},
			Delay:      DefaultDetailDelay,
		},
		Sink: SinkConfig{
			OutputDir:  DefaultOutputDir,
			FilePrefix: DefaultFilePrefix,
			Catalog:    true,
		},
		Terms:           DefaultTerms,
		Classifications: DefaultClassifications,
	}
}
