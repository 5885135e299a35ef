package config

import "time"

// Wizard Constants
const (
	// MaxSearchResults caps how many assets one search returns
	MaxSearchResults = 12

	// ImageAssetCount is the required selection size for the image template
	ImageAssetCount = 1

	// VideoAssetCount is the required selection size for the single-clip video template
	VideoAssetCount = 1

	// DualVideoAssetCount is the required selection size for the dual-clip video template
	DualVideoAssetCount = 2

	// FallbackKeywordCount is how many shot-plan tokens seed the keyword fallback search
	FallbackKeywordCount = 5
)

// Planner Constants
const (
	// PlannerModel is the default Cohere chat model for plan generation
	PlannerModel = "command-r-plus"

	// DefaultShotSeconds backfills shot durations the model leaves unset
	DefaultShotSeconds = 5
)

// Render Polling Constants
const (
	// RenderPollInterval is the fixed period between render status checks
	RenderPollInterval = 3 * time.Second

	// PreviewPollCap bounds the regeneration preview poll (~30s at one check per second)
	PreviewPollCap = 30

	// PreviewPollInterval is the period between preview status checks
	PreviewPollInterval = 1 * time.Second
)

// Local Render Constants
const (
	// VideoWidth is the output video width (9:16 aspect ratio)
	VideoWidth = 1080

	// VideoHeight is the output video height (9:16 aspect ratio)
	VideoHeight = 1920

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// RenderOutputDir is the directory for locally rendered media
	RenderOutputDir = "output"

	// ImageClipSeconds is how long a still image is held on screen
	ImageClipSeconds = 6

	// SubtitleFontSize is the burned-in caption font size
	SubtitleFontSize = 18

	// SubtitleMaxWordsLine caps words per burned-in caption line
	SubtitleMaxWordsLine = 6
)

// Cache Constants
const (
	// SearchCacheTTL is how long cached search results stay valid
	SearchCacheTTL = 15 * time.Minute
)

// Topic Suggestion Constants
const (
	// MaxSuggestedTopics caps how many topic suggestions one feed pass yields
	MaxSuggestedTopics = 5

	// TopicExcerptLength bounds the extracted article text kept per suggestion
	TopicExcerptLength = 400
)
