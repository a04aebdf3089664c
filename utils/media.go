package utils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"lms/config"
	"lms/models"

	"github.com/go-resty/resty/v2"
)

// Media providers recognized by the resolver
const (
	ProviderUploadedAsset = "uploaded-asset"
	ProviderYouTube       = "youtube"
	ProviderVimeo         = "vimeo"
	ProviderExternalOther = "external-other"
)

// PlaceholderDurationMinutes is assigned when no duration can be resolved
const PlaceholderDurationMinutes = 5

// MediaResolution is the result of classifying a lesson's media reference
// and resolving its duration. Warning is set when the lookup degraded to the
// placeholder; it never blocks the caller.
type MediaResolution struct {
	Provider        string `json:"provider"`
	DurationMinutes int    `json:"duration_minutes"`
	Raw             string `json:"raw"`
	Warning         string `json:"warning,omitempty"`
}

// Known YouTube URL shapes, all carrying an 11-character video ID
var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`watch\?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`embed/([A-Za-z0-9_-]{11})`),
}

// ClassifyMediaReference inspects a reference string for provider-identifying
// substrings. Best-effort heuristic, not a strict URL parse.
func ClassifyMediaReference(reference string) string {
	ref := strings.TrimSpace(strings.ToLower(reference))

	if strings.Contains(ref, "youtube.com") || strings.Contains(ref, "youtu.be") {
		return ProviderYouTube
	}
	if strings.Contains(ref, "vimeo.com") {
		return ProviderVimeo
	}
	// Asset handles are bare public IDs or URLs served from our upload dir
	if !strings.Contains(ref, "://") || strings.Contains(ref, "/uploads/") {
		return ProviderUploadedAsset
	}
	return ProviderExternalOther
}

// ExtractYouTubeID pulls the 11-character video ID out of a YouTube URL.
// Returns an empty string when no known shape matches.
func ExtractYouTubeID(reference string) string {
	for _, pattern := range youtubeIDPatterns {
		if m := pattern.FindStringSubmatch(reference); m != nil {
			return m[1]
		}
	}
	return ""
}

// MinutesFromSeconds converts a duration to whole minutes with a floor of 1.
// One policy for every provider.
func MinutesFromSeconds(seconds int) int {
	minutes := int(math.Round(float64(seconds) / 60.0))
	if minutes < 1 {
		return 1
	}
	return minutes
}

type durationLookupResponse struct {
	DurationSeconds int `json:"duration_seconds"`
}

func durationClient() *resty.Client {
	timeout := 4
	if config.AppConfig != nil && config.AppConfig.DurationTimeoutSec > 0 {
		timeout = config.AppConfig.DurationTimeoutSec
	}
	return resty.New().SetTimeout(time.Duration(timeout) * time.Second)
}

// LookupExternalDuration asks the duration lookup service for a video's
// length in seconds.
func LookupExternalDuration(provider, videoID string) (int, error) {
	if config.AppConfig == nil || config.AppConfig.DurationApiURL == "" {
		return 0, fmt.Errorf("duration lookup is not configured")
	}

	var result durationLookupResponse
	resp, err := durationClient().R().
		SetQueryParams(map[string]string{
			"provider": provider,
			"video_id": videoID,
			"key":      config.AppConfig.DurationApiKey,
		}).
		SetResult(&result).
		Get(config.AppConfig.DurationApiURL)
	if err != nil {
		return 0, fmt.Errorf("duration lookup failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("duration lookup returned status %d", resp.StatusCode())
	}

	return result.DurationSeconds, nil
}

// ResolveMedia classifies a media reference and resolves a duration in
// minutes. For uploaded assets the caller supplies the ingestion record;
// lookup failures degrade to the placeholder and are reported via Warning.
func ResolveMedia(reference string, asset *models.MediaAsset) MediaResolution {
	res := MediaResolution{
		Provider:        ClassifyMediaReference(reference),
		DurationMinutes: PlaceholderDurationMinutes,
		Raw:             reference,
	}

	switch res.Provider {
	case ProviderUploadedAsset:
		if asset == nil {
			res.Warning = "uploaded asset not found; using placeholder duration"
			return res
		}
		res.DurationMinutes = MinutesFromSeconds(asset.DurationSeconds)

	case ProviderYouTube:
		videoID := ExtractYouTubeID(reference)
		if videoID == "" {
			res.Warning = "could not extract YouTube video ID; using placeholder duration"
			return res
		}
		seconds, err := LookupExternalDuration(ProviderYouTube, videoID)
		if err != nil {
			res.Warning = fmt.Sprintf("duration lookup for %s degraded to placeholder: %v", videoID, err)
			return res
		}
		res.DurationMinutes = MinutesFromSeconds(seconds)

	case ProviderVimeo, ProviderExternalOther:
		// No lookup attempted for these providers
	}

	return res
}
