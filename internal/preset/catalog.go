package preset

import (
	"sort"

	"image-resizer/internal/domain"
)

// catalog holds the social-media dimension presets. Write-once at init,
// read-only afterwards; handlers share it without locking.
var catalog = map[string]domain.Preset{
	"instagram_feed_square": {
		Name:       "Instagram - Square Feed",
		Width:      1080,
		Height:     1080,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Instagram",
	},
	"instagram_feed_vertical": {
		Name:       "Instagram - Vertical Feed",
		Width:      1080,
		Height:     1350,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Instagram",
	},
	"instagram_stories": {
		Name:       "Instagram - Stories/Reels",
		Width:      1080,
		Height:     1920,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Instagram",
	},
	"youtube_thumbnail": {
		Name:       "YouTube - Thumbnail",
		Width:      1280,
		Height:     720,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "YouTube",
	},
	"youtube_banner": {
		Name:       "YouTube - Channel Banner",
		Width:      2560,
		Height:     1440,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "YouTube",
	},
	"twitter_post": {
		Name:       "Twitter - Standard Post",
		Width:      1200,
		Height:     675,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Twitter",
	},
	"twitter_header": {
		Name:       "Twitter - Header",
		Width:      1500,
		Height:     500,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Twitter",
	},
	"facebook_post": {
		Name:       "Facebook - Post",
		Width:      1200,
		Height:     630,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Facebook",
	},
	"facebook_cover": {
		Name:       "Facebook - Cover",
		Width:      820,
		Height:     312,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "Facebook",
	},
	"linkedin_post": {
		Name:       "LinkedIn - Post",
		Width:      1200,
		Height:     627,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "LinkedIn",
	},
	"linkedin_banner": {
		Name:       "LinkedIn - Banner",
		Width:      1584,
		Height:     396,
		DefaultFit: domain.FitCover,
		Anchor:     "center",
		Platform:   "LinkedIn",
	},
}

// Lookup returns the preset for key. Absence is a valid outcome, not an
// error — callers fall back to custom dimensions.
func Lookup(key string) (domain.Preset, bool) {
	p, ok := catalog[key]
	return p, ok
}

// All returns the full catalog. The map is shared; callers must not mutate it.
func All() map[string]domain.Preset {
	return catalog
}

// Platforms returns the deduplicated platform labels, sorted for stable
// responses.
func Platforms() []string {
	seen := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		seen[p.Platform] = struct{}{}
	}

	platforms := make([]string, 0, len(seen))
	for name := range seen {
		platforms = append(platforms, name)
	}
	sort.Strings(platforms)
	return platforms
}

// ByPlatform returns the presets whose platform matches exactly. An unknown
// platform yields an empty map.
func ByPlatform(platform string) map[string]domain.Preset {
	out := make(map[string]domain.Preset)
	for key, p := range catalog {
		if p.Platform == platform {
			out[key] = p
		}
	}
	return out
}
