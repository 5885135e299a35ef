package types

// AssetResult is a candidate image or video clip returned by a search
// operation. Identity is the ID: two results are the same asset iff the IDs
// match. The render service fetches media by URL, so the ID doubles as the
// media URL for stock and generated assets alike.
type AssetResult struct {
	ID              string `json:"id"`
	ThumbnailURL    string `json:"thumbnail_url"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds"`
}
