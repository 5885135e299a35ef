package publish

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata is the listing information for an uploaded Short.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

// Uploader publishes rendered posts to YouTube Shorts. It exists alongside the
// scheduling provider for accounts that want direct uploads instead of a
// third-party publisher.
type Uploader struct {
	service *youtube.Service
}

// NewUploader builds an uploader from a service account credentials file.
func NewUploader(serviceAccountFile string) (*Uploader, error) {
	ctx := context.Background()

	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	client := config.Client(ctx)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &Uploader{service: service}, nil
}

// UploadShort uploads the video file with the given metadata and returns the
// video id.
func (u *Uploader) UploadShort(videoPath string, metadata Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("📤 Uploading: %s (%.2f MB)", videoPath, float64(fileInfo.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       metadata.Title,
			Description: metadata.Description,
			Tags:        metadata.Tags,
			CategoryId:  metadata.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           "public",
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, video)
	call = call.Media(file)

	response, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	videoID := response.Id
	log.Printf("✅ Uploaded! https://youtube.com/shorts/%s", videoID)

	return videoID, nil
}

// MetadataFromCaption derives Shorts metadata from the post caption: the hook
// line becomes the title, hashtag words become tags.
func MetadataFromCaption(caption, topic string) Metadata {
	lines := strings.Split(strings.TrimSpace(caption), "\n")

	title := strings.TrimSpace(lines[0])
	if title == "" {
		title = topic
	}
	if len(title) > 100 {
		title = title[:97] + "..."
	}

	var tags []string
	for _, word := range strings.Fields(caption) {
		if strings.HasPrefix(word, "#") && len(word) > 1 {
			tags = append(tags, strings.TrimPrefix(word, "#"))
		}
	}

	return Metadata{
		Title:       title,
		Description: caption + "\n\n#shorts",
		Tags:        tags,
		CategoryID:  "22", // People & Blogs
	}
}
