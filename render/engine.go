package render

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// Engine renders posts locally with ffmpeg. It satisfies the same contract as
// the hosted render service: StartRender returns immediately and the job is
// observed through GetRenderStatus until it reaches a terminal state.
type Engine struct {
	outputDir string
	baseURL   string

	mu   sync.Mutex
	jobs map[string]types.RenderJob
}

// NewEngine creates an engine writing into outputDir. Finished media is
// reported at baseURL/<job id>.mp4, so baseURL must be where outputDir is
// served from.
func NewEngine(outputDir, baseURL string) (*Engine, error) {
	if outputDir == "" {
		outputDir = config.RenderOutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Engine{
		outputDir: outputDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		jobs:      make(map[string]types.RenderJob),
	}, nil
}

// StartRender registers a job and kicks off the ffmpeg pipeline in the
// background.
func (e *Engine) StartRender(ctx context.Context, assets []types.AssetResult, script string, kind types.TemplateKind) (string, error) {
	if len(assets) == 0 {
		return "", fmt.Errorf("no assets selected for rendering")
	}

	jobID := uuid.NewString()
	e.setJob(types.RenderJob{JobID: jobID, Status: types.RenderPending})

	go e.run(jobID, append([]types.AssetResult{}, assets...), script, kind)
	return jobID, nil
}

// GetRenderStatus reports the current state of a job.
func (e *Engine) GetRenderStatus(ctx context.Context, jobID string) (*types.RenderJob, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	job, ok := e.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("unknown render job %s", jobID)
	}
	return &job, nil
}

func (e *Engine) setJob(job types.RenderJob) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.jobs[job.JobID] = job
}

func (e *Engine) run(jobID string, assets []types.AssetResult, script string, kind types.TemplateKind) {
	e.setJob(types.RenderJob{JobID: jobID, Status: types.RenderRendering})

	outputPath := filepath.Join(e.outputDir, jobID+".mp4")
	err := e.render(jobID, assets, script, kind, outputPath)
	if err != nil {
		log.Printf("render job %s failed: %v", jobID, err)
		e.setJob(types.RenderJob{JobID: jobID, Status: types.RenderFailed, Error: err.Error()})
		return
	}

	e.setJob(types.RenderJob{
		JobID:    jobID,
		Status:   types.RenderSucceeded,
		VideoURL: e.mediaURL(jobID),
	})
}

// mediaURL is where the finished file for a job is served.
func (e *Engine) mediaURL(jobID string) string {
	if e.baseURL == "" {
		return filepath.Join(e.outputDir, jobID+".mp4")
	}
	return fmt.Sprintf("%s/%s.mp4", e.baseURL, jobID)
}

func (e *Engine) render(jobID string, assets []types.AssetResult, script string, kind types.TemplateKind, outputPath string) error {
	tmpDir := os.TempDir()

	// Fetch every asset up front so a dead URL fails fast instead of
	// mid-encode.
	localPaths := make([]string, 0, len(assets))
	for i, asset := range assets {
		ext := ".mp4"
		if kind == types.TemplateImage {
			ext = ".png"
		}
		localPath := filepath.Join(tmpDir, fmt.Sprintf("%s_asset_%d%s", jobID, i, ext))
		if err := downloadFile(asset.ID, localPath); err != nil {
			return fmt.Errorf("failed to download asset %d: %w", i, err)
		}
		defer os.Remove(localPath)
		localPaths = append(localPaths, localPath)
	}

	totalSeconds := clipSeconds(assets, kind)

	assPath := filepath.Join(tmpDir, fmt.Sprintf("%s_subtitles.ass", jobID))
	if err := writeScriptSubtitles(script, float64(totalSeconds*len(localPaths)), assPath); err != nil {
		return fmt.Errorf("failed to generate subtitles: %w", err)
	}
	defer os.Remove(assPath)

	streams := make([]*ffmpeg.Stream, 0, len(localPaths))
	for _, path := range localPaths {
		streams = append(streams, clipStream(path, kind, totalSeconds))
	}

	merged := streams[0]
	if len(streams) > 1 {
		merged = ffmpeg.Concat(streams)
	}

	// ffmpeg's ass filter wants forward slashes and escaped drive colons.
	assPathForFFmpeg := strings.ReplaceAll(filepath.ToSlash(assPath), ":", "\\:")
	withSubs := merged.Filter("ass", ffmpeg.Args{assPathForFFmpeg})

	err := withSubs.Output(outputPath, ffmpeg.KwArgs{
		"c:v":     config.VideoCodec,
		"preset":  config.VideoPreset,
		"pix_fmt": "yuv420p",
		"an":      "",
	}).OverWriteOutput().Run()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// clipStream prepares one input as a 9:16 vertical stream. Horizontal footage
// is center-cropped before scaling; images loop for the clip duration.
func clipStream(path string, kind types.TemplateKind, seconds int) *ffmpeg.Stream {
	var input *ffmpeg.Stream
	if kind == types.TemplateImage {
		input = ffmpeg.Input(path, ffmpeg.KwArgs{
			"loop":      "1",
			"t":         fmt.Sprintf("%d", seconds),
			"framerate": "30",
		})
	} else {
		input = ffmpeg.Input(path, ffmpeg.KwArgs{"t": fmt.Sprintf("%d", seconds)})
	}

	return input.
		Filter("crop", ffmpeg.Args{"ih*9/16:ih"}).
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", config.VideoWidth, config.VideoHeight)})
}

// clipSeconds picks the per-clip duration: the asset's own duration when the
// search reported one, a fixed default otherwise.
func clipSeconds(assets []types.AssetResult, kind types.TemplateKind) int {
	if kind == types.TemplateImage {
		return config.ImageClipSeconds
	}
	for _, asset := range assets {
		if asset.DurationSeconds > 0 {
			return asset.DurationSeconds
		}
	}
	return config.DefaultShotSeconds
}

func downloadFile(url string, filepath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download: status %d", resp.StatusCode)
	}

	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
