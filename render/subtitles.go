package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
)

// writeScriptSubtitles burns the narration script into an ASS subtitle file,
// spreading the lines evenly across the video duration.
func writeScriptSubtitles(script string, totalSeconds float64, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "[Script Info]")
	fmt.Fprintln(file, "ScriptType: v4.00+")
	fmt.Fprintf(file, "PlayResX: %d\n", config.VideoWidth)
	fmt.Fprintf(file, "PlayResY: %d\n", config.VideoHeight)
	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[V4+ Styles]")
	fmt.Fprintln(file, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")
	// MarginV positions captions at 40% from the bottom of the frame.
	fmt.Fprintf(file, "Style: Default,Arial,%d,&H00FFFFFF,&H00FFFFFF,&H00000000,&H00000000,-1,0,0,0,100,100,0,0,1,3,0,2,40,40,%d,1\n",
		config.SubtitleFontSize, config.VideoHeight*2/5)
	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[Events]")
	fmt.Fprintln(file, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	lines := subtitleLines(script, config.SubtitleMaxWordsLine)
	if len(lines) == 0 {
		return nil
	}

	perLine := totalSeconds / float64(len(lines))
	for i, line := range lines {
		start := float64(i) * perLine
		end := start + perLine
		fmt.Fprintf(file, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTimestamp(start), formatASSTimestamp(end), line)
	}
	return nil
}

// subtitleLines splits the script into caption-sized lines: sentence
// punctuation always breaks, and lines never exceed maxWords words.
func subtitleLines(script string, maxWords int) []string {
	words := strings.Fields(script)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current []string
	for _, word := range words {
		current = append(current, word)
		if endsSentence(word) || len(current) >= maxWords {
			lines = append(lines, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}

// formatASSTimestamp converts seconds to ASS timestamp format (h:mm:ss.cc)
func formatASSTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := int(seconds) % 60
	centisecs := int((seconds - float64(int(seconds))) * 100)

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centisecs)
}
