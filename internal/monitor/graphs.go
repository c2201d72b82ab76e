package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline renders a single-row sparkline scaled to the series'
// own min/max. Used for absolute series like memory bytes.
func RenderSparkline(data []float64, width int, color lipgloss.AdaptiveColor) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	var out strings.Builder
	for _, val := range resample(data, width) {
		out.WriteRune(sparklineBlocks[levelFor(val, minVal, maxVal)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(out.String())
}

// RenderPercentSparkline renders a single-row sparkline on a fixed 0-100
// scale, colored by the most recent value's severity.
func RenderPercentSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	var out strings.Builder
	for _, val := range resample(data, width) {
		out.WriteRune(sparklineBlocks[levelFor(val, 0, 100)])
	}
	color := MetricColor(data[len(data)-1])
	return lipgloss.NewStyle().Foreground(color).Render(out.String())
}

func levelFor(val, minVal, maxVal float64) int {
	normalized := 0.5
	if maxVal > minVal {
		normalized = (val - minVal) / (maxVal - minVal)
	}
	idx := int(normalized * float64(len(sparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparklineBlocks) {
		idx = len(sparklineBlocks) - 1
	}
	return idx
}

// resample compresses or stretches data to the target size. Downsampling
// takes the max of each bucket so spikes stay visible.
func resample(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucket := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucket)
			end := int(float64(i+1) * bucket)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)
		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}
