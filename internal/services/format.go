package services

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count for display: "0 Bytes", "1.46 KB",
// "1 MB". Values are rounded to two decimals with trailing zeros dropped.
// Negative counts clamp to zero; math.Log has no answer for them.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	value := math.Round(float64(bytes)/math.Pow(k, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

func FormatSpeed(bytesPerSecond int64) string {
	return FormatFileSize(bytesPerSecond) + "/s"
}

func FormatTimeRemaining(seconds float64) string {
	switch {
	case seconds < 60:
		return strconv.Itoa(int(math.Round(seconds))) + "s"
	case seconds < 3600:
		return strconv.Itoa(int(math.Round(seconds/60))) + "m"
	default:
		return strconv.Itoa(int(math.Round(seconds/3600))) + "h"
	}
}
