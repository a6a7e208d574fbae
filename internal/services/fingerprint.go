package services

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"vsd/internal/models"
)

// FingerprintHash folds a string into a 32-bit accumulator (h = h*31 + byte,
// wrapping) and returns the absolute value in hex. Non-cryptographic:
// collisions are acceptable, this is a grouping key, not a security token.
func FingerprintHash(s string) string {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}
	u := uint32(h)
	if h < 0 {
		u = uint32(-int64(h))
	}
	return strconv.FormatUint(uint64(u), 16)
}

// Fingerprint derives the device hash from a characteristics snapshot.
func Fingerprint(info models.DeviceInfo) string {
	data, _ := json.Marshal(info)
	return FingerprintHash(string(data))
}

// InfoSource supplies a fresh device characteristics snapshot.
type InfoSource func() models.DeviceInfo

// HostDeviceInfo builds a snapshot from the host environment. It stands in
// for the browser collaborator when the daemon fingerprints itself.
func HostDeviceInfo() models.DeviceInfo {
	lang := os.Getenv("LANG")
	if lang == "" {
		lang = "en-US"
	}
	zone, _ := time.Now().Zone()
	return models.DeviceInfo{
		UserAgent:           fmt.Sprintf("vsd (%s; %s)", runtime.GOOS, runtime.GOARCH),
		Language:            lang,
		Platform:            runtime.GOOS,
		ScreenResolution:    "headless",
		Timezone:            zone,
		HardwareConcurrency: runtime.NumCPU(),
	}
}
