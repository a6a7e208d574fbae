package models

// DeviceInfo is a snapshot of environment characteristics used for
// fingerprinting. Field names follow the wire format consumed by clients.
type DeviceInfo struct {
	UserAgent           string `json:"userAgent"`
	Language            string `json:"language"`
	Platform            string `json:"platform"`
	ScreenResolution    string `json:"screenResolution"`
	Timezone            string `json:"timezone"`
	HardwareConcurrency int    `json:"hardwareConcurrency"`
	DeviceMemory        int    `json:"deviceMemory,omitempty"`
}

// DeviceFingerprint is the durable record binding a device id to the
// characteristics snapshot it was derived from. Timestamps are epoch millis.
type DeviceFingerprint struct {
	ID        string     `json:"id"`
	CreatedAt int64      `json:"createdAt"`
	LastSeen  int64      `json:"lastSeen"`
	Info      DeviceInfo `json:"info"`
}
