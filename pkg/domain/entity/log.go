package entity

// DNSQuery describes a single DNS exchange, used for debug logging and metrics
type DNSQuery struct {
	Domain  string   `json:"domain"`
	Type    string   `json:"type"`
	Server  string   `json:"server"`
	Rcode   string   `json:"rcode"`
	Answers []string `json:"answers"`
	RTTMs   int64    `json:"rtt_ms"`
	Error   string   `json:"error,omitempty"`
}
