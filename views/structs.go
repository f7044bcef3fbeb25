package views

// ExportMsg 导出请求体
type ExportMsg struct {
	Seed        string  `json:"seed"`
	Diameter    float64 `json:"diameter"`
	Height      float64 `json:"height"`
	ReliefDepth float64 `json:"relief_depth"`
}
