package domain

// ChartID identifies one of the rendered chart slots.
type ChartID string

const (
	// ChartIndustryPie is the industry distribution pie chart.
	ChartIndustryPie ChartID = "industry_pie"

	// ChartBusinessPerCapita is the businesses-per-capita bar chart.
	ChartBusinessPerCapita ChartID = "business_per_capita"

	// ChartCorrelationHeatmap is the correlation heatmap.
	ChartCorrelationHeatmap ChartID = "correlation_heatmap"
)

// AllCharts lists every chart slot in display order.
func AllCharts() []ChartID {
	return []ChartID{ChartIndustryPie, ChartBusinessPerCapita, ChartCorrelationHeatmap}
}

// Title returns a human-readable chart name.
func (id ChartID) Title() string {
	switch id {
	case ChartIndustryPie:
		return "Industry Distribution"
	case ChartBusinessPerCapita:
		return "Businesses per Capita"
	case ChartCorrelationHeatmap:
		return "Correlation Heatmap"
	default:
		return string(id)
	}
}

// NeedsDemographics reports whether rendering this chart requires the
// demographics file in addition to the business file.
func (id ChartID) NeedsDemographics() bool {
	return id != ChartIndustryPie
}

// SlotStatus is the lifecycle state of one chart slot.
type SlotStatus int

const (
	// SlotPending means the fetch has not resolved yet.
	SlotPending SlotStatus = iota

	// SlotReady means the rendered image is available on disk.
	SlotReady

	// SlotUnavailable means this chart's fetch failed. Other slots are
	// unaffected.
	SlotUnavailable
)

// String returns the display name of the slot status.
func (s SlotStatus) String() string {
	switch s {
	case SlotPending:
		return "pending"
	case SlotReady:
		return "ready"
	case SlotUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ChartSlot is the resolved state of one chart.
type ChartSlot struct {
	Status SlotStatus

	// Path is the image file on disk when Status is SlotReady. The file
	// is owned by the chart coordinator and is removed when the cycle
	// that produced it is superseded.
	Path string

	// Err is the per-slot failure when Status is SlotUnavailable.
	Err error
}

// ChartUpdate carries one resolved slot from a fetch goroutine back to
// the owning task. CycleID lets stale results from a superseded run be
// dropped instead of clobbering newer state.
type ChartUpdate struct {
	CycleID string
	ID      ChartID
	Slot    ChartSlot
}

// ChartSet is the full set of chart slots for one analysis cycle.
type ChartSet struct {
	// CycleID is the analysis run this set belongs to.
	CycleID string

	slots map[ChartID]ChartSlot
}

// NewChartSet creates a set with every slot pending.
func NewChartSet(cycleID string) *ChartSet {
	slots := make(map[ChartID]ChartSlot, len(AllCharts()))
	for _, id := range AllCharts() {
		slots[id] = ChartSlot{Status: SlotPending}
	}
	return &ChartSet{CycleID: cycleID, slots: slots}
}

// Slot returns the state of one chart.
func (s *ChartSet) Slot(id ChartID) ChartSlot {
	return s.slots[id]
}

// SetSlot stores the resolved state of one chart.
func (s *ChartSet) SetSlot(id ChartID, slot ChartSlot) {
	s.slots[id] = slot
}

// Resolved reports whether every slot has left the pending state.
func (s *ChartSet) Resolved() bool {
	for _, slot := range s.slots {
		if slot.Status == SlotPending {
			return false
		}
	}
	return true
}

// Paths returns the image files currently owned by this set.
func (s *ChartSet) Paths() []string {
	var paths []string
	for _, id := range AllCharts() {
		if slot := s.slots[id]; slot.Status == SlotReady && slot.Path != "" {
			paths = append(paths, slot.Path)
		}
	}
	return paths
}
