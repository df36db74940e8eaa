package constants

// Segment is the coarse intention bucket derived from the score.
type Segment string

const (
	SegmentHigh   Segment = "Alta"
	SegmentMedium Segment = "Media"
	SegmentLow    Segment = "Baja"
)

// CustomerType classifies a customer by value and loyalty signals.
type CustomerType string

const (
	CustomerVIP       CustomerType = "VIP"
	CustomerRecurrent CustomerType = "Recurrente"
	CustomerNew       CustomerType = "Nuevo"
)

// suggestedActions maps each segment to its marketing follow-up.
var suggestedActions = map[Segment]string{
	SegmentHigh:   "WhatsApp + Cupón personalizado",
	SegmentMedium: "Email remarketing",
	SegmentLow:    "Automatización suave",
}

// SuggestedAction returns the follow-up action for a segment. Unknown
// segments fall back to the low-touch action.
func SuggestedAction(s Segment) string {
	if action, ok := suggestedActions[s]; ok {
		return action
	}
	return suggestedActions[SegmentLow]
}
