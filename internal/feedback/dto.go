// AngelaMos | 2026
// dto.go

package feedback

type FeedbackRequest struct {
	Note    float64 `json:"note"    validate:"gte=0,lte=5"`
	Comment string  `json:"comment" validate:"required"`
	BookID  string  `json:"bookId"  validate:"required,uuid"`
}

// FeedbackResponse marks the caller's own entries so the client can
// offer edit affordances without another lookup.
type FeedbackResponse struct {
	Note        float64 `json:"note"`
	Comment     string  `json:"comment"`
	OwnFeedback bool    `json:"ownFeedback"`
}

type IDResponse struct {
	ID string `json:"id"`
}
