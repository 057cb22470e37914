// AngelaMos | 2026
// dto.go

package book

type BookRequest struct {
	Title      string `json:"title"      validate:"required,min=1,max=255"`
	AuthorName string `json:"authorName" validate:"required,min=1,max=255"`
	ISBN       string `json:"isbn"       validate:"required,min=1,max=32"`
	Synopsis   string `json:"synopsis"   validate:"required"`
	Shareable  bool   `json:"shareable"`
}

type BookResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	AuthorName string  `json:"authorName"`
	ISBN       string  `json:"isbn"`
	Synopsis   string  `json:"synopsis"`
	Owner      string  `json:"owner"`
	Cover      []byte  `json:"cover,omitempty"`
	Rate       float64 `json:"rate"`
	Archived   bool    `json:"archived"`
	Shareable  bool    `json:"shareable"`
}

type BorrowedBookResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	AuthorName     string  `json:"authorName"`
	ISBN           string  `json:"isbn"`
	Rate           float64 `json:"rate"`
	Returned       bool    `json:"returned"`
	ReturnApproved bool    `json:"returnApproved"`
}

type IDResponse struct {
	ID string `json:"id"`
}
