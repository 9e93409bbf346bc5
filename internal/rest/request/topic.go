package request

type Topic struct {
	Content string `json:"content"`
}
