package request

// Comment is the body of both root comment and reply creation. Length rules
// are applied by the comment service after trimming.
type Comment struct {
	Content string `json:"content"`
}
