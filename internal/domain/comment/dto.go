package comment

type CreateCommentDTO struct {
	Content    string `json:"content" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

type UpdateCommentDTO struct {
	Content    string `json:"content" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}
