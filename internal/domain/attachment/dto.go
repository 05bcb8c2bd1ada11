package attachment

type SignURLDTO struct {
	FilePath string  `json:"file_path" binding:"required"`
	FileName *string `json:"file_name,omitempty"`
}
